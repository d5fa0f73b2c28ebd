package reqparse

import "testing"

func TestAGGridCanHandleRequiresBothRowBounds(t *testing.T) {
	if (AGGridParser{}).CanHandle(RawParams{"startRow": "0"}) {
		t.Fatal("expected false without endRow")
	}
	if !(AGGridParser{}).CanHandle(RawParams{"startRow": "0", "endRow": "10"}) {
		t.Fatal("expected true with both bounds present")
	}
}

func TestAGGridDerivesPageFromRowBounds(t *testing.T) {
	raw := RawParams{"startRow": "20", "endRow": "30"}
	p := (AGGridParser{}).Parse(raw)
	if p.Pagination.PageSize != 10 {
		t.Fatalf("expected pageSize 10, got %d", p.Pagination.PageSize)
	}
	if p.Pagination.Page != 3 {
		t.Fatalf("expected page 3, got %d", p.Pagination.Page)
	}
}

func TestAGGridIndexedSortOrderIsPreserved(t *testing.T) {
	raw := RawParams{
		"startRow": "0", "endRow": "10",
		"sort[1][colId]": "age", "sort[1][sort]": "desc",
		"sort[0][colId]": "name", "sort[0][sort]": "asc",
	}
	p := (AGGridParser{}).Parse(raw)
	if len(p.Sorting) != 2 {
		t.Fatalf("expected 2 sorts, got %d", len(p.Sorting))
	}
	if p.Sorting[0].Field != "name" || p.Sorting[1].Field != "age" {
		t.Fatalf("expected name before age, got %+v", p.Sorting)
	}
}

func TestAGGridFilterTypeMapsToUnifiedOperator(t *testing.T) {
	raw := RawParams{
		"startRow": "0", "endRow": "10",
		"filters[status][type]":   "notEqual",
		"filters[status][filter]": "inactive",
	}
	p := (AGGridParser{}).Parse(raw)
	if len(p.Filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(p.Filters))
	}
	if p.Filters[0].Operator != "notEquals" {
		t.Fatalf("expected notEquals, got %s", p.Filters[0].Operator)
	}
}

func TestAGGridSearchFallsBackToGlobalFilter(t *testing.T) {
	raw := RawParams{"startRow": "0", "endRow": "10", "globalFilter": "acme"}
	p := (AGGridParser{}).Parse(raw)
	if p.Search.Term != "acme" {
		t.Fatalf("expected search term acme, got %q", p.Search.Term)
	}
}

func TestAGGridRoundTrip(t *testing.T) {
	original := RawParams{"startRow": "10", "endRow": "20", "sort[0][colId]": "name", "sort[0][sort]": "asc"}
	parsed := (AGGridParser{}).Parse(original)
	encoded := (AGGridParser{}).Encode(parsed)
	reparsed := (AGGridParser{}).Parse(encoded)
	if reparsed.Pagination != parsed.Pagination {
		t.Fatalf("round trip pagination mismatch: %+v vs %+v", parsed.Pagination, reparsed.Pagination)
	}
}
