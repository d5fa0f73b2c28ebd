package reqparse

import "testing"

func TestSimpleCanHandleAlwaysTrue(t *testing.T) {
	if !(SimpleParser{}).CanHandle(RawParams{}) {
		t.Fatal("expected SimpleParser.CanHandle to always return true")
	}
}

func TestSimpleUnreservedKeysBecomeEqualsFilters(t *testing.T) {
	raw := RawParams{"page": "1", "status": "active", "search": "x"}
	p := (SimpleParser{}).Parse(raw)
	if len(p.Filters) != 1 {
		t.Fatalf("expected 1 inferred filter, got %+v", p.Filters)
	}
	if p.Filters[0].Field != "status" || p.Filters[0].Operator != "equals" || p.Filters[0].Value != "active" {
		t.Fatalf("unexpected filter: %+v", p.Filters[0])
	}
}

func TestSimpleReservedKeysNeverBecomeFilters(t *testing.T) {
	raw := RawParams{
		"q": "x", "per_page": "10", "include_total": "true",
		"include_available_filters": "true", "responseFormat": "swr", "format": "cursor",
	}
	p := (SimpleParser{}).Parse(raw)
	if len(p.Filters) != 0 {
		t.Fatalf("expected no inferred filters from reserved keys, got %+v", p.Filters)
	}
}

func TestSimpleSortByAndSortOrder(t *testing.T) {
	raw := RawParams{"sortBy": "name", "sortOrder": "desc"}
	p := (SimpleParser{}).Parse(raw)
	if len(p.Sorting) != 1 || p.Sorting[0].Field != "name" || p.Sorting[0].Direction != Desc {
		t.Fatalf("unexpected sort: %+v", p.Sorting)
	}
}

func TestSimpleCommaSeparatedSortWithDirectionSuffix(t *testing.T) {
	raw := RawParams{"sort": "name,age:desc"}
	p := (SimpleParser{}).Parse(raw)
	if len(p.Sorting) != 2 {
		t.Fatalf("expected 2 sorts, got %d", len(p.Sorting))
	}
	if p.Sorting[0].Field != "name" || p.Sorting[0].Direction != Asc {
		t.Fatalf("expected name asc first, got %+v", p.Sorting[0])
	}
	if p.Sorting[1].Field != "age" || p.Sorting[1].Direction != Desc {
		t.Fatalf("expected age desc second, got %+v", p.Sorting[1])
	}
}

func TestSimplePerPageAliasesPageSize(t *testing.T) {
	raw := RawParams{"per_page": "5"}
	p := (SimpleParser{}).Parse(raw)
	if p.Pagination.PageSize != 5 {
		t.Fatalf("expected per_page to set pageSize 5, got %d", p.Pagination.PageSize)
	}
}

func TestSimpleQAliasesSearch(t *testing.T) {
	raw := RawParams{"q": "acme"}
	p := (SimpleParser{}).Parse(raw)
	if p.Search.Term != "acme" {
		t.Fatalf("expected q to alias search term, got %q", p.Search.Term)
	}
}

func TestSimpleSearchFieldsSplit(t *testing.T) {
	raw := RawParams{"search": "acme", "search_fields": "name, email"}
	p := (SimpleParser{}).Parse(raw)
	if len(p.Search.Fields) != 2 || p.Search.Fields[0] != "name" || p.Search.Fields[1] != "email" {
		t.Fatalf("unexpected search fields: %+v", p.Search.Fields)
	}
}

func TestSimpleEmptyValueFilterIsDropped(t *testing.T) {
	raw := RawParams{"status": ""}
	p := (SimpleParser{}).Parse(raw)
	if len(p.Filters) != 0 {
		t.Fatalf("expected empty-value key to be dropped, got %+v", p.Filters)
	}
}
