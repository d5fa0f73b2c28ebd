package reqparse

import "testing"

func TestDispatchPrefersAGGridOverStructured(t *testing.T) {
	d := NewDispatcher(nil)
	raw := RawParams{"startRow": "0", "endRow": "10", "filter": `{"name":{"operator":"equals","value":"a"}}`}
	p := d.Dispatch(raw)
	if p.Meta.DetectedFormat != "ag-grid" {
		t.Fatalf("expected ag-grid to win priority, got %s", p.Meta.DetectedFormat)
	}
}

func TestDispatchPrefersMUIOverStructured(t *testing.T) {
	d := NewDispatcher(nil)
	raw := RawParams{"sortModel": "[]", "filter": `{"name":{"operator":"equals","value":"a"}}`}
	p := d.Dispatch(raw)
	if p.Meta.DetectedFormat != "mui" {
		t.Fatalf("expected mui to win priority, got %s", p.Meta.DetectedFormat)
	}
}

func TestDispatchMarksPageSizeClampedOnlyWhenActuallyClamped(t *testing.T) {
	d := NewDispatcher(nil)

	clamped := d.Dispatch(RawParams{"pageSize": "5000"})
	if !clamped.Meta.PageSizeClamped {
		t.Fatal("expected PageSizeClamped when requested size exceeds MaxPageSize")
	}

	exact := d.Dispatch(RawParams{"pageSize": "1000"})
	if exact.Meta.PageSizeClamped {
		t.Fatal("expected PageSizeClamped false when the caller legitimately requests MaxPageSize")
	}
	if exact.Pagination.PageSize != MaxPageSize {
		t.Fatalf("expected pageSize %d, got %d", MaxPageSize, exact.Pagination.PageSize)
	}
}

func TestDispatchFallsBackToSimple(t *testing.T) {
	d := NewDispatcher(nil)
	raw := RawParams{"status": "active"}
	p := d.Dispatch(raw)
	if p.Meta.DetectedFormat != "simple" {
		t.Fatalf("expected simple fallback, got %s", p.Meta.DetectedFormat)
	}
	if p.Meta.OriginalParamCount != 1 {
		t.Fatalf("expected OriginalParamCount 1, got %d", p.Meta.OriginalParamCount)
	}
}
