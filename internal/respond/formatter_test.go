package respond

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gravitycar/api-core/internal/reqparse"
)

func sampleParsed() reqparse.ParsedRequest {
	return reqparse.ParsedRequest{
		Pagination: reqparse.Pagination{Page: 2, PageSize: 2, Offset: 2, Limit: 2},
		Sorting:    []reqparse.Sort{{Field: "name", Direction: reqparse.Asc}},
		Filters:    []reqparse.Filter{{Field: "status", Operator: "equals", Value: "active"}},
		Search:     reqparse.Search{Term: "acme", Operator: reqparse.SearchContains},
	}
}

var allDialects = []Dialect{Standard, AGGrid, MUI, TanStack, SWR, InfiniteScroll, Cursor}

func TestFormatTotalityAcrossAllDialects(t *testing.T) {
	data := []any{map[string]any{"id": 1}, map[string]any{"id": 2}}
	now := time.Unix(0, 0)
	for _, d := range allDialects {
		out := Format(d, data, sampleParsed(), now)
		assert.Equal(t, true, out["success"], "dialect %s must report success", d)
		assert.NotNil(t, out["data"], "dialect %s must include data", d)
	}
}

func TestUnknownDialectFallsBackToStandard(t *testing.T) {
	out := Format(Dialect("unknown-future-dialect"), []any{}, sampleParsed(), time.Unix(0, 0))
	assert.Contains(t, out, "meta")
	assert.Contains(t, out, "pagination")
}

func TestDialectForUnrecognizedFormatIsStandard(t *testing.T) {
	assert.Equal(t, Standard, DialectFor("something-else"))
	assert.Equal(t, AGGrid, DialectFor("ag-grid"))
}

func TestResolveDialectExplicitOverrideWins(t *testing.T) {
	assert.Equal(t, SWR, ResolveDialect("swr", "ag-grid"))
	assert.Equal(t, Cursor, ResolveDialect("cursor", "simple"))
}

func TestResolveDialectHonorsReactQueryAlias(t *testing.T) {
	assert.Equal(t, TanStack, ResolveDialect("tanstack-query", ""))
	assert.Equal(t, TanStack, ResolveDialect("react-query", ""))
}

func TestResolveDialectIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, SWR, ResolveDialect("SWR", ""))
}

func TestResolveDialectFallsBackToInboundImpliedDialect(t *testing.T) {
	assert.Equal(t, AGGrid, ResolveDialect("", "ag-grid"))
	assert.Equal(t, MUI, ResolveDialect("not-a-real-dialect", "mui"))
}

func TestResolveDialectFallsBackToStandardWhenNothingMatches(t *testing.T) {
	assert.Equal(t, Standard, ResolveDialect("", ""))
}

func TestAGGridLastRowNilWhenFullPage(t *testing.T) {
	data := []any{map[string]any{"id": 1}, map[string]any{"id": 2}}
	out := formatAGGrid(data, sampleParsed())
	assert.Nil(t, out["lastRow"], "full page implies more rows may follow")
}

func TestAGGridLastRowSetWhenPartialPage(t *testing.T) {
	data := []any{map[string]any{"id": 1}}
	out := formatAGGrid(data, sampleParsed())
	assert.Equal(t, 3, out["lastRow"])
}

func TestCacheKeyDeterministicRegardlessOfFilterOrder(t *testing.T) {
	p1 := sampleParsed()
	p1.Filters = []reqparse.Filter{
		{Field: "status", Operator: "equals", Value: "active"},
		{Field: "age", Operator: "greaterThan", Value: "18"},
	}
	p2 := sampleParsed()
	p2.Filters = []reqparse.Filter{
		{Field: "age", Operator: "greaterThan", Value: "18"},
		{Field: "status", Operator: "equals", Value: "active"},
	}
	assert.Equal(t, CacheKey(p1), CacheKey(p2))
}

func TestCacheKeyChangesWithDifferentSearch(t *testing.T) {
	p1 := sampleParsed()
	p2 := sampleParsed()
	p2.Search.Term = "other"
	assert.NotEqual(t, CacheKey(p1), CacheKey(p2))
}
