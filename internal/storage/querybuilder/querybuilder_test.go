package querybuilder

import (
	"strings"
	"testing"

	"github.com/gravitycar/api-core/internal/reqparse"
)

func TestSelectBuilderBasic(t *testing.T) {
	q, args := NewSelect("id", "name").From("users").Build()
	if len(args) != 0 {
		t.Fatalf("expected 0 args, got %d", len(args))
	}
	for _, frag := range []string{"SELECT id, name", "FROM users"} {
		if !strings.Contains(q, frag) {
			t.Fatalf("query missing fragment %q; got: %s", frag, q)
		}
	}
}

func TestSelectBuilderWhereAndArgs(t *testing.T) {
	b := NewSelect("id", "email").
		From("users").
		Where("id = $1", 42).
		Where("status = $2", "active")

	q, args := b.Build()
	if want, got := 2, len(args); want != got {
		t.Fatalf("want %d args, got %d", want, got)
	}
	if args[0] != 42 || args[1] != "active" {
		t.Fatalf("unexpected args: %#v", args)
	}
	if !strings.Contains(q, "WHERE id = $1 AND status = $2") {
		t.Fatalf("unexpected WHERE: %s", q)
	}
}

func TestSelectBuilderOrderLimitOffset(t *testing.T) {
	b := NewSelect("id").From("users").OrderBy("name ASC").Limit(10).Offset(20)
	q, _ := b.Build()
	if !strings.Contains(q, "ORDER BY name ASC") {
		t.Fatalf("ORDER BY missing: %s", q)
	}
	if !strings.Contains(q, "LIMIT 10") || !strings.Contains(q, "OFFSET 20") {
		t.Fatalf("LIMIT/OFFSET missing: %s", q)
	}
}

func TestApplyFilterEqualsUsesNumberedPlaceholder(t *testing.T) {
	b := NewSelect().From("users").ApplyFilter(reqparse.Filter{Field: "status", Operator: "equals", Value: "active"})
	q, args := b.Build()
	if !strings.Contains(q, "status = $1") {
		t.Fatalf("expected numbered placeholder: %s", q)
	}
	if args[0] != "active" {
		t.Fatalf("unexpected arg: %v", args[0])
	}
}

func TestApplyFilterContainsWrapsValueWithWildcards(t *testing.T) {
	b := NewSelect().From("users").ApplyFilter(reqparse.Filter{Field: "name", Operator: "contains", Value: "jo"})
	_, args := b.Build()
	if args[0] != "%jo%" {
		t.Fatalf("expected wrapped wildcard value, got %v", args[0])
	}
}

func TestApplyFilterIsNullHasNoArg(t *testing.T) {
	b := NewSelect().From("users").ApplyFilter(reqparse.Filter{Field: "deleted_at", Operator: "isNull"})
	q, args := b.Build()
	if len(args) != 0 {
		t.Fatalf("expected 0 args for IS NULL, got %d", len(args))
	}
	if !strings.Contains(q, "deleted_at IS NULL") {
		t.Fatalf("expected IS NULL predicate: %s", q)
	}
}

func TestApplyFilterInBuildsPlaceholderList(t *testing.T) {
	b := NewSelect().From("users").ApplyFilter(reqparse.Filter{Field: "status", Operator: "in", Value: []string{"a", "b", "c"}})
	q, args := b.Build()
	if !strings.Contains(q, "status IN ($1, $2, $3)") {
		t.Fatalf("unexpected IN clause: %s", q)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
}

func TestApplySearchOrCombinesFields(t *testing.T) {
	b := NewSelect().From("users").ApplySearch(reqparse.Search{Term: "acme", Fields: []string{"name", "email"}, Operator: reqparse.SearchContains})
	q, args := b.Build()
	if !strings.Contains(q, "name ILIKE $1 OR email ILIKE $2") {
		t.Fatalf("unexpected search clause: %s", q)
	}
	if args[0] != "%acme%" || args[1] != "%acme%" {
		t.Fatalf("unexpected search args: %#v", args)
	}
}

func TestApplySearchNoOpWithoutTerm(t *testing.T) {
	b := NewSelect().From("users").ApplySearch(reqparse.Search{})
	q, args := b.Build()
	if strings.Contains(q, "WHERE") || len(args) != 0 {
		t.Fatalf("expected no-op search to add nothing: %s %#v", q, args)
	}
}
