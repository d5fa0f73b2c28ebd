package scorer

import "testing"

func TestScoreRequiresEqualLength(t *testing.T) {
	if got := Score([]string{"a"}, []string{"a", "b"}); got != 0 {
		t.Fatalf("expected 0 for unequal lengths, got %d", got)
	}
}

func TestScoreLiteralBeatsWildcardSamePosition(t *testing.T) {
	literal := Score([]string{"Users", "123"}, []string{"Users", "123"})
	wildcard := Score([]string{"Users", "123"}, []string{"Users", "?"})
	if literal <= wildcard {
		t.Fatalf("expected literal score %d > wildcard score %d", literal, wildcard)
	}
}

func TestScoreEarlierPositionDominates(t *testing.T) {
	// Mismatch early vs mismatch late, rest literal.
	earlyMismatch := Score([]string{"Users", "123"}, []string{"Orders", "123"})
	lateMismatch := Score([]string{"Users", "123"}, []string{"Users", "456"})
	if lateMismatch <= earlyMismatch {
		t.Fatalf("expected late mismatch score %d > early mismatch score %d", lateMismatch, earlyMismatch)
	}
}

func TestScoreUnmatchedLiteralIsZeroContribution(t *testing.T) {
	got := Score([]string{"Users"}, []string{"Orders"})
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestSplitPath(t *testing.T) {
	cases := map[string][]string{
		"":            nil,
		"/":           nil,
		"/Users":      {"Users"},
		"/Users/123":  {"Users", "123"},
		"/Users/123/": {"Users", "123"},
	}
	for in, want := range cases {
		got := SplitPath(in)
		if len(got) != len(want) {
			t.Fatalf("SplitPath(%q) = %v, want %v", in, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("SplitPath(%q) = %v, want %v", in, got, want)
			}
		}
	}
}

func TestBestMatchScenarioLiteralBeatsWildcard(t *testing.T) {
	// End-to-end scenario 1: GET /Users/? (U.getOne) vs GET /Users/123 (U.getAdmin).
	candidates := []Candidate[string]{
		{Components: []string{"Users", "?"}, Value: "U.getOne"},
		{Components: []string{"Users", "123"}, Value: "U.getAdmin"},
	}
	got, ok := BestMatch(SplitPath("/Users/123"), candidates)
	if !ok || got != "U.getAdmin" {
		t.Fatalf("expected U.getAdmin, got %q (ok=%v)", got, ok)
	}
}

func TestBestMatchNoMatchReturnsFalse(t *testing.T) {
	candidates := []Candidate[string]{
		{Components: []string{"Users"}, Value: "x"},
	}
	_, ok := BestMatch(SplitPath("/Orders"), candidates)
	if ok {
		t.Fatalf("expected no match")
	}
}

func TestBestMatchTieBreaksByListOrder(t *testing.T) {
	candidates := []Candidate[string]{
		{Components: []string{"?"}, Value: "first"},
		{Components: []string{"?"}, Value: "second"},
	}
	got, ok := BestMatch(SplitPath("/x"), candidates)
	if !ok || got != "first" {
		t.Fatalf("expected first to win tie, got %q", got)
	}
}
