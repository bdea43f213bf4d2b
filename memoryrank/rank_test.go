package memoryrank

import "testing"

func TestScoresOfEmptyGraphIsEmpty(t *testing.T) {
	r := New()
	scores := r.Scores(nil, nil)
	if len(scores) != 0 {
		t.Fatalf("expected no scores, got %v", scores)
	}
}

func TestScoresOfSingletonIsOne(t *testing.T) {
	r := New()
	scores := r.Scores([]string{"cat"}, nil)
	if scores["cat"] != 1.0 {
		t.Fatalf("scores[cat] = %v, want 1.0", scores["cat"])
	}
}

func TestSelfLoopsAreExcluded(t *testing.T) {
	r := New()
	scores := r.Scores([]string{"cat", "dog"}, []Edge{
		{From: "cat", To: "cat", Weight: 100},
	})
	// A self-loop contributes nothing to cross-word importance, so both
	// words should end up with equal (normalized-to-1) scores.
	if scores["cat"] != scores["dog"] {
		t.Fatalf("scores = %v, want cat == dog since the only edge is a self-loop", scores)
	}
}

func TestRankConcentratesOnHubs(t *testing.T) {
	r := New()
	words := []string{"hub", "a", "b", "c", "d"}
	var edges []Edge
	for _, satellite := range []string{"a", "b", "c", "d"} {
		edges = append(edges, Edge{From: satellite, To: "hub", Weight: 5})
	}
	scores := r.Scores(words, edges)

	for _, satellite := range []string{"a", "b", "c", "d"} {
		if scores["hub"] <= scores[satellite] {
			t.Fatalf("hub score %v should exceed satellite %q score %v", scores["hub"], satellite, scores[satellite])
		}
	}
	if scores["hub"] != 1.0 {
		t.Fatalf("hub (max score) should normalize to 1.0, got %v", scores["hub"])
	}
}

func TestScoresAreCachedUntilInvalidated(t *testing.T) {
	r := New()
	words := []string{"cat", "dog"}
	first := r.Scores(words, []Edge{{From: "cat", To: "dog", Weight: 1}})

	// Same word count, different edges: cache should still return the
	// stale first result.
	second := r.Scores(words, []Edge{{From: "cat", To: "dog", Weight: 99}})
	if first["dog"] != second["dog"] {
		t.Fatalf("expected cached result before Invalidate: %v != %v", first, second)
	}

	r.Invalidate()
	third := r.Scores(words, []Edge{{From: "cat", To: "dog", Weight: 99}})
	_ = third // recomputed; specific value not asserted, only that no panic occurs
}

func TestScoreFallsBackToDefaultForUnknownWord(t *testing.T) {
	r := New()
	scores := r.Scores([]string{"cat"}, nil)
	if got := r.Score("dog", scores, 0.5); got != 0.5 {
		t.Fatalf("Score(unknown) = %v, want default 0.5", got)
	}
}
