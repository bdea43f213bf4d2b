package engine

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gnjz/babyhippo/persist"
)

func TestLearnThenRecallPrefixMatch(t *testing.T) {
	e := New(10, 1)
	for _, word := range []string{"cat", "dog", "car"} {
		if err := e.Learn(word, ""); err != nil {
			t.Fatalf("Learn(%q): %v", word, err)
		}
	}

	results, err := e.Recall("ca", "", 2)
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Word != "cat" && results[0].Word != "car" {
		t.Fatalf("top result = %q, want cat or car", results[0].Word)
	}
	if results[0].Score <= 0 || results[1].Score <= 0 {
		t.Fatalf("expected strictly positive scores, got %v and %v", results[0].Score, results[1].Score)
	}
	if results[0].Score < results[1].Score {
		t.Fatalf("results not sorted descending: %v then %v", results[0].Score, results[1].Score)
	}
}

func TestLearnRespectsCapacityThenAcceptsKnownWord(t *testing.T) {
	e := New(2, 1)
	if err := e.Learn("a", ""); err != nil {
		t.Fatalf("Learn(a): %v", err)
	}
	if err := e.Learn("b", ""); err != nil {
		t.Fatalf("Learn(b): %v", err)
	}
	if err := e.Learn("c", ""); !errors.Is(err, ErrCapacityFull) {
		t.Fatalf("Learn(c) err = %v, want ErrCapacityFull", err)
	}
	if err := e.Learn("a", ""); err != nil {
		t.Fatalf("Learn(a) repeat: %v", err)
	}
	stats := e.GetStats()
	if stats.WordCount != 2 {
		t.Fatalf("WordCount = %d, want 2", stats.WordCount)
	}
}

func TestNoveltyGateTracksLearning(t *testing.T) {
	e := New(5, 1)
	if e.Novelty("x") != 1 {
		t.Fatal("expected novelty 1 before learning")
	}
	if err := e.Learn("x", ""); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if e.Novelty("x") != 0 {
		t.Fatal("expected novelty 0 after learning")
	}
	if _, err := e.Sleep(5, false); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if err := e.Decay(0.1); err != nil {
		t.Fatalf("Decay: %v", err)
	}
	if e.Novelty("x") != 0 {
		t.Fatal("expected novelty to remain 0 after sleep and decay")
	}
}

func TestConsolidationFloorsDecay(t *testing.T) {
	e := New(5, 1)
	if err := e.Learn("mem", ""); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if _, err := e.Sleep(50, false); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	for i := 0; i < 100; i++ {
		if err := e.Decay(0.5); err != nil {
			t.Fatalf("Decay: %v", err)
		}
	}
	p, err := e.GetPersistence("mem")
	if err != nil {
		t.Fatalf("GetPersistence: %v", err)
	}
	if p.Weight < p.EstimatedFloor-1e-6 {
		t.Fatalf("weight %v fell below floor %v", p.Weight, p.EstimatedFloor)
	}
	if p.Weight <= 0.5 {
		t.Fatalf("weight = %v, want > 0.5 after consolidation", p.Weight)
	}
}

func TestTopMemoriesConcentrateOnHub(t *testing.T) {
	e := New(5, 1)
	for _, word := range []string{"a", "b", "c"} {
		if err := e.Learn(word, ""); err != nil {
			t.Fatalf("Learn(%q): %v", word, err)
		}
	}
	// Strengthen A's position in the recurrent graph by re-running learning
	// trials, which rerun STDP on every recurrent collateral touching its
	// CA3 population - including cross-word links into A from B and C.
	for i := 0; i < 20; i++ {
		if err := e.Learn("a", ""); err != nil {
			t.Fatalf("Learn(a) repeat %d: %v", i, err)
		}
	}

	top := e.GetTopMemories(3)
	if len(top) != 3 {
		t.Fatalf("len(top) = %d, want 3", len(top))
	}
	if top[0].Importance > 1.0+1e-9 {
		t.Fatalf("top importance = %v, want <= 1.0", top[0].Importance)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	e := New(10, 1)
	words := []struct{ word, context string }{
		{"cat", "animal"}, {"dog", "animal"}, {"car", "vehicle"}, {"bus", "vehicle"}, {"tree", ""},
	}
	for _, w := range words {
		if err := e.Learn(w.word, w.context); err != nil {
			t.Fatalf("Learn(%q): %v", w.word, err)
		}
	}
	if _, err := e.Sleep(10, false); err != nil {
		t.Fatalf("Sleep: %v", err)
	}

	var buf bytes.Buffer
	if err := e.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(&buf, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, w := range words {
		before, err := e.GetPersistence(w.word)
		if err != nil {
			t.Fatalf("GetPersistence(%q) before: %v", w.word, err)
		}
		after, err := loaded.GetPersistence(w.word)
		if err != nil {
			t.Fatalf("GetPersistence(%q) after: %v", w.word, err)
		}
		if diff := before.Weight - after.Weight; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("%q weight round-trip mismatch: %v vs %v", w.word, before.Weight, after.Weight)
		}
		if diff := before.Consolidation - after.Consolidation; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("%q consolidation round-trip mismatch: %v vs %v", w.word, before.Consolidation, after.Consolidation)
		}
		if diff := before.PeakWeight - after.PeakWeight; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("%q peak weight round-trip mismatch: %v vs %v", w.word, before.PeakWeight, after.PeakWeight)
		}
		if before.ReplayCount != after.ReplayCount {
			t.Fatalf("%q replay count round-trip mismatch: %v vs %v", w.word, before.ReplayCount, after.ReplayCount)
		}
	}
}

func TestSaveThenSaveAgainProducesIdenticalDocuments(t *testing.T) {
	e := New(5, 1)
	if err := e.Learn("cat", "animal"); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if _, err := e.Sleep(5, true); err != nil {
		t.Fatalf("Sleep: %v", err)
	}

	var first bytes.Buffer
	if err := e.Save(&first); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	loaded, err := Load(bytes.NewReader(first.Bytes()), 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var second bytes.Buffer
	if err := loaded.Save(&second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	if first.String() != second.String() {
		t.Fatalf("save documents differ after round-trip:\n%s\n---\n%s", first.String(), second.String())
	}
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	e := New(2, 1)
	if err := e.Learn("cat", ""); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	var buf bytes.Buffer
	if err := e.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc, err := persist.Unmarshal(buf.Bytes())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc.Version = "0.0.1"
	raw, err := persist.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := Load(bytes.NewReader(raw), 1); !errors.Is(err, ErrSerialization) {
		t.Fatalf("err = %v, want ErrSerialization", err)
	}
}

func TestRecallRejectsNonPositiveTopN(t *testing.T) {
	e := New(2, 1)
	if err := e.Learn("cat", ""); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if _, err := e.Recall("cat", "", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestGetPersistenceRejectsUnknownWord(t *testing.T) {
	e := New(2, 1)
	if _, err := e.GetPersistence("ghost"); !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("err = %v, want ErrUnknownWord", err)
	}
}

func TestRecallBestOnEmptyStoreReturnsAbsent(t *testing.T) {
	e := New(2, 1)
	word, ok, err := e.RecallBest("anything", "")
	if err != nil {
		t.Fatalf("RecallBest: %v", err)
	}
	if ok || word != "" {
		t.Fatalf("RecallBest on empty store = (%q, %v), want (\"\", false)", word, ok)
	}
}

func TestSleepRejectsNegativeCycles(t *testing.T) {
	e := New(2, 1)
	if _, err := e.Sleep(-1, false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
