package persist

import "testing"

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	doc := Document{
		Version:  Version,
		Capacity: 100,
		WordIDs:  []string{"cat", "dog"},
		Words: map[string]WordRecord{
			"cat": {
				Text:      "cat",
				Context:   "animal",
				Frequency: 3,
				Bundles: WordBundles{
					DGToCA3:      []SynapseState{{Weight: 1.5, Consolidation: 0.2, PeakWeight: 1.6, ReplayCount: 2}},
					CA3Recurrent: []SynapseState{{Weight: 2.0, Consolidation: 0.1, PeakWeight: 2.1, ReplayCount: 1}},
					CA3ToCA1:     []SynapseState{{Weight: 1.0, Consolidation: 0.0, PeakWeight: 1.0, ReplayCount: 0}},
				},
			},
			"dog": {Text: "dog", Frequency: 1},
		},
	}

	raw, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Version != doc.Version || got.Capacity != doc.Capacity {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, doc)
	}
	if len(got.WordIDs) != len(doc.WordIDs) {
		t.Fatalf("WordIDs = %v, want %v", got.WordIDs, doc.WordIDs)
	}
	catRec, ok := got.Words["cat"]
	if !ok {
		t.Fatal("expected \"cat\" in round-tripped Words")
	}
	if catRec.Frequency != 3 || catRec.Context != "animal" {
		t.Fatalf("cat record mismatch: %+v", catRec)
	}
	if len(catRec.Bundles.DGToCA3) != 1 || catRec.Bundles.DGToCA3[0].Weight != 1.5 {
		t.Fatalf("cat DG→CA3 bundle mismatch: %+v", catRec.Bundles.DGToCA3)
	}
}

func TestMarshalTwiceProducesIdenticalBytes(t *testing.T) {
	doc := Document{
		Version:  Version,
		Capacity: 10,
		WordIDs:  []string{"a"},
		Words:    map[string]WordRecord{"a": {Text: "a", Frequency: 1}},
	}
	first, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal (again): %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("Marshal is not deterministic:\n%s\n---\n%s", first, second)
	}
}

func TestUnmarshalRejectsMalformedInput(t *testing.T) {
	if _, err := Unmarshal([]byte("not json")); err == nil {
		t.Fatal("expected an error unmarshaling malformed input")
	}
}
