package persist

import (
	json "github.com/goccy/go-json"
)

// Version is the current Document schema version. Load rejects any document
// whose Version does not match exactly - there is no migration path yet.
const Version = "1.0.0"

// SynapseState is one synapse's persisted plasticity state, matching
// synapse.Stats field-for-field.
type SynapseState struct {
	Weight        float64 `json:"weight"`
	Consolidation float64 `json:"consolidation_level"`
	PeakWeight    float64 `json:"peak_weight"`
	ReplayCount   int     `json:"replay_count"`
}

// WordBundles holds one word's three synapse bundles' persisted state, each
// slice in the order the bundle's synapses were created.
type WordBundles struct {
	DGToCA3      []SynapseState `json:"dg_ca3"`
	CA3Recurrent []SynapseState `json:"ca3_recurrent"`
	CA3ToCA1     []SynapseState `json:"ca3_ca1"`
}

// WordRecord is one word's persisted metadata: its display text, the
// context it was last learned under, its use-frequency count, and its
// synapse bundle states.
type WordRecord struct {
	Text      string      `json:"text"`
	Context   string      `json:"context"`
	Frequency int         `json:"frequency"`
	Bundles   WordBundles `json:"bundles"`
}

// Document is the full serialised state of an Engine: everything needed to
// reconstruct an equivalent store by re-learning every word and then
// overwriting weights and persistence fields from the saved values. Every
// field is a deterministic function of the engine's state, so two saves of
// the same state marshal to identical bytes.
type Document struct {
	Version  string                `json:"version"`
	Capacity int                   `json:"capacity"`
	WordIDs  []string              `json:"word_ids"`
	Words    map[string]WordRecord `json:"words"`
}

// Marshal encodes d as indented JSON, using goccy/go-json's drop-in faster
// encoder rather than the standard library's.
func Marshal(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal decodes raw into a Document.
func Unmarshal(raw []byte) (Document, error) {
	var d Document
	err := json.Unmarshal(raw, &d)
	return d, err
}
