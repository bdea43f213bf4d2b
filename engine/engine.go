package engine

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gnjz/babyhippo/hippocampus"
	"github.com/gnjz/babyhippo/memoryrank"
	"github.com/gnjz/babyhippo/persist"
	"github.com/gnjz/babyhippo/synapse"
)

// Engine is the process-facing handle on one hippocampal memory store. The
// zero value is not usable; construct with New.
type Engine struct {
	store  *hippocampus.Store
	ranker *memoryrank.Ranker
	log    *logrus.Logger
}

// New returns an engine with room for capacity words, seeded for
// deterministic behavior: the same seed and the same sequence of calls
// always produce the same synaptic weights, recall scores, and sleep
// outcomes. The seed drives every random draw in the engine - CA3↔CA3
// recurrent wiring, CA3→CA1 sampling, and dynamic-sleep noise draws - via
// the single *rand.Rand owned by the hippocampus store.
func New(capacity int, seed int64) *Engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel) // silent by default; SetLogger opts in

	return &Engine{
		store:  hippocampus.New(capacity, rand.New(rand.NewSource(seed))),
		ranker: memoryrank.New(),
		log:    log,
	}
}

// SetLogger replaces the engine's logger. Pass a logrus.Logger at the
// desired level to observe capacity refusals, sleep reports, and
// load/save events; the default logger is silent.
func (e *Engine) SetLogger(log *logrus.Logger) {
	if log != nil {
		e.log = log
	}
}

// rankSnapshot computes (or reuses the cached) importance score for every
// currently learned word from the current CA3↔CA3 recurrent graph.
func (e *Engine) rankSnapshot() rankAdapter {
	ids := e.store.WordIDs()
	edges := e.store.RecurrentEdges()
	rankEdges := make([]memoryrank.Edge, len(edges))
	for i, edge := range edges {
		rankEdges[i] = memoryrank.Edge{From: edge.From, To: edge.To, Weight: edge.Weight}
	}
	return rankAdapter{scores: e.ranker.Scores(ids, rankEdges)}
}

// rankAdapter satisfies hippocampus.RankSource over a snapshot of
// already-computed scores, defaulting an unscored word (one the ranker's
// graph has never seen) to 0.5 - the conventional "no opinion yet" value.
type rankAdapter struct {
	scores map[string]float64
}

func (a rankAdapter) Score(wordID string) float64 {
	if v, ok := a.scores[wordID]; ok {
		return v
	}
	return 0.5
}

// Learn teaches word under an optional context, allocating a fresh
// hippocampal population and running one learning trial the first time the
// word is seen, or re-running the trial and incrementing frequency on
// repeat calls. It returns ErrCapacityFull if word is new and the store is
// already full.
func (e *Engine) Learn(word, context string) error {
	_, err := e.store.Learn(word, context)
	if err != nil {
		if errors.Is(err, ErrCapacityFull) {
			e.log.WithField("word", word).Warn("learn refused: capacity full")
		}
		return err
	}
	e.ranker.Invalidate()
	e.log.WithFields(logrus.Fields{"word": word, "context": context}).Debug("learned")
	return nil
}

// RecallResult is one scored candidate word, exported from the hippocampus
// package's internal representation for external callers.
type RecallResult struct {
	Word  string
	Score float64
}

// Recall scores every learned word against cue by cue-similarity × mean
// DG→CA3 weight × MemoryRank boost × subiculum context relevance, and
// returns up to topN candidates in descending score order. An empty store
// returns ErrEmptyStore; a non-positive topN or empty cue returns
// ErrInvalidInput.
func (e *Engine) Recall(cue, context string, topN int) ([]RecallResult, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: top_n must be positive", ErrInvalidInput)
	}
	rank := e.rankSnapshot()
	results, err := e.store.Recall(cue, context, topN, rank)
	if err != nil {
		return nil, err
	}
	out := make([]RecallResult, len(results))
	for i, r := range results {
		out[i] = RecallResult{Word: r.Text, Score: r.Score}
	}
	return out, nil
}

// RecallBest returns the single best-scoring word for cue, or ("", false)
// if the store is empty or no word has positive similarity - the
// top_n == 1 single-result form of Recall.
func (e *Engine) RecallBest(cue, context string) (string, bool, error) {
	results, err := e.Recall(cue, context, 1)
	if err != nil {
		if errors.Is(err, ErrEmptyStore) {
			return "", false, nil
		}
		return "", false, err
	}
	if len(results) == 0 {
		return "", false, nil
	}
	return results[0].Word, true, nil
}

// Novelty returns 1 if word has never been learned, 0 otherwise.
func (e *Engine) Novelty(word string) int {
	return e.store.Novelty(word)
}

// Persistence is the engine-facing persistence estimate for a word,
// computed from the means of its DG→CA3 bundle's weight, consolidation and
// peak weight, together with its decay floor.
type Persistence struct {
	Weight           float64
	Importance       float64
	Consolidation    float64
	PeakWeight       float64
	ReplayCount      int
	EstimatedFloor   float64
	PersistenceScore float64
	WillPersist      bool
}

// GetPersistence reports the consolidation strength of an already-learned
// word. It returns ErrUnknownWord if word was never learned.
func (e *Engine) GetPersistence(word string) (Persistence, error) {
	w := e.store.Word(normalizeLookup(word))
	if w == nil {
		return Persistence{}, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	rank := e.rankSnapshot()
	importance := rank.Score(w.ID)

	stats := w.DGToCA3Stats()
	var meanWeight, meanConsolidation, meanPeak float64
	var totalReplay int
	if len(stats) > 0 {
		for _, st := range stats {
			meanWeight += st.Weight
			meanConsolidation += st.Consolidation
			meanPeak += st.PeakWeight
			totalReplay += st.ReplayCount
		}
		n := float64(len(stats))
		meanWeight /= n
		meanConsolidation /= n
		meanPeak /= n
	}

	floor := 0.1 + 0.4*importance + 0.3*meanConsolidation + 0.05*meanPeak
	score := 0.3*importance + 0.4*meanConsolidation + math.Min(0.3, meanWeight/10.0)
	if score > 1 {
		score = 1
	}

	return Persistence{
		Weight:           meanWeight,
		Importance:       importance,
		Consolidation:    meanConsolidation,
		PeakWeight:       meanPeak,
		ReplayCount:      totalReplay,
		EstimatedFloor:   floor,
		PersistenceScore: score,
		WillPersist:      score > 0.5,
	}, nil
}

// GetTopMemories returns up to n words ranked by current MemoryRank
// importance, descending. An empty store returns an empty slice.
func (e *Engine) GetTopMemories(n int) []TopMemory {
	if n <= 0 {
		return nil
	}
	ids := e.store.WordIDs()
	if len(ids) == 0 {
		return nil
	}
	rank := e.rankSnapshot()
	out := make([]TopMemory, 0, len(ids))
	for _, id := range ids {
		w := e.store.Word(id)
		out = append(out, TopMemory{Word: w.Text, Importance: rank.Score(id)})
	}
	sortTopMemories(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TopMemory is one word-importance pair, as returned by GetTopMemories.
type TopMemory struct {
	Word       string
	Importance float64
}

func sortTopMemories(out []TopMemory) {
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Importance > out[j-1].Importance; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
}

// Sleep runs cycles rounds of consolidation, using the classical
// frequency-weighted replay when dynamic is false and the six-stage
// dynamic replay pipeline when true. It returns ErrInvalidInput for
// negative cycles.
func (e *Engine) Sleep(cycles int, dynamic bool) (hippocampus.Report, error) {
	if cycles < 0 {
		return hippocampus.Report{}, fmt.Errorf("%w: cycles must be non-negative", ErrInvalidInput)
	}
	var report hippocampus.Report
	if dynamic {
		rank := e.rankSnapshot()
		report = e.store.DynamicSleep(cycles, rank)
	} else {
		report = e.store.ClassicalSleep(cycles)
	}
	e.ranker.Invalidate()
	e.log.WithFields(logrus.Fields{
		"cycles": report.Cycles, "replays": report.Replays, "consolidations": report.Consolidations,
	}).Debug("sleep complete")
	return report, nil
}

// Decay applies time-dependent forgetting at rate to every synapse in
// every learned word, using each word's current MemoryRank importance as
// its decay resistance.
func (e *Engine) Decay(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: rate must be finite", ErrInvalidInput)
	}
	rank := e.rankSnapshot()
	e.store.Decay(rate, rank)
	e.ranker.Invalidate()
	return nil
}

// Stats summarizes the engine's current population and plasticity state.
type Stats struct {
	WordCount         int
	Capacity          int
	NeuronCount       int
	SynapseCount      int
	MeanWeight        float64
	PersistentCount   int
	PersistenceRatio  float64
	MeanConsolidation float64
	MemoryEstimateMB  float64
}

// neuronsPerWord is the fixed per-word population size: 2 DG, 30 CA3, 1 CA1
// time cell (the subiculum gate is not a neuron).
const neuronsPerWord = 2 + 30 + 1

// GetStats computes population and plasticity summary statistics. An empty
// store returns a zero-valued Stats with only WordCount and Capacity set.
func (e *Engine) GetStats() Stats {
	ids := e.store.WordIDs()
	stats := Stats{WordCount: len(ids), Capacity: e.store.Capacity()}
	if len(ids) == 0 {
		return stats
	}

	var weightSum, consolidationSum float64
	var weightCount int
	synapseCount := 0
	for _, id := range ids {
		w := e.store.Word(id)
		dg := w.DGToCA3Stats()
		rec := w.CA3RecurrentStats()
		ca1 := w.CA3ToCA1Stats()
		synapseCount += len(dg) + len(rec) + len(ca1)

		var wordConsolidation float64
		for _, st := range dg {
			weightSum += st.Weight
			consolidationSum += st.Consolidation
			wordConsolidation += st.Consolidation
			weightCount++
		}
		if len(dg) > 0 && wordConsolidation/float64(len(dg)) > 0.5 {
			stats.PersistentCount++
		}
	}

	stats.NeuronCount = len(ids) * neuronsPerWord
	stats.SynapseCount = synapseCount
	if weightCount > 0 {
		stats.MeanWeight = weightSum / float64(weightCount)
		stats.MeanConsolidation = consolidationSum / float64(weightCount)
	}
	stats.PersistenceRatio = float64(stats.PersistentCount) / float64(len(ids))
	stats.MemoryEstimateMB = float64(stats.NeuronCount)*0.0002 + float64(stats.SynapseCount)*0.0001
	return stats
}

// Save encodes the engine's complete state as a persist.Document and writes
// it to w. The document itself is a pure function of engine state - saving
// the same state twice produces byte-identical output - so a fresh
// uuid.NewString() is stamped only on the log event, never into the
// document, as a correlation id for this particular save call.
func (e *Engine) Save(w io.Writer) error {
	doc := persist.Document{
		Version:  persist.Version,
		Capacity: e.store.Capacity(),
		WordIDs:  e.store.WordIDs(),
		Words:    make(map[string]persist.WordRecord, e.store.WordCount()),
	}
	for _, id := range doc.WordIDs {
		word := e.store.Word(id)
		doc.Words[id] = persist.WordRecord{
			Text:      word.Text,
			Context:   word.Context,
			Frequency: word.Frequency,
			Bundles: persist.WordBundles{
				DGToCA3:      toSynapseStates(word.DGToCA3Stats()),
				CA3Recurrent: toSynapseStates(word.CA3RecurrentStats()),
				CA3ToCA1:     toSynapseStates(word.CA3ToCA1Stats()),
			},
		}
	}

	raw, err := persist.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	e.log.WithFields(logrus.Fields{"words": len(doc.WordIDs), "save_id": uuid.NewString()}).Info("engine saved")
	return nil
}

// Load reads a persist.Document from r and returns a freshly reconstructed
// engine: every saved word is re-learned (recreating its neurons and
// synapses - the one place learning skips its usual frequency bookkeeping,
// since Frequency is overwritten from the document right after), then
// weights and persistence fields are overwritten from the saved values. It
// returns ErrSerialization if r's content is malformed or its Version does
// not match persist.Version.
func Load(r io.Reader, seed int64) (*Engine, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	doc, err := persist.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if doc.Version != persist.Version {
		return nil, fmt.Errorf("%w: document version %q, engine expects %q", ErrSerialization, doc.Version, persist.Version)
	}

	e := New(doc.Capacity, seed)
	for _, id := range doc.WordIDs {
		rec, ok := doc.Words[id]
		if !ok {
			continue
		}
		if _, err := e.store.Learn(rec.Text, rec.Context); err != nil {
			return nil, fmt.Errorf("%w: replaying word %q: %v", ErrSerialization, id, err)
		}
	}
	for _, id := range doc.WordIDs {
		rec, ok := doc.Words[id]
		if !ok {
			continue
		}
		word := e.store.Word(id)
		word.Frequency = rec.Frequency
		word.RestoreDGToCA3(fromSynapseStates(rec.Bundles.DGToCA3))
		word.RestoreCA3Recurrent(fromSynapseStates(rec.Bundles.CA3Recurrent))
		word.RestoreCA3ToCA1(fromSynapseStates(rec.Bundles.CA3ToCA1))
	}
	e.ranker.Invalidate()
	e.log.WithField("words", len(doc.WordIDs)).Info("engine loaded")
	return e, nil
}

func toSynapseStates(stats []synapse.Stats) []persist.SynapseState {
	out := make([]persist.SynapseState, len(stats))
	for i, st := range stats {
		out[i] = persist.SynapseState{
			Weight:        st.Weight,
			Consolidation: st.Consolidation,
			PeakWeight:    st.PeakWeight,
			ReplayCount:   st.ReplayCount,
		}
	}
	return out
}

func fromSynapseStates(states []persist.SynapseState) []synapse.Stats {
	out := make([]synapse.Stats, len(states))
	for i, st := range states {
		out[i] = synapse.Stats{
			Weight:        st.Weight,
			Consolidation: st.Consolidation,
			PeakWeight:    st.PeakWeight,
			ReplayCount:   st.ReplayCount,
		}
	}
	return out
}

// normalizeLookup lowercases and trims word text the same way the
// hippocampus package's internal word ids are derived, so GetPersistence
// can look a word up by raw text.
func normalizeLookup(word string) string {
	return hippocampus.NormalizeWordID(word)
}
