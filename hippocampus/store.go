package hippocampus

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/gnjz/babyhippo/synapse"
)

// ca3Slot identifies one global CA3 neuron by its owning word and local
// index, used only for recurrent-bundle wiring and nowhere in the hot
// simulation loop.
type ca3Slot struct {
	wordID   string
	localIdx int
}

// RankSource supplies the engine's current MemoryRank importance score for a
// word id, decoupling this package from the memoryrank package. 0.5 is the
// conventional default for a word the ranker has no opinion on yet.
type RankSource interface {
	Score(wordID string) float64
}

// Store is the fixed-capacity population of per-word hippocampal
// populations. All randomness - recurrent wiring, CA3→CA1 sampling - flows
// through the single *rand.Rand the caller provides, keeping the store
// deterministic for a fixed seed and sequence of operations.
type Store struct {
	capacity int
	rng      *rand.Rand

	words   map[string]*Word
	order   []string
	novelty *NoveltyDetector

	ca3Pool           []ca3Slot
	recurrentSynapses []*synapse.Synapse
	crossRecurrent    []crossRecRef
}

// crossRecRef names the two words a cross-word recurrent synapse connects,
// so RecurrentEdges doesn't need to search word populations to find them.
type crossRecRef struct {
	syn           *synapse.Synapse
	fromID, toID  string
}

// New returns an empty store with room for capacity words.
func New(capacity int, rng *rand.Rand) *Store {
	return &Store{
		capacity: capacity,
		rng:      rng,
		words:    make(map[string]*Word),
		novelty:  NewNoveltyDetector(),
	}
}

// Capacity returns the maximum number of distinct words this store holds.
func (s *Store) Capacity() int { return s.capacity }

// WordCount returns the number of distinct words currently learned.
func (s *Store) WordCount() int { return len(s.words) }

// WordIDs returns every learned word id in insertion order.
func (s *Store) WordIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Word returns the population for id, or nil if unknown.
func (s *Store) Word(id string) *Word { return s.words[id] }

// Learn associates text with an optional context, allocating a fresh
// population and running one learning trial the first time text is seen,
// or re-running the trial to strengthen an existing word's weights and
// bumping its frequency otherwise. It returns ErrCapacityFull if text is
// new and the store is already at capacity, and ErrInvalidInput for empty
// text.
func (s *Store) Learn(text, context string) (*Word, error) {
	if createWordID(text) == "" {
		return nil, fmt.Errorf("%w: word text is empty", ErrInvalidInput)
	}
	id := createWordID(text)

	if w, ok := s.words[id]; ok {
		w.Frequency++
		if context != "" {
			w.Context = context
			w.Sub.LearnAssociation(context)
		}
		w.runTrial(dgStimLearn, recGainLearn, true)
		return w, nil
	}

	if len(s.words) >= s.capacity {
		return nil, fmt.Errorf("%w: capacity %d reached", ErrCapacityFull, s.capacity)
	}

	w := newWord(id, text, context, s.rng)
	w.Frequency = 1
	if context != "" {
		w.Sub.LearnAssociation(context)
	}

	s.words[id] = w
	s.order = append(s.order, id)
	s.wireRecurrent(w)
	s.novelty.MarkFamiliar(id)

	w.runTrial(dgStimLearn, recGainLearn, true)
	return w, nil
}

// wireRecurrent allocates recurrentConnectionsPerWord CA3↔CA3 collaterals
// for a newly created word, sampling pre and post neurons from the store's
// entire CA3 pool (this word's own 30 neurons plus every other word's),
// excluding self-loops by neuron identity. A pair landing entirely within
// one word becomes that word's recIntra link; a pair spanning two words
// registers as recOutgoing on the pre word and recIncoming on the post
// word, giving the memoryrank graph real cross-word edges to score.
func (s *Store) wireRecurrent(w *Word) {
	s.ca3Pool = s.ca3Pool[:0]
	for _, id := range s.order {
		for localIdx := range s.words[id].CA3 {
			s.ca3Pool = append(s.ca3Pool, ca3Slot{wordID: id, localIdx: localIdx})
		}
		if id == w.ID {
			break
		}
	}
	pool := s.ca3Pool

	for i := 0; i < recurrentConnectionsPerWord; i++ {
		a := pool[s.rng.Intn(len(pool))]
		b := pool[s.rng.Intn(len(pool))]
		if a == b {
			continue
		}
		syn := synapse.New(synapse.CA3RecurrentConfig())
		s.recurrentSynapses = append(s.recurrentSynapses, syn)

		if a.wordID == b.wordID {
			s.words[a.wordID].recIntra = append(s.words[a.wordID].recIntra, ca3RecurrentLink{
				syn: syn, preIdx: a.localIdx, postIdx: b.localIdx,
			})
			continue
		}
		s.words[a.wordID].recOutgoing = append(s.words[a.wordID].recOutgoing, recOutLink{
			syn: syn, localPre: a.localIdx,
		})
		s.words[b.wordID].recIncoming = append(s.words[b.wordID].recIncoming, recInLink{
			syn: syn, localPost: b.localIdx,
		})
		s.crossRecurrent = append(s.crossRecurrent, crossRecRef{syn: syn, fromID: a.wordID, toID: b.wordID})
	}
}

// RecurrentEdge is one directed, weighted contribution from one word's CA3
// population into another's, used by the engine to build the memoryrank
// graph. Self-loops (both sides owned by the same word) are never reported.
type RecurrentEdge struct {
	From, To string
	Weight   float64
}

// RecurrentEdges returns the current cross-word CA3↔CA3 edges, aggregating
// duplicate (from, to) pairs by summing their weights. Non-positive weights
// are excluded, matching the memoryrank graph's "max(0, weight)" rule.
func (s *Store) RecurrentEdges() []RecurrentEdge {
	type key struct{ from, to string }
	sums := make(map[key]float64)
	for _, ref := range s.crossRecurrent {
		w := ref.syn.Weight()
		if w <= 0 {
			continue
		}
		sums[key{from: ref.fromID, to: ref.toID}] += w
	}
	edges := make([]RecurrentEdge, 0, len(sums))
	for k, w := range sums {
		edges = append(edges, RecurrentEdge{From: k.from, To: k.to, Weight: w})
	}
	return edges
}

// RecallResult is one scored candidate returned by Recall.
type RecallResult struct {
	WordID string
	Text   string
	Score  float64
}

// Recall projects cue and every stored word id into the same vector space,
// scores each by cosine similarity times the word's mean DG→CA3 weight,
// multiplies by rank's importance boost and the word's subiculum relevance
// for context, and returns the topN highest-scoring non-zero-similarity
// candidates in descending order. It returns ErrEmptyStore if no words have
// been learned and ErrInvalidInput for an empty cue or non-positive topN.
func (s *Store) Recall(cue, context string, topN int, rank RankSource) ([]RecallResult, error) {
	if len(s.words) == 0 {
		return nil, ErrEmptyStore
	}
	if createWordID(cue) == "" {
		return nil, fmt.Errorf("%w: cue is empty", ErrInvalidInput)
	}
	if topN <= 0 {
		return nil, fmt.Errorf("%w: top_n must be positive", ErrInvalidInput)
	}

	cueVec := textToVector(cue)
	results := make([]RecallResult, 0, len(s.words))
	for _, id := range s.order {
		w := s.words[id]
		sim := cosineSimilarity(cueVec, textToVector(id))
		if sim <= 0 {
			continue
		}
		score := sim * w.meanDGToCA3Weight()
		if rank != nil {
			score *= 1 + rank.Score(id)*1.5
		}
		score *= w.Sub.Relevance(context)
		if score <= 0 {
			continue
		}
		results = append(results, RecallResult{WordID: id, Text: w.Text, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}

// Novelty returns 1 if id has never been learned, 0 otherwise.
func (s *Store) Novelty(id string) int {
	return s.novelty.Novelty(createWordID(id))
}

// Persistence is the estimated consolidation strength of a word's DG→CA3
// bundle: the mean, over that bundle's synapses, of a per-synapse score
// combining importance, consolidation level, and weight, clipped to
// [0, 1]. WillPersist is true once that score exceeds 0.5.
type Persistence struct {
	Score       float64
	WillPersist bool
}

// GetPersistence computes the persistence estimate for an already-learned
// word, using importance from rank. It returns ErrUnknownWord if id was
// never learned.
func (s *Store) GetPersistence(id string, rank RankSource) (Persistence, error) {
	w, ok := s.words[createWordID(id)]
	if !ok {
		return Persistence{}, fmt.Errorf("%w: %q", ErrUnknownWord, id)
	}

	importance := 0.5
	if rank != nil {
		importance = rank.Score(w.ID)
	}

	if len(w.dgCA3) == 0 {
		return Persistence{}, nil
	}
	var sum float64
	for _, l := range w.dgCA3 {
		st := l.syn.Stats()
		score := 0.3*importance + 0.4*st.Consolidation + min(0.3, st.Weight/10.0)
		sum += score
	}
	score := sum / float64(len(w.dgCA3))
	if score > 1 {
		score = 1
	}
	return Persistence{Score: score, WillPersist: score > 0.5}, nil
}

// Decay applies time-dependent forgetting at rate to every synapse in every
// word's three bundles, using rank's importance score for each word's own
// bundles as the decay-resistance input.
func (s *Store) Decay(rate float64, rank RankSource) {
	for _, id := range s.order {
		w := s.words[id]
		importance := 0.5
		if rank != nil {
			importance = rank.Score(id)
		}
		for _, l := range w.dgCA3 {
			l.syn.Decay(rate, importance)
		}
		for _, syn := range w.recurrentSynapses() {
			syn.Decay(rate, importance)
		}
		for _, l := range w.ca3CA1 {
			l.syn.Decay(rate, importance)
		}
	}
}
