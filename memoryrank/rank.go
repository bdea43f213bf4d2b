package memoryrank

import (
	"gonum.org/v1/gonum/graph/simple"
)

const (
	damping       = 0.85
	tolerance     = 1e-6
	maxIterations = 100
)

// Edge is one directed, weighted contribution from one word's recurrent
// collaterals into another's, as built by the hippocampus word store.
type Edge struct {
	From, To string
	Weight   float64
}

// Ranker computes and caches PageRank-style importance scores over the
// CA3↔CA3 recurrent graph. The cache is keyed by word count as a cheap
// staleness hint, but callers own correctness: Invalidate must be called
// after any operation that changes synapse weights or the word set.
type Ranker struct {
	cachedCount  int
	cachedScores map[string]float64
	hasCache     bool
}

// New returns a Ranker with nothing cached.
func New() *Ranker {
	return &Ranker{}
}

// Invalidate discards the cached scores, forcing the next Scores call to
// recompute from the graph it is given.
func (r *Ranker) Invalidate() {
	r.hasCache = false
	r.cachedScores = nil
}

// Scores returns the importance score (normalized to [0, 1] by the maximum
// raw score) of every id in wordIDs, given the current set of recurrent
// edges. wordIDs must include every learned word even if it has no edges,
// so isolated words still receive a score. An empty wordIDs returns an
// empty map; a single word with no self-contradicting edges scores 1.0.
func (r *Ranker) Scores(wordIDs []string, edges []Edge) map[string]float64 {
	if r.hasCache && r.cachedCount == len(wordIDs) {
		return r.cachedScores
	}

	scores := computePageRank(wordIDs, edges)
	r.cachedCount = len(wordIDs)
	r.cachedScores = scores
	r.hasCache = true
	return scores
}

// Score returns the cached or freshly computed importance of id, or
// defaultScore if id is unknown to the current graph.
func (r *Ranker) Score(id string, scores map[string]float64, defaultScore float64) float64 {
	if s, ok := scores[id]; ok {
		return s
	}
	return defaultScore
}

func computePageRank(wordIDs []string, edges []Edge) map[string]float64 {
	if len(wordIDs) == 0 {
		return map[string]float64{}
	}
	if len(wordIDs) == 1 {
		return map[string]float64{wordIDs[0]: 1.0}
	}

	idOf := make(map[string]int64, len(wordIDs))
	nameOf := make(map[int64]string, len(wordIDs))
	g := simple.NewWeightedDirectedGraph(0, 0)
	for i, id := range wordIDs {
		nid := int64(i)
		idOf[id] = nid
		nameOf[nid] = id
		g.AddNode(simple.Node(nid))
	}
	for _, e := range edges {
		from, ok1 := idOf[e.From]
		to, ok2 := idOf[e.To]
		if !ok1 || !ok2 || from == to || e.Weight <= 0 {
			continue
		}
		existing := g.WeightedEdge(from, to)
		w := e.Weight
		if existing != nil {
			w += existing.Weight()
		}
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(from), T: simple.Node(to), W: w})
	}

	n := len(wordIDs)
	outWeight := make(map[int64]float64, n)
	inEdges := make(map[int64][]weightedIn, n)
	for edgeIter := g.WeightedEdges(); edgeIter.Next(); {
		we := edgeIter.WeightedEdge()
		u := we.From().ID()
		v := we.To().ID()
		w := we.Weight()
		outWeight[u] += w
		inEdges[v] = append(inEdges[v], weightedIn{from: u, weight: w})
	}

	rank := make(map[int64]float64, n)
	for i := 0; i < n; i++ {
		rank[int64(i)] = 1.0 / float64(n)
	}

	for iter := 0; iter < maxIterations; iter++ {
		var dangling float64
		for i := 0; i < n; i++ {
			if outWeight[int64(i)] == 0 {
				dangling += rank[int64(i)]
			}
		}

		next := make(map[int64]float64, n)
		base := (1 - damping) / float64(n)
		danglingShare := damping * dangling / float64(n)
		for i := 0; i < n; i++ {
			nid := int64(i)
			var incoming float64
			for _, in := range inEdges[nid] {
				if outWeight[in.from] > 0 {
					incoming += rank[in.from] * in.weight / outWeight[in.from]
				}
			}
			next[nid] = base + danglingShare + damping*incoming
		}

		var delta float64
		for i := 0; i < n; i++ {
			d := next[int64(i)] - rank[int64(i)]
			if d < 0 {
				d = -d
			}
			delta += d
		}
		rank = next
		if delta < float64(n)*tolerance {
			break
		}
	}

	maxScore := 0.0
	for _, v := range rank {
		if v > maxScore {
			maxScore = v
		}
	}
	scores := make(map[string]float64, n)
	if maxScore == 0 {
		for i := 0; i < n; i++ {
			scores[nameOf[int64(i)]] = 0
		}
		return scores
	}
	for i := 0; i < n; i++ {
		scores[nameOf[int64(i)]] = rank[int64(i)] / maxScore
	}
	return scores
}

type weightedIn struct {
	from   int64
	weight float64
}
