package hippocampus

import (
	"math"
	"math/rand"

	"github.com/gnjz/babyhippo/neuron"
	"github.com/gnjz/babyhippo/synapse"
)

// Population sizes fixed by the trisynaptic loop this store models.
const (
	dgPerWord  = 2
	ca3PerWord = 30

	recurrentConnectionsPerWord = int(ca3PerWord * ca3PerWord * 0.2)
	ca3ToCA1Fraction            = 0.3
	minCA3ToCA1                 = 3

	tLearnMs      = 80.0
	dtMs          = 0.1
	stimStartMs   = 5.0
	stimEndMs     = 15.0
	dgStimLearn   = 350.0
	dgStimReplay  = 150.0
	recGainLearn  = 0.5
	recGainReplay = 0.3
)

type dgToCA3Link struct {
	syn    *synapse.Synapse
	dgIdx  int
	ca3Idx int
}

// ca3RecurrentLink is a CA3↔CA3 collateral whose pre and post neurons both
// belong to the same word's population.
type ca3RecurrentLink struct {
	syn     *synapse.Synapse
	preIdx  int
	postIdx int
}

// recOutLink is a collateral whose pre neuron belongs to this word and
// whose post neuron belongs to a different word; only the pre side is
// simulated here (the post side's owning word delivers current and fires
// the post-spike update during its own trial).
type recOutLink struct {
	syn      *synapse.Synapse
	localPre int
}

// recInLink is a collateral whose post neuron belongs to this word and
// whose pre neuron belongs to a different word; only the post side is
// simulated here.
type recInLink struct {
	syn       *synapse.Synapse
	localPost int
}

type ca3ToCA1Link struct {
	syn    *synapse.Synapse
	ca3Idx int
}

// Word is one word's private population: dentate gyrus, CA3 and CA1
// neurons, a subiculum gate, and the synapse bundles connecting them. DG→CA3 and
// CA3→CA1 are exclusively this word's own; the CA3↔CA3 recurrent bundle is
// partly private (recIntra) and partly shared with other words'
// populations (recOutgoing, recIncoming) - see Store.wireRecurrent.
type Word struct {
	ID        string
	Text      string
	Context   string
	Frequency int

	DG  [dgPerWord]neuron.Kernel
	CA3 [ca3PerWord]neuron.Kernel
	CA1 neuron.Kernel
	Sub *SubiculumGate

	dgCA3  []dgToCA3Link
	ca3CA1 []ca3ToCA1Link

	recIntra    []ca3RecurrentLink
	recOutgoing []recOutLink
	recIncoming []recInLink
}

// newWord allocates a fresh population and its private DG→CA3 and CA3→CA1
// bundles: a dense DG→CA3 projection, and a CA3→CA1 projection sampled
// without replacement from ceil(ca3PerWord * ca3ToCA1Fraction) (floored at
// minCA3ToCA1) distinct CA3 source neurons. The CA3↔CA3 recurrent bundle is
// wired separately by Store.wireRecurrent once the word has a place in the
// store's global CA3 pool.
func newWord(id, text, context string, rng *rand.Rand) *Word {
	w := &Word{
		ID:      id,
		Text:    text,
		Context: context,
		Sub:     NewSubiculumGate(),
	}
	for i := range w.DG {
		w.DG[i] = neuron.NewHHQuick(neuron.DefaultHHQuickConfig())
	}
	for i := range w.CA3 {
		w.CA3[i] = neuron.NewHHQuick(neuron.DefaultHHQuickConfig())
	}
	w.CA1 = neuron.NewHHLIF(neuron.DefaultHHLIFConfig())

	for dgIdx := range w.DG {
		for ca3Idx := range w.CA3 {
			w.dgCA3 = append(w.dgCA3, dgToCA3Link{
				syn:    synapse.New(synapse.DGToCA3Config()),
				dgIdx:  dgIdx,
				ca3Idx: ca3Idx,
			})
		}
	}

	nSampled := int(math.Ceil(float64(ca3PerWord) * ca3ToCA1Fraction))
	if nSampled < minCA3ToCA1 {
		nSampled = minCA3ToCA1
	}
	order := rng.Perm(ca3PerWord)
	for _, ca3Idx := range order[:nSampled] {
		w.ca3CA1 = append(w.ca3CA1, ca3ToCA1Link{
			syn:    synapse.New(synapse.CA3ToCA1Config()),
			ca3Idx: ca3Idx,
		})
	}

	return w
}

// runTrial simulates tLearnMs at dtMs resolution: DG receives iDG during
// (stimStartMs, stimEndMs), CA3 integrates delivered DG and recurrent
// current (recurrent scaled by recGain, combining intra-word and
// other-words'-incoming collaterals), and STDP updates fire in the fixed
// order the engine's determinism guarantee requires: DG step, CA3 step,
// post-spike updates for every synapse whose post neuron just fired, then
// pre-spike updates for every synapse whose pre neuron just fired.
// resetCA1Bundle controls whether the CA3→CA1 bundle is reset along with
// the rest of the population; the initial learning trial resets it, later
// replay during sleep does not.
func (w *Word) runTrial(iDG, recGain float64, resetCA1Bundle bool) {
	for i := range w.DG {
		w.DG[i].Reset()
	}
	for i := range w.CA3 {
		w.CA3[i].Reset()
	}
	for _, l := range w.dgCA3 {
		l.syn.Reset()
	}
	for _, l := range w.recIntra {
		l.syn.Reset()
	}
	for _, l := range w.recOutgoing {
		l.syn.Reset()
	}
	for _, l := range w.recIncoming {
		l.syn.Reset()
	}
	if resetCA1Bundle {
		for _, l := range w.ca3CA1 {
			l.syn.Reset()
		}
	}

	steps := int(tLearnMs / dtMs)
	dgCur := make([]float64, ca3PerWord)
	recCur := make([]float64, ca3PerWord)
	spiked := make([]bool, ca3PerWord)

	for k := 0; k < steps; k++ {
		t := float64(k) * dtMs

		iDGAt := 0.0
		if t > stimStartMs && t < stimEndMs {
			iDGAt = iDG
		}
		for i := range w.DG {
			w.DG[i].Step(dtMs, iDGAt)
		}

		for i := range dgCur {
			dgCur[i] = 0
			recCur[i] = 0
			spiked[i] = false
		}
		for _, l := range w.dgCA3 {
			dgCur[l.ca3Idx] += l.syn.Deliver(t)
		}
		for _, l := range w.recIntra {
			recCur[l.postIdx] += l.syn.Deliver(t)
		}
		for _, l := range w.recIncoming {
			recCur[l.localPost] += l.syn.Deliver(t)
		}

		for i := range w.CA3 {
			total := dgCur[i] + recCur[i]*recGain
			if w.CA3[i].Step(dtMs, total) {
				spiked[i] = true
			}
		}

		for _, l := range w.dgCA3 {
			if spiked[l.ca3Idx] {
				l.syn.OnPostSpike(t)
			}
		}
		for _, l := range w.recIntra {
			if spiked[l.postIdx] {
				l.syn.OnPostSpike(t)
			}
		}
		for _, l := range w.recIncoming {
			if spiked[l.localPost] {
				l.syn.OnPostSpike(t)
			}
		}

		for _, l := range w.dgCA3 {
			if w.DG[l.dgIdx].Spiked() {
				l.syn.OnPreSpike(t)
			}
		}
		for _, l := range w.recIntra {
			if spiked[l.preIdx] {
				l.syn.OnPreSpike(t)
			}
		}
		for _, l := range w.recOutgoing {
			if spiked[l.localPre] {
				l.syn.OnPreSpike(t)
			}
		}
	}
}

// recurrentSynapses returns every CA3↔CA3 synapse touching this word's
// population, whichever side it sits on.
func (w *Word) recurrentSynapses() []*synapse.Synapse {
	out := make([]*synapse.Synapse, 0, len(w.recIntra)+len(w.recOutgoing)+len(w.recIncoming))
	for _, l := range w.recIntra {
		out = append(out, l.syn)
	}
	for _, l := range w.recOutgoing {
		out = append(out, l.syn)
	}
	for _, l := range w.recIncoming {
		out = append(out, l.syn)
	}
	return out
}

// meanDGToCA3Weight is the mean weight of the DG→CA3 bundle, used both as
// the recall score multiplier and as the basis of the persistence estimate.
func (w *Word) meanDGToCA3Weight() float64 {
	if len(w.dgCA3) == 0 {
		return 0
	}
	var sum float64
	for _, l := range w.dgCA3 {
		sum += l.syn.Weight()
	}
	return sum / float64(len(w.dgCA3))
}

// DGToCA3Stats returns the DG→CA3 bundle's synapse states in
// synapse-creation order, for persistence save.
func (w *Word) DGToCA3Stats() []synapse.Stats {
	out := make([]synapse.Stats, len(w.dgCA3))
	for i, l := range w.dgCA3 {
		out[i] = l.syn.Stats()
	}
	return out
}

// CA3RecurrentStats returns the CA3↔CA3 bundle's synapse states, in the
// same order as recurrentSynapses: intra-word links first, then this
// word's outgoing half-links, then its incoming half-links. A cross-word
// synapse is reported once by each of the two words it touches.
func (w *Word) CA3RecurrentStats() []synapse.Stats {
	syns := w.recurrentSynapses()
	out := make([]synapse.Stats, len(syns))
	for i, s := range syns {
		out[i] = s.Stats()
	}
	return out
}

// CA3ToCA1Stats returns the CA3→CA1 bundle's synapse states in
// synapse-creation order.
func (w *Word) CA3ToCA1Stats() []synapse.Stats {
	out := make([]synapse.Stats, len(w.ca3CA1))
	for i, l := range w.ca3CA1 {
		out[i] = l.syn.Stats()
	}
	return out
}

// RestoreDGToCA3 overwrites the DG→CA3 bundle's synapse states from states,
// in the same order DGToCA3Stats reports them. Extra or missing entries are
// ignored - Load tolerates a document whose bundle sizes don't match a
// freshly re-learned word's.
func (w *Word) RestoreDGToCA3(states []synapse.Stats) {
	for i := 0; i < len(w.dgCA3) && i < len(states); i++ {
		w.dgCA3[i].syn.Restore(states[i])
	}
}

// RestoreCA3Recurrent overwrites the CA3↔CA3 bundle's synapse states from
// states, in recurrentSynapses order.
func (w *Word) RestoreCA3Recurrent(states []synapse.Stats) {
	syns := w.recurrentSynapses()
	for i := 0; i < len(syns) && i < len(states); i++ {
		syns[i].Restore(states[i])
	}
}

// RestoreCA3ToCA1 overwrites the CA3→CA1 bundle's synapse states from
// states, in synapse-creation order.
func (w *Word) RestoreCA3ToCA1(states []synapse.Stats) {
	for i := 0; i < len(w.ca3CA1) && i < len(states); i++ {
		w.ca3CA1[i].syn.Restore(states[i])
	}
}
