package hippocampus

// Stage is one of the four non-waking stages a dynamic sleep cycle steps
// through. There is no Wake stage: sleep never enters it.
type Stage int

const (
	StageLight Stage = iota
	StageDeep
	StageSWS
	StageREM
)

func (s Stage) String() string {
	switch s {
	case StageLight:
		return "light"
	case StageDeep:
		return "deep"
	case StageSWS:
		return "sws"
	case StageREM:
		return "rem"
	default:
		return "unknown"
	}
}

// dynamicStageSequence is the fixed six-stage cycle a dynamic sleep call
// walks through, repeating as needed for cycles > 6.
var dynamicStageSequence = []Stage{
	StageLight, StageDeep, StageSWS, StageSWS, StageLight, StageREM,
}

var stageNoiseLevel = map[Stage]float64{
	StageLight: 0.15,
	StageDeep:  0.25,
	StageSWS:   0.35,
	StageREM:   0.20,
}

const dynamicConsolidationThreshold = 0.7
const dynamicConsolidationRate = 0.05

// Report summarizes one Sleep call's replay and consolidation activity.
type Report struct {
	Cycles         int
	Replays        int
	UniqueReplays  int
	Consolidations int
	SWSCycles      int
	REMCycles      int
}

// ClassicalSleep runs cycles rounds of weak, frequency-weighted replay: each
// round samples one word at random, weighted by learned frequency,
// re-stimulates it with a weaker DG drive than learning, and consolidates
// its DG→CA3 and CA3↔CA3 bundles by a fixed factor. It is the simpler,
// non-staged sleep mode; DynamicSleep models staged sleep architecture.
func (s *Store) ClassicalSleep(cycles int) Report {
	var report Report
	report.Cycles = cycles
	if len(s.words) == 0 {
		return report
	}

	weights := make([]int, len(s.order))
	total := 0
	for i, id := range s.order {
		f := s.words[id].Frequency
		if f < 1 {
			f = 1
		}
		weights[i] = f
		total += f
	}

	replayed := make(map[string]bool)
	for c := 0; c < cycles; c++ {
		pick := s.rng.Intn(total)
		idx := 0
		for pick >= weights[idx] {
			pick -= weights[idx]
			idx++
		}
		id := s.order[idx]
		w := s.words[id]

		w.runTrial(dgStimReplay, recGainReplay, false)
		replayed[id] = true
		report.Replays++

		for _, l := range w.dgCA3 {
			l.syn.Consolidate(0.03)
		}
		recSyns := w.recurrentSynapses()
		for _, syn := range recSyns {
			syn.Consolidate(0.02)
		}
		report.Consolidations += len(w.dgCA3) + len(recSyns)
	}
	report.UniqueReplays = len(replayed)
	return report
}

// DynamicSleep runs cycles rounds of staged sleep, advancing through
// dynamicStageSequence one stage per cycle (wrapping after 6). In each
// cycle, every learned word has a chance of replaying proportional to the
// stage's noise level and its MemoryRank importance; a replay whose
// activation exceeds dynamicConsolidationThreshold consolidates that word's
// DG→CA3 and CA3↔CA3 bundles (not CA3→CA1), with the consolidation factor
// itself growing slowly with
// the word's accumulated replay count.
func (s *Store) DynamicSleep(cycles int, rank RankSource) Report {
	var report Report
	report.Cycles = cycles
	if len(s.words) == 0 {
		return report
	}

	replayed := make(map[string]bool)
	for c := 0; c < cycles; c++ {
		stage := dynamicStageSequence[c%len(dynamicStageSequence)]
		switch stage {
		case StageSWS:
			report.SWSCycles++
		case StageREM:
			report.REMCycles++
		}
		noise := stageNoiseLevel[stage]

		for _, id := range s.order {
			w := s.words[id]
			importance := 0.5
			if rank != nil {
				importance = rank.Score(id)
			}
			baseProb := noise * importance
			if s.rng.Float64() >= baseProb {
				continue
			}

			activation := noise + s.rng.Float64()*0.3
			replayed[id] = true
			report.Replays++

			if activation <= dynamicConsolidationThreshold {
				continue
			}
			replayCount := 0
			if len(w.dgCA3) > 0 {
				replayCount = w.dgCA3[0].syn.Stats().ReplayCount
			}
			factor := dynamicConsolidationRate * (1 + 0.02*float64(replayCount))
			for _, l := range w.dgCA3 {
				l.syn.Consolidate(factor)
			}
			recSyns := w.recurrentSynapses()
			for _, syn := range recSyns {
				syn.Consolidate(factor)
			}
			report.Consolidations += len(w.dgCA3) + len(recSyns)
		}
	}
	report.UniqueReplays = len(replayed)
	return report
}
