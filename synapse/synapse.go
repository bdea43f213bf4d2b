package synapse

import "math"

// event is a single in-flight quantum of synaptic charge, queued at spike
// time plus delay and delivered (and removed) exactly once.
type event struct {
	arrival float64
	charge  float64
}

// Synapse is a directed, delayed, plastic connection from one neuron to
// another. Weight evolves under STDP and is protected from full decay by
// consolidation and peak-weight memory.
type Synapse struct {
	cfg Config

	weight        float64
	lastPreTime   float64
	lastPostTime  float64
	replayCount   int
	consolidation float64
	peakWeight    float64

	queue []event
}

// New constructs a synapse at its configured initial weight with no
// in-flight events and no plasticity history.
func New(cfg Config) *Synapse {
	return &Synapse{
		cfg:          cfg,
		weight:       cfg.InitialWeight,
		lastPreTime:  -100.0,
		lastPostTime: -100.0,
		peakWeight:   cfg.InitialWeight,
	}
}

// Weight returns the current synaptic weight.
func (s *Synapse) Weight() float64 { return s.weight }

// OnPreSpike records a pre-synaptic spike at time t (ms). If a post-spike
// occurred within the STDP window before t, LTD weakens the synapse first;
// the resulting weight then scales the quantum enqueued for delivery after
// the configured delay.
func (s *Synapse) OnPreSpike(t float64) {
	dtSTDP := t - s.lastPostTime
	if dtSTDP > 0 && dtSTDP < s.cfg.STDPWindowMs {
		s.weight = math.Max(s.cfg.MinWeight, s.weight-s.cfg.LTDRate*math.Exp(-dtSTDP/s.cfg.TauSTDPMs))
	}
	s.lastPreTime = t

	charge := s.cfg.QMax * s.weight
	s.queue = append(s.queue, event{arrival: t + s.cfg.DelayMs, charge: charge})
}

// OnPostSpike records a post-synaptic spike at time t (ms). If a pre-spike
// occurred within the STDP window before t, LTP strengthens the synapse.
func (s *Synapse) OnPostSpike(t float64) {
	dt := t - s.lastPreTime
	if dt > 0 && dt < s.cfg.STDPWindowMs {
		s.weight = math.Min(s.cfg.MaxWeight, s.weight+s.cfg.LTPRate*math.Exp(-dt/s.cfg.TauSTDPMs))
	}
	s.lastPostTime = t
}

// Deliver sums the exponentially decayed charge of every queued event that
// has arrived by t, removes those events, and returns the total current to
// deposit into the post-neuron's synaptic buffer for this step.
func (s *Synapse) Deliver(t float64) float64 {
	var total float64
	remaining := s.queue[:0]
	for _, e := range s.queue {
		if e.arrival <= t {
			total += e.charge * math.Exp(-(t-e.arrival)/s.cfg.TauSynMs)
		} else {
			remaining = append(remaining, e)
		}
	}
	s.queue = remaining
	return total
}

// Consolidate is sleep-time replay: it strengthens weight directly,
// increases consolidation toward 1 with diminishing returns, and raises
// peak_weight if a new high was reached. It is monotone: consolidation and
// peak_weight never decrease.
func (s *Synapse) Consolidate(factor float64) {
	s.weight = math.Min(s.cfg.MaxWeight, s.weight+factor)
	s.replayCount++
	s.consolidation = math.Min(1.0, s.consolidation+0.05*(1.0-s.consolidation))
	if s.weight > s.peakWeight {
		s.peakWeight = s.weight
	}
}

// Floor returns the minimum weight this synapse may decay to given
// importance, a strictly monotone function of importance, consolidation,
// and peak_weight.
func (s *Synapse) Floor(importance float64) float64 {
	return 0.1 + 0.4*importance + 0.3*s.consolidation + 0.05*s.peakWeight
}

// Decay applies time-dependent forgetting, protected by importance,
// consolidation, and replay history, with an extra penalty for
// low-importance memories. Weight never falls below Floor(importance).
func (s *Synapse) Decay(rate, importance float64) float64 {
	floor := s.Floor(importance)

	resistance := 0.4*importance + 0.4*s.consolidation + math.Min(0.15, 0.01*float64(s.replayCount))
	if resistance > 0.95 {
		resistance = 0.95
	}

	var actualDecay float64
	if importance < 0.3 {
		penalty := (0.3 - importance) * 2.0
		actualDecay = rate * (1.0 - resistance) * (1.0 + penalty)
	} else {
		actualDecay = rate * (1.0 - resistance)
	}

	s.weight = math.Max(floor, s.weight-actualDecay)
	return s.weight
}

// Stats is the persisted and externally reported plasticity state of a
// synapse, in the order consumed by hippocampus.Persistence and engine
// Save/Load.
type Stats struct {
	Weight        float64
	Consolidation float64
	PeakWeight    float64
	ReplayCount   int
}

// Stats returns the synapse's current plasticity state.
func (s *Synapse) Stats() Stats {
	return Stats{
		Weight:        s.weight,
		Consolidation: s.consolidation,
		PeakWeight:    s.peakWeight,
		ReplayCount:   s.replayCount,
	}
}

// Restore overwrites weight and persistence fields directly, used only by
// engine.Load to reproduce a saved synapse's plasticity state after a word
// has been re-learned.
func (s *Synapse) Restore(st Stats) {
	s.weight = st.Weight
	s.consolidation = st.Consolidation
	s.peakWeight = st.PeakWeight
	s.replayCount = st.ReplayCount
}

// Reset clears in-flight events but preserves weight and persistence state,
// matching how a replay trial clears timing state without erasing what has
// already been consolidated.
func (s *Synapse) Reset() {
	s.queue = nil
}
