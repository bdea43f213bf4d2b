package neuron

// Kernel is the uniform step contract shared by every neuron variant. dt is
// in milliseconds; iExt is the sum of externally injected current and any
// synaptic current already deposited for this step. Step returns true on
// exactly the step that crosses the variant's spike threshold.
type Kernel interface {
	Step(dt, iExt float64) bool
	Voltage() float64
	Spiked() bool
	Reset()
}

// PresetNamed is implemented by variants configured from a named parameter
// preset (currently only Izhikevich). Callers that need the preset name
// type-assert for this interface instead of downcasting to a concrete type.
type PresetNamed interface {
	Preset() (string, bool)
}

// ConductionVelocityReporter is implemented by variants that measure a
// propagation velocity (currently only MyelinatedAxon).
type ConductionVelocityReporter interface {
	ConductionVelocity() (float64, bool)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sanitize replaces NaN with fallback and clamps any value, including ±Inf,
// to [-1e12, 1e12], satisfying the
// engine's guarantee that no kernel ever produces NaN/Inf state so long as
// its input is sanitized first.
func sanitize(v, fallback float64) float64 {
	if v != v { // NaN
		return fallback
	}
	if v > 1e12 {
		return 1e12
	}
	if v < -1e12 {
		return -1e12
	}
	return v
}
