package neuron

import "math"

// HHLIFConfig configures the HH-based leaky integrate-and-fire kernel.
type HHLIFConfig struct {
	V0        float64 `json:"v0"`
	GNa       float64 `json:"g_na"`
	GK        float64 `json:"g_k"`
	GL        float64 `json:"g_l"`
	ENa       float64 `json:"e_na"`
	EK        float64 `json:"e_k"`
	EL        float64 `json:"e_l"`
	Cm        float64 `json:"c_m"`
	VThresh   float64 `json:"v_thresh"`
	VReset    float64 `json:"v_reset"`
	RefPeriod float64 `json:"ref_period"`
}

// DefaultHHLIFConfig returns the standard parameter set: lower Na and higher
// K conductance than HHQuick and a higher leak, trading biological nuance for
// the speed of a hard reset-at-threshold rule.
func DefaultHHLIFConfig() HHLIFConfig {
	return HHLIFConfig{
		V0:        -70.0,
		GNa:       120.0,
		GK:        36.0,
		GL:        0.3,
		ENa:       50.0,
		EK:        -77.0,
		EL:        -54.4,
		Cm:        1.0,
		VThresh:   -50.0,
		VReset:    -70.0,
		RefPeriod: 2.0,
	}
}

// HHLIF is the full-gate HH kernel with a LIF reset-at-threshold rule.
type HHLIF struct {
	cfg       HHLIFConfig
	v, m, h, n float64
	refRem    float64
	spikeFlag bool
}

// NewHHLIF constructs a kernel from cfg.
func NewHHLIF(cfg HHLIFConfig) *HHLIF {
	k := &HHLIF{cfg: cfg}
	k.Reset()
	return k
}

func alphaM(v float64) float64 {
	x := v + 40.0
	if math.Abs(x) > 1e-5 {
		return 0.1 * x / (1.0 - math.Exp(-x/10.0))
	}
	return 1.0
}
func betaM(v float64) float64 { return 4.0 * math.Exp(-(v+65.0)/18.0) }
func alphaH(v float64) float64 { return 0.07 * math.Exp(-(v+65.0)/20.0) }
func betaH(v float64) float64  { return 1.0 / (1.0 + math.Exp(-(v+35.0)/10.0)) }
func alphaN(v float64) float64 {
	x := v + 55.0
	if math.Abs(x) > 1e-5 {
		return 0.01 * x / (1.0 - math.Exp(-x/10.0))
	}
	return 0.1
}
func betaN(v float64) float64 { return 0.125 * math.Exp(-(v+65.0)/80.0) }

// Step integrates the full HH gates with an explicit Euler step, then
// applies a hard reset at VThresh with a refractory period - the LIF half
// of the model.
func (k *HHLIF) Step(dt, iExt float64) bool {
	iExt = sanitize(iExt, 0)

	if k.refRem > 0 {
		k.refRem -= dt
		k.spikeFlag = false
		return false
	}

	am, bm := alphaM(k.v), betaM(k.v)
	ah, bh := alphaH(k.v), betaH(k.v)
	an, bn := alphaN(k.v), betaN(k.v)

	k.m += dt * (am*(1.0-k.m) - bm*k.m)
	k.h += dt * (ah*(1.0-k.h) - bh*k.h)
	k.n += dt * (an*(1.0-k.n) - bn*k.n)
	k.m = clamp(k.m, 0, 1)
	k.h = clamp(k.h, 0, 1)
	k.n = clamp(k.n, 0, 1)

	iNa := k.cfg.GNa * k.m * k.m * k.m * k.h * (k.cfg.ENa - k.v)
	iK := k.cfg.GK * k.n * k.n * k.n * k.n * (k.cfg.EK - k.v)
	iL := k.cfg.GL * (k.cfg.EL - k.v)

	dV := (iExt + iNa + iK + iL) / k.cfg.Cm
	k.v += dV * dt
	k.v = clamp(k.v, -100.0, 50.0)

	if k.v >= k.cfg.VThresh {
		k.spikeFlag = true
		k.v = k.cfg.VReset
		k.refRem = k.cfg.RefPeriod
	} else {
		k.spikeFlag = false
	}

	return k.spikeFlag
}

func (k *HHLIF) Voltage() float64 { return k.v }
func (k *HHLIF) Spiked() bool     { return k.spikeFlag }

// Reset restores the kernel to its configured resting state.
func (k *HHLIF) Reset() {
	k.v = k.cfg.V0
	k.m = 0.05
	k.h = 0.60
	k.n = 0.32
	k.spikeFlag = false
	k.refRem = 0
}

// Preset satisfies PresetNamed; HHLIF has no named preset.
func (k *HHLIF) Preset() (string, bool) { return "", false }

// ConductionVelocity satisfies ConductionVelocityReporter; HHLIF does not
// measure conduction velocity.
func (k *HHLIF) ConductionVelocity() (float64, bool) { return 0, false }
