package neuron

import "fmt"

// IzhikevichParams holds the four shape parameters and two initial
// conditions of the Izhikevich model.
type IzhikevichParams struct {
	A, B, C, D float64
	V0, U0     float64
}

// izhikevichPresets are the named firing-pattern parameter sets.
var izhikevichPresets = map[string]IzhikevichParams{
	"regular_spiking":        {A: 0.02, B: 0.2, C: -65.0, D: 8.0, V0: -70.0, U0: -14.0},
	"fast_spiking":           {A: 0.1, B: 0.2, C: -65.0, D: 2.0, V0: -70.0, U0: -14.0},
	"chattering":             {A: 0.02, B: 0.2, C: -50.0, D: 2.0, V0: -70.0, U0: -14.0},
	"intrinsically_bursting": {A: 0.02, B: 0.2, C: -55.0, D: 4.0, V0: -70.0, U0: -14.0},
	"low_threshold":          {A: 0.02, B: 0.25, C: -65.0, D: 2.0, V0: -70.0, U0: -14.0},
}

const izhikevichSpikeThresh = 30.0

// Izhikevich is the two-variable Izhikevich spiking model.
type Izhikevich struct {
	preset     string
	a, b, c, d float64
	v, u       float64
	v0, u0     float64
	spikeFlag  bool
	spikeCount int
}

// NewIzhikevichPreset constructs a kernel from one of the named presets:
// regular_spiking, fast_spiking, chattering, intrinsically_bursting,
// low_threshold.
func NewIzhikevichPreset(preset string) (*Izhikevich, error) {
	p, ok := izhikevichPresets[preset]
	if !ok {
		return nil, fmt.Errorf("neuron: unknown izhikevich preset %q", preset)
	}
	k := &Izhikevich{preset: preset}
	k.a, k.b, k.c, k.d, k.v0, k.u0 = p.A, p.B, p.C, p.D, p.V0, p.U0
	k.Reset()
	return k, nil
}

// NewIzhikevich constructs a kernel from explicit parameters, with no named
// preset.
func NewIzhikevich(p IzhikevichParams) *Izhikevich {
	k := &Izhikevich{a: p.A, b: p.B, c: p.C, d: p.D, v0: p.V0, u0: p.U0}
	k.Reset()
	return k
}

// Step resets first if v already reached the spike threshold (c, u += d),
// then Euler-advances v and u under current iExt.
func (k *Izhikevich) Step(dt, iExt float64) bool {
	iExt = sanitize(iExt, 0)

	if k.v >= izhikevichSpikeThresh {
		k.spikeFlag = true
		k.spikeCount++
		k.v = k.c
		k.u += k.d
	} else {
		k.spikeFlag = false
	}

	dv := 0.04*k.v*k.v + 5.0*k.v + 140.0 - k.u + iExt
	du := k.a * (k.b*k.v - k.u)

	k.v += dv * dt
	k.u += du * dt
	k.v = clamp(k.v, -100.0, 50.0)

	return k.spikeFlag
}

func (k *Izhikevich) Voltage() float64 { return k.v }
func (k *Izhikevich) Spiked() bool     { return k.spikeFlag }

// Reset restores v, u to their configured initial conditions.
func (k *Izhikevich) Reset() {
	k.v = k.v0
	k.u = k.u0
	k.spikeFlag = false
	k.spikeCount = 0
}

// SpikeCount returns the total number of spikes since construction or the
// last Reset.
func (k *Izhikevich) SpikeCount() int { return k.spikeCount }

// Preset satisfies PresetNamed, returning the firing-pattern preset name
// this kernel was constructed from, or ("", false) if it was constructed
// from explicit parameters.
func (k *Izhikevich) Preset() (string, bool) {
	if k.preset == "" {
		return "", false
	}
	return k.preset, true
}

// ConductionVelocity satisfies ConductionVelocityReporter; Izhikevich does
// not measure conduction velocity.
func (k *Izhikevich) ConductionVelocity() (float64, bool) { return 0, false }
