package neuron

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

// HHQuickConfig configures a detailed Hodgkin-Huxley kernel. Defaults match
// the standard squid-axon-derived parameter set used throughout the engine.
type HHQuickConfig struct {
	V0          float64 `json:"v0"`
	GNa         float64 `json:"g_na"`
	ENa         float64 `json:"e_na"`
	GK          float64 `json:"g_k"`
	EK          float64 `json:"e_k"`
	GL          float64 `json:"g_l"`
	EL          float64 `json:"e_l"`
	SpikeThresh float64 `json:"spike_thresh"`
}

// DefaultHHQuickConfig returns the standard parameter set.
func DefaultHHQuickConfig() HHQuickConfig {
	return HHQuickConfig{
		V0:          -70.0,
		GNa:         220.0,
		ENa:         50.0,
		GK:          26.0,
		EK:          -77.0,
		GL:          0.02,
		EL:          -54.4,
		SpikeThresh: -15.0,
	}
}

const (
	hhTableMinV = -100.0
	hhTableMaxV = 100.0
	hhTableRes  = 0.1
)

// hhGateTable holds the voltage-indexed (τ, x∞) pairs for the m, h, n gates.
// One table is built lazily and shared by every HHQuick instance.
type hhGateTable struct {
	tauM, mInf []float64
	tauH, hInf []float64
	tauN, nInf []float64
}

var (
	hhTableOnce sync.Once
	hhTable     *hhGateTable
)

func sharedHHTable() *hhGateTable {
	hhTableOnce.Do(func() {
		steps := int((hhTableMaxV-hhTableMinV)/hhTableRes) + 1
		t := &hhGateTable{
			tauM: make([]float64, steps),
			mInf: make([]float64, steps),
			tauH: make([]float64, steps),
			hInf: make([]float64, steps),
			tauN: make([]float64, steps),
			nInf: make([]float64, steps),
		}
		for i := 0; i < steps; i++ {
			v := hhTableMinV + float64(i)*hhTableRes

			var am float64
			if math.Abs(v+40.0) > 1e-5 {
				am = 0.1 * (v + 40.0) / (1.0 - math.Exp(-(v+40.0)/10.0))
			} else {
				am = 1.0
			}
			bm := 4.0 * math.Exp(-(v+65.0)/18.0)

			ah := 0.07 * math.Exp(-(v+65.0)/20.0)
			bh := 1.0 / (1.0 + math.Exp(-(v+35.0)/10.0))

			var an float64
			if math.Abs(v+55.0) > 1e-5 {
				an = 0.01 * (v + 55.0) / (1.0 - math.Exp(-(v+55.0)/10.0))
			} else {
				an = 0.1
			}
			bn := 0.125 * math.Exp(-(v+65.0)/80.0)

			t.tauM[i] = 1.0 / (am + bm)
			t.mInf[i] = am / (am + bm)
			t.tauH[i] = 1.0 / (ah + bh)
			t.hInf[i] = ah / (ah + bh)
			t.tauN[i] = 1.0 / (an + bn)
			t.nInf[i] = an / (an + bn)
		}
		hhTable = t
		logrus.WithFields(logrus.Fields{
			"steps":  steps,
			"min_mv": hhTableMinV,
			"max_mv": hhTableMaxV,
			"res_mv": hhTableRes,
		}).Debug("neuron: built shared HH gate lookup table")
	})
	return hhTable
}

const (
	hhMode             = "mode"
	hhModeRest         = "rest"
	hhModeActive       = "active"
	hhRefractoryMs     = 5.0
	hhRestPromoteV     = -55.0
	hhRestPromoteI     = 5.0
	hhRestRelaxV       = -60.0
	hhIntegrateEpsilon = 0.001
)

// HHQuick is the detailed Hodgkin-Huxley kernel, backed by the shared gate
// lookup table: a rest/active mode switch gates leak-only relaxation versus
// full Na/K/leak integration, with a fixed refractory period after each
// spike.
type HHQuick struct {
	cfg HHQuickConfig

	v, m, h, n  float64
	mode        string
	refRem      float64
	synBuf      float64
	spikeFlag   bool
	cm          float64
}

// NewHHQuick constructs a kernel from cfg, triggering lookup-table
// construction on first use across the process.
func NewHHQuick(cfg HHQuickConfig) *HHQuick {
	sharedHHTable()
	k := &HHQuick{cfg: cfg, cm: 1.0}
	k.Reset()
	return k
}

// AddSynapticCurrent accumulates delivered synaptic charge into this step's
// input buffer; Step consumes and zeroes it.
func (k *HHQuick) AddSynapticCurrent(i float64) {
	k.synBuf += i
}

func (k *HHQuick) tableIndex() int {
	idx := int((k.v - hhTableMinV) / hhTableRes)
	if idx < 0 {
		idx = 0
	}
	last := len(hhTable.tauM) - 1
	if idx > last {
		idx = last
	}
	return idx
}

// Step advances the kernel by dt milliseconds under total current iExt plus
// any buffered synaptic current, returning whether it spiked this step.
func (k *HHQuick) Step(dt, iExt float64) bool {
	iExt = sanitize(iExt, 0)
	k.spikeFlag = false
	k.v = clamp(k.v, -90.0, 40.0)

	idx := k.tableIndex()
	total := iExt + k.synBuf
	k.synBuf = 0

	switch k.mode {
	case hhModeActive:
		t := hhTable
		k.m += (dt / t.tauM[idx]) * (t.mInf[idx] - k.m)
		k.h += (dt / t.tauH[idx]) * (t.hInf[idx] - k.h)
		k.n += (dt / t.tauN[idx]) * (t.nInf[idx] - k.n)
		k.m = clamp(k.m, 0, 1)
		k.h = clamp(k.h, 0, 1)
		k.n = clamp(k.n, 0, 1)

		iNa := k.cfg.GNa * k.m * k.m * k.m * k.h * (k.cfg.ENa - k.v)
		iK := k.cfg.GK * k.n * k.n * k.n * k.n * (k.cfg.EK - k.v)
		iL := k.cfg.GL * (k.cfg.EL - k.v)

		dV := (iNa + iK + iL + total) / k.cm
		k.v += dV * dt
		k.v = clamp(k.v, -90.0, 40.0)

		if k.v > k.cfg.SpikeThresh && k.refRem <= 0 {
			k.spikeFlag = true
			k.refRem = hhRefractoryMs
		}
		if k.v < hhRestRelaxV && k.refRem <= 0 {
			k.mode = hhModeRest
			k.v = k.cfg.EL
		}
		if k.refRem > 0 {
			k.refRem -= dt
		}

	default: // rest
		if math.Abs(total) > hhIntegrateEpsilon {
			dV := (k.cfg.GL*(k.cfg.EL-k.v) + total) / k.cm
			k.v += dV * dt
			if k.v > hhRestPromoteV || total > hhRestPromoteI {
				k.mode = hhModeActive
			}
		} else {
			k.v += 0.1 * (k.cfg.EL - k.v)
		}
	}

	return k.spikeFlag
}

func (k *HHQuick) Voltage() float64 { return k.v }
func (k *HHQuick) Spiked() bool     { return k.spikeFlag }

// Reset restores the kernel to its configured resting state.
func (k *HHQuick) Reset() {
	k.v = k.cfg.V0
	k.m = 0.05
	k.h = 0.6
	k.n = 0.32
	k.spikeFlag = false
	k.mode = hhModeRest
	k.refRem = 0
	k.synBuf = 0
}

// Preset satisfies PresetNamed; HHQuick has no named preset.
func (k *HHQuick) Preset() (string, bool) { return "", false }

// ConductionVelocity satisfies ConductionVelocityReporter; HHQuick does not
// measure conduction velocity.
func (k *HHQuick) ConductionVelocity() (float64, bool) { return 0, false }
