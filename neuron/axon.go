package neuron

import "math"

// MyelinatedAxonConfig configures the saltatory-conduction cable model.
type MyelinatedAxonConfig struct {
	N          int     `json:"n"`
	NodePeriod int     `json:"node_period"`
	VRest      float64 `json:"v_rest"`
	Dx         float64 `json:"dx"`
	CFLSafety  float64 `json:"cfl_safety"`

	DNode       float64 `json:"d_node"`
	DInternode  float64 `json:"d_internode"`
	CmNode      float64 `json:"cm_node"`
	CmMyelin    float64 `json:"cm_myelin"`
	GLNode      float64 `json:"gl_node"`
	GLMyelin    float64 `json:"gl_myelin"`
	EL          float64 `json:"e_l"`
	Thresh      float64 `json:"thresh"`

	NodeGNa    float64 `json:"node_g_na"`
	NodeENa    float64 `json:"node_e_na"`
	NodeMTau   float64 `json:"node_m_tau"`
	NodeHTau   float64 `json:"node_h_tau"`
	NodeMInfK  float64 `json:"node_m_inf_k"`
	NodeMInfVh float64 `json:"node_m_inf_vh"`
	NodeHInfK  float64 `json:"node_h_inf_k"`
	NodeHInfVh float64 `json:"node_h_inf_vh"`
}

// DefaultMyelinatedAxonConfig returns the standard 121-compartment cable
// with a node every 10 compartments.
func DefaultMyelinatedAxonConfig() MyelinatedAxonConfig {
	return MyelinatedAxonConfig{
		N:          121,
		NodePeriod: 10,
		VRest:      -70.0,
		Dx:         1e-3,
		CFLSafety:  0.5,

		DNode:      0.5,
		DInternode: 0.01,
		CmNode:     1.0,
		CmMyelin:   0.01,
		GLNode:     0.1,
		GLMyelin:   0.001,
		EL:         -70.0,
		Thresh:     -20.0,

		NodeGNa:    800.0,
		NodeENa:    50.0,
		NodeMTau:   0.1,
		NodeHTau:   0.5,
		NodeMInfK:  5.0,
		NodeMInfVh: -40.0,
		NodeHInfK:  -5.0,
		NodeHInfVh: -50.0,
	}
}

// MyelinatedAxon is a discretised 1-D cable with alternating node and
// internode compartments; nodes alone carry a fast Na+ channel, modelling
// saltatory conduction. It satisfies Kernel by injecting iExt at
// compartment 0 and reporting a spike whenever any node crosses Thresh for
// the first time on this step.
type MyelinatedAxon struct {
	cfg MyelinatedAxonConfig

	isNode   []bool
	nodeIdx  []int
	v        []float64
	mNode    []float64
	hNode    []float64
	firstCrossMs map[int]float64
	crossed      map[int]bool

	// d, cm, gl are per-compartment constants (node vs internode), fixed by
	// isNode and computed once. iExtArr, iNa, lap are substep scratch
	// buffers, reused across Step calls to avoid per-step allocation.
	d       []float64
	cm      []float64
	gl      []float64
	iExtArr []float64
	iNa     []float64
	lap     []float64

	tMs       float64
	spikeFlag bool
}

// NewMyelinatedAxon constructs a cable from cfg.
func NewMyelinatedAxon(cfg MyelinatedAxonConfig) *MyelinatedAxon {
	a := &MyelinatedAxon{cfg: cfg}
	a.isNode = make([]bool, cfg.N)
	for i := 0; i < cfg.N; i += cfg.NodePeriod {
		a.isNode[i] = true
		a.nodeIdx = append(a.nodeIdx, i)
	}
	a.Reset()
	return a
}

func sigmoid(x float64) float64 {
	x = clamp(x, -120.0, 120.0)
	return 1.0 / (1.0 + math.Exp(-x))
}

func (a *MyelinatedAxon) nodeMInf(v float64) float64 {
	return sigmoid((v - a.cfg.NodeMInfVh) / a.cfg.NodeMInfK)
}
func (a *MyelinatedAxon) nodeHInf(v float64) float64 {
	return sigmoid((v - a.cfg.NodeHInfVh) / a.cfg.NodeHInfK)
}

// laplacian fills a.lap with the discrete second spatial derivative, using
// zero-flux (Neumann) boundary conditions.
func (a *MyelinatedAxon) laplacian() {
	n := a.cfg.N
	dx2 := a.cfg.Dx * a.cfg.Dx
	for i := 1; i < n-1; i++ {
		a.lap[i] = (a.v[i-1] - 2*a.v[i] + a.v[i+1]) / dx2
	}
	a.lap[0] = 2.0 * (a.v[1] - a.v[0]) / dx2
	a.lap[n-1] = 2.0 * (a.v[n-2] - a.v[n-1]) / dx2
}

func (a *MyelinatedAxon) calcDtCFL() float64 {
	dMax := math.Max(a.cfg.DNode, a.cfg.DInternode)
	return a.cfg.CFLSafety * a.cfg.Dx * a.cfg.Dx / (2.0 * dMax)
}

func (a *MyelinatedAxon) updateNodeGates(dt float64) {
	for _, i := range a.nodeIdx {
		mInf := a.nodeMInf(a.v[i])
		hInf := a.nodeHInf(a.v[i])
		a.mNode[i] += dt * (mInf - a.mNode[i]) / a.cfg.NodeMTau
		a.hNode[i] += dt * (hInf - a.hNode[i]) / a.cfg.NodeHTau
		a.mNode[i] = clamp(a.mNode[i], 0, 1)
		a.hNode[i] = clamp(a.hNode[i], 0, 1)
	}
}

// nodeNaCurrent fills a.iNa with each node's fast Na+ current; internode
// compartments carry no Na+ channel and are left at 0.
func (a *MyelinatedAxon) nodeNaCurrent() {
	for _, i := range a.nodeIdx {
		m3h := a.mNode[i] * a.mNode[i] * a.mNode[i] * a.hNode[i]
		a.iNa[i] = a.cfg.NodeGNa * m3h * (a.cfg.NodeENa - a.v[i])
	}
}

// recordCrossings marks any node crossing Thresh for the first time at tMs
// and reports whether a new crossing happened on this call.
func (a *MyelinatedAxon) recordCrossings(tMs float64) bool {
	any := false
	for _, i := range a.nodeIdx {
		if !a.crossed[i] && a.v[i] >= a.cfg.Thresh {
			a.crossed[i] = true
			a.firstCrossMs[i] = tMs
			any = true
		}
	}
	return any
}

// Step substeps internally to satisfy the CFL stability bound, regardless
// of the caller's dt.
func (a *MyelinatedAxon) Step(dt, iExt float64) bool {
	iExt = sanitize(iExt, 0)
	a.tMs += dt

	dtCFL := a.calcDtCFL()
	nSub := int(math.Ceil(dt / math.Max(1e-12, dtCFL)))
	if nSub < 1 {
		nSub = 1
	}
	dtSub := dt / float64(nSub)

	n := a.cfg.N
	a.iExtArr[0] = iExt
	spiked := false
	for s := 0; s < nSub; s++ {
		a.updateNodeGates(dtSub)

		a.nodeNaCurrent()
		a.laplacian()

		for i := 0; i < n; i++ {
			dVdt := a.d[i]*a.lap[i] - a.gl[i]*(a.v[i]-a.cfg.EL)/a.cm[i] + (a.iExtArr[i]+a.iNa[i])/a.cm[i]
			a.v[i] += dtSub * dVdt
			a.v[i] = clamp(a.v[i], -90.0, 50.0)
		}

		if a.recordCrossings(a.tMs) {
			spiked = true
		}
	}
	a.spikeFlag = spiked
	return spiked
}

// Voltage returns the somatic-end (compartment 0) membrane potential.
func (a *MyelinatedAxon) Voltage() float64 { return a.v[0] }
func (a *MyelinatedAxon) Spiked() bool     { return a.spikeFlag }

// Reset restores the cable to rest at every compartment.
func (a *MyelinatedAxon) Reset() {
	a.v = make([]float64, a.cfg.N)
	for i := range a.v {
		a.v[i] = a.cfg.VRest
	}
	a.mNode = make([]float64, a.cfg.N)
	a.hNode = make([]float64, a.cfg.N)
	for _, i := range a.nodeIdx {
		a.mNode[i] = 0.05
		a.hNode[i] = 0.60
	}
	a.firstCrossMs = make(map[int]float64, len(a.nodeIdx))
	a.crossed = make(map[int]bool, len(a.nodeIdx))
	a.tMs = 0
	a.spikeFlag = false

	a.d = make([]float64, a.cfg.N)
	a.cm = make([]float64, a.cfg.N)
	a.gl = make([]float64, a.cfg.N)
	for i := 0; i < a.cfg.N; i++ {
		a.d[i], a.cm[i], a.gl[i] = a.cfg.DInternode, a.cfg.CmMyelin, a.cfg.GLMyelin
	}
	for _, i := range a.nodeIdx {
		a.d[i], a.cm[i], a.gl[i] = a.cfg.DNode, a.cfg.CmNode, a.cfg.GLNode
	}
	a.iExtArr = make([]float64, a.cfg.N)
	a.iNa = make([]float64, a.cfg.N)
	a.lap = make([]float64, a.cfg.N)
}

// Preset satisfies PresetNamed; MyelinatedAxon has no named preset.
func (a *MyelinatedAxon) Preset() (string, bool) { return "", false }

// ConductionVelocity reports the mean inter-node first-crossing interval
// converted to m/s, or (0, false) if fewer than two nodes have fired yet.
func (a *MyelinatedAxon) ConductionVelocity() (float64, bool) {
	var times []float64
	for _, i := range a.nodeIdx {
		if t, ok := a.firstCrossMs[i]; ok {
			times = append(times, t)
		}
	}
	if len(times) < 2 {
		return 0, false
	}
	var sum float64
	n := 0
	for i := 1; i < len(times); i++ {
		d := times[i] - times[i-1]
		if d > 0 {
			sum += d
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	meanDtMs := sum / float64(n)
	distCm := float64(a.cfg.NodePeriod) * a.cfg.Dx
	vMS := (distCm / (meanDtMs * 1e-3)) * 0.01
	return vMS, true
}
