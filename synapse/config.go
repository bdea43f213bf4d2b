package synapse

// Config is the complete configuration for an STDP synapse, matching the
// three bundle roles a hippocampal word store wires: DG→CA3, CA3↔CA3
// recurrent, and CA3→CA1.
type Config struct {
	DelayMs       float64 `json:"delay_ms"`
	QMax          float64 `json:"q_max"`
	TauSynMs      float64 `json:"tau_syn_ms"`
	InitialWeight float64 `json:"initial_weight"`

	STDPWindowMs float64 `json:"stdp_window_ms"`
	TauSTDPMs    float64 `json:"tau_stdp_ms"`
	LTPRate      float64 `json:"ltp_rate"`
	LTDRate      float64 `json:"ltd_rate"`

	MinWeight float64 `json:"min_weight"`
	MaxWeight float64 `json:"max_weight"`
}

// DefaultConfig returns the shared STDP parameter set with a 2ms delay and
// Q_max 50, before a bundle-specific preset overrides delay/Q_max.
func DefaultConfig() Config {
	return Config{
		DelayMs:       2.0,
		QMax:          50.0,
		TauSynMs:      2.0,
		InitialWeight: 1.0,

		STDPWindowMs: 20.0,
		TauSTDPMs:    10.0,
		LTPRate:      0.15,
		LTDRate:      0.05,

		MinWeight: 0.1,
		MaxWeight: 50.0,
	}
}

// DGToCA3Config is the preset for the dentate-gyrus-to-CA3 projection:
// 2ms delay, Q_max 50.
func DGToCA3Config() Config {
	cfg := DefaultConfig()
	cfg.DelayMs = 2.0
	cfg.QMax = 50.0
	return cfg
}

// CA3RecurrentConfig is the preset for the CA3↔CA3 recurrent collaterals:
// 3ms delay, Q_max 30.
func CA3RecurrentConfig() Config {
	cfg := DefaultConfig()
	cfg.DelayMs = 3.0
	cfg.QMax = 30.0
	return cfg
}

// CA3ToCA1Config is the preset for the CA3-to-CA1 Schaffer-collateral
// projection: 2ms delay, Q_max 50.
func CA3ToCA1Config() Config {
	cfg := DefaultConfig()
	cfg.DelayMs = 2.0
	cfg.QMax = 50.0
	return cfg
}
