package neuron

import "testing"

func TestMyelinatedAxonConductsAndMeasuresVelocity(t *testing.T) {
	a := NewMyelinatedAxon(DefaultMyelinatedAxonConfig())
	for i := 0; i < 5000; i++ {
		a.Step(0.01, 40)
	}
	if _, ok := a.ConductionVelocity(); !ok {
		t.Fatal("expected a measurable conduction velocity after sustained stimulation")
	}
	v, _ := a.ConductionVelocity()
	if v <= 0 {
		t.Fatalf("conduction velocity = %v, want > 0", v)
	}
}

func TestMyelinatedAxonNoVelocityBeforeTwoNodesCross(t *testing.T) {
	a := NewMyelinatedAxon(DefaultMyelinatedAxonConfig())
	if _, ok := a.ConductionVelocity(); ok {
		t.Fatal("expected no velocity before any node crosses threshold")
	}
}

func TestMyelinatedAxonVoltageStaysInRange(t *testing.T) {
	a := NewMyelinatedAxon(DefaultMyelinatedAxonConfig())
	for i := 0; i < 2000; i++ {
		a.Step(0.01, 40)
		for j, v := range a.v {
			if v < -100 || v > 50 {
				t.Fatalf("step %d compartment %d: voltage %v outside clamp range", i, j, v)
			}
		}
	}
}

func TestMyelinatedAxonResetClearsCrossings(t *testing.T) {
	a := NewMyelinatedAxon(DefaultMyelinatedAxonConfig())
	for i := 0; i < 5000; i++ {
		a.Step(0.01, 40)
	}
	a.Reset()
	if _, ok := a.ConductionVelocity(); ok {
		t.Fatal("expected no velocity immediately after reset")
	}
	for _, v := range a.v {
		if v != a.cfg.VRest {
			t.Fatalf("compartment voltage %v after reset, want VRest %v", v, a.cfg.VRest)
		}
	}
}

func TestMyelinatedAxonHasNoPreset(t *testing.T) {
	a := NewMyelinatedAxon(DefaultMyelinatedAxonConfig())
	if _, ok := a.Preset(); ok {
		t.Fatal("MyelinatedAxon should not report a preset")
	}
}
