package neuron

import "testing"

func TestHHLIFSpikesAndResets(t *testing.T) {
	k := NewHHLIF(DefaultHHLIFConfig())
	spiked := false
	for i := 0; i < 2000; i++ {
		if k.Step(0.1, 50) {
			spiked = true
			if k.Voltage() != k.cfg.VReset {
				t.Fatalf("voltage after spike = %v, want VReset %v", k.Voltage(), k.cfg.VReset)
			}
		}
	}
	if !spiked {
		t.Fatal("expected HH-LIF to spike under sustained I=50")
	}
}

func TestHHLIFRefractoryBlocksUpdate(t *testing.T) {
	k := NewHHLIF(DefaultHHLIFConfig())
	for i := 0; i < 2000 && !k.Step(0.1, 50); i++ {
	}
	// immediately after a spike, refRem > 0 and the next step must be a no-op spike-wise.
	if k.Step(0.1, 50) {
		t.Fatal("spiked again immediately inside the refractory period")
	}
}

func TestHHLIFVoltageStaysInRange(t *testing.T) {
	k := NewHHLIF(DefaultHHLIFConfig())
	for i := 0; i < 3000; i++ {
		k.Step(0.1, 80)
		v := k.Voltage()
		if v < -100 || v > 50 {
			t.Fatalf("step %d: voltage %v outside clamp range", i, v)
		}
	}
}

func TestHHLIFRestsWithoutInput(t *testing.T) {
	k := NewHHLIF(DefaultHHLIFConfig())
	for i := 0; i < 200; i++ {
		if k.Step(0.1, 0) {
			t.Fatalf("step %d: unexpected spike with no input", i)
		}
	}
}
