package neuron

import "testing"

func TestHHQuickRestsWithoutInput(t *testing.T) {
	k := NewHHQuick(DefaultHHQuickConfig())
	for i := 0; i < 100; i++ {
		if k.Step(0.1, 0) {
			t.Fatalf("step %d: unexpected spike with no input", i)
		}
	}
	if v := k.Voltage(); v < -100 || v > 50 {
		t.Fatalf("voltage %v left shared invariant range", v)
	}
}

func TestHHQuickSpikesUnderSustainedCurrent(t *testing.T) {
	k := NewHHQuick(DefaultHHQuickConfig())
	spiked := false
	for t_ := 0.0; t_ < 80; t_ += 0.1 {
		i := 0.0
		if t_ > 5 && t_ < 15 {
			i = 350
		}
		if k.Step(0.1, i) {
			spiked = true
		}
	}
	if !spiked {
		t.Fatal("expected at least one spike under a 350 pA, 10ms stimulus")
	}
}

func TestHHQuickVoltageStaysInRange(t *testing.T) {
	k := NewHHQuick(DefaultHHQuickConfig())
	for i := 0; i < 1000; i++ {
		k.Step(0.1, 400)
		v := k.Voltage()
		if v < -100 || v > 50 {
			t.Fatalf("step %d: voltage %v outside shared invariant range", i, v)
		}
	}
}

func TestHHQuickRefractoryBlocksImmediateRespike(t *testing.T) {
	k := NewHHQuick(DefaultHHQuickConfig())
	firstSpike := -1
	for i := 0; i < 200; i++ {
		if k.Step(0.1, 400) {
			if firstSpike < 0 {
				firstSpike = i
			} else if i-firstSpike < int(hhRefractoryMs/0.1) {
				t.Fatalf("respiked at step %d, within refractory window of step %d", i, firstSpike)
			}
		}
	}
}

func TestHHQuickResetRestoresRestingState(t *testing.T) {
	cfg := DefaultHHQuickConfig()
	k := NewHHQuick(cfg)
	for i := 0; i < 500; i++ {
		k.Step(0.1, 400)
	}
	k.Reset()
	if k.Voltage() != cfg.V0 {
		t.Fatalf("voltage after reset = %v, want %v", k.Voltage(), cfg.V0)
	}
	if k.Spiked() {
		t.Fatal("spike flag set immediately after reset")
	}
}

func TestHHQuickNonFiniteInputIsClamped(t *testing.T) {
	k := NewHHQuick(DefaultHHQuickConfig())
	inf := 1.0
	for i := 0; i < 400; i++ { // overflows to +Inf
		inf *= 10
	}
	if k.Step(0.1, inf) {
		// a single huge step may or may not spike; what matters is voltage stays sane.
	}
	v := k.Voltage()
	if v != v || v < -1e13 || v > 1e13 {
		t.Fatalf("kernel produced non-finite-adjacent voltage %v from extreme input", v)
	}
}

func TestHHQuickHasNoOptionalVariantData(t *testing.T) {
	k := NewHHQuick(DefaultHHQuickConfig())
	if _, ok := k.Preset(); ok {
		t.Fatal("HHQuick should not report a preset")
	}
	if _, ok := k.ConductionVelocity(); ok {
		t.Fatal("HHQuick should not report a conduction velocity")
	}
}

func TestSharedHHTableIsBuiltOnce(t *testing.T) {
	a := NewHHQuick(DefaultHHQuickConfig())
	b := NewHHQuick(DefaultHHQuickConfig())
	ta := sharedHHTable()
	tb := sharedHHTable()
	if &ta.tauM[0] != &tb.tauM[0] {
		t.Fatal("expected a single shared lookup table across instances")
	}
	_ = a
	_ = b
}
