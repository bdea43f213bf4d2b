package neuron

import "testing"

func TestIzhikevichPresetsConstructAndReportName(t *testing.T) {
	for _, preset := range []string{
		"regular_spiking", "fast_spiking", "chattering",
		"intrinsically_bursting", "low_threshold",
	} {
		k, err := NewIzhikevichPreset(preset)
		if err != nil {
			t.Fatalf("preset %q: %v", preset, err)
		}
		name, ok := k.Preset()
		if !ok || name != preset {
			t.Fatalf("preset %q: Preset() = (%q, %v)", preset, name, ok)
		}
	}
}

func TestIzhikevichUnknownPresetErrors(t *testing.T) {
	if _, err := NewIzhikevichPreset("nonexistent"); err == nil {
		t.Fatal("expected an error for an unknown preset")
	}
}

func TestIzhikevichCustomHasNoPreset(t *testing.T) {
	k := NewIzhikevich(IzhikevichParams{A: 0.02, B: 0.2, C: -65, D: 8, V0: -70, U0: -14})
	if _, ok := k.Preset(); ok {
		t.Fatal("a custom-parameter kernel should not report a preset name")
	}
}

func TestIzhikevichSpikesAndResetsToC(t *testing.T) {
	k, err := NewIzhikevichPreset("regular_spiking")
	if err != nil {
		t.Fatal(err)
	}
	spiked := false
	for i := 0; i < 1000; i++ {
		if k.Step(0.5, 10) {
			spiked = true
			if k.Voltage() != -65.0 {
				t.Fatalf("after reset v = %v, want c = -65.0", k.Voltage())
			}
		}
	}
	if !spiked {
		t.Fatal("expected regular_spiking to fire under sustained I=10")
	}
	if k.SpikeCount() == 0 {
		t.Fatal("spike count should track fired spikes")
	}
}

func TestIzhikevichVoltageStaysInRange(t *testing.T) {
	k, _ := NewIzhikevichPreset("fast_spiking")
	for i := 0; i < 2000; i++ {
		k.Step(0.5, 20)
		v := k.Voltage()
		if v < -100 || v > 50 {
			t.Fatalf("step %d: voltage %v outside clamp range", i, v)
		}
	}
}
