/*
Package neuron implements the four spiking-neuron kernels used as the
numeric leaves of the memory engine: a detailed Hodgkin-Huxley model with a
shared lookup table, an Izhikevich model, an HH-based leaky
integrate-and-fire model, and a myelinated axon cable.

# Overview

Every kernel advances by a fixed time step and reports whether it spiked on
that step. There is no batching and no suspension: a step either completes
or the engine that owns it is discarded (see the engine package for the
NumericFault contract). This mirrors how real neuron membranes evolve -
continuously, and driven only by the current instant's input current.

# Uniform step contract

All four variants satisfy Kernel:

	type Kernel interface {
		Step(dt, iExt float64) bool
		Voltage() float64
		Spiked() bool
		Reset()
	}

A hippocampal population is a slice of Kernel; callers never type-switch on
the hot path. Per-variant data that only some kernels carry - an Izhikevich
firing-pattern preset, an axon's measured conduction velocity - is exposed
through narrow optional interfaces (PresetNamed, ConductionVelocityReporter)
that a caller type-asserts for only when it cares.

# Shared lookup table

HHQuick is the only variant expensive enough to warrant one: its α/β rate
equations are replaced by a process-wide table of (τ, x∞) pairs indexed by
clamped voltage, built once on first use and shared by every instance
(Flyweight). Construction is logged once via logrus at debug level.

# Usage

	k := neuron.NewHHQuick(neuron.DefaultHHQuickConfig())
	for t := 0.0; t < 80; t += 0.1 {
	    iExt := 0.0
	    if t > 5 && t < 15 {
	        iExt = 350
	    }
	    if k.Step(0.1, iExt) {
	        // spike observed on this step
	    }
	}
*/
package neuron
