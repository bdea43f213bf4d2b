/*
Package synapse implements the event-driven STDP synapse: delayed delivery
of exponentially decaying post-synaptic current, spike-timing dependent
weight updates, and the monotone consolidation/decay-floor machinery that
lets a memory resist forgetting in proportion to how important and how
often-replayed it is.

# Delivery

A pre-synaptic spike enqueues (arrival_time, charge) rather than delivering
current immediately; Deliver sums the exponentially decayed charge of every
event that has arrived by t and removes those events. This models axonal
and synaptic transmission delay without requiring a scheduler external to
the synapse itself.

# Plasticity and persistence

Weight moves within [0.1, 50.0] under the standard pre-before-post
potentiation / post-before-pre depression rule. Consolidate and Decay never
let weight collapse below a floor that rises with importance,
consolidation, and peak weight - modelling how well-rehearsed memories
resist forgetting while unimportant ones fade quickly.
*/
package synapse
