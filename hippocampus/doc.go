/*
Package hippocampus implements the word store: a fixed-capacity population of
per-word dentate-gyrus, CA3 and CA1 neurons and subiculum gates wired
together by synapse bundles, driven through a deterministic learning trial, and queried
by cue-based recall.

# Population per word

Each word owns 2 dentate-gyrus neurons, 30 CA3 neurons, 1 CA1 time cell, and
one subiculum gate. Three synapse bundles connect them: a dense DG→CA3
projection, a sparse CA3↔CA3 recurrent collateral set, and a sampled
CA3→CA1 Schaffer-collateral projection. Learning is one fixed-step
simulated trial of the population's own neurons and synapses. Words share
only those CA3↔CA3 collaterals whose pre and post neurons belong to
different words; DG→CA3 and CA3→CA1 are private to each word.

# Step ordering

A trial step always runs in the same order: DG neurons step, then CA3
neurons step against delivered synaptic current, then STDP post-updates for
every CA3 neuron that just spiked, then STDP pre-updates for every synapse
whose pre-neuron just spiked. This ordering is itself part of the
engine's determinism guarantee, not an implementation detail - running the
steps out of order would change which weight changes are visible to the
next step.

# Recall

Recall projects the cue and every stored word id into a fixed-size vector
and ranks by cosine similarity scaled by the word's mean DG→CA3 weight, then
lets the engine's MemoryRank layer apply an importance boost before sorting.
*/
package hippocampus
