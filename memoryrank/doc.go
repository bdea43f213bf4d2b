/*
Package memoryrank scores words by how central they are in the CA3↔CA3
recurrent collateral graph: a word whose recurrent synapses are heavily
targeted by other words' recurrent synapses is judged more important, and
recall boosts its score accordingly.

# Graph construction

Every learned word is a graph node. For each CA3↔CA3 recurrent synapse
belonging to word u whose post-synaptic neuron happens to belong to a
different word v, an edge u→v is added (or its weight increased) by the
synapse's current weight. Self-loops - a word's recurrent collaterals that
stay within its own population, which is the common case - are excluded,
since they say nothing about cross-word importance.

# Caching

PageRank is recomputed when Scores is called after invalidation or with a
word count different from the cached one; Invalidate clears the single
cached result and the next Scores call recomputes it from scratch.
*/
package memoryrank
