/*
Package persist defines the single self-describing save/load document for a
babyhippo engine: a version string, the store's capacity, the ordered word
list, per-word context and frequency, and for each word the three synapse
bundles' weights plus their matching persistence fields (consolidation
level, peak weight, replay count) in synapse-creation order.

Save and load are bit-compatible within a Version: encoding a Document,
decoding it, and re-encoding it yields byte-identical JSON.
*/
package persist
