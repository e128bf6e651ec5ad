// Package shuffle builds seeded id re-pairings and applies them to tables.
//
// A randomization run owns exactly one generator. Every id space (monsters,
// items, arts, characters, skills) draws its Mapping from that generator in a
// fixed call order, so one seed reproduces the whole run.
package shuffle
