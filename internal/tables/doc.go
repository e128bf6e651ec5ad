// Package tables defines the host table rows a randomization pass works on.
//
// Rows mirror the game's own data tables as exported by the host adapter: every
// table is indexed by a small integer id and the row's position is its id.
// Field groups name the subsets of a row the randomizer re-pairs together.
package tables
