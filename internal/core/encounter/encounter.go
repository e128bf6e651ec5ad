// Package encounter keeps encounter rows and the monster table consistent
// when encounters trade their monsters.
package encounter

import (
	"errors"
	"fmt"

	"github.com/louisbranch/sagashuffle/internal/core/shuffle"
	"github.com/louisbranch/sagashuffle/internal/tables"
)

// ErrMonsterOutOfRange is returned when an encounter slot names a monster row
// the monster table does not have.
var ErrMonsterOutOfRange = errors.New("encounter slot references unknown monster")

// Slots is the monster slot layout of one encounter.
type Slots = [tables.EncounterSlots]int

// StatPair asks for the monster at Target to take the stats the monster at
// Source had before the pass.
type StatPair struct {
	Slot   int
	Target int
	Source int
}

// Skip records a slot whose stat swap was not attempted because the two
// encounters disagree about what the slot refers to.
type Skip struct {
	Encounter int
	Slot      int
	Target    int
	Source    int
}

// Result summarises one Shuffle call.
type Result struct {
	Remapped  int
	StatSwaps int
	Skipped   []Skip
}

// Redirect returns slots with every slot equal to from replaced by to.
// Slots holding any other id are left alone.
func Redirect(slots Slots, from, to int) Slots {
	out := slots
	for i, id := range out {
		if id == from {
			out[i] = to
		}
	}
	return out
}

// Pair lines up the slots of dst (the encounter being rewritten) with the
// slots of src (the encounter it takes its monsters from).
//
// Slot j yields a StatPair only when both ids are set and each encounter's
// slot j refers to its own primary monster. Any other set pair is returned in
// skipped: guessing which monster should inherit which stats would corrupt
// unrelated rows.
func Pair(dst, src tables.Encounter) (pairs []StatPair, skipped []int) {
	for j := 0; j < tables.EncounterSlots; j++ {
		target := src.MonsterIDs[j]
		source := dst.MonsterIDs[j]
		if target < 0 || source < 0 {
			continue
		}
		if source != dst.Primary() || target != src.Primary() {
			skipped = append(skipped, j)
			continue
		}
		pairs = append(pairs, StatPair{Slot: j, Target: target, Source: source})
	}
	return pairs, skipped
}

// Shuffle moves monsters between encounters along m.
//
// For every encounter n in m with k = m[n]:
//
//   - each StatPair from Pair(n, k) gives the incoming monster the stats of
//     the monster that used to stand in that slot, so the fight keeps its
//     difficulty. Only the fields in the stats group are copied; the rest of
//     the incoming monster's row (id, name, rank, drops, weapons) is kept;
//   - n's slots that referred to its old primary now refer to k's primary;
//     other slots are untouched;
//   - HP multipliers become the smaller of the two encounters' values.
//
// Encounter and monster values are read from snapshots taken before any
// write. Slot ids are validated against the monster table first; on error
// nothing is written.
func Shuffle(encounters shuffle.Table[tables.Encounter], monsters shuffle.Table[tables.Monster], m shuffle.Mapping, stats shuffle.FieldGroup[tables.Monster]) (Result, error) {
	var res Result
	if m.Len() == 0 {
		return res, nil
	}
	if stats.Copy == nil {
		return res, fmt.Errorf("stat field group %q: copy function is required", stats.Name)
	}

	encSnap := shuffle.Snapshot(encounters)
	monSnap := shuffle.Snapshot(monsters)
	for _, n := range m.Keys() {
		k := m.MustLookup(n)
		for _, id := range []int{n, k} {
			if id < 0 || id >= len(encSnap) {
				return res, fmt.Errorf("%w: encounter %d, table has %d rows", shuffle.ErrIDOutOfRange, id, len(encSnap))
			}
		}
		for _, id := range encSnap[n].MonsterIDs {
			if id >= len(monSnap) {
				return res, fmt.Errorf("%w: encounter %d slot monster %d, table has %d rows", ErrMonsterOutOfRange, n, id, len(monSnap))
			}
		}
	}

	for _, n := range m.Keys() {
		k := m.MustLookup(n)
		dst := encSnap[n]
		src := encSnap[k]

		pairs, skipped := Pair(dst, src)
		for _, p := range pairs {
			row := monsters.Get(p.Target)
			stats.Copy(&row, monSnap[p.Source])
			monsters.Set(p.Target, row)
			res.StatSwaps++
		}
		for _, j := range skipped {
			res.Skipped = append(res.Skipped, Skip{
				Encounter: n,
				Slot:      j,
				Target:    src.MonsterIDs[j],
				Source:    dst.MonsterIDs[j],
			})
		}

		updated := dst
		updated.MonsterIDs = Redirect(dst.MonsterIDs, dst.Primary(), src.Primary())
		for i := range updated.HPMultipliers {
			updated.HPMultipliers[i] = min(dst.HPMultipliers[i], src.HPMultipliers[i])
		}
		encounters.Set(n, updated)
		res.Remapped++
	}
	return res, nil
}
