// Package randomizer runs one seeded randomization over a table dump.
//
// A Session owns the seed, the single generator every pass draws from and
// every mapping the passes build. Passes run in a fixed order so a seed
// always reproduces the same result:
//
//	monsters, encounters, shop_items, arts, characters, skills, chests
//
// Passes are not transactional. Each records its own PassStatus and a failed
// pass leaves the tables it did not reach untouched while later passes still
// run.
package randomizer
