package tables

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ShopItemIDs returns every item id sold by at least one shop that is also a
// row of an item table of size items, in ascending order.
func ShopItemIDs(shops []Shop, items int) []int {
	seen := map[int]struct{}{}
	for _, shop := range shops {
		for _, id := range shop.ItemIDs {
			if id < 0 || id >= items {
				continue
			}
			seen[id] = struct{}{}
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// SkillEligible reports whether a skill may be re-paired: it must carry a real
// description (more than minDescription runes once trimmed) and must not be
// unique to a weapon.
func SkillEligible(s Skill, minDescription int) bool {
	if s.WeaponUnique {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(s.Description)) > minDescription
}
