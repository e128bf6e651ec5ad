package randomizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/sagashuffle/internal/core/encounter"
	"github.com/louisbranch/sagashuffle/internal/core/shuffle"
	"github.com/louisbranch/sagashuffle/internal/mapdata"
	apperrors "github.com/louisbranch/sagashuffle/internal/platform/errors"
	"github.com/louisbranch/sagashuffle/internal/tables"
)

// errNothingToDo marks a pass whose id space came out empty.
var errNothingToDo = errors.New("nothing to randomize")

type input struct {
	dump   *tables.Dump
	chests ChestLoader
}

type passFunc func(in *input) (detail string, err error)

func (s *Session) passFunc(name string) passFunc {
	switch name {
	case PassMonsters:
		return s.monsters
	case PassEncounters:
		return s.encounters
	case PassShopItems:
		return s.shopItems
	case PassArts:
		return s.arts
	case PassCharacters:
		return s.characters
	case PassSkills:
		return s.skills
	case PassChests:
		return s.chestContents
	default:
		return func(*input) (string, error) { return "", fmt.Errorf("unknown pass %q", name) }
	}
}

// monsters trades move sets between valid monsters. Each monster keeps its
// row, so Appearance reports whose behaviour it now carries.
func (s *Session) monsters(in *input) (string, error) {
	rows := in.dump.Monsters
	ids := shuffle.Select(len(rows), func(id int) bool { return rows[id].Valid() })
	ids, err := s.filter(PassMonsters, ids, func(id int) map[string]int { return monsterFields(rows[id]) })
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "no valid monsters", errNothingToDo
	}
	m := shuffle.BuildMapping(ids, s.rng)
	if err := shuffle.ApplySlice(rows, m, tables.MonsterMoveSet); err != nil {
		return "", outOfRange("monsters", err)
	}
	s.record(PassMonsters, m)
	return fmt.Sprintf("%d monsters", m.Len()), nil
}

func (s *Session) encounters(in *input) (string, error) {
	rows := in.dump.Encounters
	ids := shuffle.Select(len(rows), func(id int) bool { return rows[id].Valid() })
	ids, err := s.filter(PassEncounters, ids, func(id int) map[string]int {
		e := rows[id]
		return map[string]int{"id": e.ID, "primary": e.Primary(), "hp_low": e.HPMultipliers[0], "hp_high": e.HPMultipliers[1]}
	})
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "no encounters with a primary monster", errNothingToDo
	}
	m := shuffle.BuildMapping(ids, s.rng)
	res, err := encounter.Shuffle(shuffle.Slice[tables.Encounter](rows), shuffle.Slice[tables.Monster](in.dump.Monsters), m, tables.MonsterStats)
	if err != nil {
		if errors.Is(err, encounter.ErrMonsterOutOfRange) {
			return "", outOfRange("monsters", err)
		}
		return "", outOfRange("encounters", err)
	}
	s.record(PassEncounters, m)
	return fmt.Sprintf("%d encounters, %d stat swaps, %d ambiguous slots skipped", res.Remapped, res.StatSwaps, len(res.Skipped)), nil
}

// shopItems gives every shop slot a new item. The item a slot now sells
// arrives with the price of the item it replaced.
func (s *Session) shopItems(in *input) (string, error) {
	items := in.dump.Items
	ids := tables.ShopItemIDs(in.dump.Shops, len(items))
	ids, err := s.filter(PassShopItems, ids, func(id int) map[string]int {
		return map[string]int{"id": items[id].ID, "price": items[id].Price}
	})
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "no shop items", errNothingToDo
	}
	m := shuffle.BuildMapping(ids, s.rng)
	if err := shuffle.ApplySlice(items, m, tables.ItemPrice); err != nil {
		return "", outOfRange("items", err)
	}
	slots := 0
	for i := range in.dump.Shops {
		for j, id := range in.dump.Shops[i].ItemIDs {
			if to, ok := m.Lookup(id); ok {
				in.dump.Shops[i].ItemIDs[j] = to
				slots++
			}
		}
	}
	s.record(PassShopItems, m)
	return fmt.Sprintf("%d items across %d shop slots", m.Len(), slots), nil
}

func (s *Session) arts(in *input) (string, error) {
	rows := in.dump.Arts
	high := min(s.opts.artsHigh, len(rows))
	ids := shuffle.Range(max(s.opts.artsLow, 0), high)
	ids, err := s.filter(PassArts, ids, func(id int) map[string]int {
		a := rows[id]
		return map[string]int{"id": a.ID, "power": a.Power, "wp_cost": a.WPCost, "jp_cost": a.JPCost, "hits": a.Hits, "element": a.Element}
	})
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return fmt.Sprintf("no arts in [%d,%d)", s.opts.artsLow, s.opts.artsHigh), errNothingToDo
	}
	m := shuffle.BuildMapping(ids, s.rng)
	if err := shuffle.ApplySlice(rows, m, tables.ArtEffect); err != nil {
		return "", outOfRange("arts", err)
	}
	s.record(PassArts, m)
	return fmt.Sprintf("%d arts", m.Len()), nil
}

// characters re-pairs identities, then shuffles each base attribute with
// its own mapping over the same ids.
func (s *Session) characters(in *input) (string, error) {
	rows := in.dump.Characters
	ids := shuffle.Exclude(shuffle.Range(0, min(CharacterSlots, len(rows))), s.opts.reservedCharacter)
	ids, err := s.filter(PassCharacters, ids, func(id int) map[string]int { return characterFields(rows[id]) })
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "no characters", errNothingToDo
	}
	identity := shuffle.BuildMapping(ids, s.rng)
	if err := shuffle.ApplySlice(rows, identity, tables.CharacterIdentity); err != nil {
		return "", outOfRange("characters", err)
	}
	s.record(PassCharacters, identity)
	for _, group := range tables.CharacterAttributes {
		m := shuffle.BuildMapping(ids, s.rng)
		if err := shuffle.ApplySlice(rows, m, group); err != nil {
			return "", outOfRange("characters", err)
		}
		s.record(PassCharacters+"."+strings.TrimPrefix(group.Name, "character."), m)
	}
	return fmt.Sprintf("%d characters, %d attributes", identity.Len(), len(tables.CharacterAttributes)), nil
}

func (s *Session) skills(in *input) (string, error) {
	rows := in.dump.Skills
	ids := shuffle.Select(len(rows), func(id int) bool {
		return tables.SkillEligible(rows[id], s.opts.skillDescriptionMin)
	})
	ids, err := s.filter(PassSkills, ids, func(id int) map[string]int {
		sk := rows[id]
		return map[string]int{"id": sk.ID, "power": sk.Power, "cost": sk.Cost, "effect_id": sk.EffectID}
	})
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "no eligible skills", errNothingToDo
	}
	m := shuffle.BuildMapping(ids, s.rng)
	if err := shuffle.ApplySlice(rows, m, tables.SkillEffect); err != nil {
		return "", outOfRange("skills", err)
	}
	s.record(PassSkills, m)
	return fmt.Sprintf("%d skills", m.Len()), nil
}

// chestContents shuffles what every chest holds across all floors. Each
// floor keeps its chest count.
func (s *Session) chestContents(in *input) (string, error) {
	if in.chests == nil {
		return "no map data", errNothingToDo
	}
	loaded, err := in.chests()
	if err != nil {
		return "", err
	}
	if loaded == nil || loaded.Len() == 0 {
		return "no chests", errNothingToDo
	}
	// The loader's data stays as read; ChestData returns the shuffled copy.
	data := loaded.Clone()
	ids, err := s.filter(PassChests, shuffle.Range(0, data.Len()), func(id int) map[string]int {
		c := data.Get(id)
		return map[string]int{"id": id, "flag": int(c.Flag), "group_id": int(c.GroupID), "type_flag": int(c.TypeFlag), "value": int(c.Value)}
	})
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "no chests", errNothingToDo
	}
	m := shuffle.BuildMapping(ids, s.rng)
	if err := shuffle.ApplyFieldCopy[mapdata.Chest](data, m, mapdata.Contents); err != nil {
		return "", outOfRange("chests", err)
	}
	s.chests = data
	s.record(PassChests, m)
	return fmt.Sprintf("%d chests on %d floors", m.Len(), len(data.Floors)), nil
}

func (s *Session) filter(pass string, ids []int, row func(id int) map[string]int) ([]int, error) {
	p, ok := s.opts.filters[pass]
	if !ok {
		return ids, nil
	}
	out, err := p.Filter(ids, row)
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeFilterInvalid, "filter "+pass, map[string]string{"Table": pass}, err)
	}
	return out, nil
}

func outOfRange(table string, err error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeIDOutOfRange, table+" id out of range", map[string]string{"Table": table}, err)
}

func monsterFields(m tables.Monster) map[string]int {
	return map[string]int{
		"id":        m.ID,
		"rank":      m.Rank,
		"hp":        m.HP,
		"wp":        m.WP,
		"jp":        m.JP,
		"strength":  m.Strength,
		"dexterity": m.Dexterity,
		"agility":   m.Agility,
		"endurance": m.Endurance,
		"force":     m.Force,
		"will":      m.Will,
		"boss":      m.BossAttribute,
	}
}

func characterFields(c tables.Character) map[string]int {
	return map[string]int{
		"id":    c.ID,
		"sex":   c.Sex,
		"class": c.Class,
		"star":  c.Star,
		"hp":    c.HP,
		"lp":    c.LP,
	}
}
