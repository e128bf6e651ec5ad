package tables

import "github.com/louisbranch/sagashuffle/internal/core/shuffle"

// MonsterMoveSet carries a monster's behaviour and equipment. Appearance, name
// and base stats stay with the row.
var MonsterMoveSet = shuffle.FieldGroup[Monster]{
	Name:      "monster.move_set",
	Direction: shuffle.Gather,
	Copy: func(dst *Monster, src Monster) {
		dst.Rank = src.Rank
		dst.SlayerIDs = src.SlayerIDs
		dst.HealOnLand = src.HealOnLand
		dst.SpecialAttributes = src.SpecialAttributes
		dst.BossAttribute = src.BossAttribute
		dst.ActRatio = src.ActRatio
		dst.BaseActLevel = src.BaseActLevel
		dst.WeaponIDs = src.WeaponIDs
		dst.WeaponDisarmable = src.WeaponDisarmable
		dst.ShieldID = src.ShieldID
		dst.ArmorIDs = src.ArmorIDs
		dst.DropTableID = src.DropTableID
		dst.ActTableIDs = src.ActTableIDs
	},
}

// MonsterStats carries the combat numbers an encounter slot expects.
var MonsterStats = shuffle.FieldGroup[Monster]{
	Name:      "monster.stats",
	Direction: shuffle.Gather,
	Copy: func(dst *Monster, src Monster) {
		dst.HP = src.HP
		dst.WP = src.WP
		dst.JP = src.JP
		dst.Strength = src.Strength
		dst.Dexterity = src.Dexterity
		dst.Agility = src.Agility
		dst.Endurance = src.Endurance
		dst.Force = src.Force
		dst.Will = src.Will
	},
}

// ItemPrice moves with the item identity a shop slot receives.
var ItemPrice = shuffle.FieldGroup[Item]{
	Name:      "item.price",
	Direction: shuffle.Scatter,
	Copy: func(dst *Item, src Item) {
		dst.Price = src.Price
	},
}

// ArtEffect carries what an art does; the art keeps its id and name.
var ArtEffect = shuffle.FieldGroup[Art]{
	Name:      "art.effect",
	Direction: shuffle.Gather,
	Copy: func(dst *Art, src Art) {
		dst.Power = src.Power
		dst.WPCost = src.WPCost
		dst.JPCost = src.JPCost
		dst.Hits = src.Hits
		dst.Element = src.Element
	},
}

// CharacterIdentity carries everything about a character's look, loadout and
// skills except the base attributes, which are shuffled one by one.
var CharacterIdentity = shuffle.FieldGroup[Character]{
	Name:      "character.identity",
	Direction: shuffle.Gather,
	Copy: func(dst *Character, src Character) {
		dst.Name = src.Name
		dst.Sex = src.Sex
		dst.Class = src.Class
		dst.Star = src.Star
		dst.Grade = src.Grade
		dst.Spark = src.Spark
		dst.HP = src.HP
		dst.LP = src.LP
		dst.WeaponLevels = src.WeaponLevels
		dst.SpellLevels = src.SpellLevels
		dst.Weapons = src.Weapons
		dst.Armor = src.Armor
		dst.FixedArmor = src.FixedArmor
		dst.Techniques = src.Techniques
		dst.Spells = src.Spells
	},
}

// CharacterAttributes lists one field group per base attribute.
var CharacterAttributes = []shuffle.FieldGroup[Character]{
	characterAttribute("strength", func(c *Character) *int { return &c.Strength }),
	characterAttribute("dexterity", func(c *Character) *int { return &c.Dexterity }),
	characterAttribute("agility", func(c *Character) *int { return &c.Agility }),
	characterAttribute("endurance", func(c *Character) *int { return &c.Endurance }),
	characterAttribute("force", func(c *Character) *int { return &c.Force }),
	characterAttribute("will", func(c *Character) *int { return &c.Will }),
	characterAttribute("fascination", func(c *Character) *int { return &c.Fascination }),
}

func characterAttribute(name string, field func(*Character) *int) shuffle.FieldGroup[Character] {
	return shuffle.FieldGroup[Character]{
		Name:      "character." + name,
		Direction: shuffle.Gather,
		Copy: func(dst *Character, src Character) {
			*field(dst) = *field(&src)
		},
	}
}

// SkillEffect carries a skill's behaviour and its description.
var SkillEffect = shuffle.FieldGroup[Skill]{
	Name:      "skill.effect",
	Direction: shuffle.Gather,
	Copy: func(dst *Skill, src Skill) {
		dst.Description = src.Description
		dst.Power = src.Power
		dst.Cost = src.Cost
		dst.EffectID = src.EffectID
	},
}
