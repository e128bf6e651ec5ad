package tables

// EncounterSlots is the number of monster slots in an encounter row.
const EncounterSlots = 6

// Monster is one row of the monster base table.
type Monster struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	// Rank below zero marks an unused row.
	Rank int `json:"rank"`

	HP        int `json:"hp"`
	WP        int `json:"wp"`
	JP        int `json:"jp"`
	Strength  int `json:"strength"`
	Dexterity int `json:"dexterity"`
	Agility   int `json:"agility"`
	Endurance int `json:"endurance"`
	Force     int `json:"force"`
	Will      int `json:"will"`

	SlayerIDs         [2]int  `json:"slayer_ids"`
	HealOnLand        bool    `json:"heal_on_land"`
	SpecialAttributes [2]int  `json:"special_attributes"`
	BossAttribute     int     `json:"boss_attribute"`
	ActRatio          int     `json:"act_ratio"`
	BaseActLevel      int     `json:"base_act_level"`
	WeaponIDs         [2]int  `json:"weapon_ids"`
	WeaponDisarmable  [2]bool `json:"weapon_disarmable"`
	ShieldID          int     `json:"shield_id"`
	ArmorIDs          [2]int  `json:"armor_ids"`
	DropTableID       int     `json:"drop_table_id"`
	ActTableIDs       [2]int  `json:"act_table_ids"`
}

// Valid reports whether the row is a real monster.
func (m Monster) Valid() bool {
	return m.Rank >= 0
}

// Encounter is one row of the scripted battle table.
type Encounter struct {
	ID int `json:"id"`

	// MonsterIDs holds the primary monster in slot 0 and alternates after it.
	// A negative id marks an empty slot.
	MonsterIDs    [EncounterSlots]int `json:"monster_ids"`
	HPMultipliers [2]int              `json:"hp_multipliers"`
}

// Primary returns the monster in slot 0.
func (e Encounter) Primary() int {
	return e.MonsterIDs[0]
}

// Valid reports whether the encounter has a primary monster.
func (e Encounter) Valid() bool {
	return e.MonsterIDs[0] >= 0
}

// Item is one row of the item table.
type Item struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind,omitempty"`
	Price int    `json:"price"`
}

// Shop lists the item ids a merchant sells.
type Shop struct {
	ID      int    `json:"id"`
	Name    string `json:"name,omitempty"`
	ItemIDs []int  `json:"item_ids"`
}

// Art is one row of the arts table.
type Art struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Power   int    `json:"power"`
	WPCost  int    `json:"wp_cost"`
	JPCost  int    `json:"jp_cost"`
	Hits    int    `json:"hits"`
	Element int    `json:"element"`
}

// Character is one row of the character default table.
type Character struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Sex   int    `json:"sex"`
	Class int    `json:"class"`
	Star  int    `json:"destiny_star"`
	Grade int    `json:"grade"`
	Spark int    `json:"spark_type"`
	HP    int    `json:"hp"`
	LP    int    `json:"lp"`

	Strength    int `json:"strength"`
	Dexterity   int `json:"dexterity"`
	Agility     int `json:"agility"`
	Endurance   int `json:"endurance"`
	Force       int `json:"force"`
	Will        int `json:"will"`
	Fascination int `json:"fascination"`

	WeaponLevels [5]int `json:"weapon_levels"`
	SpellLevels  [6]int `json:"spell_levels"`
	Weapons      [4]int `json:"weapons"`
	Armor        [4]int `json:"armor"`
	FixedArmor   int    `json:"fixed_armor"`
	Techniques   [3]int `json:"techniques"`
	Spells       [6]int `json:"spells"`
}

// Skill is one row of the skill metadata table.
type Skill struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	WeaponUnique bool   `json:"weapon_unique"`
	Power        int    `json:"power"`
	Cost         int    `json:"cost"`
	EffectID     int    `json:"effect_id"`
}

// Dump is the full set of tables the host exports before randomization.
type Dump struct {
	Monsters   []Monster   `json:"monsters"`
	Encounters []Encounter `json:"encounters"`
	Items      []Item      `json:"items"`
	Shops      []Shop      `json:"shops"`
	Arts       []Art       `json:"arts"`
	Characters []Character `json:"characters"`
	Skills     []Skill     `json:"skills"`
}
