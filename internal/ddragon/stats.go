package ddragon

// ItemStats is the one stat shape every source is converted to at load
// time. Percent values are percentage points (25 means 25%).
type ItemStats struct {
	AttackDamage     float64 `json:"attackDamage,omitempty"`
	AbilityPower     float64 `json:"abilityPower,omitempty"`
	Armor            float64 `json:"armor,omitempty"`
	MagicResist      float64 `json:"magicResist,omitempty"`
	Health           float64 `json:"health,omitempty"`
	Mana             float64 `json:"mana,omitempty"`
	HealthRegen      float64 `json:"healthRegen,omitempty"`
	ManaRegen        float64 `json:"manaRegen,omitempty"`
	AttackSpeed      float64 `json:"attackSpeed,omitempty"`
	CritChance       float64 `json:"critChance,omitempty"`
	MoveSpeed        float64 `json:"moveSpeed,omitempty"`
	MoveSpeedPercent float64 `json:"moveSpeedPercent,omitempty"`
	LifeSteal        float64 `json:"lifeSteal,omitempty"`
	Omnivamp         float64 `json:"omnivamp,omitempty"`
	AbilityHaste     float64 `json:"abilityHaste,omitempty"`
	Lethality        float64 `json:"lethality,omitempty"`
	ArmorPenPercent  float64 `json:"armorPenPercent,omitempty"`
	MagicPen         float64 `json:"magicPen,omitempty"`
	MagicPenPercent  float64 `json:"magicPenPercent,omitempty"`
}

// IsZero reports whether no stat is set
func (s ItemStats) IsZero() bool {
	return s == ItemStats{}
}

// statsFromDDragon converts Data Dragon's Flat*/Percent* modifiers.
// Data Dragon stores percentages as fractions.
func statsFromDDragon(raw map[string]float64) ItemStats {
	return ItemStats{
		AttackDamage:     raw["FlatPhysicalDamageMod"],
		AbilityPower:     raw["FlatMagicDamageMod"],
		Armor:            raw["FlatArmorMod"],
		MagicResist:      raw["FlatSpellBlockMod"],
		Health:           raw["FlatHPPoolMod"],
		Mana:             raw["FlatMPPoolMod"],
		HealthRegen:      raw["FlatHPRegenMod"],
		ManaRegen:        raw["FlatMPRegenMod"],
		AttackSpeed:      raw["PercentAttackSpeedMod"] * 100,
		CritChance:       raw["FlatCritChanceMod"] * 100,
		MoveSpeed:        raw["FlatMovementSpeedMod"],
		MoveSpeedPercent: raw["PercentMovementSpeedMod"] * 100,
		LifeSteal:        raw["PercentLifeStealMod"] * 100,
	}
}

// statsFromMeraki converts Meraki's {flat, percent} stat objects
func statsFromMeraki(raw map[string]merakiStat) ItemStats {
	flat := func(k string) float64 { return raw[k].Flat }
	pct := func(k string) float64 { return raw[k].Percent }
	// attack speed and crit are reported under flat or percent depending on the item
	either := func(k string) float64 {
		if v := raw[k].Percent; v != 0 {
			return v
		}
		return raw[k].Flat
	}
	return ItemStats{
		AttackDamage:     flat("attackDamage"),
		AbilityPower:     flat("abilityPower"),
		Armor:            flat("armor"),
		MagicResist:      flat("magicResistance"),
		Health:           flat("health"),
		Mana:             flat("mana"),
		HealthRegen:      either("healthRegen"),
		ManaRegen:        either("manaRegen"),
		AttackSpeed:      either("attackSpeed"),
		CritChance:       either("criticalStrikeChance"),
		MoveSpeed:        flat("movespeed"),
		MoveSpeedPercent: pct("movespeed"),
		LifeSteal:        either("lifesteal"),
		Omnivamp:         either("omnivamp"),
		AbilityHaste:     flat("abilityHaste"),
		Lethality:        flat("lethality"),
		ArmorPenPercent:  pct("armorPenetration"),
		MagicPen:         flat("magicPenetration"),
		MagicPenPercent:  pct("magicPenetration"),
	}
}
