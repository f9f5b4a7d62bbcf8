package timeline

import "fmt"

// Asset is display metadata for an item, champion, rune or summoner spell
type Asset struct {
	Name        string `json:"name"`
	IconURL     string `json:"iconUrl,omitempty"`
	Description string `json:"description,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Reference resolves display metadata. Implementations must return a
// placeholder asset on a lookup miss instead of failing.
type Reference interface {
	Item(id int) Asset
	Champion(name string) Asset
	Rune(id int) Asset
	Spell(id int) Asset
}

// PlaceholderItem is shown when an item has no metadata
func PlaceholderItem(id int) Asset {
	return Asset{Name: fmt.Sprintf("Item %d", id), Placeholder: true}
}

// PlaceholderChampion is shown when a champion has no metadata
func PlaceholderChampion(name string) Asset {
	if name == "" {
		name = "Unknown"
	}
	return Asset{Name: name, Placeholder: true}
}

// PlaceholderRune is shown for a rune, rune tree or stat shard without metadata
func PlaceholderRune(id int) Asset {
	return Asset{Name: fmt.Sprintf("Rune %d", id), Placeholder: true}
}

// PlaceholderSpell is shown for a summoner spell without metadata
func PlaceholderSpell(id int) Asset {
	return Asset{Name: fmt.Sprintf("Spell %d", id), Placeholder: true}
}

// ItemSlot is one displayed inventory entry
type ItemSlot struct {
	ID    int   `json:"id"`
	Asset Asset `json:"asset"`
}

// LoadoutAsset is one resolved spell or rune
type LoadoutAsset struct {
	ID    int   `json:"id"`
	Asset Asset `json:"asset"`
}

// LoadoutView is a Loadout with display metadata; unknown ids are left out
type LoadoutView struct {
	Spells       []LoadoutAsset `json:"spells"`
	Keystone     *LoadoutAsset  `json:"keystone,omitempty"`
	PrimaryStyle *LoadoutAsset  `json:"primaryStyle,omitempty"`
	SubStyle     *LoadoutAsset  `json:"subStyle,omitempty"`
	StatShards   []LoadoutAsset `json:"statShards"`
}

// CombatantFrame is a combatant's full view at one time
type CombatantFrame struct {
	CombatantState
	Name     string         `json:"name"`
	Champion Asset          `json:"champion"`
	Loadout  LoadoutView    `json:"loadout"`
	Stats    CombatantStats `json:"stats"`
	Items    []ItemSlot     `json:"items"`
}

// Frame bundles every derived view for one query time
type Frame struct {
	MatchID       string           `json:"matchId"`
	T             float64          `json:"t"`
	Duration      float64          `json:"duration"`
	Combatants    []CombatantFrame `json:"combatants"`
	Wards         []WardInstance   `json:"wards"`
	Towers        []Tower          `json:"towers"`
	BlueGold      int              `json:"blueGold"`
	RedGold       int              `json:"redGold"`
	GoldAdvantage int              `json:"goldAdvantage"`
	Feed          []FeedEntry      `json:"feed"`
}

// Frame assembles the view at t. ref may be nil, in which case every asset
// is a placeholder.
func (e *Engine) Frame(t float64, ref Reference) Frame {
	t = e.clamp(t)
	sb := e.scoreboard(t)

	f := Frame{
		MatchID:       e.id,
		T:             t,
		Duration:      e.durationMin,
		Combatants:    make([]CombatantFrame, len(e.roster)),
		Wards:         e.ActiveWards(t),
		Towers:        e.ActiveTowers(t),
		BlueGold:      sb.BlueGold,
		RedGold:       sb.RedGold,
		GoldAdvantage: sb.GoldAdvantage,
		Feed:          e.feed(t),
	}

	for i, c := range e.roster {
		stats := sb.Stats[i]
		cf := CombatantFrame{
			CombatantState: e.stateOf(c, t),
			Name:           c.Name,
			Champion:       championAsset(ref, c.ChampionName),
			Loadout:        resolveLoadout(ref, c.Loadout),
			Stats:          stats,
			Items:          make([]ItemSlot, 0, len(stats.Items)),
		}
		for _, id := range stats.Items {
			cf.Items = append(cf.Items, ItemSlot{ID: id, Asset: itemAsset(ref, id)})
		}
		f.Combatants[i] = cf
	}
	return f
}

func itemAsset(ref Reference, id int) Asset {
	if ref == nil {
		return PlaceholderItem(id)
	}
	return ref.Item(id)
}

func championAsset(ref Reference, name string) Asset {
	if ref == nil {
		return PlaceholderChampion(name)
	}
	return ref.Champion(name)
}

func runeAsset(ref Reference, id int) Asset {
	if ref == nil {
		return PlaceholderRune(id)
	}
	return ref.Rune(id)
}

func spellAsset(ref Reference, id int) Asset {
	if ref == nil {
		return PlaceholderSpell(id)
	}
	return ref.Spell(id)
}

func resolveLoadout(ref Reference, l Loadout) LoadoutView {
	v := LoadoutView{Spells: []LoadoutAsset{}, StatShards: []LoadoutAsset{}}
	for _, id := range l.Spells {
		if id > 0 {
			v.Spells = append(v.Spells, LoadoutAsset{ID: id, Asset: spellAsset(ref, id)})
		}
	}
	runeAt := func(id int) *LoadoutAsset {
		if id <= 0 {
			return nil
		}
		return &LoadoutAsset{ID: id, Asset: runeAsset(ref, id)}
	}
	v.Keystone = runeAt(l.Keystone)
	v.PrimaryStyle = runeAt(l.PrimaryStyle)
	v.SubStyle = runeAt(l.SubStyle)
	for _, id := range l.StatShards {
		if id > 0 {
			v.StatShards = append(v.StatShards, LoadoutAsset{ID: id, Asset: runeAsset(ref, id)})
		}
	}
	return v
}
