package ddragon

import (
	"fmt"
	"strings"
	"time"

	"riftreplay/internal/timeline"
)

// FallbackVersion is used when versions.json cannot be fetched
const FallbackVersion = "14.23.1"

// DefaultCDN is the Data Dragon root
const DefaultCDN = "https://ddragon.leagueoflegends.com"

// Snapshot is an immutable, versioned set of reference metadata. A nil or
// empty snapshot is valid: every lookup then yields a placeholder.
type Snapshot struct {
	Version   string                `json:"version"`
	Language  string                `json:"language"`
	CDN       string                `json:"cdn"`
	FetchedAt time.Time             `json:"fetchedAt"`
	Items     map[int]Item          `json:"items"`
	Champions map[string]Champion   `json:"champions"` // keyed by Data Dragon id
	Runes     map[int]Rune          `json:"runes"`
	Spells    map[int]SummonerSpell `json:"spells"`

	byName map[string]string // normalized id/name -> Data Dragon id
}

// NewSnapshot returns an empty snapshot for version
func NewSnapshot(version, language, cdn string) *Snapshot {
	if cdn == "" {
		cdn = DefaultCDN
	}
	return &Snapshot{
		Version:   version,
		Language:  language,
		CDN:       strings.TrimRight(cdn, "/"),
		FetchedAt: time.Now().UTC(),
		Items:     make(map[int]Item),
		Champions: make(map[string]Champion),
		Runes:     make(map[int]Rune),
		Spells:    make(map[int]SummonerSpell),
	}
}

// Index builds the name lookup table. It must be called after the snapshot
// is populated or decoded and before it is shared.
func (s *Snapshot) Index() *Snapshot {
	s.byName = make(map[string]string, 2*len(s.Champions))
	for id, c := range s.Champions {
		s.byName[NormalizeName(id)] = id
		s.byName[NormalizeName(c.Name)] = id
	}
	return s
}

// Empty reports whether the snapshot holds no metadata at all
func (s *Snapshot) Empty() bool {
	return s == nil || (len(s.Items) == 0 && len(s.Champions) == 0 && len(s.Runes) == 0 && len(s.Spells) == 0)
}

// LookupChampion resolves a champion by id or display name in any spelling
func (s *Snapshot) LookupChampion(name string) (Champion, bool) {
	if s == nil || name == "" {
		return Champion{}, false
	}
	if c, ok := s.Champions[name]; ok {
		return c, true
	}
	id, ok := s.byName[NormalizeName(name)]
	if !ok {
		return Champion{}, false
	}
	return s.Champions[id], true
}

// Item implements timeline.Reference
func (s *Snapshot) Item(id int) timeline.Asset {
	if s == nil {
		return timeline.PlaceholderItem(id)
	}
	it, ok := s.Items[id]
	if !ok {
		return timeline.PlaceholderItem(id)
	}
	return timeline.Asset{
		Name:        it.Name,
		IconURL:     s.ItemIconURL(id),
		Description: it.Plaintext,
	}
}

// Champion implements timeline.Reference
func (s *Snapshot) Champion(name string) timeline.Asset {
	c, ok := s.LookupChampion(name)
	if !ok {
		return timeline.PlaceholderChampion(name)
	}
	return timeline.Asset{
		Name:        c.Name,
		IconURL:     fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", s.CDN, s.Version, c.ID),
		Description: c.Title,
	}
}

// Rune implements timeline.Reference for runes, trees and stat shards
func (s *Snapshot) Rune(id int) timeline.Asset {
	if s == nil {
		return timeline.PlaceholderRune(id)
	}
	r, ok := s.Runes[id]
	if !ok {
		return timeline.PlaceholderRune(id)
	}
	a := timeline.Asset{Name: r.Name, Description: r.Description}
	if r.Icon != "" {
		a.IconURL = s.CDN + "/cdn/img/" + r.Icon
	}
	return a
}

// Spell implements timeline.Reference for summoner spells
func (s *Snapshot) Spell(id int) timeline.Asset {
	if s == nil {
		return timeline.PlaceholderSpell(id)
	}
	sp, ok := s.Spells[id]
	if !ok {
		return timeline.PlaceholderSpell(id)
	}
	return timeline.Asset{
		Name:        sp.Name,
		IconURL:     fmt.Sprintf("%s/cdn/%s/img/spell/%s", s.CDN, s.Version, sp.Image),
		Description: sp.Description,
	}
}

// ItemIconURL returns the Data Dragon icon URL for an item
func (s *Snapshot) ItemIconURL(id int) string {
	return fmt.Sprintf("%s/cdn/%s/img/item/%d.png", s.CDN, s.Version, id)
}

var _ timeline.Reference = (*Snapshot)(nil)
