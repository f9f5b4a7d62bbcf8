package timeline

import "fmt"

// Team identifies one of the two sides of Summoner's Rift.
// Values match Riot's teamId.
type Team int

const (
	TeamUnknown Team = 0
	TeamBlue    Team = 100
	TeamRed     Team = 200
)

func (t Team) String() string {
	switch t {
	case TeamBlue:
		return "blue"
	case TeamRed:
		return "red"
	default:
		return "unknown"
	}
}

// Point is a map coordinate in game units
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var (
	blueFountain = Point{X: 500, Y: 500}
	redFountain  = Point{X: 14300, Y: 14300}
)

// Fountain returns the base spawn coordinate for a team.
// Unknown teams spawn at the blue fountain.
func Fountain(team Team) Point {
	if team == TeamRed {
		return redFountain
	}
	return blueFountain
}

// PositionSample is one raw movement sample, T in minutes
type PositionSample struct {
	T float64 `json:"t"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Combatant is one participant of the match
type Combatant struct {
	ID            string           `json:"id"` // stable id (PUUID)
	ParticipantID int              `json:"participantId"`
	Name          string           `json:"name"`
	ChampionName  string           `json:"championName"`
	Team          Team             `json:"team"`
	GoldEarned    int              `json:"goldEarned"`
	MinionsKilled int              `json:"minionsKilled"`
	FinalItems    []int            `json:"finalItems,omitempty"`
	Loadout       Loadout          `json:"loadout"`
	Movement      []PositionSample `json:"movement,omitempty"`
}

// Loadout is a combatant's summoner spells and rune page as Riot ids.
// Zero means unknown.
type Loadout struct {
	Spells       [2]int `json:"spells"`
	Keystone     int    `json:"keystone,omitempty"`
	PrimaryStyle int    `json:"primaryStyle,omitempty"`
	SubStyle     int    `json:"subStyle,omitempty"`
	StatShards   [3]int `json:"statShards"` // offense, flex, defense
}

// EventKind discriminates MatchEvent
type EventKind int

const (
	EventKill EventKind = iota + 1
	EventWardPlaced
	EventWardExpired
	EventBuildingDestroyed
	EventItemPurchased
	EventItemSold
	EventItemUndone
	EventItemDestroyed
)

var eventKindNames = map[EventKind]string{
	EventKill:              "kill",
	EventWardPlaced:        "ward_placed",
	EventWardExpired:       "ward_expired",
	EventBuildingDestroyed: "building_destroyed",
	EventItemPurchased:     "item_purchased",
	EventItemSold:          "item_sold",
	EventItemUndone:        "item_undone",
	EventItemDestroyed:     "item_destroyed",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText lets EventKind serialize by name
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a name written by MarshalText
func (k *EventKind) UnmarshalText(text []byte) error {
	for kind, name := range eventKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// IsItem reports whether the kind is an item transaction
func (k EventKind) IsItem() bool {
	switch k {
	case EventItemPurchased, EventItemSold, EventItemUndone, EventItemDestroyed:
		return true
	}
	return false
}

// WardType is Riot's wardType string
type WardType string

const (
	WardSight         WardType = "SIGHT_WARD"
	WardControl       WardType = "CONTROL_WARD"
	WardYellowTrinket WardType = "YELLOW_TRINKET"
	WardBlueTrinket   WardType = "BLUE_TRINKET"
	WardUndefined     WardType = "UNDEFINED"
)

// Lane is Riot's laneType string
type Lane string

const (
	LaneTop Lane = "TOP_LANE"
	LaneMid Lane = "MID_LANE"
	LaneBot Lane = "BOT_LANE"
)

// TowerTier is Riot's towerType string
type TowerTier string

const (
	TierOuter TowerTier = "OUTER_TURRET"
	TierInner TowerTier = "INNER_TURRET"
	TierBase  TowerTier = "BASE_TURRET"
	TierNexus TowerTier = "NEXUS_TURRET"
)

// Building types carried by BuildingDestroyed events
const (
	BuildingTower     = "TOWER_BUILDING"
	BuildingInhibitor = "INHIBITOR_BUILDING"
)

// MatchEvent is one entry of the match event log. Only the fields of its
// Kind are meaningful; references point at Combatant.ID.
type MatchEvent struct {
	Kind        EventKind `json:"kind"`
	TimestampMs int64     `json:"timestampMs"`

	// Kill; KillerRef also names who cleared a ward
	KillerRef  string   `json:"killerRef,omitempty"`
	VictimRef  string   `json:"victimRef,omitempty"`
	AssistRefs []string `json:"assistRefs,omitempty"`

	// Kill, ward and building events
	Position *Point `json:"position,omitempty"`

	// Wards
	WardType       WardType `json:"wardType,omitempty"`
	CreatorRef     string   `json:"creatorRef,omitempty"`
	EndTimestampMs *int64   `json:"endTimestampMs,omitempty"`
	Estimated      bool     `json:"estimated,omitempty"`

	// Buildings; BuildingTeam is the team that owned the building
	BuildingType string    `json:"buildingType,omitempty"`
	BuildingTeam Team      `json:"buildingTeam,omitempty"`
	Lane         Lane      `json:"lane,omitempty"`
	Tier         TowerTier `json:"tier,omitempty"`

	// Item transactions
	OwnerRef string `json:"ownerRef,omitempty"`
	ItemID   int    `json:"itemId,omitempty"`
	BeforeID int    `json:"beforeId,omitempty"`
	AfterID  int    `json:"afterId,omitempty"`
}

// Minutes returns the event time on the minute axis
func (e MatchEvent) Minutes() float64 {
	return msToMinutes(e.TimestampMs)
}

// Match is the full input of the engine for one game
type Match struct {
	ID              string       `json:"id"`
	DurationSeconds int          `json:"durationSeconds"`
	Combatants      []Combatant  `json:"combatants"`
	Events          []MatchEvent `json:"events"`
}

func msToMinutes(ms int64) float64 {
	return float64(ms) / 60000.0
}
