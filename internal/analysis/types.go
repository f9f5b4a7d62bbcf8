package analysis

// Summary is one row of the backend's analysis list
type Summary struct {
	RiotID      string  `json:"riot_id" bson:"riot_id"`
	Filename    string  `json:"filename" bson:"filename"`
	Created     float64 `json:"created" bson:"created"`
	PrimaryRole string  `json:"primary_role,omitempty" bson:"primary_role,omitempty"`
	MatchCount  int     `json:"match_count" bson:"match_count"`
}

// Document is a stored analysis. Only the parts needed to replay matches are
// modeled; everything else the backend stores is ignored.
type Document struct {
	RiotID              string `json:"riot_id" bson:"riot_id"`
	Region              string `json:"region,omitempty" bson:"region,omitempty"`
	MatchCountRequested int    `json:"match_count_requested,omitempty" bson:"match_count_requested,omitempty"`
	Analysis            Body   `json:"analysis" bson:"analysis"`
}

// Body holds the per-game payloads
type Body struct {
	PrimaryRole     string      `json:"primary_role,omitempty" bson:"primary_role,omitempty"`
	DetailedMatches []MatchData `json:"detailed_matches" bson:"detailed_matches"`
}

// Match returns the detailed match with the given id
func (d *Document) Match(matchID string) (*MatchData, bool) {
	for i := range d.Analysis.DetailedMatches {
		if d.Analysis.DetailedMatches[i].MatchID == matchID {
			return &d.Analysis.DetailedMatches[i], true
		}
	}
	return nil, false
}

// MatchData is one detailed game as produced by the analysis backend
type MatchData struct {
	MatchID      string `json:"match_id" bson:"match_id"`
	GameCreation int64  `json:"game_creation,omitempty" bson:"game_creation,omitempty"`
	GameDuration int    `json:"game_duration" bson:"game_duration"`
	GameMode     string `json:"game_mode,omitempty" bson:"game_mode,omitempty"`
	QueueID      int    `json:"queue_id,omitempty" bson:"queue_id,omitempty"`

	Participants   []Participant    `json:"participants" bson:"participants"`
	KillEvents     []KillEvent      `json:"kill_events,omitempty" bson:"kill_events,omitempty"`
	WardEvents     []WardEvent      `json:"ward_events,omitempty" bson:"ward_events,omitempty"`
	BuildingEvents []BuildingEvent  `json:"building_events,omitempty" bson:"building_events,omitempty"`
	AllPositions   map[string][]Pos `json:"all_positions,omitempty" bson:"all_positions,omitempty"` // keyed by participantId
}

// Participant is one player of a detailed match. Some backend versions
// emit camelCase ids, so both spellings are accepted.
type Participant struct {
	PUUID         string `json:"puuid" bson:"puuid"`
	RiotID        string `json:"riot_id" bson:"riot_id"`
	ChampionName  string `json:"champion_name" bson:"champion_name"`
	ChampionID    int    `json:"champion_id,omitempty" bson:"champion_id,omitempty"`
	ParticipantID int    `json:"participant_id,omitempty" bson:"participant_id,omitempty"`
	PIDCamel      int    `json:"participantId,omitempty" bson:"participantId,omitempty"`
	TeamID        int    `json:"team_id,omitempty" bson:"team_id,omitempty"`
	TeamIDCamel   int    `json:"teamId,omitempty" bson:"teamId,omitempty"`
	Position      string `json:"position,omitempty" bson:"position,omitempty"`
	Win           bool   `json:"win" bson:"win"`
	ChampLevel    int    `json:"champ_level,omitempty" bson:"champ_level,omitempty"`

	Kills   int `json:"kills" bson:"kills"`
	Deaths  int `json:"deaths" bson:"deaths"`
	Assists int `json:"assists" bson:"assists"`

	TotalMinionsKilled   int `json:"total_minions_killed" bson:"total_minions_killed"`
	NeutralMinionsKilled int `json:"neutral_minions_killed,omitempty" bson:"neutral_minions_killed,omitempty"`
	GoldEarned           int `json:"gold_earned" bson:"gold_earned"`
	VisionScore          int `json:"vision_score,omitempty" bson:"vision_score,omitempty"`

	Item0 int `json:"item0" bson:"item0"`
	Item1 int `json:"item1" bson:"item1"`
	Item2 int `json:"item2" bson:"item2"`
	Item3 int `json:"item3" bson:"item3"`
	Item4 int `json:"item4" bson:"item4"`
	Item5 int `json:"item5" bson:"item5"`
	Item6 int `json:"item6" bson:"item6"`

	Summoner1ID int    `json:"summoner1Id,omitempty" bson:"summoner1Id,omitempty"`
	Summoner2ID int    `json:"summoner2Id,omitempty" bson:"summoner2Id,omitempty"`
	Perks       *Perks `json:"perks,omitempty" bson:"perks,omitempty"`

	ItemBuild []ItemTransaction `json:"item_build,omitempty" bson:"item_build,omitempty"`
	IsSelf    bool              `json:"is_self,omitempty" bson:"is_self,omitempty"`
}

// Perks is the rune page summary the backend stores per participant
type Perks struct {
	Keystone     int       `json:"keystone" bson:"keystone"`
	PrimaryStyle int       `json:"primary_style" bson:"primary_style"`
	SubStyle     int       `json:"sub_style" bson:"sub_style"`
	StatPerks    StatPerks `json:"statPerks" bson:"statPerks"`
}

type StatPerks struct {
	Offense int `json:"offense" bson:"offense"`
	Flex    int `json:"flex" bson:"flex"`
	Defense int `json:"defense" bson:"defense"`
}

// PID returns the participant id under either spelling
func (p Participant) PID() int {
	if p.ParticipantID != 0 {
		return p.ParticipantID
	}
	return p.PIDCamel
}

// Team returns the team id under either spelling
func (p Participant) Team() int {
	if p.TeamID != 0 {
		return p.TeamID
	}
	return p.TeamIDCamel
}

// Items returns item0..item6
func (p Participant) Items() []int {
	return []int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5, p.Item6}
}

// Pos is a map coordinate. Coordinates may be null in kill events.
type Pos struct {
	T float64  `json:"t,omitempty" bson:"t,omitempty"`
	X *float64 `json:"x" bson:"x"`
	Y *float64 `json:"y" bson:"y"`
}

// Valid reports whether both coordinates are present
func (p *Pos) Valid() bool {
	return p != nil && p.X != nil && p.Y != nil
}

// Actor is the identity block embedded in kill events
type Actor struct {
	ChampionName string `json:"championName" bson:"championName"`
	TeamID       int    `json:"teamId" bson:"teamId"`
	RiotID       string `json:"riotId" bson:"riotId"`
}

type KillEvent struct {
	Timestamp    int64  `json:"timestamp" bson:"timestamp"`
	KillerID     int    `json:"killerId" bson:"killerId"`
	VictimID     int    `json:"victimId" bson:"victimId"`
	AssistingIDs []int  `json:"assistingParticipantIds,omitempty" bson:"assistingParticipantIds,omitempty"`
	Position     *Pos   `json:"position,omitempty" bson:"position,omitempty"`
	Killer       *Actor `json:"killer,omitempty" bson:"killer,omitempty"`
	Victim       *Actor `json:"victim,omitempty" bson:"victim,omitempty"`
}

// Ward event types
const (
	WardPlaced = "WARD_PLACED"
	WardKill   = "WARD_KILL"
)

type WardEvent struct {
	Timestamp   int64  `json:"timestamp" bson:"timestamp"`
	Type        string `json:"type" bson:"type"`
	WardType    string `json:"wardType" bson:"wardType"`
	CreatorID   int    `json:"creatorId" bson:"creatorId"`
	KillerID    int    `json:"killerId,omitempty" bson:"killerId,omitempty"`
	Position    *Pos   `json:"position,omitempty" bson:"position,omitempty"`
	EndTime     *int64 `json:"end_timestamp_ms,omitempty" bson:"end_timestamp_ms,omitempty"`
	IsEstimated bool   `json:"isEstimated,omitempty" bson:"isEstimated,omitempty"`
}

type BuildingEvent struct {
	Timestamp    int64  `json:"timestamp" bson:"timestamp"`
	Type         string `json:"type,omitempty" bson:"type,omitempty"`
	TeamID       int    `json:"teamId" bson:"teamId"`
	BuildingType string `json:"buildingType" bson:"buildingType"`
	LaneType     string `json:"laneType,omitempty" bson:"laneType,omitempty"`
	TowerType    string `json:"towerType,omitempty" bson:"towerType,omitempty"`
	Position     *Pos   `json:"position,omitempty" bson:"position,omitempty"`
}

// Item transaction types
const (
	ItemPurchased = "ITEM_PURCHASED"
	ItemSold      = "ITEM_SOLD"
	ItemUndo      = "ITEM_UNDO"
	ItemDestroyed = "ITEM_DESTROYED"
)

type ItemTransaction struct {
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
	Type      string `json:"type" bson:"type"`
	ItemID    int    `json:"itemId" bson:"itemId"`
	AfterID   int    `json:"afterId" bson:"afterId"`
	BeforeID  int    `json:"beforeId" bson:"beforeId"`
}
