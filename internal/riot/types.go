package riot

// AccountResponse represents the response from /riot/account/v1/accounts/by-riot-id
type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// MatchResponse represents the response from /lol/match/v5/matches/{matchId}
type MatchResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type MatchInfo struct {
	GameCreation int64              `json:"gameCreation"`
	GameDuration int                `json:"gameDuration"` // seconds
	GameMode     string             `json:"gameMode"`
	GameVersion  string             `json:"gameVersion"`
	QueueID      int                `json:"queueId"`
	Participants []MatchParticipant `json:"participants"`
}

type MatchParticipant struct {
	ParticipantID  int    `json:"participantId"`
	PUUID          string `json:"puuid"`
	RiotIdGameName string `json:"riotIdGameName"`
	RiotIdTagline  string `json:"riotIdTagline"`
	SummonerName   string `json:"summonerName"`
	ChampionID     int    `json:"championId"`
	ChampionName   string `json:"championName"`
	ChampLevel     int    `json:"champLevel"`
	TeamID         int    `json:"teamId"`
	TeamPosition   string `json:"teamPosition"` // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY
	Win            bool   `json:"win"`

	Kills                int `json:"kills"`
	Deaths               int `json:"deaths"`
	Assists              int `json:"assists"`
	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`
	GoldEarned           int `json:"goldEarned"`
	VisionScore          int `json:"visionScore"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"` // Trinket

	Summoner1ID int   `json:"summoner1Id"`
	Summoner2ID int   `json:"summoner2Id"`
	Perks       Perks `json:"perks"`
}

// Perks is the participant's rune page
type Perks struct {
	StatPerks struct {
		Defense int `json:"defense"`
		Flex    int `json:"flex"`
		Offense int `json:"offense"`
	} `json:"statPerks"`
	Styles []PerkStyle `json:"styles"`
}

// PerkStyle is one rune tree; Description is "primaryStyle" or "subStyle"
type PerkStyle struct {
	Description string `json:"description"`
	Style       int    `json:"style"`
	Selections  []struct {
		Perk int `json:"perk"`
	} `json:"selections"`
}

// RiotID returns "gameName#tagLine", or the legacy summoner name
func (p MatchParticipant) RiotID() string {
	if p.RiotIdGameName == "" {
		return p.SummonerName
	}
	return p.RiotIdGameName + "#" + p.RiotIdTagline
}

// TimelineResponse represents the response from /lol/match/v5/matches/{matchId}/timeline
type TimelineResponse struct {
	Metadata TimelineMetadata `json:"metadata"`
	Info     TimelineInfo     `json:"info"`
}

type TimelineMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type TimelineInfo struct {
	FrameInterval int             `json:"frameInterval"`
	Frames        []TimelineFrame `json:"frames"`
}

type TimelineFrame struct {
	Timestamp         int64                       `json:"timestamp"`
	ParticipantFrames map[string]ParticipantFrame `json:"participantFrames"` // keyed by participantId
	Events            []TimelineEvent             `json:"events"`
}

type ParticipantFrame struct {
	ParticipantID       int       `json:"participantId"`
	Position            *Position `json:"position,omitempty"`
	CurrentGold         int       `json:"currentGold"`
	TotalGold           int       `json:"totalGold"`
	Level               int       `json:"level"`
	MinionsKilled       int       `json:"minionsKilled"`
	JungleMinionsKilled int       `json:"jungleMinionsKilled"`
}

// Position is a map coordinate as Riot reports it
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TimelineEvent carries the union of fields used by the event types we read
type TimelineEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`

	// ITEM_*
	ParticipantID int `json:"participantId,omitempty"`
	ItemID        int `json:"itemId,omitempty"`
	AfterID       int `json:"afterId,omitempty"`
	BeforeID      int `json:"beforeId,omitempty"`

	// CHAMPION_KILL, WARD_KILL
	KillerID                int       `json:"killerId,omitempty"`
	VictimID                int       `json:"victimId,omitempty"`
	AssistingParticipantIDs []int     `json:"assistingParticipantIds,omitempty"`
	Position                *Position `json:"position,omitempty"`

	// WARD_*
	WardType  string `json:"wardType,omitempty"`
	CreatorID int    `json:"creatorId,omitempty"`

	// BUILDING_KILL
	TeamID       int    `json:"teamId,omitempty"`
	BuildingType string `json:"buildingType,omitempty"` // TOWER_BUILDING, INHIBITOR_BUILDING
	LaneType     string `json:"laneType,omitempty"`     // TOP_LANE, MID_LANE, BOT_LANE
	TowerType    string `json:"towerType,omitempty"`    // OUTER_TURRET, INNER_TURRET, BASE_TURRET, NEXUS_TURRET
}

// Timeline event types
const (
	EventChampionKill  = "CHAMPION_KILL"
	EventWardPlaced    = "WARD_PLACED"
	EventWardKill      = "WARD_KILL"
	EventBuildingKill  = "BUILDING_KILL"
	EventItemPurchased = "ITEM_PURCHASED"
	EventItemSold      = "ITEM_SOLD"
	EventItemUndo      = "ITEM_UNDO"
	EventItemDestroyed = "ITEM_DESTROYED"
)
