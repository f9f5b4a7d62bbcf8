package timeline

// Tower is a static turret; whether it stands is derived per query
type Tower struct {
	Team     Team      `json:"team"`
	Lane     Lane      `json:"lane"`
	Tier     TowerTier `json:"tier"`
	Position Point     `json:"position"`
}

// Approximate turret positions on Summoner's Rift
var towerTable = []Tower{
	{TeamBlue, LaneTop, TierOuter, Point{981, 10441}},
	{TeamBlue, LaneTop, TierInner, Point{1512, 6699}},
	{TeamBlue, LaneTop, TierBase, Point{1169, 4287}},
	{TeamBlue, LaneMid, TierOuter, Point{5846, 6396}},
	{TeamBlue, LaneMid, TierInner, Point{5048, 4812}},
	{TeamBlue, LaneMid, TierBase, Point{3651, 3696}},
	{TeamBlue, LaneBot, TierOuter, Point{10504, 1029}},
	{TeamBlue, LaneBot, TierInner, Point{6919, 1483}},
	{TeamBlue, LaneBot, TierBase, Point{4281, 1253}},
	{TeamBlue, LaneMid, TierNexus, Point{1748, 2270}},
	{TeamBlue, LaneMid, TierNexus, Point{2177, 1807}},

	{TeamRed, LaneTop, TierOuter, Point{4318, 13875}},
	{TeamRed, LaneTop, TierInner, Point{7943, 13411}},
	{TeamRed, LaneTop, TierBase, Point{10481, 13650}},
	{TeamRed, LaneMid, TierOuter, Point{8955, 8510}},
	{TeamRed, LaneMid, TierInner, Point{9767, 10113}},
	{TeamRed, LaneMid, TierBase, Point{11134, 11207}},
	{TeamRed, LaneBot, TierOuter, Point{13866, 4505}},
	{TeamRed, LaneBot, TierInner, Point{13327, 8226}},
	{TeamRed, LaneBot, TierBase, Point{13624, 10572}},
	{TeamRed, LaneMid, TierNexus, Point{12611, 13084}},
	{TeamRed, LaneMid, TierNexus, Point{13052, 12612}},
}

// Towers returns a copy of the static tower table
func Towers() []Tower {
	out := make([]Tower, len(towerTable))
	copy(out, towerTable)
	return out
}

// destroyedBy reports whether a building event destroys this tower. Events
// with a position match spatially; the others fall back to lane, tier and
// owning team.
func (tw Tower) destroyedBy(e MatchEvent, tolerance float64) bool {
	if e.Kind != EventBuildingDestroyed || e.BuildingType != BuildingTower {
		return false
	}
	if e.Position != nil {
		return withinTolerance(tw.Position, *e.Position, tolerance)
	}
	return e.BuildingTeam == tw.Team && e.Lane == tw.Lane && e.Tier == tw.Tier
}

// activeTowers filters the table against destructions at or before t. Each
// event destroys at most one tower, so a position-less nexus kill takes down
// one of the two nexus turrets.
func activeTowers(events []MatchEvent, t float64, policy Policy) []Tower {
	destroyed := make([]bool, len(towerTable))
	for _, e := range events {
		if e.Minutes() > t {
			break
		}
		if e.Kind != EventBuildingDestroyed {
			continue
		}
		for i, tw := range towerTable {
			if !destroyed[i] && tw.destroyedBy(e, policy.TowerMatchTolerance) {
				destroyed[i] = true
				break
			}
		}
	}

	standing := make([]Tower, 0, len(towerTable))
	for i, tw := range towerTable {
		if !destroyed[i] {
			standing = append(standing, tw)
		}
	}
	return standing
}
