package timeline

import "testing"

func ward(m float64, wt WardType, creator string, pos *Point) MatchEvent {
	return MatchEvent{Kind: EventWardPlaced, TimestampMs: minutes(m), WardType: wt, CreatorRef: creator, Position: pos}
}

func activeCount(wards []WardInstance, t float64) int {
	n := 0
	for _, w := range wards {
		if w.ActiveAt(t) {
			n++
		}
	}
	return n
}

func TestDeriveWards_Lifetimes(t *testing.T) {
	teams := map[string]Team{"sup": TeamBlue}
	policy := DefaultPolicy()

	tests := []struct {
		name   string
		event  MatchEvent
		t      float64
		active bool
	}{
		{"sight ward still up", ward(5, WardSight, "sup", pt(1, 1)), 7, true},
		{"sight ward expired", ward(5, WardSight, "sup", pt(1, 1)), 8, false},
		{"not yet placed", ward(5, WardSight, "sup", pt(1, 1)), 4.99, false},
		{"yellow trinket", ward(5, WardYellowTrinket, "sup", pt(1, 1)), 6.4, true},
		{"yellow trinket expired", ward(5, WardYellowTrinket, "sup", pt(1, 1)), 6.5, false},
		{"control ward lasts", ward(5, WardControl, "sup", pt(1, 1)), 60, true},
		{"unknown type never shows", ward(5, WardUndefined, "sup", pt(1, 1)), 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wards := deriveWards([]MatchEvent{tt.event}, teams, policy)
			if len(wards) != 1 {
				t.Fatalf("got %d wards, want 1", len(wards))
			}
			if got := wards[0].ActiveAt(tt.t); got != tt.active {
				t.Errorf("ActiveAt(%v) = %v, want %v", tt.t, got, tt.active)
			}
			if wards[0].Team != TeamBlue {
				t.Errorf("team = %s, want blue", wards[0].Team)
			}
		})
	}
}

func TestDeriveWards_ExplicitEnd(t *testing.T) {
	e := ward(1, WardControl, "sup", pt(1000, 1000))
	end := minutes(4)
	e.EndTimestampMs = &end

	wards := deriveWards([]MatchEvent{e}, map[string]Team{"sup": TeamRed}, DefaultPolicy())
	if activeCount(wards, 3.9) != 1 || activeCount(wards, 4) != 0 {
		t.Errorf("explicit end not honored: %+v", wards)
	}
}

func TestDeriveWards_ExpiredEvent(t *testing.T) {
	events := []MatchEvent{
		ward(2, WardControl, "sup", pt(1000, 1000)),
		ward(3, WardControl, "sup", pt(8000, 8000)),
		{Kind: EventWardExpired, TimestampMs: minutes(6), WardType: WardControl, Position: pt(1050, 990)},
	}
	wards := deriveWards(events, map[string]Team{"sup": TeamBlue}, DefaultPolicy())

	if activeCount(wards, 5.9) != 2 {
		t.Errorf("want both wards at 5.9")
	}
	if activeCount(wards, 6.5) != 1 {
		t.Errorf("want one ward at 6.5, got %d", activeCount(wards, 6.5))
	}
	if wards[1].ExpiresAt != 1003 {
		t.Errorf("far ward expires at %v, want untouched lifetime", wards[1].ExpiresAt)
	}
}

func TestDeriveWards_EstimatedKill(t *testing.T) {
	teams := map[string]Team{"sup": TeamBlue, "jg": TeamRed, "mid": TeamBlue}
	placed := []MatchEvent{
		ward(2, WardControl, "sup", pt(5000, 5000)),
		ward(2.5, WardControl, "jg", pt(5100, 5100)),
	}
	cleared := func(killer string, pos *Point) MatchEvent {
		return MatchEvent{Kind: EventWardExpired, TimestampMs: minutes(4), WardType: WardControl,
			KillerRef: killer, Position: pos, Estimated: true}
	}

	tests := []struct {
		name      string
		expiry    MatchEvent
		wantEnded []bool
	}{
		{"killer in reach clears the enemy ward", cleared("jg", pt(5900, 5600)), []bool{true, false}},
		{"killer never clears own team's ward", cleared("mid", pt(5900, 5600)), []bool{false, true}},
		{"killer out of reach", cleared("jg", pt(8000, 8000)), []bool{false, false}},
		{"unknown killer takes the earliest in reach", cleared("", pt(5900, 5600)), []bool{true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := append(append([]MatchEvent{}, placed...), tt.expiry)
			wards := deriveWards(events, teams, DefaultPolicy())
			for i, want := range tt.wantEnded {
				if got := wards[i].ExpiresAt == 4; got != want {
					t.Errorf("ward %d ended = %v, want %v", i, got, want)
				}
			}
		})
	}

	exact := cleared("jg", pt(5900, 5600))
	exact.Estimated = false
	wards := deriveWards(append(append([]MatchEvent{}, placed...), exact), teams, DefaultPolicy())
	if activeCount(wards, 4.5) != 2 {
		t.Errorf("an exact position must match within the tower tolerance only")
	}
}

func TestActiveTowers(t *testing.T) {
	policy := DefaultPolicy()
	events := []MatchEvent{
		// blue top outer, matched spatially
		{Kind: EventBuildingDestroyed, TimestampMs: minutes(10), BuildingType: BuildingTower, BuildingTeam: TeamBlue, Position: pt(1000, 10400)},
		// red mid inner, no position
		{Kind: EventBuildingDestroyed, TimestampMs: minutes(18), BuildingType: BuildingTower, BuildingTeam: TeamRed, Lane: LaneMid, Tier: TierInner},
		// inhibitors never affect towers
		{Kind: EventBuildingDestroyed, TimestampMs: minutes(20), BuildingType: BuildingInhibitor, BuildingTeam: TeamRed, Position: pt(11134, 11207)},
		// one nexus turret without a position
		{Kind: EventBuildingDestroyed, TimestampMs: minutes(25), BuildingType: BuildingTower, BuildingTeam: TeamRed, Lane: LaneMid, Tier: TierNexus},
	}

	tests := []struct {
		t    float64
		want int
	}{
		{0, 22},
		{9.99, 22},
		{10, 21},
		{18, 20},
		{22, 20},
		{25, 19},
	}
	for _, tt := range tests {
		if got := len(activeTowers(events, tt.t, policy)); got != tt.want {
			t.Errorf("activeTowers(%v) = %d towers, want %d", tt.t, got, tt.want)
		}
	}

	for _, tw := range activeTowers(events, 30, policy) {
		if tw.Team == TeamBlue && tw.Lane == LaneTop && tw.Tier == TierOuter {
			t.Error("blue top outer should be destroyed")
		}
	}
}

func TestActiveTowers_OutsideTolerance(t *testing.T) {
	events := []MatchEvent{
		{Kind: EventBuildingDestroyed, TimestampMs: minutes(10), BuildingType: BuildingTower, Position: pt(981+200, 10441)},
	}
	if got := len(activeTowers(events, 30, DefaultPolicy())); got != 22 {
		t.Errorf("got %d towers, want 22 for a miss at exactly the tolerance", got)
	}
}
