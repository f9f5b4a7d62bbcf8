package timeline

// CombatantState is one combatant's derived state at a query time.
//
// IsKillingFlash is a cosmetic indicator for the map view: it is set for a
// short window after a kill waypoint and says nothing authoritative about
// kill timing.
type CombatantState struct {
	CombatantID    string  `json:"combatantId"`
	ChampionName   string  `json:"championName"`
	Team           Team    `json:"team"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	IsDead         bool    `json:"isDead"`
	IsKillingFlash bool    `json:"isKillingFlash"`
	Facing         *Point  `json:"facing,omitempty"`
}

// bracket returns the last waypoint at or before t and the first one after it.
// ok is false when t precedes the whole path.
func (p Path) bracket(t float64) (prev Waypoint, next *Waypoint, ok bool) {
	if len(p) == 0 || t < p[0].T {
		return Waypoint{}, nil, false
	}
	prev = p[0]
	for i := range p {
		if p[i].T <= t {
			prev = p[i]
			continue
		}
		next = &p[i]
		break
	}
	return prev, next, true
}

// StateAt samples the path at time t (minutes). Queries before the first
// waypoint pin to it and report alive, even when that waypoint is a death.
func (p Path) StateAt(t float64, policy Policy) CombatantState {
	var st CombatantState
	if len(p) == 0 {
		return st
	}

	prev, next, ok := p.bracket(t)
	if !ok {
		st.X, st.Y = p[0].X, p[0].Y
		return st
	}

	if prev.Kind == WaypointDeath && (next == nil || t < next.T) {
		st.IsDead = true
		st.X, st.Y = prev.X, prev.Y
	} else if next != nil {
		progress := (t - prev.T) / (next.T - prev.T)
		st.X = prev.X + (next.X-prev.X)*progress
		st.Y = prev.Y + (next.Y-prev.Y)*progress
		st.Facing = &Point{X: next.X, Y: next.Y}
	} else {
		st.X, st.Y = prev.X, prev.Y
	}

	if prev.Kind == WaypointKill && t-prev.T < policy.KillFlashWindow {
		st.IsKillingFlash = true
	}
	return st
}
