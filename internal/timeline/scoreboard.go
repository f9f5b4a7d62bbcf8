package timeline

import "math"

// CombatantStats are the live scoreboard figures of one combatant
type CombatantStats struct {
	CombatantID string `json:"combatantId"`
	Kills       int    `json:"kills"`
	Deaths      int    `json:"deaths"`
	Assists     int    `json:"assists"`
	CS          int    `json:"cs"`
	Gold        int    `json:"gold"`
	Items       []int  `json:"items"`
}

// Scoreboard is the live scoreboard at a query time. Gold and CS are the
// match-final totals scaled by elapsed fraction.
type Scoreboard struct {
	T             float64          `json:"t"`
	Stats         []CombatantStats `json:"stats"`
	BlueGold      int              `json:"blueGold"`
	RedGold       int              `json:"redGold"`
	GoldAdvantage int              `json:"goldAdvantage"`
}

// FeedEntry is one visible event of the match feed
type FeedEntry struct {
	T     float64    `json:"t"`
	Event MatchEvent `json:"event"`
}

func (e *Engine) scoreboard(t float64) Scoreboard {
	sb := Scoreboard{T: t, Stats: make([]CombatantStats, len(e.roster))}
	progress := math.Min(1, t/e.durationMin)

	for i := range e.roster {
		c := &e.roster[i]
		st := CombatantStats{
			CombatantID: c.ID,
			CS:          int(math.Floor(float64(c.MinionsKilled) * progress)),
			Gold:        int(math.Floor(float64(c.GoldEarned) * progress)),
			Items:       liveInventory(c, e.timelines.For(c.ID, RoleOwner), t, e.policy),
		}
		for _, en := range e.timelines.For(c.ID, RoleKiller, RoleVictim, RoleAssist) {
			if en.Event.Minutes() > t {
				break
			}
			switch en.Role {
			case RoleKiller:
				st.Kills++
			case RoleVictim:
				st.Deaths++
			case RoleAssist:
				st.Assists++
			}
		}
		switch c.Team {
		case TeamBlue:
			sb.BlueGold += st.Gold
		case TeamRed:
			sb.RedGold += st.Gold
		}
		sb.Stats[i] = st
	}
	sb.GoldAdvantage = sb.BlueGold - sb.RedGold
	return sb
}

func (e *Engine) feed(t float64) []FeedEntry {
	var out []FeedEntry
	for _, ev := range e.timelines.Events {
		if ev.Minutes() > t {
			break
		}
		switch ev.Kind {
		case EventKill, EventWardPlaced, EventBuildingDestroyed:
			out = append(out, FeedEntry{T: ev.Minutes(), Event: ev})
		}
	}
	return out
}
