package timeline

import "math"

// WardInstance is a ward derived from a placement event
type WardInstance struct {
	Type      WardType `json:"type"`
	Position  Point    `json:"position"`
	CreatorID string   `json:"creatorId"`
	Team      Team     `json:"team"`
	PlacedAt  float64  `json:"placedAt"`
	ExpiresAt float64  `json:"expiresAt"`
	Estimated bool     `json:"estimated,omitempty"`
}

// ActiveAt reports whether the ward stands at time t
func (w WardInstance) ActiveAt(t float64) bool {
	return w.PlacedAt <= t && t < w.ExpiresAt
}

// deriveWards builds ward instances from the normalized event log. Expiry is
// the explicit end timestamp when present, else the type lifetime, shortened
// by a matching WardExpired event when one carries a position. A known killer
// never clears their own team's wards.
func deriveWards(events []MatchEvent, teams map[string]Team, policy Policy) []WardInstance {
	var wards []WardInstance
	for _, e := range events {
		switch e.Kind {
		case EventWardPlaced:
			placed := e.Minutes()
			expires := placed + policy.WardLifetime(e.WardType)
			if e.EndTimestampMs != nil {
				expires = math.Max(placed, msToMinutes(*e.EndTimestampMs))
			}
			wards = append(wards, WardInstance{
				Type:      e.WardType,
				Position:  *e.Position,
				CreatorID: e.CreatorRef,
				Team:      teams[e.CreatorRef],
				PlacedAt:  placed,
				ExpiresAt: expires,
				Estimated: e.Estimated,
			})

		case EventWardExpired:
			if e.Position == nil {
				continue
			}
			t := e.Minutes()
			tol := policy.TowerMatchTolerance
			if e.Estimated {
				tol = policy.WardClearRange
			}
			killerTeam := teams[e.KillerRef]
			best := -1
			for i, w := range wards {
				if e.WardType != "" && w.Type != e.WardType {
					continue
				}
				if killerTeam != TeamUnknown && w.Team == killerTeam {
					continue
				}
				if !w.ActiveAt(t) || !withinTolerance(w.Position, *e.Position, tol) {
					continue
				}
				if best < 0 || w.PlacedAt < wards[best].PlacedAt {
					best = i
				}
			}
			if best >= 0 {
				wards[best].ExpiresAt = t
			}
		}
	}
	return wards
}

func withinTolerance(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol
}
