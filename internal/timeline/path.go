package timeline

import (
	"math"
	"sort"
)

// WaypointKind tags what produced a waypoint
type WaypointKind int

const (
	WaypointMove WaypointKind = iota + 1
	WaypointSpawn
	WaypointKill
	WaypointDeath
	WaypointRespawn
)

func (k WaypointKind) String() string {
	switch k {
	case WaypointMove:
		return "move"
	case WaypointSpawn:
		return "spawn"
	case WaypointKill:
		return "kill"
	case WaypointDeath:
		return "death"
	case WaypointRespawn:
		return "respawn"
	}
	return "unknown"
}

// MarshalText lets WaypointKind serialize by name
func (k WaypointKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Waypoint is a timestamped marker on a combatant's reconstructed path
type Waypoint struct {
	T    float64      `json:"t"`
	X    float64      `json:"x"`
	Y    float64      `json:"y"`
	Kind WaypointKind `json:"kind"`
}

// Position returns the waypoint coordinate
func (w Waypoint) Position() Point {
	return Point{X: w.X, Y: w.Y}
}

// Path is a combatant's waypoints sorted by time
type Path []Waypoint

type deathWindow struct {
	start, end float64 // end is +Inf when no respawn is emitted
}

func (w deathWindow) hides(t float64) bool {
	return t > w.start && t <= w.end
}

// BuildPath reconstructs one combatant's waypoint sequence from its movement
// samples and normalized kill/death entries. durationMin bounds respawns: a
// death whose respawn would land after the end of the match gets none.
//
// While a combatant is dead the path carries only the death and its respawn,
// so each death is immediately followed by its respawn.
func BuildPath(c Combatant, entries []Entry, policy Policy, durationMin float64) (Path, []Drop) {
	var drops []Drop
	path := make(Path, 0, len(c.Movement)+len(entries)*2+1)

	if len(c.Movement) > 0 {
		for _, s := range c.Movement {
			path = append(path, Waypoint{T: s.T, X: s.X, Y: s.Y, Kind: WaypointMove})
		}
	} else {
		f := Fountain(c.Team)
		path = append(path, Waypoint{T: 0, X: f.X, Y: f.Y, Kind: WaypointSpawn})
		drops = append(drops, Drop{Issue: IssueMissingMovementData, Ref: c.ID, Reason: "spawn-point path"})
	}

	for _, en := range entries {
		if en.Role != RoleKiller {
			continue
		}
		if en.Event.Position == nil {
			drops = append(drops, pathDrop(c, en, "kill without position"))
			continue
		}
		p := en.Event.Position
		path = append(path, Waypoint{T: en.Event.Minutes(), X: p.X, Y: p.Y, Kind: WaypointKill})
	}

	fountain := Fountain(c.Team)
	var windows []deathWindow
	lastRespawn := math.Inf(-1)
	for _, en := range entries {
		if en.Role != RoleVictim {
			continue
		}
		if en.Event.Position == nil {
			drops = append(drops, pathDrop(c, en, "death without position"))
			continue
		}
		t := en.Event.Minutes()
		if t < lastRespawn {
			drops = append(drops, pathDrop(c, en, "death while already dead"))
			continue
		}
		p := en.Event.Position
		path = append(path, Waypoint{T: t, X: p.X, Y: p.Y, Kind: WaypointDeath})

		respawnAt := t + policy.RespawnDelay(t)
		if respawnAt > durationMin {
			windows = append(windows, deathWindow{start: t, end: math.Inf(1)})
			lastRespawn = math.Inf(1)
			continue
		}
		path = append(path, Waypoint{T: respawnAt, X: fountain.X, Y: fountain.Y, Kind: WaypointRespawn})
		windows = append(windows, deathWindow{start: t, end: respawnAt})
		lastRespawn = respawnAt
	}

	if len(windows) > 0 {
		kept := path[:0]
		for _, w := range path {
			if w.Kind != WaypointDeath && w.Kind != WaypointRespawn && hiddenByDeath(windows, w.T) {
				continue
			}
			kept = append(kept, w)
		}
		path = kept
	}

	sort.SliceStable(path, func(i, j int) bool {
		return path[i].T < path[j].T
	})
	return path, drops
}

func pathDrop(c Combatant, en Entry, reason string) Drop {
	return Drop{
		Issue:       IssueMalformedEvent,
		Kind:        en.Event.Kind,
		TimestampMs: en.Event.TimestampMs,
		Ref:         c.ID,
		Reason:      reason,
	}
}

func hiddenByDeath(windows []deathWindow, t float64) bool {
	for _, w := range windows {
		if w.hides(t) {
			return true
		}
	}
	return false
}
