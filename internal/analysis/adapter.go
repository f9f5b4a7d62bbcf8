package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"riftreplay/internal/timeline"
)

// ToMatch converts a backend match payload into engine input. Combatants
// are keyed by PUUID (or a participant-based id when it is missing). Event
// participants are resolved by participant id first and champion name
// second; anything unresolvable is passed through as an unknown reference so
// the engine reports it. Payload rows that cannot be interpreted at all are
// returned as drops.
func ToMatch(md MatchData) (timeline.Match, []timeline.Drop) {
	var drops []timeline.Drop
	r := newResolver(md.Participants)

	m := timeline.Match{
		ID:              md.MatchID,
		DurationSeconds: md.GameDuration,
		Combatants:      make([]timeline.Combatant, 0, len(md.Participants)),
	}

	for i, p := range md.Participants {
		c := timeline.Combatant{
			ID:            r.ids[i],
			ParticipantID: r.pids[i],
			Name:          p.RiotID,
			ChampionName:  p.ChampionName,
			Team:          teamOf(p, i),
			GoldEarned:    p.GoldEarned,
			MinionsKilled: p.TotalMinionsKilled,
			FinalItems:    p.Items(),
			Loadout:       loadoutOf(p),
		}
		for _, s := range md.AllPositions[strconv.Itoa(r.pids[i])] {
			if !s.Valid() {
				continue
			}
			c.Movement = append(c.Movement, timeline.PositionSample{T: s.T, X: *s.X, Y: *s.Y})
		}
		m.Combatants = append(m.Combatants, c)

		for _, it := range p.ItemBuild {
			e := timeline.MatchEvent{
				TimestampMs: it.Timestamp,
				OwnerRef:    c.ID,
				ItemID:      it.ItemID,
				BeforeID:    it.BeforeID,
				AfterID:     it.AfterID,
			}
			switch it.Type {
			case ItemPurchased:
				e.Kind = timeline.EventItemPurchased
			case ItemSold:
				e.Kind = timeline.EventItemSold
			case ItemUndo:
				e.Kind = timeline.EventItemUndone
			case ItemDestroyed:
				e.Kind = timeline.EventItemDestroyed
			default:
				drops = append(drops, malformed(it.Timestamp, c.ID, "unknown item transaction "+it.Type))
				continue
			}
			m.Events = append(m.Events, e)
		}
	}

	for _, k := range md.KillEvents {
		e := timeline.MatchEvent{
			Kind:        timeline.EventKill,
			TimestampMs: k.Timestamp,
			KillerRef:   r.ref(k.KillerID, k.Killer),
			VictimRef:   r.ref(k.VictimID, k.Victim),
			Position:    point(k.Position),
		}
		for _, a := range k.AssistingIDs {
			if ref := r.ref(a, nil); ref != "" {
				e.AssistRefs = append(e.AssistRefs, ref)
			}
		}
		m.Events = append(m.Events, e)
	}

	for _, w := range md.WardEvents {
		e := timeline.MatchEvent{
			TimestampMs:    w.Timestamp,
			WardType:       timeline.WardType(w.WardType),
			Position:       point(w.Position),
			EndTimestampMs: w.EndTime,
			Estimated:      w.IsEstimated,
		}
		switch w.Type {
		case WardPlaced, "":
			e.Kind = timeline.EventWardPlaced
			e.CreatorRef = r.ref(w.CreatorID, nil)
		case WardKill:
			e.Kind = timeline.EventWardExpired
			e.KillerRef = r.ref(w.KillerID, nil)
		default:
			drops = append(drops, malformed(w.Timestamp, "", "unknown ward event "+w.Type))
			continue
		}
		m.Events = append(m.Events, e)
	}

	for _, b := range md.BuildingEvents {
		m.Events = append(m.Events, timeline.MatchEvent{
			Kind:         timeline.EventBuildingDestroyed,
			TimestampMs:  b.Timestamp,
			BuildingType: b.BuildingType,
			BuildingTeam: timeline.Team(b.TeamID),
			Lane:         timeline.Lane(b.LaneType),
			Tier:         timeline.TowerTier(b.TowerType),
			Position:     point(b.Position),
		})
	}

	return m, drops
}

type resolver struct {
	ids     []string
	pids    []int
	byPID   map[int]string
	byChamp map[string]string
}

func newResolver(ps []Participant) *resolver {
	r := &resolver{
		ids:     make([]string, len(ps)),
		pids:    make([]int, len(ps)),
		byPID:   make(map[int]string, len(ps)),
		byChamp: make(map[string]string, len(ps)),
	}
	for i, p := range ps {
		pid := p.PID()
		if pid == 0 {
			// Riot orders participants by id
			pid = i + 1
		}
		id := p.PUUID
		if id == "" {
			id = "participant-" + strconv.Itoa(pid)
		}
		r.ids[i], r.pids[i] = id, pid
		r.byPID[pid] = id
		if name := strings.ToLower(p.ChampionName); name != "" {
			r.byChamp[name] = id
		}
	}
	return r
}

// ref resolves an event participant. Zero ids without an actor are
// legitimately absent (executions, minion kills).
func (r *resolver) ref(pid int, actor *Actor) string {
	if id, ok := r.byPID[pid]; ok {
		return id
	}
	if actor != nil && actor.ChampionName != "" {
		if id, ok := r.byChamp[strings.ToLower(actor.ChampionName)]; ok {
			return id
		}
	}
	if pid == 0 {
		return ""
	}
	return fmt.Sprintf("unknown-participant-%d", pid)
}

func loadoutOf(p Participant) timeline.Loadout {
	l := timeline.Loadout{Spells: [2]int{p.Summoner1ID, p.Summoner2ID}}
	if p.Perks != nil {
		l.Keystone = p.Perks.Keystone
		l.PrimaryStyle = p.Perks.PrimaryStyle
		l.SubStyle = p.Perks.SubStyle
		l.StatShards = [3]int{p.Perks.StatPerks.Offense, p.Perks.StatPerks.Flex, p.Perks.StatPerks.Defense}
	}
	return l
}

// teamOf prefers the explicit team id, then participant numbering (1-5 are
// blue), then roster position.
func teamOf(p Participant, index int) timeline.Team {
	switch t := timeline.Team(p.Team()); t {
	case timeline.TeamBlue, timeline.TeamRed:
		return t
	}
	if p.PID() >= 1 && p.PID() <= 10 {
		if p.PID() <= 5 {
			return timeline.TeamBlue
		}
		return timeline.TeamRed
	}
	if index < 5 {
		return timeline.TeamBlue
	}
	return timeline.TeamRed
}

func point(p *Pos) *timeline.Point {
	if !p.Valid() {
		return nil
	}
	return &timeline.Point{X: *p.X, Y: *p.Y}
}

func malformed(ts int64, ref, reason string) timeline.Drop {
	return timeline.Drop{Issue: timeline.IssueMalformedEvent, TimestampMs: ts, Ref: ref, Reason: reason}
}
