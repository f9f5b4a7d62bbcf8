package riot

import (
	"sort"
	"strconv"

	"riftreplay/internal/analysis"
)

// Extract builds the replay payload of one game from its match-v5 and
// timeline documents: roster, item builds, kills, wards, buildings and the
// per-frame positions of every participant.
func Extract(match *MatchResponse, timeline *TimelineResponse) *analysis.MatchData {
	md := &analysis.MatchData{
		MatchID:      match.Metadata.MatchID,
		GameCreation: match.Info.GameCreation,
		GameDuration: match.Info.GameDuration,
		GameMode:     match.Info.GameMode,
		QueueID:      match.Info.QueueID,
	}
	if md.MatchID == "" {
		md.MatchID = timeline.Metadata.MatchID
	}

	frames := timeline.Info.Frames
	events := flattenEvents(frames)
	builds := extractItemBuilds(events)

	actors := make(map[int]*analysis.Actor, len(match.Info.Participants))
	for _, p := range match.Info.Participants {
		actors[p.ParticipantID] = &analysis.Actor{
			ChampionName: p.ChampionName,
			TeamID:       p.TeamID,
			RiotID:       p.RiotIdGameName + "#" + p.RiotIdTagline,
		}
		md.Participants = append(md.Participants, analysis.Participant{
			PUUID:                p.PUUID,
			RiotID:               p.RiotID(),
			ChampionName:         p.ChampionName,
			ChampionID:           p.ChampionID,
			ParticipantID:        p.ParticipantID,
			TeamID:               p.TeamID,
			Position:             p.TeamPosition,
			Win:                  p.Win,
			ChampLevel:           p.ChampLevel,
			Kills:                p.Kills,
			Deaths:               p.Deaths,
			Assists:              p.Assists,
			TotalMinionsKilled:   p.TotalMinionsKilled,
			NeutralMinionsKilled: p.NeutralMinionsKilled,
			GoldEarned:           p.GoldEarned,
			VisionScore:          p.VisionScore,
			Item0:                p.Item0,
			Item1:                p.Item1,
			Item2:                p.Item2,
			Item3:                p.Item3,
			Item4:                p.Item4,
			Item5:                p.Item5,
			Item6:                p.Item6,
			Summoner1ID:          p.Summoner1ID,
			Summoner2ID:          p.Summoner2ID,
			Perks:                perksOf(p.Perks),
			ItemBuild:            builds[p.ParticipantID],
		})
	}

	for _, e := range events {
		switch e.Type {
		case EventChampionKill:
			md.KillEvents = append(md.KillEvents, analysis.KillEvent{
				Timestamp:    e.Timestamp,
				KillerID:     e.KillerID,
				VictimID:     e.VictimID,
				AssistingIDs: e.AssistingParticipantIDs,
				Position:     toPos(e.Position),
				Killer:       actors[e.KillerID],
				Victim:       actors[e.VictimID],
			})
		case EventWardPlaced, EventWardKill:
			md.WardEvents = append(md.WardEvents, extractWard(e, frames))
		case EventBuildingKill:
			md.BuildingEvents = append(md.BuildingEvents, analysis.BuildingEvent{
				Timestamp:    e.Timestamp,
				Type:         EventBuildingKill,
				TeamID:       e.TeamID,
				BuildingType: e.BuildingType,
				LaneType:     e.LaneType,
				TowerType:    e.TowerType,
				Position:     toPos(e.Position),
			})
		}
	}

	md.AllPositions = extractPositions(frames)
	return md
}

func flattenEvents(frames []TimelineFrame) []TimelineEvent {
	var events []TimelineEvent
	for _, f := range frames {
		events = append(events, f.Events...)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp < events[j].Timestamp })
	return events
}

// perksOf summarizes a rune page the way the backend stores it: the keystone
// is the first selection of the primary tree
func perksOf(p Perks) *analysis.Perks {
	if len(p.Styles) == 0 {
		return nil
	}
	out := &analysis.Perks{
		StatPerks: analysis.StatPerks{
			Offense: p.StatPerks.Offense,
			Flex:    p.StatPerks.Flex,
			Defense: p.StatPerks.Defense,
		},
	}
	for i, s := range p.Styles {
		primary := s.Description == "primaryStyle" || (s.Description == "" && i == 0)
		switch {
		case primary && out.PrimaryStyle == 0:
			out.PrimaryStyle = s.Style
			if len(s.Selections) > 0 {
				out.Keystone = s.Selections[0].Perk
			}
		case !primary && out.SubStyle == 0:
			out.SubStyle = s.Style
		}
	}
	return out
}

func extractItemBuilds(events []TimelineEvent) map[int][]analysis.ItemTransaction {
	builds := make(map[int][]analysis.ItemTransaction)
	for _, e := range events {
		switch e.Type {
		case EventItemPurchased, EventItemSold, EventItemUndo, EventItemDestroyed:
		default:
			continue
		}
		if e.ParticipantID == 0 {
			continue
		}
		builds[e.ParticipantID] = append(builds[e.ParticipantID], analysis.ItemTransaction{
			Timestamp: e.Timestamp,
			Type:      e.Type,
			ItemID:    e.ItemID,
			AfterID:   e.AfterID,
			BeforeID:  e.BeforeID,
		})
	}
	return builds
}

// extractWard copies a ward event. Riot omits ward positions. A placement
// is estimated from the creator's frame positions and snapped to the most
// likely ward spot; a kill gets the killer's estimated position, which only
// bounds where the ward stood.
func extractWard(e TimelineEvent, frames []TimelineFrame) analysis.WardEvent {
	w := analysis.WardEvent{
		Timestamp: e.Timestamp,
		Type:      e.Type,
		WardType:  e.WardType,
		CreatorID: e.CreatorID,
		KillerID:  e.KillerID,
		Position:  toPos(e.Position),
	}
	if w.WardType == "" {
		w.WardType = "UNKNOWN"
	}
	if e.Position != nil {
		return w
	}

	switch e.Type {
	case EventWardPlaced:
		w.IsEstimated = true
		x, y, ok := participantPosition(frames, e.CreatorID, e.Timestamp)
		if !ok {
			return w
		}
		x, y, _ = SnapToHotspot(x, y)
		w.Position = &analysis.Pos{X: &x, Y: &y}
	case EventWardKill:
		w.IsEstimated = true
		if x, y, ok := participantPosition(frames, e.KillerID, e.Timestamp); ok {
			w.Position = &analysis.Pos{X: &x, Y: &y}
		}
	}
	return w
}

// participantPosition interpolates a participant's position between the frames
// bounding ts, falling back to the last frame at or before ts.
func participantPosition(frames []TimelineFrame, pid int, ts int64) (float64, float64, bool) {
	if pid == 0 {
		return 0, 0, false
	}
	key := strconv.Itoa(pid)

	var prev, next *TimelineFrame
	for i := range frames {
		if frames[i].Timestamp <= ts {
			prev = &frames[i]
			continue
		}
		next = &frames[i]
		break
	}
	if prev == nil {
		return 0, 0, false
	}

	p1 := prev.ParticipantFrames[key].Position
	if next != nil {
		p2 := next.ParticipantFrames[key].Position
		if p1 != nil && p2 != nil && next.Timestamp > prev.Timestamp {
			ratio := float64(ts-prev.Timestamp) / float64(next.Timestamp-prev.Timestamp)
			x := float64(int(float64(p1.X) + float64(p2.X-p1.X)*ratio))
			y := float64(int(float64(p1.Y) + float64(p2.Y-p1.Y)*ratio))
			return x, y, true
		}
	}
	if p1 == nil {
		return 0, 0, false
	}
	return float64(p1.X), float64(p1.Y), true
}

func extractPositions(frames []TimelineFrame) map[string][]analysis.Pos {
	all := make(map[string][]analysis.Pos)
	for _, f := range frames {
		minutes := float64(f.Timestamp) / 60000
		for key, pf := range f.ParticipantFrames {
			if _, err := strconv.Atoi(key); err != nil || pf.Position == nil {
				continue
			}
			x, y := float64(pf.Position.X), float64(pf.Position.Y)
			all[key] = append(all[key], analysis.Pos{T: minutes, X: &x, Y: &y})
		}
	}
	return all
}

func toPos(p *Position) *analysis.Pos {
	if p == nil {
		return nil
	}
	x, y := float64(p.X), float64(p.Y)
	return &analysis.Pos{X: &x, Y: &y}
}
