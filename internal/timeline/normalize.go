package timeline

import (
	"fmt"
	"sort"
)

// Role is how a combatant takes part in an event
type Role int

const (
	RoleKiller Role = iota + 1
	RoleVictim
	RoleAssist
	RoleOwner
	RoleCreator
)

func (r Role) String() string {
	switch r {
	case RoleKiller:
		return "killer"
	case RoleVictim:
		return "victim"
	case RoleAssist:
		return "assist"
	case RoleOwner:
		return "owner"
	case RoleCreator:
		return "creator"
	}
	return "unknown"
}

// Entry is one event seen from a single combatant's point of view
type Entry struct {
	Role  Role
	Event MatchEvent
}

// Issue classifies data the engine had to degrade around
type Issue int

const (
	IssueMissingReference Issue = iota + 1
	IssueMissingMovementData
	IssueMalformedEvent
)

func (i Issue) String() string {
	switch i {
	case IssueMissingReference:
		return "missing_reference"
	case IssueMissingMovementData:
		return "missing_movement_data"
	case IssueMalformedEvent:
		return "malformed_event"
	}
	return "unknown"
}

// Drop records one piece of input that was ignored
type Drop struct {
	Issue       Issue
	Kind        EventKind
	TimestampMs int64
	Ref         string
	Reason      string
}

func (d Drop) String() string {
	return fmt.Sprintf("%s: %s@%dms %s %s", d.Issue, d.Kind, d.TimestampMs, d.Ref, d.Reason)
}

// Report collects everything dropped or approximated while normalizing
type Report struct {
	Drops []Drop
}

// Count returns the number of drops of the given issue
func (r Report) Count(issue Issue) int {
	n := 0
	for _, d := range r.Drops {
		if d.Issue == issue {
			n++
		}
	}
	return n
}

func (r *Report) add(issue Issue, e MatchEvent, ref, reason string) {
	r.Drops = append(r.Drops, Drop{
		Issue:       issue,
		Kind:        e.Kind,
		TimestampMs: e.TimestampMs,
		Ref:         ref,
		Reason:      reason,
	})
}

// Timelines is the output of Normalize
type Timelines struct {
	// Events holds every accepted event with unresolved references cleared,
	// stably sorted by timestamp
	Events []MatchEvent
	// ByCombatant maps Combatant.ID to that combatant's entries in time order
	ByCombatant map[string][]Entry
	Report      Report
}

// For returns the entries of one combatant with the given roles, in order.
// With no roles every entry is returned.
func (tl Timelines) For(id string, roles ...Role) []Entry {
	entries := tl.ByCombatant[id]
	if len(roles) == 0 {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		for _, r := range roles {
			if e.Role == r {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Normalize attributes raw events to roster members. Attributions that cannot
// be resolved are dropped individually; an event is kept as long as one of
// its references resolves (or it carries none, like building kills).
func Normalize(events []MatchEvent, roster []Combatant) Timelines {
	known := make(map[string]bool, len(roster))
	for _, c := range roster {
		known[c.ID] = true
	}

	sorted := make([]MatchEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimestampMs < sorted[j].TimestampMs
	})

	tl := Timelines{ByCombatant: make(map[string][]Entry, len(roster))}
	for _, c := range roster {
		tl.ByCombatant[c.ID] = nil
	}

	attribute := func(id string, role Role, e MatchEvent) {
		tl.ByCombatant[id] = append(tl.ByCombatant[id], Entry{Role: role, Event: e})
	}

	// resolve clears ref when unknown; empty refs are legitimate (no killer)
	resolve := func(e MatchEvent, ref string) string {
		if ref == "" {
			return ""
		}
		if !known[ref] {
			tl.Report.add(IssueMissingReference, e, ref, "not in roster")
			return ""
		}
		return ref
	}

	for _, raw := range sorted {
		e := raw
		if e.TimestampMs < 0 {
			tl.Report.add(IssueMalformedEvent, e, "", "negative timestamp")
			continue
		}

		switch e.Kind {
		case EventKill:
			e.KillerRef = resolve(e, e.KillerRef)
			e.VictimRef = resolve(e, e.VictimRef)
			if len(e.AssistRefs) > 0 {
				assists := make([]string, 0, len(e.AssistRefs))
				for _, a := range e.AssistRefs {
					if id := resolve(e, a); id != "" {
						assists = append(assists, id)
					}
				}
				e.AssistRefs = assists
			}
			if e.KillerRef == "" && e.VictimRef == "" {
				continue
			}
			tl.Events = append(tl.Events, e)
			if e.KillerRef != "" {
				attribute(e.KillerRef, RoleKiller, e)
			}
			if e.VictimRef != "" {
				attribute(e.VictimRef, RoleVictim, e)
			}
			for _, a := range e.AssistRefs {
				attribute(a, RoleAssist, e)
			}

		case EventWardPlaced:
			if e.Position == nil {
				tl.Report.add(IssueMalformedEvent, e, e.CreatorRef, "ward without position")
				continue
			}
			e.CreatorRef = resolve(e, e.CreatorRef)
			if e.CreatorRef == "" {
				if raw.CreatorRef == "" {
					tl.Report.add(IssueMissingReference, e, "", "ward without creator")
				}
				continue
			}
			tl.Events = append(tl.Events, e)
			attribute(e.CreatorRef, RoleCreator, e)

		case EventWardExpired:
			e.KillerRef = resolve(e, e.KillerRef)
			tl.Events = append(tl.Events, e)

		case EventBuildingDestroyed:
			tl.Events = append(tl.Events, e)

		case EventItemPurchased, EventItemSold, EventItemUndone, EventItemDestroyed:
			e.OwnerRef = resolve(e, e.OwnerRef)
			if e.OwnerRef == "" {
				if raw.OwnerRef == "" {
					tl.Report.add(IssueMissingReference, e, "", "item transaction without owner")
				}
				continue
			}
			tl.Events = append(tl.Events, e)
			attribute(e.OwnerRef, RoleOwner, e)

		default:
			tl.Report.add(IssueMalformedEvent, e, "", "unknown event kind")
		}
	}

	return tl
}
