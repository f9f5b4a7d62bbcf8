package timeline

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

var (
	// ErrNegativeDuration is returned for a match with a negative duration
	ErrNegativeDuration = errors.New("negative match duration")
	// ErrInvalidRoster is returned when combatant ids are empty or repeated
	ErrInvalidRoster = errors.New("invalid roster")
)

type options struct {
	policy Policy
	logger *slog.Logger
	drops  []Drop
}

// Option configures New
type Option func(*options)

// WithPolicy overrides DefaultPolicy
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithDrops records drops made by an upstream adapter in the engine report
func WithDrops(drops []Drop) Option {
	return func(o *options) { o.drops = append(o.drops, drops...) }
}

// WithLogger sets the logger used to report degraded input
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Engine answers state queries for one match. It is immutable after New and
// safe for concurrent use; every query is a pure function of (match, t).
type Engine struct {
	id          string
	durationMin float64
	policy      Policy

	roster []Combatant
	index  map[string]int
	teams  map[string]Team

	timelines Timelines
	paths     map[string]Path
	wards     []WardInstance
	gold      GoldSeries
	report    Report
}

// New normalizes the match and precomputes paths, wards and the gold series
func New(m Match, opts ...Option) (*Engine, error) {
	o := options{policy: DefaultPolicy(), logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.policy.Validate(); err != nil {
		return nil, err
	}
	if m.DurationSeconds < 0 {
		return nil, fmt.Errorf("%w: %d seconds", ErrNegativeDuration, m.DurationSeconds)
	}

	seconds := m.DurationSeconds
	if seconds == 0 {
		seconds = o.policy.DefaultDurationSeconds
	}

	e := &Engine{
		id:          m.ID,
		durationMin: math.Ceil(float64(seconds) / 60),
		policy:      o.policy,
		roster:      make([]Combatant, len(m.Combatants)),
		index:       make(map[string]int, len(m.Combatants)),
		teams:       make(map[string]Team, len(m.Combatants)),
		paths:       make(map[string]Path, len(m.Combatants)),
	}
	copy(e.roster, m.Combatants)

	for i, c := range e.roster {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: combatant %d has no id", ErrInvalidRoster, i)
		}
		if _, dup := e.index[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate combatant id %q", ErrInvalidRoster, c.ID)
		}
		e.index[c.ID] = i
		e.teams[c.ID] = c.Team
	}

	e.timelines = Normalize(m.Events, e.roster)
	e.report.Drops = append(o.drops, e.timelines.Report.Drops...)

	for _, c := range e.roster {
		path, drops := BuildPath(c, e.timelines.For(c.ID, RoleKiller, RoleVictim), e.policy, e.durationMin)
		e.paths[c.ID] = path
		e.report.Drops = append(e.report.Drops, drops...)
	}

	e.wards = deriveWards(e.timelines.Events, e.teams, e.policy)
	e.gold = goldDifferential(e.roster, e.timelines.Events, e.teams, e.durationMin, e.policy)

	if n := len(e.report.Drops); n > 0 {
		o.logger.Warn("match data degraded",
			"match", m.ID,
			"drops", n,
			"missing_reference", e.report.Count(IssueMissingReference),
			"missing_movement", e.report.Count(IssueMissingMovementData),
			"malformed", e.report.Count(IssueMalformedEvent),
		)
		for _, d := range e.report.Drops {
			o.logger.Debug("dropped input", "match", m.ID, "drop", d.String())
		}
	}

	return e, nil
}

// ID returns the match id
func (e *Engine) ID() string { return e.id }

// Duration returns the match length in whole minutes
func (e *Engine) Duration() float64 { return e.durationMin }

// Policy returns the policy the engine was built with
func (e *Engine) Policy() Policy { return e.policy }

// Report lists the input the engine dropped or approximated
func (e *Engine) Report() Report { return e.report }

// Combatants returns a copy of the roster in input order
func (e *Engine) Combatants() []Combatant {
	out := make([]Combatant, len(e.roster))
	copy(out, e.roster)
	return out
}

// Events returns the normalized event log
func (e *Engine) Events() []MatchEvent {
	out := make([]MatchEvent, len(e.timelines.Events))
	copy(out, e.timelines.Events)
	return out
}

// Path returns the reconstructed waypoints of one combatant
func (e *Engine) Path(id string) (Path, bool) {
	p, ok := e.paths[id]
	if !ok {
		return nil, false
	}
	out := make(Path, len(p))
	copy(out, p)
	return out, true
}

func (e *Engine) clamp(t float64) float64 {
	return math.Max(0, math.Min(t, e.durationMin))
}

// Sample returns every combatant's state at t, in roster order. t is
// clamped to [0, Duration()].
func (e *Engine) Sample(t float64) []CombatantState {
	t = e.clamp(t)
	out := make([]CombatantState, len(e.roster))
	for i, c := range e.roster {
		out[i] = e.stateOf(c, t)
	}
	return out
}

// SampleCombatant returns one combatant's state at t
func (e *Engine) SampleCombatant(id string, t float64) (CombatantState, bool) {
	i, ok := e.index[id]
	if !ok {
		return CombatantState{}, false
	}
	return e.stateOf(e.roster[i], e.clamp(t)), true
}

func (e *Engine) stateOf(c Combatant, t float64) CombatantState {
	st := e.paths[c.ID].StateAt(t, e.policy)
	st.CombatantID = c.ID
	st.ChampionName = c.ChampionName
	st.Team = c.Team
	return st
}

// ActiveWards returns the wards standing at t
func (e *Engine) ActiveWards(t float64) []WardInstance {
	t = e.clamp(t)
	var out []WardInstance
	for _, w := range e.wards {
		if w.ActiveAt(t) {
			out = append(out, w)
		}
	}
	return out
}

// ActiveTowers returns the towers still standing at t
func (e *Engine) ActiveTowers(t float64) []Tower {
	return activeTowers(e.timelines.Events, e.clamp(t), e.policy)
}

// GoldDifferentialSeries returns the whole-match gold estimate
func (e *Engine) GoldDifferentialSeries() GoldSeries {
	g := e.gold
	g.Samples = append([]GoldDifferentialSample(nil), e.gold.Samples...)
	g.LeadChanges = append([]LeadChange(nil), e.gold.LeadChanges...)
	return g
}

// LiveInventory returns the displayed items of one combatant at t
func (e *Engine) LiveInventory(id string, t float64) ([]int, bool) {
	i, ok := e.index[id]
	if !ok {
		return nil, false
	}
	return liveInventory(&e.roster[i], e.timelines.For(id, RoleOwner), e.clamp(t), e.policy), true
}

// Scoreboard returns KDA, scaled gold and CS, and live items at t
func (e *Engine) Scoreboard(t float64) Scoreboard {
	return e.scoreboard(e.clamp(t))
}

// Feed returns kills, ward placements and building kills at or before t
func (e *Engine) Feed(t float64) []FeedEntry {
	return e.feed(e.clamp(t))
}
