package timeline

import (
	"math"
	"testing"
)

func TestGoldDifferential_NoKills(t *testing.T) {
	roster := []Combatant{
		{ID: "b1", Team: TeamBlue, GoldEarned: 10000},
		{ID: "b2", Team: TeamBlue, GoldEarned: 12000},
		{ID: "r1", Team: TeamRed, GoldEarned: 9000},
		{ID: "r2", Team: TeamRed, GoldEarned: 11000},
	}
	teams := map[string]Team{"b1": TeamBlue, "b2": TeamBlue, "r1": TeamRed, "r2": TeamRed}
	policy := DefaultPolicy()

	series := goldDifferential(roster, nil, teams, 30, policy)

	if len(series.Samples) != policy.GoldSeriesResolution+1 {
		t.Fatalf("got %d samples, want %d", len(series.Samples), policy.GoldSeriesResolution+1)
	}
	if series.Samples[0].T != 0 || series.Samples[len(series.Samples)-1].T != 30 {
		t.Errorf("series spans [%v, %v], want [0, 30]", series.Samples[0].T, series.Samples[len(series.Samples)-1].T)
	}

	for _, s := range series.Samples {
		progress := s.T / 30
		blue := (500 + 9500*progress) + (500 + 11500*progress)
		red := (500 + 8500*progress) + (500 + 10500*progress)
		if math.Abs(s.Diff-(blue-red)) > 1e-6 {
			t.Errorf("diff(%v) = %v, want linear estimate %v", s.T, s.Diff, blue-red)
		}
	}

	if series.Scale != 10000 {
		t.Errorf("Scale = %v, want the 10000 floor", series.Scale)
	}
	if series.MaxBlue.T != 30 || math.Abs(series.MaxBlue.Diff-2000) > 1e-6 {
		t.Errorf("MaxBlue = %+v, want 2000 at 30", series.MaxBlue)
	}
	if series.MaxRed.Diff != 0 {
		t.Errorf("MaxRed = %+v, red never led", series.MaxRed)
	}
	if len(series.LeadChanges) != 0 {
		t.Errorf("LeadChanges = %v, want none", series.LeadChanges)
	}
}

func TestGoldDifferential_KillCorrection(t *testing.T) {
	roster := []Combatant{
		{ID: "b", Team: TeamBlue, GoldEarned: 10000},
		{ID: "r", Team: TeamRed, GoldEarned: 10000},
	}
	teams := map[string]Team{"b": TeamBlue, "r": TeamRed}
	events := []MatchEvent{killAt(minutes(15), "b", "r", pt(7000, 7000))}

	series := goldDifferential(roster, events, teams, 30, DefaultPolicy())

	at := func(m float64) float64 {
		for _, s := range series.Samples {
			if math.Abs(s.T-m) < 1e-9 {
				return s.Diff
			}
		}
		t.Fatalf("no sample at %v", m)
		return 0
	}

	// before the kill the baseline carries a negative share of the bounty
	if got, want := at(14.5), -300*14.5/30; math.Abs(got-want) > 1e-6 {
		t.Errorf("diff(14.5) = %v, want %v", got, want)
	}
	if got, want := at(15), 300-300*0.5; math.Abs(got-want) > 1e-6 {
		t.Errorf("diff(15) = %v, want %v", got, want)
	}
	if got := at(30); math.Abs(got) > 1e-6 {
		t.Errorf("diff(30) = %v, want 0 for equal final gold", got)
	}
}

func TestGoldDifferential_LeadChanges(t *testing.T) {
	roster := []Combatant{
		{ID: "b", Team: TeamBlue, GoldEarned: 10500},
		{ID: "r", Team: TeamRed, GoldEarned: 10000},
	}
	teams := map[string]Team{"b": TeamBlue, "r": TeamRed}
	events := []MatchEvent{killAt(minutes(1), "r", "b", pt(7000, 7000))}

	series := goldDifferential(roster, events, teams, 30, DefaultPolicy())

	if len(series.LeadChanges) != 2 {
		t.Fatalf("LeadChanges = %+v, want 2", series.LeadChanges)
	}
	if series.LeadChanges[0].Leader != TeamRed {
		t.Errorf("first lead change to %s, want red", series.LeadChanges[0].Leader)
	}
	last := series.LeadChanges[1]
	if last.Leader != TeamBlue || math.Abs(last.T-11.25) > 1e-6 {
		t.Errorf("second lead change = %+v, want blue at 11.25", last)
	}
	if series.MaxRed.Diff >= 0 {
		t.Errorf("MaxRed = %+v, want a red lead", series.MaxRed)
	}
}

func TestGoldDifferential_ScaleGrows(t *testing.T) {
	roster := []Combatant{
		{ID: "b", Team: TeamBlue, GoldEarned: 30000},
		{ID: "r", Team: TeamRed, GoldEarned: 5000},
	}
	teams := map[string]Team{"b": TeamBlue, "r": TeamRed}

	series := goldDifferential(roster, nil, teams, 30, DefaultPolicy())
	if math.Abs(series.Scale-25000) > 1e-6 {
		t.Errorf("Scale = %v, want 25000", series.Scale)
	}
}
