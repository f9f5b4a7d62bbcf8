package timeline

import "math"

// GoldDifferentialSample is the estimated blue-minus-red gold at T minutes
type GoldDifferentialSample struct {
	T    float64 `json:"t"`
	Diff float64 `json:"diff"`
}

// LeadChange marks an interpolated zero crossing of the differential
type LeadChange struct {
	T      float64 `json:"t"`
	Leader Team    `json:"leader"`
}

// GoldSeries is the differential series plus the markers derived from it
type GoldSeries struct {
	Samples []GoldDifferentialSample `json:"samples"`
	// Largest blue lead (positive diff) and largest red lead (negative diff);
	// zero-valued when that team never led
	MaxBlue GoldDifferentialSample `json:"maxBlue"`
	MaxRed  GoldDifferentialSample `json:"maxRed"`
	// Scale is the absolute plot bound, never below Policy.MinLeadScale
	Scale       float64      `json:"scale"`
	LeadChanges []LeadChange `json:"leadChanges,omitempty"`
}

// goldDifferential estimates team gold over time. Each combatant's gold grows
// linearly from the starting gold to its final total; kill bounties are then
// moved from that smooth baseline to the moment each kill happened. This is
// an approximation for plotting, not a reconstruction of true gold income.
func goldDifferential(roster []Combatant, events []MatchEvent, teams map[string]Team, durationMin float64, policy Policy) GoldSeries {
	var kills []MatchEvent
	totalKillGold := map[Team]float64{}
	for _, e := range events {
		if e.Kind != EventKill || e.KillerRef == "" {
			continue
		}
		kills = append(kills, e)
		totalKillGold[teams[e.KillerRef]] += policy.KillBounty
	}

	n := policy.GoldSeriesResolution
	interval := durationMin / float64(n)
	samples := make([]GoldDifferentialSample, 0, n+1)

	for i := 0; i <= n; i++ {
		t := float64(i) * interval
		progress := t / durationMin

		gold := map[Team]float64{}
		for _, c := range roster {
			gold[c.Team] += policy.StartingGold + (float64(c.GoldEarned)-policy.StartingGold)*progress
		}

		killGold := map[Team]float64{}
		for _, k := range kills {
			if k.Minutes() > t {
				break
			}
			killGold[teams[k.KillerRef]] += policy.KillBounty
		}

		blue := gold[TeamBlue] - totalKillGold[TeamBlue]*progress + killGold[TeamBlue]
		red := gold[TeamRed] - totalKillGold[TeamRed]*progress + killGold[TeamRed]
		samples = append(samples, GoldDifferentialSample{T: t, Diff: blue - red})
	}

	series := GoldSeries{Samples: samples, Scale: policy.MinLeadScale}
	for i, s := range samples {
		if s.Diff > series.MaxBlue.Diff {
			series.MaxBlue = s
		}
		if s.Diff < series.MaxRed.Diff {
			series.MaxRed = s
		}
		if math.Abs(s.Diff) > series.Scale {
			series.Scale = math.Abs(s.Diff)
		}
		if i == 0 {
			continue
		}
		prev := samples[i-1]
		if (prev.Diff > 0 && s.Diff < 0) || (prev.Diff < 0 && s.Diff > 0) {
			ratio := math.Abs(prev.Diff) / (math.Abs(prev.Diff) + math.Abs(s.Diff))
			leader := TeamBlue
			if s.Diff < 0 {
				leader = TeamRed
			}
			series.LeadChanges = append(series.LeadChanges, LeadChange{
				T:      prev.T + (s.T-prev.T)*ratio,
				Leader: leader,
			})
		}
	}
	return series
}
