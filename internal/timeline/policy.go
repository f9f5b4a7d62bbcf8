package timeline

import (
	"errors"
	"fmt"
)

// ErrInvalidPolicy is returned when a Policy cannot drive the engine
var ErrInvalidPolicy = errors.New("invalid timeline policy")

// Policy holds the tunable constants of the reconstruction. All durations
// are minutes on the match time axis.
type Policy struct {
	// Respawn delay = RespawnBase + deathMinute * RespawnScaling
	RespawnBase    float64 `yaml:"respawn_base" json:"respawnBase"`
	RespawnScaling float64 `yaml:"respawn_scaling" json:"respawnScaling"`

	// KillFlashWindow drives the cosmetic killing indicator only
	KillFlashWindow float64 `yaml:"kill_flash_window" json:"killFlashWindow"`

	WardLifetimes map[WardType]float64 `yaml:"ward_lifetimes" json:"wardLifetimes"`

	// Per-axis distance under which a destruction event matches a tower
	// or a ward expiry matches a ward
	TowerMatchTolerance float64 `yaml:"tower_match_tolerance" json:"towerMatchTolerance"`
	// Per-axis reach used instead when the expiry position is the
	// killer's estimated position
	WardClearRange float64 `yaml:"ward_clear_range" json:"wardClearRange"`

	InventoryCapacity int `yaml:"inventory_capacity" json:"inventoryCapacity"`
	InventorySlots    int `yaml:"inventory_slots" json:"inventorySlots"`

	StartingGold         float64 `yaml:"starting_gold" json:"startingGold"`
	KillBounty           float64 `yaml:"kill_bounty" json:"killBounty"`
	GoldSeriesResolution int     `yaml:"gold_series_resolution" json:"goldSeriesResolution"`
	MinLeadScale         float64 `yaml:"min_lead_scale" json:"minLeadScale"`

	// Used when a match reports a zero duration
	DefaultDurationSeconds int `yaml:"default_duration_seconds" json:"defaultDurationSeconds"`
}

// DefaultPolicy returns the calibrated defaults
func DefaultPolicy() Policy {
	return Policy{
		RespawnBase:     0.5,
		RespawnScaling:  0.05,
		KillFlashWindow: 5.0 / 60.0,
		WardLifetimes: map[WardType]float64{
			WardYellowTrinket: 1.5,  // ~90s
			WardSight:         2.5,  // ~150s
			WardControl:       1000, // until killed
			WardBlueTrinket:   1000,
		},
		TowerMatchTolerance:    200,
		WardClearRange:         1200,
		InventoryCapacity:      7,
		InventorySlots:         6,
		StartingGold:           500,
		KillBounty:             300,
		GoldSeriesResolution:   60,
		MinLeadScale:           10000,
		DefaultDurationSeconds: 1800,
	}
}

// Validate rejects policies that would break engine invariants
func (p Policy) Validate() error {
	switch {
	case p.RespawnBase <= 0:
		return fmt.Errorf("%w: respawn_base must be positive", ErrInvalidPolicy)
	case p.RespawnScaling < 0:
		return fmt.Errorf("%w: respawn_scaling must not be negative", ErrInvalidPolicy)
	case p.KillFlashWindow < 0:
		return fmt.Errorf("%w: kill_flash_window must not be negative", ErrInvalidPolicy)
	case p.TowerMatchTolerance < 0:
		return fmt.Errorf("%w: tower_match_tolerance must not be negative", ErrInvalidPolicy)
	case p.WardClearRange < 0:
		return fmt.Errorf("%w: ward_clear_range must not be negative", ErrInvalidPolicy)
	case p.InventoryCapacity <= 0 || p.InventorySlots <= 0:
		return fmt.Errorf("%w: inventory sizes must be positive", ErrInvalidPolicy)
	case p.GoldSeriesResolution <= 0:
		return fmt.Errorf("%w: gold_series_resolution must be positive", ErrInvalidPolicy)
	case p.DefaultDurationSeconds <= 0:
		return fmt.Errorf("%w: default_duration_seconds must be positive", ErrInvalidPolicy)
	}
	for wt, life := range p.WardLifetimes {
		if life < 0 {
			return fmt.Errorf("%w: negative lifetime for %s", ErrInvalidPolicy, wt)
		}
	}
	return nil
}

// RespawnDelay returns how long a combatant who died at deathT stays dead
func (p Policy) RespawnDelay(deathT float64) float64 {
	return p.RespawnBase + deathT*p.RespawnScaling
}

// WardLifetime returns the type-derived lifetime; unknown types live 0 minutes
func (p Policy) WardLifetime(t WardType) float64 {
	return p.WardLifetimes[t]
}
