// Package loadfilter narrows a pool of available loads to the rows a board
// user asked for. Everything here is pure: no I/O, no shared state, and the
// input pool is never reordered or modified.
package loadfilter

import (
	"strings"

	"haulcentral/internal/models"
)

const (
	// DefaultMinRate and DefaultMaxRate are the slider extremes. A bound at
	// its default value does not filter.
	DefaultMinRate = 0
	DefaultMaxRate = 10000
	DefaultRadius  = 200
)

// FilterSpec is the set of predicates a user picked on the board. The zero
// value is not the "match everything" spec: its MaxRate of 0 excludes every
// paid load. Start from DefaultSpec() and set only the fields that narrow.
type FilterSpec struct {
	PickupState   string  `json:"pickupState"`
	DropoffState  string  `json:"dropoffState"`
	EquipmentType string  `json:"equipmentType"`
	MinRate       float64 `json:"minRate"`
	MaxRate       float64 `json:"maxRate"`
	Radius        float64 `json:"radius"`
	SearchTerm    string  `json:"searchTerm"`
}

// DefaultSpec returns the spec a board starts with and is reset to.
func DefaultSpec() FilterSpec {
	return FilterSpec{
		MinRate: DefaultMinRate,
		MaxRate: DefaultMaxRate,
		Radius:  DefaultRadius,
	}
}

// Reset restores the defaults in place.
func (s *FilterSpec) Reset() {
	*s = DefaultSpec()
}

// RadiusMatcher decides whether a load lies within radius miles of whatever
// origin the caller tracks. Loads carry no coordinates today, so no matcher
// is installed by default and the radius does not narrow the pool.
type RadiusMatcher func(load models.Load, radius float64) bool

// Apply returns the loads of pool that satisfy every active predicate of
// spec, in pool order.
func Apply(pool []models.Load, spec FilterSpec) []models.Load {
	return ApplyWithRadius(pool, spec, nil)
}

// ApplyWithRadius is Apply with an optional radius predicate evaluated after
// all the others.
func ApplyWithRadius(pool []models.Load, spec FilterSpec, within RadiusMatcher) []models.Load {
	term := strings.ToLower(spec.SearchTerm)

	out := make([]models.Load, 0, len(pool))
	for _, load := range pool {
		if spec.PickupState != "" && load.PickupState != spec.PickupState {
			continue
		}
		if spec.DropoffState != "" && load.DropoffState != spec.DropoffState {
			continue
		}
		if spec.EquipmentType != "" && load.EquipmentType != spec.EquipmentType {
			continue
		}
		if spec.MinRate > DefaultMinRate && load.Rate < spec.MinRate {
			continue
		}
		if spec.MaxRate < DefaultMaxRate && load.Rate > spec.MaxRate {
			continue
		}
		if term != "" && !matchesTerm(load, term) {
			continue
		}
		if within != nil && !within(load, spec.Radius) {
			continue
		}
		out = append(out, load)
	}
	return out
}

// matchesTerm expects term to be lower-cased already.
func matchesTerm(load models.Load, term string) bool {
	return strings.Contains(strings.ToLower(load.PickupCity), term) ||
		strings.Contains(strings.ToLower(load.DropoffCity), term) ||
		strings.Contains(strings.ToLower(load.LoadID), term) ||
		strings.Contains(strings.ToLower(load.PostedByCompany), term)
}
