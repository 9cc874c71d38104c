// Package search defines the restaurant search request and its resolution
// into exactly one query shape. The underlying index treats rating-floor,
// fuzzy-text and geo-radius as mutually exclusive query forms, not
// composable predicates, so classification is first-match-wins.
package search

import (
	"strings"

	"github.com/savora-cloud/savora/internal/domain/page"
)

// Mode is the resolved query shape for a search request.
type Mode string

const (
	// ModeMinRating lists all restaurants at or above a rating floor.
	ModeMinRating Mode = "min_rating"
	// ModeText fuzzy-matches name or cuisine type, AND'd with a rating floor.
	ModeText Mode = "text"
	// ModeGeo lists restaurants within a radius of a point.
	ModeGeo Mode = "geo"
	// ModeAll is the unfiltered paginated listing.
	ModeAll Mode = "all"
)

// Request is a heterogeneous search request. Optional filters are nil when
// absent; Page offsets are 0-based.
type Request struct {
	Query     string
	MinRating *float64
	Latitude  *float64
	Longitude *float64
	Radius    *float64
	Page      page.Request
}

// Mode classifies the request into exactly one query path, evaluated in
// priority order:
//
//  1. minRating present and no query text → rating floor only, so a floor
//     alone can page through all restaurants without a search term;
//  2. non-blank query text → fuzzy text with an effective rating floor;
//  3. any geo parameter present → geo radius;
//  4. otherwise → unfiltered listing.
func (r *Request) Mode() Mode {
	trimmed := strings.TrimSpace(r.Query)

	if r.MinRating != nil && trimmed == "" {
		return ModeMinRating
	}
	if trimmed != "" {
		return ModeText
	}
	if r.Latitude != nil || r.Longitude != nil || r.Radius != nil {
		return ModeGeo
	}
	return ModeAll
}

// EffectiveMinRating returns the rating floor applied to text searches:
// the supplied minimum when given, otherwise 0.
func (r *Request) EffectiveMinRating() float64 {
	if r.MinRating == nil {
		return 0
	}
	return *r.MinRating
}
