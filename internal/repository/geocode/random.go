// Package geocode provides GeoLocator implementations. The production
// deployment currently ships the bounding-box random locator as a
// placeholder collaborator; a real geocoding client can be swapped in
// behind the same interface.
package geocode

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/savora-cloud/savora/internal/domain/geo"
	"github.com/savora-cloud/savora/internal/domain/restaurant"
)

// Locator resolves a postal address into a coordinate.
type Locator interface {
	Locate(ctx context.Context, addr restaurant.Address) (geo.Point, error)
}

// Bounds delimits the coordinate box random points are drawn from.
type Bounds struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// LondonBounds covers Greater London.
var LondonBounds = Bounds{
	MinLatitude:  51.28,
	MaxLatitude:  51.686,
	MinLongitude: -0.489,
	MaxLongitude: 0.236,
}

// RandomLocator returns a uniformly random point inside its bounds,
// ignoring the address. Placeholder for a real geocoder.
type RandomLocator struct {
	bounds Bounds

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomLocator creates a random locator over the given bounds.
func NewRandomLocator(bounds Bounds, seed uint64) *RandomLocator {
	return &RandomLocator{
		bounds: bounds,
		rng:    rand.New(rand.NewPCG(seed, seed)),
	}
}

// Locate draws a random coordinate inside the bounds.
func (l *RandomLocator) Locate(_ context.Context, _ restaurant.Address) (geo.Point, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.bounds
	return geo.Point{
		Latitude:  b.MinLatitude + l.rng.Float64()*(b.MaxLatitude-b.MinLatitude),
		Longitude: b.MinLongitude + l.rng.Float64()*(b.MaxLongitude-b.MinLongitude),
	}, nil
}
