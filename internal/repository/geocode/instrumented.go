package geocode

import (
	"context"
	"time"

	"github.com/savora-cloud/savora/internal/domain/geo"
	"github.com/savora-cloud/savora/internal/domain/restaurant"
	"github.com/savora-cloud/savora/internal/metrics"
)

// Instrumented decorates a Locator with Prometheus metrics.
type Instrumented struct {
	next Locator
}

// NewInstrumented wraps a locator with request count and duration metrics.
func NewInstrumented(next Locator) *Instrumented {
	return &Instrumented{next: next}
}

// Locate delegates and records the outcome.
func (i *Instrumented) Locate(ctx context.Context, addr restaurant.Address) (geo.Point, error) {
	start := time.Now()
	point, err := i.next.Locate(ctx, addr)
	metrics.ObserveGeocode(time.Since(start), err)
	return point, err
}
