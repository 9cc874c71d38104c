package restaurant

import (
	"context"

	"github.com/savora-cloud/savora/internal/domain/geo"
	"github.com/savora-cloud/savora/internal/domain/page"
	"github.com/savora-cloud/savora/internal/domain/restaurant"
)

// Store is the document store gateway for restaurant aggregates.
type Store interface {
	Save(ctx context.Context, rest *restaurant.Restaurant) (*restaurant.Restaurant, error)
	FindByID(ctx context.Context, id string) (*restaurant.Restaurant, error)
	DeleteByID(ctx context.Context, id string) error
	QueryByMinRating(ctx context.Context, minRating float64, p page.Request) (page.Page[*restaurant.Restaurant], error)
	QueryByTextAndMinRating(ctx context.Context, text string, minRating float64, p page.Request) (page.Page[*restaurant.Restaurant], error)
	QueryByGeoRadius(ctx context.Context, lat, lon, radiusKm float64, p page.Request) (page.Page[*restaurant.Restaurant], error)
	FindAll(ctx context.Context, p page.Request) (page.Page[*restaurant.Restaurant], error)
}

// GeoLocator derives a coordinate from a postal address.
type GeoLocator interface {
	Locate(ctx context.Context, addr restaurant.Address) (geo.Point, error)
}
