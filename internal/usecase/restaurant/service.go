// Package restaurant manages the restaurant aggregate lifecycle: create and
// update with address-derived geolocation, lookup, idempotent delete, and
// search dispatch over the four query shapes.
package restaurant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/savora-cloud/savora/internal/domain"
	"github.com/savora-cloud/savora/internal/domain/page"
	"github.com/savora-cloud/savora/internal/domain/restaurant"
	"github.com/savora-cloud/savora/internal/domain/search"
)

// Input carries the client-supplied restaurant fields for create and update.
// Geolocation is never accepted from the client; it is derived from the
// address on every call.
type Input struct {
	Details   restaurant.Details
	PhotoRefs []string
}

// Service orchestrates restaurant aggregate operations.
type Service struct {
	store   Store
	locator GeoLocator
	now     func() time.Time
}

// New creates a restaurant service.
func New(store Store, locator GeoLocator) *Service {
	return &Service{
		store:   store,
		locator: locator,
		now:     time.Now,
	}
}

// WithClock overrides the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create geolocates the address, assembles a new aggregate with zero rating
// and no reviews, and persists it. A geocoder failure aborts the operation.
func (s *Service) Create(ctx context.Context, in Input) (*restaurant.Restaurant, error) {
	location, err := s.locator.Locate(ctx, in.Details.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeocodeUnavailable, err)
	}

	rest, err := restaurant.New(in.Details, location, restaurant.PhotosFromRefs(in.PhotoRefs, s.now()))
	if err != nil {
		return nil, err
	}

	saved, err := s.store.Save(ctx, rest)
	if err != nil {
		return nil, fmt.Errorf("save restaurant: %w", err)
	}
	return saved, nil
}

// Get returns a restaurant aggregate by id.
func (s *Service) Get(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	rest, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	return rest, nil
}

// Update replaces the client-editable fields of an existing aggregate and
// re-derives the geolocation from the new address. Reviews and the average
// rating survive the update untouched.
func (s *Service) Update(ctx context.Context, id string, in Input) (*restaurant.Restaurant, error) {
	rest, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load restaurant: %w", err)
	}

	location, err := s.locator.Locate(ctx, in.Details.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeocodeUnavailable, err)
	}

	if err := rest.ApplyUpdate(in.Details, location, restaurant.PhotosFromRefs(in.PhotoRefs, s.now())); err != nil {
		return nil, err
	}

	saved, err := s.store.Save(ctx, rest)
	if err != nil {
		return nil, fmt.Errorf("save restaurant: %w", err)
	}
	return saved, nil
}

// Delete removes a restaurant and all its embedded reviews. Deleting an
// absent id succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	return nil
}

// Search resolves the request into exactly one query shape and dispatches
// it to the store.
func (s *Service) Search(
	ctx context.Context, req *search.Request,
) (page.Page[*restaurant.Restaurant], error) {
	switch req.Mode() {
	case search.ModeMinRating:
		return s.store.QueryByMinRating(ctx, *req.MinRating, req.Page)
	case search.ModeText:
		return s.store.QueryByTextAndMinRating(
			ctx, strings.TrimSpace(req.Query), req.EffectiveMinRating(), req.Page,
		)
	case search.ModeGeo:
		if req.Latitude == nil || req.Longitude == nil || req.Radius == nil {
			return page.Page[*restaurant.Restaurant]{}, fmt.Errorf(
				"%w: latitude, longitude and radius are all required for a geo search",
				domain.ErrValidation,
			)
		}
		return s.store.QueryByGeoRadius(ctx, *req.Latitude, *req.Longitude, *req.Radius, req.Page)
	default:
		return s.store.FindAll(ctx, req.Page)
	}
}
