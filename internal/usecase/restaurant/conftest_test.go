package restaurant

import (
	"context"
	"testing"
	"time"

	"github.com/savora-cloud/savora/internal/domain/geo"
	"github.com/savora-cloud/savora/internal/domain/page"
	"github.com/savora-cloud/savora/internal/domain/restaurant"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// mockStore implements the Store gateway for tests.
type mockStore struct {
	saveFn      func(ctx context.Context, rest *restaurant.Restaurant) (*restaurant.Restaurant, error)
	findFn      func(ctx context.Context, id string) (*restaurant.Restaurant, error)
	deleteFn    func(ctx context.Context, id string) error
	minRatingFn func(ctx context.Context, minRating float64, p page.Request) (page.Page[*restaurant.Restaurant], error)
	textFn      func(ctx context.Context, text string, minRating float64, p page.Request) (page.Page[*restaurant.Restaurant], error)
	geoFn       func(ctx context.Context, lat, lon, radiusKm float64, p page.Request) (page.Page[*restaurant.Restaurant], error)
	findAllFn   func(ctx context.Context, p page.Request) (page.Page[*restaurant.Restaurant], error)

	saveCalls int
}

func (m *mockStore) Save(
	ctx context.Context, rest *restaurant.Restaurant,
) (*restaurant.Restaurant, error) {
	m.saveCalls++
	if m.saveFn != nil {
		return m.saveFn(ctx, rest)
	}
	return rest, nil
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	if m.findFn != nil {
		return m.findFn(ctx, id)
	}
	return nil, nil
}

func (m *mockStore) DeleteByID(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockStore) QueryByMinRating(
	ctx context.Context, minRating float64, p page.Request,
) (page.Page[*restaurant.Restaurant], error) {
	if m.minRatingFn != nil {
		return m.minRatingFn(ctx, minRating, p)
	}
	return page.Empty[*restaurant.Restaurant](0), nil
}

func (m *mockStore) QueryByTextAndMinRating(
	ctx context.Context, text string, minRating float64, p page.Request,
) (page.Page[*restaurant.Restaurant], error) {
	if m.textFn != nil {
		return m.textFn(ctx, text, minRating, p)
	}
	return page.Empty[*restaurant.Restaurant](0), nil
}

func (m *mockStore) QueryByGeoRadius(
	ctx context.Context, lat, lon, radiusKm float64, p page.Request,
) (page.Page[*restaurant.Restaurant], error) {
	if m.geoFn != nil {
		return m.geoFn(ctx, lat, lon, radiusKm, p)
	}
	return page.Empty[*restaurant.Restaurant](0), nil
}

func (m *mockStore) FindAll(
	ctx context.Context, p page.Request,
) (page.Page[*restaurant.Restaurant], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, p)
	}
	return page.Empty[*restaurant.Restaurant](0), nil
}

// mockLocator implements GeoLocator for tests.
type mockLocator struct {
	point geo.Point
	err   error

	calls int
}

func (m *mockLocator) Locate(_ context.Context, _ restaurant.Address) (geo.Point, error) {
	m.calls++
	if m.err != nil {
		return geo.Point{}, m.err
	}
	return m.point, nil
}

func validInput() Input {
	return Input{
		Details: restaurant.Details{
			Name:               "Golden Spoon",
			CuisineType:        "Italian",
			ContactInformation: "+44 20 7946 0812",
			Address: restaurant.Address{
				StreetNumber: "12",
				StreetName:   "Baker Street",
				City:         "London",
				State:        "Greater London",
				PostalCode:   "NW1 6XE",
				Country:      "United Kingdom",
			},
		},
		PhotoRefs: []string{"https://cdn.example.com/p/1.jpg"},
	}
}

func makeStored(t *testing.T, id string) *restaurant.Restaurant {
	t.Helper()
	in := validInput()
	rest, err := restaurant.New(in.Details, geo.Point{Latitude: 51.5, Longitude: -0.12},
		restaurant.PhotosFromRefs(in.PhotoRefs, testTime))
	if err != nil {
		t.Fatalf("restaurant.New: %v", err)
	}
	if err := rest.AssignID(id); err != nil {
		t.Fatalf("AssignID: %v", err)
	}
	return rest
}
