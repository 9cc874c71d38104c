package chi

import (
	"context"
	"net/http"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/savora-cloud/savora/internal/domain/geo"
	"github.com/savora-cloud/savora/internal/domain/page"
	"github.com/savora-cloud/savora/internal/domain/restaurant"
	healthuc "github.com/savora-cloud/savora/internal/usecase/health"
	restaurantuc "github.com/savora-cloud/savora/internal/usecase/restaurant"
	reviewuc "github.com/savora-cloud/savora/internal/usecase/review"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// mockStore implements both the restaurant and review usecase gateways.
type mockStore struct {
	saveFn      func(ctx context.Context, rest *restaurant.Restaurant) (*restaurant.Restaurant, error)
	findFn      func(ctx context.Context, id string) (*restaurant.Restaurant, error)
	deleteFn    func(ctx context.Context, id string) error
	minRatingFn func(ctx context.Context, minRating float64, p page.Request) (page.Page[*restaurant.Restaurant], error)
	textFn      func(ctx context.Context, text string, minRating float64, p page.Request) (page.Page[*restaurant.Restaurant], error)
	geoFn       func(ctx context.Context, lat, lon, radiusKm float64, p page.Request) (page.Page[*restaurant.Restaurant], error)
	findAllFn   func(ctx context.Context, p page.Request) (page.Page[*restaurant.Restaurant], error)
}

func (m *mockStore) Save(
	ctx context.Context, rest *restaurant.Restaurant,
) (*restaurant.Restaurant, error) {
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

// mockLocator implements the restaurant usecase GeoLocator.
type mockLocator struct {
	point geo.Point
	err   error
}

func (m *mockLocator) Locate(_ context.Context, _ restaurant.Address) (geo.Point, error) {
	if m.err != nil {
		return geo.Point{}, m.err
	}
	return m.point, nil
}

// mockPinger implements the health DBPinger.
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// newTestRouter wires a full router over the given mocks. user, when
// non-nil, is injected into every request context, standing in for the
// auth middleware.
func newTestRouter(t *testing.T, store *mockStore, locator *mockLocator, user *restaurant.User) http.Handler {
	t.Helper()

	restSvc := restaurantuc.New(store, locator).
		WithClock(func() time.Time { return testTime })
	reviewSvc := reviewuc.New(store).
		WithClock(func() time.Time { return testTime }).
		WithIDGenerator(func() string { return "rev-gen" })
	healthSvc := healthuc.New(&mockPinger{})

	server := NewServer(restSvc, reviewSvc, healthSvc, zap.NewNop())

	r := chirouter.NewRouter()
	if user != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(ContextWithUser(req.Context(), *user)))
			})
		})
	}
	server.RegisterRoutes(r)
	return r
}

func storedRestaurant(t *testing.T, id string) *restaurant.Restaurant {
	t.Helper()
	rest, err := restaurant.New(restaurant.Details{
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
	}, geo.Point{Latitude: 51.5, Longitude: -0.12},
		[]restaurant.Photo{{URL: "https://cdn.example.com/p/1.jpg", UploadDate: testTime}})
	if err != nil {
		t.Fatalf("restaurant.New: %v", err)
	}
	if err := rest.AssignID(id); err != nil {
		t.Fatalf("AssignID: %v", err)
	}
	return rest
}

const validRestaurantBody = `{
	"name": "Golden Spoon",
	"cuisineType": "Italian",
	"contactInformation": "+44 20 7946 0812",
	"address": {
		"streetNumber": "12",
		"streetName": "Baker Street",
		"city": "London",
		"state": "Greater London",
		"postalCode": "NW1 6XE",
		"country": "United Kingdom"
	},
	"operatingHours": {
		"monday": {"openTime": "09:00", "closeTime": "22:00"}
	},
	"photos": ["https://cdn.example.com/p/1.jpg"]
}`
