package review

import (
	"context"
	"testing"
	"time"

	"github.com/savora-cloud/savora/internal/domain/geo"
	"github.com/savora-cloud/savora/internal/domain/restaurant"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	findFn func(ctx context.Context, id string) (*restaurant.Restaurant, error)
	saveFn func(ctx context.Context, rest *restaurant.Restaurant) (*restaurant.Restaurant, error)

	saveCalls int
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	if m.findFn != nil {
		return m.findFn(ctx, id)
	}
	return nil, nil
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

func makeRestaurant(t *testing.T) *restaurant.Restaurant {
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
	}, geo.Point{Latitude: 51.5032, Longitude: -0.1196},
		[]restaurant.Photo{{URL: "https://cdn.example.com/p/1.jpg", UploadDate: testTime}})
	if err != nil {
		t.Fatalf("restaurant.New: %v", err)
	}
	if err := rest.AssignID("rest-1"); err != nil {
		t.Fatalf("AssignID: %v", err)
	}
	return rest
}

func addReview(t *testing.T, rest *restaurant.Restaurant, id, authorID string, rating float64, postedAt time.Time) {
	t.Helper()
	rev, err := restaurant.NewReview(id, restaurant.ReviewInput{
		Content: "lovely",
		Rating:  rating,
	}, restaurant.User{ID: authorID}, postedAt)
	if err != nil {
		t.Fatalf("NewReview: %v", err)
	}
	if err := rest.AddReview(rev); err != nil {
		t.Fatalf("AddReview: %v", err)
	}
}

// newTestService wires a Service with a deterministic clock and id sequence.
func newTestService(store *mockStore, now time.Time) *Service {
	n := 0
	return New(store).
		WithClock(func() time.Time { return now }).
		WithIDGenerator(func() string {
			n++
			return "rev-gen-" + string(rune('0'+n))
		})
}
