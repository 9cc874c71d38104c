package restaurant

import (
	"context"
	"testing"
	"time"

	"github.com/savora-cloud/savora/internal/db"
	"github.com/savora-cloud/savora/internal/domain/geo"
	domrest "github.com/savora-cloud/savora/internal/domain/restaurant"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn func(ctx context.Context, key string, paths ...string) ([]byte, error)
	delFn     func(ctx context.Context, key string) error
	searchFn  func(
		ctx context.Context, index, query string, offset, limit int, fields []string,
	) (*db.SearchResult, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) SearchList(
	ctx context.Context, index, query string, offset, limit int, fields []string,
) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, index, query, offset, limit, fields)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo() (*Repo, *mockStore) {
	ms := &mockStore{}
	repo := New(ms, "savora:")
	return repo, ms
}

func testRestaurant(t *testing.T, id string) *domrest.Restaurant {
	t.Helper()
	rest, err := domrest.New(domrest.Details{
		Name:               "Golden Spoon",
		CuisineType:        "Italian",
		ContactInformation: "+44 20 7946 0812",
		Address: domrest.Address{
			StreetNumber: "12",
			StreetName:   "Baker Street",
			City:         "London",
			State:        "Greater London",
			PostalCode:   "NW1 6XE",
			Country:      "United Kingdom",
		},
		OperatingHours: domrest.OperatingHours{
			Monday: &domrest.TimeRange{Open: "09:00", Close: "22:00"},
		},
	}, geo.Point{Latitude: 51.5032, Longitude: -0.1196},
		[]domrest.Photo{{URL: "https://cdn.example.com/p/1.jpg", UploadDate: testTime}})
	if err != nil {
		t.Fatalf("restaurant.New: %v", err)
	}
	if id != "" {
		if err := rest.AssignID(id); err != nil {
			t.Fatalf("AssignID: %v", err)
		}
	}
	return rest
}
