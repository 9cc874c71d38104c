package restaurant

import (
	"testing"
	"time"

	"github.com/savora-cloud/savora/internal/domain/geo"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validAddress() Address {
	return Address{
		StreetNumber: "12A",
		StreetName:   "Baker Street",
		City:         "London",
		State:        "Greater London",
		PostalCode:   "NW1 6XE",
		Country:      "United Kingdom",
	}
}

func validDetails() Details {
	return Details{
		Name:               "Golden Spoon",
		CuisineType:        "Italian",
		ContactInformation: "+44 20 7946 0812",
		Address:            validAddress(),
		OperatingHours: OperatingHours{
			Monday: &TimeRange{Open: "09:00", Close: "22:00"},
			Friday: &TimeRange{Open: "09:00", Close: "23:30"},
		},
	}
}

func validLocation() geo.Point {
	return geo.Point{Latitude: 51.5032, Longitude: -0.1196}
}

func validPhotos() []Photo {
	return []Photo{{URL: "https://cdn.example.com/p/1.jpg", UploadDate: testTime}}
}

func makeRestaurant(t *testing.T) *Restaurant {
	t.Helper()
	rest, err := New(validDetails(), validLocation(), validPhotos())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := rest.AssignID("rest-1"); err != nil {
		t.Fatalf("AssignID: %v", err)
	}
	return rest
}

func makeReview(t *testing.T, id, authorID string, rating float64, postedAt time.Time) Review {
	t.Helper()
	rev, err := NewReview(id, ReviewInput{
		Content: "lovely food",
		Rating:  rating,
	}, User{ID: authorID, Username: authorID}, postedAt)
	if err != nil {
		t.Fatalf("NewReview: %v", err)
	}
	return rev
}
