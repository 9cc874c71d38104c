package restaurant

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/savora-cloud/savora/internal/domain/geo"
	domrest "github.com/savora-cloud/savora/internal/domain/restaurant"
)

// restaurantDoc is the JSON shape persisted to the store. The geoLocation
// field is a "lon,lat" string so the GEO index field can consume it.
type restaurantDoc struct {
	Name               string      `json:"name"`
	CuisineType        string      `json:"cuisineType"`
	ContactInformation string      `json:"contactInformation"`
	Address            addressDoc  `json:"address"`
	GeoLocation        string      `json:"geoLocation"`
	OperatingHours     hoursDoc    `json:"operatingHours"`
	Photos             []photoDoc  `json:"photos"`
	AverageRating      float64     `json:"averageRating"`
	Reviews            []reviewDoc `json:"reviews"`
}

type addressDoc struct {
	StreetNumber string `json:"streetNumber"`
	StreetName   string `json:"streetName"`
	Unit         string `json:"unit,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

type timeRangeDoc struct {
	Open  string `json:"openTime"`
	Close string `json:"closeTime"`
}

type hoursDoc struct {
	Monday    *timeRangeDoc `json:"monday,omitempty"`
	Tuesday   *timeRangeDoc `json:"tuesday,omitempty"`
	Wednesday *timeRangeDoc `json:"wednesday,omitempty"`
	Thursday  *timeRangeDoc `json:"thursday,omitempty"`
	Friday    *timeRangeDoc `json:"friday,omitempty"`
	Saturday  *timeRangeDoc `json:"saturday,omitempty"`
	Sunday    *timeRangeDoc `json:"sunday,omitempty"`
}

type photoDoc struct {
	URL        string    `json:"url"`
	UploadDate time.Time `json:"uploadDate"`
}

type reviewDoc struct {
	ID         string     `json:"id"`
	Content    string     `json:"content"`
	Rating     float64    `json:"rating"`
	Photos     []photoDoc `json:"photos"`
	DatePosted time.Time  `json:"datePosted"`
	LastEdited time.Time  `json:"lastEdited"`
	WrittenBy  userDoc    `json:"writtenBy"`
}

type userDoc struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

func buildDoc(r *domrest.Restaurant) restaurantDoc {
	return restaurantDoc{
		Name:               r.Name(),
		CuisineType:        r.CuisineType(),
		ContactInformation: r.ContactInformation(),
		Address:            buildAddressDoc(r.Address()),
		GeoLocation:        formatGeoPoint(r.Location()),
		OperatingHours:     buildHoursDoc(r.OperatingHours()),
		Photos:             buildPhotoDocs(r.Photos()),
		AverageRating:      r.AverageRating(),
		Reviews:            buildReviewDocs(r.Reviews()),
	}
}

func buildAddressDoc(a domrest.Address) addressDoc {
	return addressDoc{
		StreetNumber: a.StreetNumber,
		StreetName:   a.StreetName,
		Unit:         a.Unit,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
	}
}

func buildHoursDoc(h domrest.OperatingHours) hoursDoc {
	conv := func(tr *domrest.TimeRange) *timeRangeDoc {
		if tr == nil {
			return nil
		}
		return &timeRangeDoc{Open: tr.Open, Close: tr.Close}
	}
	return hoursDoc{
		Monday:    conv(h.Monday),
		Tuesday:   conv(h.Tuesday),
		Wednesday: conv(h.Wednesday),
		Thursday:  conv(h.Thursday),
		Friday:    conv(h.Friday),
		Saturday:  conv(h.Saturday),
		Sunday:    conv(h.Sunday),
	}
}

func buildPhotoDocs(photos []domrest.Photo) []photoDoc {
	docs := make([]photoDoc, 0, len(photos))
	for _, p := range photos {
		docs = append(docs, photoDoc{URL: p.URL, UploadDate: p.UploadDate})
	}
	return docs
}

func buildReviewDocs(reviews []domrest.Review) []reviewDoc {
	docs := make([]reviewDoc, 0, len(reviews))
	for i := range reviews {
		rev := &reviews[i]
		author := rev.WrittenBy()
		docs = append(docs, reviewDoc{
			ID:         rev.ID(),
			Content:    rev.Content(),
			Rating:     rev.Rating(),
			Photos:     buildPhotoDocs(rev.Photos()),
			DatePosted: rev.DatePosted(),
			LastEdited: rev.LastEdited(),
			WrittenBy: userDoc{
				ID:         author.ID,
				Username:   author.Username,
				GivenName:  author.GivenName,
				FamilyName: author.FamilyName,
			},
		})
	}
	return docs
}

func parseDoc(id string, doc restaurantDoc) (*domrest.Restaurant, error) {
	location, err := parseGeoPoint(doc.GeoLocation)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", id, err)
	}

	details := domrest.Details{
		Name:               doc.Name,
		CuisineType:        doc.CuisineType,
		ContactInformation: doc.ContactInformation,
		Address: domrest.Address{
			StreetNumber: doc.Address.StreetNumber,
			StreetName:   doc.Address.StreetName,
			Unit:         doc.Address.Unit,
			City:         doc.Address.City,
			State:        doc.Address.State,
			PostalCode:   doc.Address.PostalCode,
			Country:      doc.Address.Country,
		},
		OperatingHours: parseHoursDoc(doc.OperatingHours),
	}

	reviews := make([]domrest.Review, 0, len(doc.Reviews))
	for _, rd := range doc.Reviews {
		reviews = append(reviews, domrest.ReconstructReview(
			rd.ID, rd.Content, rd.Rating, parsePhotoDocs(rd.Photos),
			rd.DatePosted, rd.LastEdited,
			domrest.User{
				ID:         rd.WrittenBy.ID,
				Username:   rd.WrittenBy.Username,
				GivenName:  rd.WrittenBy.GivenName,
				FamilyName: rd.WrittenBy.FamilyName,
			},
		))
	}

	return domrest.Reconstruct(
		id, details, location, parsePhotoDocs(doc.Photos), doc.AverageRating, reviews,
	), nil
}

func parseHoursDoc(h hoursDoc) domrest.OperatingHours {
	conv := func(tr *timeRangeDoc) *domrest.TimeRange {
		if tr == nil {
			return nil
		}
		return &domrest.TimeRange{Open: tr.Open, Close: tr.Close}
	}
	return domrest.OperatingHours{
		Monday:    conv(h.Monday),
		Tuesday:   conv(h.Tuesday),
		Wednesday: conv(h.Wednesday),
		Thursday:  conv(h.Thursday),
		Friday:    conv(h.Friday),
		Saturday:  conv(h.Saturday),
		Sunday:    conv(h.Sunday),
	}
}

func parsePhotoDocs(docs []photoDoc) []domrest.Photo {
	photos := make([]domrest.Photo, 0, len(docs))
	for _, d := range docs {
		photos = append(photos, domrest.Photo{URL: d.URL, UploadDate: d.UploadDate})
	}
	return photos
}

// formatGeoPoint renders a coordinate as the "lon,lat" string the GEO index
// field expects.
func formatGeoPoint(p geo.Point) string {
	return strconv.FormatFloat(p.Longitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(p.Latitude, 'f', -1, 64)
}

func parseGeoPoint(s string) (geo.Point, error) {
	lonStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Point{}, fmt.Errorf("malformed geo location %q", s)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("malformed longitude %q: %w", lonStr, err)
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("malformed latitude %q: %w", latStr, err)
	}
	return geo.Point{Latitude: lat, Longitude: lon}, nil
}
