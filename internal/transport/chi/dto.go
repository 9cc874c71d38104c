package chi

import (
	"time"

	domrest "github.com/savora-cloud/savora/internal/domain/restaurant"
)

// Wire types. Field names mirror the stored document so API clients and
// index aliases agree on naming.

type addressDTO struct {
	StreetNumber string `json:"streetNumber"`
	StreetName   string `json:"streetName"`
	Unit         string `json:"unit,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

type timeRangeDTO struct {
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

type operatingHoursDTO struct {
	Monday    *timeRangeDTO `json:"monday,omitempty"`
	Tuesday   *timeRangeDTO `json:"tuesday,omitempty"`
	Wednesday *timeRangeDTO `json:"wednesday,omitempty"`
	Thursday  *timeRangeDTO `json:"thursday,omitempty"`
	Friday    *timeRangeDTO `json:"friday,omitempty"`
	Saturday  *timeRangeDTO `json:"saturday,omitempty"`
	Sunday    *timeRangeDTO `json:"sunday,omitempty"`
}

type geoPointDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type photoDTO struct {
	URL        string    `json:"url"`
	UploadDate time.Time `json:"uploadDate"`
}

type userDTO struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

type reviewResponse struct {
	ID         string     `json:"id"`
	Content    string     `json:"content"`
	Rating     float64    `json:"rating"`
	Photos     []photoDTO `json:"photos"`
	DatePosted time.Time  `json:"datePosted"`
	LastEdited time.Time  `json:"lastEdited"`
	WrittenBy  userDTO    `json:"writtenBy"`
}

type restaurantResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	CuisineType        string            `json:"cuisineType"`
	ContactInformation string            `json:"contactInformation"`
	Address            addressDTO        `json:"address"`
	GeoLocation        geoPointDTO       `json:"geoLocation"`
	OperatingHours     operatingHoursDTO `json:"operatingHours"`
	Photos             []photoDTO        `json:"photos"`
	AverageRating      float64           `json:"averageRating"`
	Reviews            []reviewResponse  `json:"reviews"`
}

// pageResponse is the list envelope. Page is 1-based, echoing the request.
type pageResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

type restaurantRequest struct {
	Name               string            `json:"name"`
	CuisineType        string            `json:"cuisineType"`
	ContactInformation string            `json:"contactInformation"`
	Address            addressDTO        `json:"address"`
	OperatingHours     operatingHoursDTO `json:"operatingHours"`
	Photos             []string          `json:"photos"`
}

type reviewRequest struct {
	Content string   `json:"content"`
	Rating  float64  `json:"rating"`
	Photos  []string `json:"photos"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

func detailsFromRequest(req restaurantRequest) domrest.Details {
	return domrest.Details{
		Name:               req.Name,
		CuisineType:        req.CuisineType,
		ContactInformation: req.ContactInformation,
		Address:            addressFromDTO(req.Address),
		OperatingHours:     hoursFromDTO(req.OperatingHours),
	}
}

func addressFromDTO(a addressDTO) domrest.Address {
	return domrest.Address{
		StreetNumber: a.StreetNumber,
		StreetName:   a.StreetName,
		Unit:         a.Unit,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
	}
}

func addressToDTO(a domrest.Address) addressDTO {
	return addressDTO{
		StreetNumber: a.StreetNumber,
		StreetName:   a.StreetName,
		Unit:         a.Unit,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
	}
}

func timeRangeFromDTO(t *timeRangeDTO) *domrest.TimeRange {
	if t == nil {
		return nil
	}
	return &domrest.TimeRange{Open: t.OpenTime, Close: t.CloseTime}
}

func timeRangeToDTO(t *domrest.TimeRange) *timeRangeDTO {
	if t == nil {
		return nil
	}
	return &timeRangeDTO{OpenTime: t.Open, CloseTime: t.Close}
}

func hoursFromDTO(h operatingHoursDTO) domrest.OperatingHours {
	return domrest.OperatingHours{
		Monday:    timeRangeFromDTO(h.Monday),
		Tuesday:   timeRangeFromDTO(h.Tuesday),
		Wednesday: timeRangeFromDTO(h.Wednesday),
		Thursday:  timeRangeFromDTO(h.Thursday),
		Friday:    timeRangeFromDTO(h.Friday),
		Saturday:  timeRangeFromDTO(h.Saturday),
		Sunday:    timeRangeFromDTO(h.Sunday),
	}
}

func hoursToDTO(h domrest.OperatingHours) operatingHoursDTO {
	return operatingHoursDTO{
		Monday:    timeRangeToDTO(h.Monday),
		Tuesday:   timeRangeToDTO(h.Tuesday),
		Wednesday: timeRangeToDTO(h.Wednesday),
		Thursday:  timeRangeToDTO(h.Thursday),
		Friday:    timeRangeToDTO(h.Friday),
		Saturday:  timeRangeToDTO(h.Saturday),
		Sunday:    timeRangeToDTO(h.Sunday),
	}
}

func photosToDTO(photos []domrest.Photo) []photoDTO {
	out := make([]photoDTO, len(photos))
	for i, p := range photos {
		out[i] = photoDTO{URL: p.URL, UploadDate: p.UploadDate}
	}
	return out
}

func reviewToResponse(rev domrest.Review) reviewResponse {
	by := rev.WrittenBy()
	return reviewResponse{
		ID:         rev.ID(),
		Content:    rev.Content(),
		Rating:     rev.Rating(),
		Photos:     photosToDTO(rev.Photos()),
		DatePosted: rev.DatePosted(),
		LastEdited: rev.LastEdited(),
		WrittenBy: userDTO{
			ID:         by.ID,
			Username:   by.Username,
			GivenName:  by.GivenName,
			FamilyName: by.FamilyName,
		},
	}
}

func restaurantToResponse(rest *domrest.Restaurant) restaurantResponse {
	reviews := rest.Reviews()
	revDTOs := make([]reviewResponse, len(reviews))
	for i := range reviews {
		revDTOs[i] = reviewToResponse(reviews[i])
	}

	loc := rest.Location()
	return restaurantResponse{
		ID:                 rest.ID(),
		Name:               rest.Name(),
		CuisineType:        rest.CuisineType(),
		ContactInformation: rest.ContactInformation(),
		Address:            addressToDTO(rest.Address()),
		GeoLocation:        geoPointDTO{Latitude: loc.Latitude, Longitude: loc.Longitude},
		OperatingHours:     hoursToDTO(rest.OperatingHours()),
		Photos:             photosToDTO(rest.Photos()),
		AverageRating:      rest.AverageRating(),
		Reviews:            revDTOs,
	}
}
