// Package restaurant holds the Restaurant aggregate and its embedded Review
// collection. The aggregate exclusively owns its reviews: every review
// mutation goes through an aggregate method, recomputes the denormalized
// average rating, and is persisted by replacing the whole document.
package restaurant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/savora-cloud/savora/internal/domain"
	"github.com/savora-cloud/savora/internal/domain/geo"
)

// Details carries the client-supplied restaurant fields. Geolocation is
// deliberately absent: it is always derived from the address.
type Details struct {
	Name               string
	CuisineType        string
	ContactInformation string
	Address            Address
	OperatingHours     OperatingHours
}

// Validate collects every violation instead of stopping at the first.
func (d Details) Validate() error {
	var errs error
	if strings.TrimSpace(d.Name) == "" {
		errs = multierr.Append(errs, errors.New("name cannot be blank"))
	}
	if strings.TrimSpace(d.CuisineType) == "" {
		errs = multierr.Append(errs, errors.New("cuisine type cannot be blank"))
	}
	if strings.TrimSpace(d.ContactInformation) == "" {
		errs = multierr.Append(errs, errors.New("contact information cannot be blank"))
	}
	errs = multierr.Append(errs, d.Address.Validate())
	return errs
}

// Restaurant is the aggregate root. One document in the store, one
// searchable unit.
type Restaurant struct {
	id            string
	details       Details
	location      geo.Point
	photos        []Photo
	averageRating float64
	reviews       []Review
}

// New validates and creates a Restaurant with no reviews and a zero rating.
// The id is assigned by the store on first save.
func New(d Details, location geo.Point, photos []Photo) (*Restaurant, error) {
	errs := d.Validate()
	if len(photos) == 0 {
		errs = multierr.Append(errs, errors.New("at least one photo is required"))
	}
	if errs != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, errs)
	}
	if !location.Valid() {
		return nil, fmt.Errorf("%w: location out of range", domain.ErrValidation)
	}

	return &Restaurant{
		details:  d,
		location: location,
		photos:   clonePhotos(photos),
		reviews:  []Review{},
	}, nil
}

// Reconstruct creates a Restaurant without validation (storage hydration).
func Reconstruct(
	id string, d Details, location geo.Point, photos []Photo,
	averageRating float64, reviews []Review,
) *Restaurant {
	return &Restaurant{
		id:            id,
		details:       d,
		location:      location,
		photos:        photos,
		averageRating: averageRating,
		reviews:       reviews,
	}
}

// ID returns the aggregate identifier, empty until first save.
func (r *Restaurant) ID() string { return r.id }

// AssignID sets the store-assigned identifier. Once set it is stable for
// the lifetime of the aggregate.
func (r *Restaurant) AssignID(id string) error {
	if r.id != "" && r.id != id {
		return fmt.Errorf("restaurant id already assigned: %s", r.id)
	}
	r.id = id
	return nil
}

// Name returns the restaurant name.
func (r *Restaurant) Name() string { return r.details.Name }

// CuisineType returns the cuisine type.
func (r *Restaurant) CuisineType() string { return r.details.CuisineType }

// ContactInformation returns the contact details.
func (r *Restaurant) ContactInformation() string { return r.details.ContactInformation }

// Address returns the postal address.
func (r *Restaurant) Address() Address { return r.details.Address }

// OperatingHours returns the weekly schedule.
func (r *Restaurant) OperatingHours() OperatingHours { return r.details.OperatingHours }

// Location returns the derived coordinate.
func (r *Restaurant) Location() geo.Point { return r.location }

// Photos returns the restaurant's photo references.
func (r *Restaurant) Photos() []Photo { return clonePhotos(r.photos) }

// AverageRating returns the denormalized mean of the review ratings,
// 0 when there are no reviews.
func (r *Restaurant) AverageRating() float64 { return r.averageRating }

// Reviews returns a copy of the embedded review collection.
func (r *Restaurant) Reviews() []Review {
	c := make([]Review, len(r.reviews))
	copy(c, r.reviews)
	return c
}

// ApplyUpdate replaces the client-editable fields wholesale and attaches
// the freshly derived location. Reviews and the average rating are left
// untouched: an update never reaches into the review collection.
func (r *Restaurant) ApplyUpdate(d Details, location geo.Point, photos []Photo) error {
	errs := d.Validate()
	if len(photos) == 0 {
		errs = multierr.Append(errs, errors.New("at least one photo is required"))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, errs)
	}
	if !location.Valid() {
		return fmt.Errorf("%w: location out of range", domain.ErrValidation)
	}

	r.details = d
	r.location = location
	r.photos = clonePhotos(photos)
	return nil
}

// Review finds an embedded review by id (linear scan).
func (r *Restaurant) Review(reviewID string) (Review, bool) {
	for i := range r.reviews {
		if r.reviews[i].id == reviewID {
			return r.reviews[i], true
		}
	}
	return Review{}, false
}

// AddReview appends a review, enforcing one review per author, and
// recomputes the average rating.
func (r *Restaurant) AddReview(rev Review) error {
	for i := range r.reviews {
		if r.reviews[i].writtenBy.ID == rev.writtenBy.ID {
			return domain.NewReviewNotAllowed(domain.ReasonDuplicateAuthor,
				"author already has a review for this restaurant")
		}
	}
	r.reviews = append(r.reviews, rev)
	r.recalcAverageRating()
	return nil
}

// EditReview applies an author edit to an existing review. Only the author
// may edit, and only within EditWindow of the original post time. The
// edited review is moved to the end of the collection (remove old, append
// updated), matching the persistence order of the document.
func (r *Restaurant) EditReview(
	author User, reviewID string, in ReviewInput, now time.Time,
) (Review, error) {
	existing, ok := r.Review(reviewID)
	if !ok {
		return Review{}, domain.NewReviewNotAllowed(domain.ReasonReviewMissing,
			"review does not exist")
	}
	if existing.writtenBy.ID != author.ID {
		return Review{}, domain.NewReviewNotAllowed(domain.ReasonNotOwner,
			"cannot update another user's review")
	}
	if now.After(existing.datePosted.Add(EditWindow)) {
		return Review{}, domain.NewReviewNotAllowed(domain.ReasonEditWindowExpired,
			"review can no longer be edited")
	}
	if err := in.Validate(); err != nil {
		return Review{}, err
	}

	updated := existing.edited(in, now)

	kept := r.reviews[:0]
	for i := range r.reviews {
		if r.reviews[i].id != reviewID {
			kept = append(kept, r.reviews[i])
		}
	}
	r.reviews = append(kept, updated)
	r.recalcAverageRating()

	return updated, nil
}

// RemoveReview deletes a review by id and recomputes the average rating.
// Removing an absent review is a no-op.
func (r *Restaurant) RemoveReview(reviewID string) {
	kept := r.reviews[:0]
	for i := range r.reviews {
		if r.reviews[i].id != reviewID {
			kept = append(kept, r.reviews[i])
		}
	}
	r.reviews = kept
	r.recalcAverageRating()
}

// recalcAverageRating keeps averageRating a pure function of the review
// collection. Full recomputation on every mutation; collections are small
// enough that numeric drift from a running average is not worth the
// complexity.
func (r *Restaurant) recalcAverageRating() {
	if len(r.reviews) == 0 {
		r.averageRating = 0
		return
	}
	var sum float64
	for i := range r.reviews {
		sum += r.reviews[i].rating
	}
	r.averageRating = sum / float64(len(r.reviews))
}
