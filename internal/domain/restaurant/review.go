package restaurant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/savora-cloud/savora/internal/domain"
)

// EditWindow is the interval after a review's original post time during
// which only its author may modify it. Measured from datePosted, not from
// the last edit.
const EditWindow = 48 * time.Hour

// Rating bounds. The underlying store accepts any float, so the bound is
// enforced here before anything is persisted.
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// Review is a value-entity embedded in a Restaurant. It has no independent
// persistence; its identity is meaningful only within its parent aggregate.
type Review struct {
	id         string
	content    string
	rating     float64
	photos     []Photo
	datePosted time.Time
	lastEdited time.Time
	writtenBy  User
}

// ReviewInput carries the author-editable fields of a review.
type ReviewInput struct {
	Content string
	Rating  float64
	Photos  []Photo
}

// Validate collects every violation of the editable review fields.
func (in ReviewInput) Validate() error {
	var errs error
	if strings.TrimSpace(in.Content) == "" {
		errs = multierr.Append(errs, errors.New("content cannot be blank"))
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		errs = multierr.Append(errs,
			fmt.Errorf("rating must be between %g and %g", MinRating, MaxRating))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, errs)
	}
	return nil
}

// NewReview validates and creates a Review. datePosted and lastEdited are
// both set to postedAt; they diverge on the first edit.
func NewReview(id string, in ReviewInput, author User, postedAt time.Time) (Review, error) {
	if id == "" {
		return Review{}, fmt.Errorf("%w: review id is required", domain.ErrValidation)
	}
	if author.ID == "" {
		return Review{}, fmt.Errorf("%w: review author is required", domain.ErrValidation)
	}
	if err := in.Validate(); err != nil {
		return Review{}, err
	}

	return Review{
		id:         id,
		content:    in.Content,
		rating:     in.Rating,
		photos:     clonePhotos(in.Photos),
		datePosted: postedAt,
		lastEdited: postedAt,
		writtenBy:  author,
	}, nil
}

// ReconstructReview creates a Review without validation (storage hydration).
func ReconstructReview(
	id, content string, rating float64, photos []Photo,
	datePosted, lastEdited time.Time, writtenBy User,
) Review {
	return Review{
		id:         id,
		content:    content,
		rating:     rating,
		photos:     photos,
		datePosted: datePosted,
		lastEdited: lastEdited,
		writtenBy:  writtenBy,
	}
}

// ID returns the review identifier.
func (r *Review) ID() string { return r.id }

// Content returns the review text.
func (r *Review) Content() string { return r.content }

// Rating returns the numeric score.
func (r *Review) Rating() float64 { return r.rating }

// Photos returns the attached photo references.
func (r *Review) Photos() []Photo { return clonePhotos(r.photos) }

// DatePosted returns the immutable original post time.
func (r *Review) DatePosted() time.Time { return r.datePosted }

// LastEdited returns the time of the most recent content/rating/photo change.
func (r *Review) LastEdited() time.Time { return r.lastEdited }

// WrittenBy returns the authoring user.
func (r *Review) WrittenBy() User { return r.writtenBy }

// edited returns a copy with the editable fields replaced and lastEdited
// advanced. id, datePosted and writtenBy never change.
func (r Review) edited(in ReviewInput, now time.Time) Review {
	r.content = in.Content
	r.rating = in.Rating
	r.photos = clonePhotos(in.Photos)
	r.lastEdited = now
	return r
}

func clonePhotos(photos []Photo) []Photo {
	if photos == nil {
		return nil
	}
	c := make([]Photo, len(photos))
	copy(c, photos)
	return c
}
