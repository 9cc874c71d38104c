// Package review is the review consistency engine: review CRUD embedded in
// a restaurant aggregate, the one-review-per-author rule, the 48h edit
// window, and the synchronous average-rating recompute on every mutation.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/savora-cloud/savora/internal/domain"
	"github.com/savora-cloud/savora/internal/domain/page"
	"github.com/savora-cloud/savora/internal/domain/restaurant"
)

// Input carries the author-supplied review fields. Photo refs are URLs of
// previously uploaded blobs; upload dates are stamped here.
type Input struct {
	Content   string
	Rating    float64
	PhotoRefs []string
}

// Sort selects the review list ordering.
type Sort struct {
	Field     string
	Ascending bool
}

// Review list sort fields. An unrecognized field falls back to datePosted.
const (
	SortFieldDatePosted = "datePosted"
	SortFieldRating     = "rating"
)

// DefaultSort is datePosted descending (newest first).
func DefaultSort() Sort {
	return Sort{Field: SortFieldDatePosted, Ascending: false}
}

// Service orchestrates review mutations over the restaurant aggregate.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

// New creates a review service.
func New(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock overrides the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithIDGenerator overrides the review id generator (tests).
func (s *Service) WithIDGenerator(newID func() string) *Service {
	s.newID = newID
	return s
}

// Create appends a new review by author to the restaurant, recomputes the
// average rating and persists the whole aggregate. The created review is
// read back from the persisted aggregate; if it cannot be found there the
// operation reports a consistency fault.
func (s *Service) Create(
	ctx context.Context, author restaurant.User, restaurantID string, in Input,
) (restaurant.Review, error) {
	rest, err := s.store.FindByID(ctx, restaurantID)
	if err != nil {
		return restaurant.Review{}, fmt.Errorf("load restaurant: %w", err)
	}

	now := s.now()
	rev, err := restaurant.NewReview(s.newID(), restaurant.ReviewInput{
		Content: in.Content,
		Rating:  in.Rating,
		Photos:  restaurant.PhotosFromRefs(in.PhotoRefs, now),
	}, author, now)
	if err != nil {
		return restaurant.Review{}, err
	}

	if err := rest.AddReview(rev); err != nil {
		return restaurant.Review{}, err
	}

	saved, err := s.store.Save(ctx, rest)
	if err != nil {
		return restaurant.Review{}, fmt.Errorf("save restaurant: %w", err)
	}

	stored, ok := saved.Review(rev.ID())
	if !ok {
		return restaurant.Review{}, fmt.Errorf(
			"review %s on restaurant %s: %w", rev.ID(), restaurantID, domain.ErrReviewConsistency,
		)
	}
	return stored, nil
}

// List returns one page of the restaurant's reviews, sorted in memory.
// Reviews are not independently indexed, so the whole embedded collection
// is sorted and sliced here; Total is always the full review count.
func (s *Service) List(
	ctx context.Context, restaurantID string, p page.Request, sort Sort,
) (page.Page[restaurant.Review], error) {
	rest, err := s.store.FindByID(ctx, restaurantID)
	if err != nil {
		return page.Page[restaurant.Review]{}, fmt.Errorf("load restaurant: %w", err)
	}

	return page.SortSlice(rest.Reviews(), comparator(sort), p), nil
}

// Get returns a single review or domain.ErrReviewNotFound.
func (s *Service) Get(ctx context.Context, restaurantID, reviewID string) (restaurant.Review, error) {
	rest, err := s.store.FindByID(ctx, restaurantID)
	if err != nil {
		return restaurant.Review{}, fmt.Errorf("load restaurant: %w", err)
	}

	rev, ok := rest.Review(reviewID)
	if !ok {
		return restaurant.Review{}, domain.ErrReviewNotFound
	}
	return rev, nil
}

// Update applies an author edit, recomputes the average rating and persists
// the whole aggregate. Ownership and the edit window are enforced by the
// aggregate.
func (s *Service) Update(
	ctx context.Context, author restaurant.User, restaurantID, reviewID string, in Input,
) (restaurant.Review, error) {
	rest, err := s.store.FindByID(ctx, restaurantID)
	if err != nil {
		return restaurant.Review{}, fmt.Errorf("load restaurant: %w", err)
	}

	now := s.now()
	updated, err := rest.EditReview(author, reviewID, restaurant.ReviewInput{
		Content: in.Content,
		Rating:  in.Rating,
		Photos:  restaurant.PhotosFromRefs(in.PhotoRefs, now),
	}, now)
	if err != nil {
		return restaurant.Review{}, err
	}

	if _, err := s.store.Save(ctx, rest); err != nil {
		return restaurant.Review{}, fmt.Errorf("save restaurant: %w", err)
	}
	return updated, nil
}

// Delete removes a review and persists the recomputed aggregate. Deleting
// an absent review is a no-op (the aggregate is still re-saved).
func (s *Service) Delete(ctx context.Context, restaurantID, reviewID string) error {
	rest, err := s.store.FindByID(ctx, restaurantID)
	if err != nil {
		return fmt.Errorf("load restaurant: %w", err)
	}

	rest.RemoveReview(reviewID)

	if _, err := s.store.Save(ctx, rest); err != nil {
		return fmt.Errorf("save restaurant: %w", err)
	}
	return nil
}

// comparator builds the review ordering for List. Unrecognized sort fields
// order by datePosted.
func comparator(sort Sort) func(a, b restaurant.Review) bool {
	var less func(a, b restaurant.Review) bool
	switch sort.Field {
	case SortFieldRating:
		less = func(a, b restaurant.Review) bool { return a.Rating() < b.Rating() }
	default:
		less = func(a, b restaurant.Review) bool { return a.DatePosted().Before(b.DatePosted()) }
	}

	if sort.Ascending {
		return less
	}
	return func(a, b restaurant.Review) bool { return less(b, a) }
}
