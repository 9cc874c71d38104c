package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRestaurantNotFound signals a missing restaurant aggregate.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrReviewNotFound signals a missing review inside an existing restaurant.
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewNotAllowed signals a review policy rejection (terminal, never retried).
	ErrReviewNotAllowed = errors.New("review not allowed")
	// ErrValidation signals rejected input; wrapped violations carry the details.
	ErrValidation = errors.New("validation failed")
	// ErrGeocodeUnavailable signals a geolocation collaborator failure.
	// A restaurant create/update must abort without persisting anything.
	ErrGeocodeUnavailable = errors.New("geocoder unavailable")
	// ErrReviewConsistency signals that a just-persisted review could not be
	// read back from the saved aggregate. Indicates a bug or a store anomaly.
	ErrReviewConsistency = errors.New("review missing after persist")
)

// ReviewPolicyReason identifies which review policy rule was violated.
type ReviewPolicyReason string

const (
	// ReasonDuplicateAuthor means the author already has a review on the restaurant.
	ReasonDuplicateAuthor ReviewPolicyReason = "duplicate_author"
	// ReasonNotOwner means the caller is not the review's author.
	ReasonNotOwner ReviewPolicyReason = "not_owner"
	// ReasonEditWindowExpired means the 48h window after datePosted has passed.
	ReasonEditWindowExpired ReviewPolicyReason = "edit_window_expired"
	// ReasonReviewMissing means the review to edit does not exist.
	ReasonReviewMissing ReviewPolicyReason = "review_missing"
)

// ReviewNotAllowedError wraps ErrReviewNotAllowed with the violated rule.
type ReviewNotAllowedError struct {
	Reason  ReviewPolicyReason
	Message string
}

func (e *ReviewNotAllowedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrReviewNotAllowed.Error(), e.Message)
}

func (e *ReviewNotAllowedError) Unwrap() error { return ErrReviewNotAllowed }

// NewReviewNotAllowed creates a policy rejection with the violated rule.
func NewReviewNotAllowed(reason ReviewPolicyReason, message string) error {
	return &ReviewNotAllowedError{Reason: reason, Message: message}
}

// PolicyReason extracts the ReviewPolicyReason from err, if any.
func PolicyReason(err error) (ReviewPolicyReason, bool) {
	var e *ReviewNotAllowedError
	if errors.As(err, &e) {
		return e.Reason, true
	}
	return "", false
}
