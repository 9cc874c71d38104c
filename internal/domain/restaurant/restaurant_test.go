package restaurant

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/savora-cloud/savora/internal/domain"
	"github.com/savora-cloud/savora/internal/domain/geo"
)

// --- Construction ---

func TestNew_Valid(t *testing.T) {
	rest, err := New(validDetails(), validLocation(), validPhotos())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rest.ID() != "" {
		t.Errorf("expected empty id before first save, got %q", rest.ID())
	}
	if rest.AverageRating() != 0 {
		t.Errorf("expected zero rating, got %v", rest.AverageRating())
	}
	if len(rest.Reviews()) != 0 {
		t.Errorf("expected no reviews, got %d", len(rest.Reviews()))
	}
}

func TestNew_CollectsAllViolations(t *testing.T) {
	d := validDetails()
	d.Name = ""
	d.Address.City = ""

	_, err := New(d, validLocation(), nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{"name cannot be blank", "city cannot be blank", "at least one photo"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error to mention %q, got %q", want, msg)
		}
	}
}

func TestNew_RejectsInvalidLocation(t *testing.T) {
	_, err := New(validDetails(), geo.Point{Latitude: 95, Longitude: 0}, validPhotos())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAssignID_Stable(t *testing.T) {
	rest, err := New(validDetails(), validLocation(), validPhotos())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := rest.AssignID("rest-1"); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if err := rest.AssignID("rest-1"); err != nil {
		t.Errorf("re-assigning the same id should succeed: %v", err)
	}
	if err := rest.AssignID("rest-2"); err == nil {
		t.Error("expected error when assigning a different id")
	}
}

// --- Updates ---

func TestApplyUpdate_PreservesReviewsAndRating(t *testing.T) {
	rest := makeRestaurant(t)
	if err := rest.AddReview(makeReview(t, "rev-1", "user-1", 4, testTime)); err != nil {
		t.Fatalf("AddReview: %v", err)
	}

	d := validDetails()
	d.Name = "Silver Fork"
	if err := rest.ApplyUpdate(d, validLocation(), validPhotos()); err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}

	if rest.Name() != "Silver Fork" {
		t.Errorf("expected updated name, got %q", rest.Name())
	}
	if len(rest.Reviews()) != 1 {
		t.Errorf("expected reviews preserved, got %d", len(rest.Reviews()))
	}
	if rest.AverageRating() != 4 {
		t.Errorf("expected rating preserved, got %v", rest.AverageRating())
	}
}

func TestApplyUpdate_RejectsInvalidDetails(t *testing.T) {
	rest := makeRestaurant(t)

	d := validDetails()
	d.CuisineType = " "
	err := rest.ApplyUpdate(d, validLocation(), validPhotos())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if rest.CuisineType() != "Italian" {
		t.Errorf("aggregate mutated despite rejected update: %q", rest.CuisineType())
	}
}

// --- Reviews ---

func TestAddReview_RecalculatesAverage(t *testing.T) {
	rest := makeRestaurant(t)

	if err := rest.AddReview(makeReview(t, "rev-1", "user-1", 3, testTime)); err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if rest.AverageRating() != 3 {
		t.Errorf("expected 3, got %v", rest.AverageRating())
	}

	if err := rest.AddReview(makeReview(t, "rev-2", "user-2", 5, testTime)); err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if rest.AverageRating() != 4 {
		t.Errorf("expected 4, got %v", rest.AverageRating())
	}
}

func TestAddReview_DuplicateAuthor(t *testing.T) {
	rest := makeRestaurant(t)
	if err := rest.AddReview(makeReview(t, "rev-1", "user-1", 3, testTime)); err != nil {
		t.Fatalf("AddReview: %v", err)
	}

	err := rest.AddReview(makeReview(t, "rev-2", "user-1", 5, testTime))
	if !errors.Is(err, domain.ErrReviewNotAllowed) {
		t.Fatalf("expected ErrReviewNotAllowed, got %v", err)
	}
	if reason, _ := domain.PolicyReason(err); reason != domain.ReasonDuplicateAuthor {
		t.Errorf("expected duplicate_author reason, got %q", reason)
	}
	if len(rest.Reviews()) != 1 {
		t.Errorf("rejected review must not be appended, got %d reviews", len(rest.Reviews()))
	}
}

func TestEditReview_MovesToEndAndRecomputes(t *testing.T) {
	rest := makeRestaurant(t)
	author := User{ID: "user-1", Username: "user-1"}
	if err := rest.AddReview(makeReview(t, "rev-1", "user-1", 2, testTime)); err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if err := rest.AddReview(makeReview(t, "rev-2", "user-2", 4, testTime)); err != nil {
		t.Fatalf("AddReview: %v", err)
	}

	editedAt := testTime.Add(time.Hour)
	updated, err := rest.EditReview(author, "rev-1", ReviewInput{
		Content: "better on the second visit",
		Rating:  5,
	}, editedAt)
	if err != nil {
		t.Fatalf("EditReview: %v", err)
	}

	if updated.DatePosted() != testTime {
		t.Errorf("datePosted must not change on edit")
	}
	if updated.LastEdited() != editedAt {
		t.Errorf("expected lastEdited %v, got %v", editedAt, updated.LastEdited())
	}
	if rest.AverageRating() != 4.5 {
		t.Errorf("expected 4.5, got %v", rest.AverageRating())
	}

	reviews := rest.Reviews()
	if reviews[len(reviews)-1].ID() != "rev-1" {
		t.Errorf("edited review must move to the end of the collection")
	}
}

func TestEditReview_NotOwner(t *testing.T) {
	rest := makeRestaurant(t)
	if err := rest.AddReview(makeReview(t, "rev-1", "user-1", 3, testTime)); err != nil {
		t.Fatalf("AddReview: %v", err)
	}

	_, err := rest.EditReview(User{ID: "user-2"}, "rev-1", ReviewInput{
		Content: "hijack", Rating: 1,
	}, testTime.Add(time.Hour))
	if reason, _ := domain.PolicyReason(err); reason != domain.ReasonNotOwner {
		t.Fatalf("expected not_owner reason, got %v (%v)", reason, err)
	}
}

func TestEditReview_Window(t *testing.T) {
	rest := makeRestaurant(t)
	author := User{ID: "user-1"}
	if err := rest.AddReview(makeReview(t, "rev-1", "user-1", 3, testTime)); err != nil {
		t.Fatalf("AddReview: %v", err)
	}

	// Exactly at the boundary is still allowed.
	if _, err := rest.EditReview(author, "rev-1", ReviewInput{
		Content: "still in time", Rating: 4,
	}, testTime.Add(EditWindow)); err != nil {
		t.Fatalf("edit at window boundary should succeed: %v", err)
	}

	_, err := rest.EditReview(author, "rev-1", ReviewInput{
		Content: "too late", Rating: 4,
	}, testTime.Add(EditWindow+time.Nanosecond))
	if reason, _ := domain.PolicyReason(err); reason != domain.ReasonEditWindowExpired {
		t.Fatalf("expected edit_window_expired reason, got %v (%v)", reason, err)
	}
}

func TestEditReview_Missing(t *testing.T) {
	rest := makeRestaurant(t)

	_, err := rest.EditReview(User{ID: "user-1"}, "no-such", ReviewInput{
		Content: "x", Rating: 3,
	}, testTime)
	if reason, _ := domain.PolicyReason(err); reason != domain.ReasonReviewMissing {
		t.Fatalf("expected review_missing reason, got %v (%v)", reason, err)
	}
}

func TestRemoveReview_RecalculatesAndIsIdempotent(t *testing.T) {
	rest := makeRestaurant(t)
	if err := rest.AddReview(makeReview(t, "rev-1", "user-1", 2, testTime)); err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if err := rest.AddReview(makeReview(t, "rev-2", "user-2", 4, testTime)); err != nil {
		t.Fatalf("AddReview: %v", err)
	}

	rest.RemoveReview("rev-1")
	if rest.AverageRating() != 4 {
		t.Errorf("expected 4 after removal, got %v", rest.AverageRating())
	}

	rest.RemoveReview("no-such")
	if len(rest.Reviews()) != 1 {
		t.Errorf("removing an absent review must be a no-op")
	}

	rest.RemoveReview("rev-2")
	if rest.AverageRating() != 0 {
		t.Errorf("expected 0 with no reviews, got %v", rest.AverageRating())
	}
}

func TestAverageRating_IsMeanOfRatings(t *testing.T) {
	rest := makeRestaurant(t)
	ratings := []float64{1, 2.5, 5, 4}
	for i, rating := range ratings {
		rev := makeReview(t, "rev-"+string(rune('a'+i)), "user-"+string(rune('a'+i)), rating, testTime)
		if err := rest.AddReview(rev); err != nil {
			t.Fatalf("AddReview: %v", err)
		}
	}

	want := (1 + 2.5 + 5 + 4) / 4.0
	if math.Abs(rest.AverageRating()-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, rest.AverageRating())
	}
}
