package review

import (
	"context"

	"github.com/savora-cloud/savora/internal/domain/restaurant"
)

// Store is the slice of the document store gateway the review engine needs.
// Reviews are embedded, so every mutation is a load + whole-document save
// of the parent restaurant.
type Store interface {
	FindByID(ctx context.Context, id string) (*restaurant.Restaurant, error)
	Save(ctx context.Context, rest *restaurant.Restaurant) (*restaurant.Restaurant, error)
}
