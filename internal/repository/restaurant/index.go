package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/savora-cloud/savora/internal/db"
)

// IndexDefinition builds the FT index over restaurant documents: fuzzy text
// on name and cuisineType, a numeric rating floor, and a geo radius field.
func IndexDefinition(keyPrefix string) *db.IndexDefinition {
	return db.NewIndex(indexName(keyPrefix)).
		OnJSON().
		Prefix(docPrefix(keyPrefix)).
		TextAs("$.name", "name").
		TextAs("$.cuisineType", "cuisineType").
		NumericAs("$.averageRating", "averageRating").
		GeoAs("$.geoLocation", "geoLocation").
		MustBuild()
}

// EnsureIndex creates the restaurant index if it does not already exist.
func EnsureIndex(ctx context.Context, mgr db.IndexManager, keyPrefix string) error {
	err := mgr.CreateIndex(ctx, IndexDefinition(keyPrefix))
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create restaurant index: %w", err)
	}
	return nil
}

func indexName(keyPrefix string) string {
	return keyPrefix + "restaurants:idx"
}

func docPrefix(keyPrefix string) string {
	return keyPrefix + "restaurants:"
}

func docKey(keyPrefix, id string) string {
	return docPrefix(keyPrefix) + id
}
