// Package restaurant persists Restaurant aggregates as JSON documents in
// the search index. Every write is a whole-document replace; reviews have
// no storage identity outside their parent.
package restaurant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/savora-cloud/savora/internal/db"
	"github.com/savora-cloud/savora/internal/domain"
	"github.com/savora-cloud/savora/internal/domain/page"
	domrest "github.com/savora-cloud/savora/internal/domain/restaurant"
)

// store is the consumer interface for restaurant documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
}

// Repo implements the document store gateway consumed by the usecases.
type Repo struct {
	store     store
	keyPrefix string
	newID     func() string
}

// New creates a restaurant repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix, newID: uuid.NewString}
}

// Save upserts the whole aggregate document, assigning an id on first save.
func (r *Repo) Save(ctx context.Context, rest *domrest.Restaurant) (*domrest.Restaurant, error) {
	if rest.ID() == "" {
		if err := rest.AssignID(r.newID()); err != nil {
			return nil, fmt.Errorf("assign id: %w", err)
		}
	}

	data, err := json.Marshal(buildDoc(rest))
	if err != nil {
		return nil, fmt.Errorf("marshal restaurant: %w", err)
	}

	key := docKey(r.keyPrefix, rest.ID())
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return nil, fmt.Errorf("json.set %s: %w", key, err)
	}

	return rest, nil
}

// FindByID returns the aggregate or domain.ErrRestaurantNotFound.
func (r *Repo) FindByID(ctx context.Context, id string) (*domrest.Restaurant, error) {
	key := docKey(r.keyPrefix, id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("json.get %s: %w", key, err)
	}

	// JSON.GET with a $ path wraps the document in a one-element array.
	var docs []restaurantDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal restaurant %s: %w", id, err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrRestaurantNotFound
	}

	return parseDoc(id, docs[0])
}

// DeleteByID removes the aggregate. Deleting an absent id is a no-op.
func (r *Repo) DeleteByID(ctx context.Context, id string) error {
	key := docKey(r.keyPrefix, id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// QueryByMinRating returns restaurants with averageRating >= minRating.
func (r *Repo) QueryByMinRating(
	ctx context.Context, minRating float64, p page.Request,
) (page.Page[*domrest.Restaurant], error) {
	return r.search(ctx, buildMinRatingQuery(minRating), p)
}

// QueryByTextAndMinRating fuzzy-matches name or cuisineType AND'd with a
// rating floor.
func (r *Repo) QueryByTextAndMinRating(
	ctx context.Context, text string, minRating float64, p page.Request,
) (page.Page[*domrest.Restaurant], error) {
	return r.search(ctx, buildTextQuery(text, minRating), p)
}

// QueryByGeoRadius returns restaurants within radiusKm of (lat, lon).
func (r *Repo) QueryByGeoRadius(
	ctx context.Context, lat, lon, radiusKm float64, p page.Request,
) (page.Page[*domrest.Restaurant], error) {
	return r.search(ctx, buildGeoQuery(lat, lon, radiusKm), p)
}

// FindAll returns the unfiltered paginated listing.
func (r *Repo) FindAll(ctx context.Context, p page.Request) (page.Page[*domrest.Restaurant], error) {
	return r.search(ctx, "*", p)
}

func (r *Repo) search(
	ctx context.Context, query string, p page.Request,
) (page.Page[*domrest.Restaurant], error) {
	p = p.Normalize()

	result, err := r.store.SearchList(
		ctx, indexName(r.keyPrefix), query, p.Offset, p.Limit, []string{"$"},
	)
	if err != nil {
		return page.Page[*domrest.Restaurant]{}, fmt.Errorf("search restaurants: %w", err)
	}
	if result == nil || result.Total == 0 {
		return page.Empty[*domrest.Restaurant](0), nil
	}

	items := make([]*domrest.Restaurant, 0, len(result.Entries))
	for _, entry := range result.Entries {
		id := strings.TrimPrefix(entry.Key, docPrefix(r.keyPrefix))
		jsonStr := entry.Fields["$"]
		if jsonStr == "" {
			continue
		}
		var doc restaurantDoc
		if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
			continue
		}
		rest, err := parseDoc(id, doc)
		if err != nil {
			continue
		}
		items = append(items, rest)
	}

	return page.Page[*domrest.Restaurant]{Items: items, Total: result.Total}, nil
}
