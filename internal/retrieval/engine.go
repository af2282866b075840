// Package retrieval turns a question into ranked, display-ready results.
package retrieval

import (
	"context"
	"fmt"

	"github.com/bull/docquery/internal/storage"
)

// Result is one ranked match for display.
type Result struct {
	Rank       int // 1-based position in store order
	Text       string
	Source     string
	Page       int
	Similarity float64
}

// Engine queries an existing collection. The collection must have been
// ingested first; a missing collection is an error, not an empty answer.
type Engine struct {
	store      storage.Store
	collection string
}

// NewEngine creates a retrieval engine over the named collection.
func NewEngine(store storage.Store, collection string) *Engine {
	return &Engine{store: store, collection: collection}
}

// Retrieve returns up to topK results ordered as the store returned them
// (ascending distance, closest first). Similarity is 1 - distance and is not
// clamped; unbounded metrics may push it outside [0,1]. Zero matches yields
// an empty slice, nil error.
// A missing collection yields storage.ErrCollectionNotFound.
func (e *Engine) Retrieve(ctx context.Context, question string, topK int) ([]Result, error) {
	coll, err := e.store.GetCollection(ctx, e.collection)
	if err != nil {
		return nil, err
	}

	matches, err := coll.Query(ctx, question, topK)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	results := make([]Result, 0, len(matches))
	for i, match := range matches {
		results = append(results, Result{
			Rank:       i + 1,
			Text:       match.Text,
			Source:     match.Metadata.Source,
			Page:       match.Metadata.Page,
			Similarity: 1 - match.Distance,
		})
	}

	return results, nil
}

// Count reports how many chunks the collection holds.
func (e *Engine) Count(ctx context.Context) (uint64, error) {
	coll, err := e.store.GetCollection(ctx, e.collection)
	if err != nil {
		return 0, err
	}
	return coll.Count(ctx)
}
