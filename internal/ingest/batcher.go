// Package ingest submits chunk records to the vector store in bounded batches.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bull/docquery/internal/corpus"
	"github.com/bull/docquery/internal/storage"
)

// ProgressFunc observes ingestion progress after each submitted batch.
type ProgressFunc func(stored, total int)

// Result holds statistics about a completed ingestion run.
type Result struct {
	ChunksStored int
	Duration     time.Duration
}

// Batcher replaces the target collection and submits records in contiguous
// batches. Batch boundaries only bound payload size; they never split a
// chunk and carry no semantic meaning.
type Batcher struct {
	store      storage.Store
	collection string
	batchSize  int
	progress   ProgressFunc
	logger     *slog.Logger
}

// NewBatcher creates a batcher. progress may be nil; logger nil -> Default.
func NewBatcher(store storage.Store, collection string, batchSize int, progress ProgressFunc, logger *slog.Logger) *Batcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batcher{
		store:      store,
		collection: collection,
		batchSize:  batchSize,
		progress:   progress,
		logger:     logger,
	}
}

// Ingest drops the target collection if present, creates it fresh, and
// submits all records in batches of at most the configured size. A store
// failure aborts the run: a partially written collection must not pass as
// success. Zero records still leaves a fresh, empty collection behind.
func (b *Batcher) Ingest(ctx context.Context, records []corpus.Record) (*Result, error) {
	start := time.Now()

	if err := b.store.DeleteCollection(ctx, b.collection); err != nil {
		return nil, fmt.Errorf("delete collection: %w", err)
	}
	coll, err := b.store.CreateCollection(ctx, b.collection)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	stored := 0
	for i := 0; i < len(records); i += b.batchSize {
		end := min(i+b.batchSize, len(records))
		batch := records[i:end]

		ids := make([]string, len(batch))
		texts := make([]string, len(batch))
		metadatas := make([]storage.Metadata, len(batch))
		for j, rec := range batch {
			ids[j] = rec.ID
			texts[j] = rec.Text
			metadatas[j] = storage.Metadata{
				Source:     rec.Source,
				Page:       rec.Page,
				ChunkIndex: rec.ChunkIndex,
			}
		}

		if err := coll.Upsert(ctx, ids, texts, metadatas); err != nil {
			return nil, fmt.Errorf("upsert batch %d-%d: %w", i, end, err)
		}

		stored += len(batch)
		if b.progress != nil {
			b.progress(stored, len(records))
		}
		b.logger.Debug("Stored batch", "from", i, "to", end, "total", len(records))
	}

	result := &Result{
		ChunksStored: stored,
		Duration:     time.Since(start),
	}
	b.logger.Info("Ingestion complete", "chunks", stored, "duration", result.Duration)
	return result, nil
}
