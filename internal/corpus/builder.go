// Package corpus turns source documents into a flat, ordered sequence of
// chunk records ready for ingestion.
package corpus

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/bull/docquery/internal/chunker"
	"github.com/bull/docquery/internal/pdf"
)

// Record is one chunk of page text with its provenance. ID is the sole join
// key between the chunk's text/metadata and its stored vector.
type Record struct {
	ID         string // "doc_<n>", monotonically increasing across the corpus
	Text       string
	Source     string // document file name
	Page       int    // 1-based page number
	ChunkIndex int    // 0-based position within the page
}

// FailedDoc records a document that could not be extracted.
type FailedDoc struct {
	Path   string
	Reason string
}

// Result holds the built records plus traversal statistics.
type Result struct {
	Records   []Record
	Documents int // documents successfully processed
	Failed    []FailedDoc
}

// Extractor yields the non-blank pages of a document. Page numbers are
// 1-based. May fail per document; the builder skips and continues.
type Extractor interface {
	ExtractPages(path string) ([]pdf.Page, error)
}

// Builder walks documents in the given order and chunks every page.
type Builder struct {
	extractor Extractor
	chunker   *chunker.Chunker
	logger    *slog.Logger
}

// NewBuilder creates a corpus builder.
func NewBuilder(extractor Extractor, chunker *chunker.Chunker, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		extractor: extractor,
		chunker:   chunker,
		logger:    logger,
	}
}

// Build produces chunk records for every document in paths, in order.
// Global ids restart at doc_0 on every build; chunk indexes restart at 0 on
// every page. A document whose extraction fails is skipped and reported so
// one corrupt file cannot abort the whole ingestion.
func (b *Builder) Build(paths []string) *Result {
	result := &Result{}
	nextID := 0

	for _, path := range paths {
		source := filepath.Base(path)

		pages, err := b.extractor.ExtractPages(path)
		if err != nil {
			b.logger.Warn("Failed to extract document", "source", source, "error", err)
			result.Failed = append(result.Failed, FailedDoc{Path: path, Reason: err.Error()})
			continue
		}

		for _, page := range pages {
			chunks := b.chunker.Chunk(page.Text)
			for idx, text := range chunks {
				result.Records = append(result.Records, Record{
					ID:         fmt.Sprintf("doc_%d", nextID),
					Text:       text,
					Source:     source,
					Page:       page.Number,
					ChunkIndex: idx,
				})
				nextID++
			}
		}

		result.Documents++
		b.logger.Debug("Chunked document", "source", source, "pages", len(pages))
	}

	return result
}
