// Package storage defines the vector store capability contracts and their
// Qdrant-backed implementation.
package storage

import "context"

// Metadata is the provenance stored alongside each chunk.
type Metadata struct {
	Source     string // document file name
	Page       int    // 1-based page number
	ChunkIndex int    // 0-based position within the page
}

// Match is one query result. Distance is the collection's distance metric
// (cosine distance here); matches are returned in ascending distance order.
type Match struct {
	ID       string
	Text     string
	Metadata Metadata
	Distance float64
}

// Embedder turns texts into fixed-length vectors. Implementations must be
// deterministic for identical input and model.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Store manages the lifecycle of named collections.
type Store interface {
	// DeleteCollection removes a collection. Absence is not an error.
	DeleteCollection(ctx context.Context, name string) error
	// CreateCollection creates a fresh collection bound to the store's embedder.
	CreateCollection(ctx context.Context, name string) (Collection, error)
	// GetCollection opens an existing collection, or ErrCollectionNotFound.
	GetCollection(ctx context.Context, name string) (Collection, error)
}

// Collection is a handle to one named set of chunk records and embeddings.
type Collection interface {
	// Upsert embeds and stores documents. All slices must align by position.
	Upsert(ctx context.Context, ids []string, documents []string, metadatas []Metadata) error
	// Query returns up to topK nearest matches in ascending distance order.
	Query(ctx context.Context, text string, topK int) ([]Match, error)
	// Count returns the number of stored records.
	Count(ctx context.Context) (uint64, error)
}
