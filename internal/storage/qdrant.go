package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// VectorDimension is the embedding size for text-embedding-3-small.
const VectorDimension = 1536

// pointNamespace seeds deterministic Qdrant point ids. Qdrant only accepts
// UUID or integer point ids, so each doc_<n> record id is hashed into a
// stable UUID; the record id itself lives in the payload as the join key.
var pointNamespace = uuid.MustParse("0b8f1c7e-24d5-4a09-9c2d-5f4a8e3b6d71")

// QdrantStore implements Store against a Qdrant instance over gRPC.
// The embedder is bound at construction and used for both upsert and query.
type QdrantStore struct {
	client   *qdrant.Client
	embedder Embedder
}

// NewQdrantStore connects to Qdrant and verifies it is reachable.
// The health check retries with exponential backoff and fails fast after 30s.
func NewQdrantStore(host string, port int, embedder Embedder) (*QdrantStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	store := &QdrantStore{client: client, embedder: embedder}

	if err := store.healthCheckWithRetry(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}

	return store, nil
}

// healthCheckWithRetry performs health checks with exponential backoff.
// Initial interval 500ms, max interval 10s, max elapsed 30s.
func (s *QdrantStore) healthCheckWithRetry(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		return s.Health(ctx)
	}, backoff.WithContext(b, ctx))
}

// Health performs a single health check against Qdrant.
func (s *QdrantStore) Health(ctx context.Context) error {
	result, err := s.client.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if result == nil || result.Title == "" {
		return fmt.Errorf("health check returned invalid response")
	}
	return nil
}

// Close closes the Qdrant client connection.
func (s *QdrantStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// collectionExists reports whether a collection with the given name exists.
func (s *QdrantStore) collectionExists(ctx context.Context, name string) (bool, error) {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return false, fmt.Errorf("list collections: %w", err)
	}
	for _, c := range collections {
		if c == name {
			return true, nil
		}
	}
	return false, nil
}

// DeleteCollection removes the named collection. Deleting a collection that
// does not exist is a no-op.
func (s *QdrantStore) DeleteCollection(ctx context.Context, name string) error {
	exists, err := s.collectionExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	if err := s.client.DeleteCollection(ctx, name); err != nil {
		return fmt.Errorf("delete collection %s: %w", name, err)
	}
	return nil
}

// CreateCollection creates a fresh collection configured for cosine distance.
func (s *QdrantStore) CreateCollection(ctx context.Context, name string) (Collection, error) {
	err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     VectorDimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("create collection %s: %w", name, err)
	}
	return &qdrantCollection{client: s.client, name: name, embedder: s.embedder}, nil
}

// GetCollection opens an existing collection. Returns ErrCollectionNotFound
// when nothing has been ingested under this name yet.
func (s *QdrantStore) GetCollection(ctx context.Context, name string) (Collection, error) {
	exists, err := s.collectionExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	return &qdrantCollection{client: s.client, name: name, embedder: s.embedder}, nil
}

// qdrantCollection is a handle to one named collection.
type qdrantCollection struct {
	client   *qdrant.Client
	name     string
	embedder Embedder
}

// Upsert embeds documents and stores them as points. The caller controls
// batch sizing; one call is one upsert request.
func (c *qdrantCollection) Upsert(ctx context.Context, ids []string, documents []string, metadatas []Metadata) error {
	if len(ids) != len(documents) || len(ids) != len(metadatas) {
		return fmt.Errorf("%w: ids=%d documents=%d metadatas=%d",
			ErrLengthMismatch, len(ids), len(documents), len(metadatas))
	}
	if len(ids) == 0 {
		return nil
	}

	vectors, err := c.embedder.EmbedTexts(ctx, documents)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}

	points := make([]*qdrant.PointStruct, len(ids))
	for i := range ids {
		pointID := uuid.NewSHA1(pointNamespace, []byte(ids[i]))
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(pointID.String()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"record_id":   ids[i],
				"text":        documents[i],
				"source":      metadatas[i].Source,
				"page":        metadatas[i].Page,
				"chunk_index": metadatas[i].ChunkIndex,
			}),
		}
	}

	return c.upsertWithRetry(ctx, points)
}

// upsertWithRetry performs the upsert with exponential backoff on transient
// transport failures.
func (c *qdrantCollection) upsertWithRetry(ctx context.Context, points []*qdrant.PointStruct) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		_, err := c.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: c.name,
			Points:         points,
		})
		return err
	}, backoff.WithContext(b, ctx))
}

// Query embeds the text and returns up to topK nearest matches.
// Qdrant reports cosine similarity; it is converted to cosine distance
// (1 - similarity) so matches come back in ascending distance order, which
// is the contract callers rank against.
func (c *qdrantCollection) Query(ctx context.Context, text string, topK int) ([]Match, error) {
	vectors, err := c.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := c.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.name,
		Query:          qdrant.NewQuery(vectors[0]...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query collection %s: %w", c.name, err)
	}

	matches := make([]Match, 0, len(results))
	for _, result := range results {
		payload := result.Payload
		matches = append(matches, Match{
			ID:   payload["record_id"].GetStringValue(),
			Text: payload["text"].GetStringValue(),
			Metadata: Metadata{
				Source:     payload["source"].GetStringValue(),
				Page:       int(payload["page"].GetIntegerValue()),
				ChunkIndex: int(payload["chunk_index"].GetIntegerValue()),
			},
			Distance: 1 - float64(result.Score),
		})
	}

	return matches, nil
}

// Count returns the number of stored points.
func (c *qdrantCollection) Count(ctx context.Context) (uint64, error) {
	info, err := c.client.GetCollectionInfo(ctx, c.name)
	if err != nil {
		return 0, fmt.Errorf("get collection %s: %w", c.name, err)
	}
	return info.GetPointsCount(), nil
}
