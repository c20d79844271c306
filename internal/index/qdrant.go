package index

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/qdrant/go-client/qdrant"
	"github.com/sushrutsadana/SalesChatAgent/internal/products"
)

const qdrantUpsertBatch = 100

// keeps the index in a qdrant collection
type QdrantStore struct {
	client     *qdrant.Client
	collection string
}

// connects and waits for qdrant to report healthy
func NewQdrantStore(ctx context.Context, host string, port int, collection string) (*QdrantStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 15 * time.Second

	health := func() error {
		_, err := client.HealthCheck(ctx)
		return err
	}

	if err := backoff.Retry(health, backoff.WithContext(b, ctx)); err != nil {
		client.Close() //nolint:errcheck
		return nil, fmt.Errorf("qdrant unreachable at %s:%d: %w", host, port, err)
	}

	return &QdrantStore{client: client, collection: collection}, nil
}

// drops and recreates the collection, then upserts every entry
func (s *QdrantStore) Persist(ctx context.Context, handle *MemoryHandle) error {
	if handle == nil || handle.Len() == 0 {
		return fmt.Errorf("%w: nothing to persist", ErrIndexBuild)
	}

	if err := s.Clear(ctx); err != nil {
		return err
	}

	err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(handle.Dimensions()), //nolint:gosec
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	points := make([]*qdrant.PointStruct, 0, qdrantUpsertBatch)

	flush := func() error {
		if len(points) == 0 {
			return nil
		}

		_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: s.collection,
			Wait:           qdrant.PtrOf(true),
			Points:         points,
		})
		points = points[:0]

		return err
	}

	for i, e := range handle.entries {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(i)), //nolint:gosec
			Vectors: qdrant.NewVectors(e.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"position":    int64(i),
				"doc_id":      e.Document.ID,
				"url":         e.Document.Metadata.URL,
				"title":       e.Document.Metadata.Title,
				"price":       e.Document.Metadata.Price,
				"source_type": e.Document.Metadata.SourceType,
				"content":     e.Document.Text,
			}),
		})

		if len(points) == qdrantUpsertBatch {
			if err := flush(); err != nil {
				return fmt.Errorf("failed to upsert points: %w", err)
			}
		}
	}

	if err := flush(); err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// a missing or empty collection yields (nil, nil)
func (s *QdrantStore) Load(ctx context.Context) (Handle, error) {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexLoad, err)
	}

	if !exists {
		return nil, nil
	}

	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexLoad, err)
	}

	if count == 0 {
		return nil, nil
	}

	return &qdrantHandle{client: s.client, collection: s.collection, count: int(count)}, nil //nolint:gosec
}

func (s *QdrantStore) Clear(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if !exists {
		return nil
	}

	if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	return nil
}

func (s *QdrantStore) Close() error {
	return s.client.Close()
}

// extra points fetched so equal scores at the cut resolve by position
const qdrantTieSlack = 8

type qdrantHandle struct {
	client     *qdrant.Client
	collection string
	count      int
}

func (h *qdrantHandle) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	results, err := h.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: h.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k + qdrantTieSlack)), //nolint:gosec
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query failed: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, point := range results {
		payload := point.GetPayload()

		hits[i] = Hit{
			Document: products.Document{
				ID:   payload["doc_id"].GetStringValue(),
				Text: payload["content"].GetStringValue(),
				Metadata: products.Metadata{
					URL:        payload["url"].GetStringValue(),
					Title:      payload["title"].GetStringValue(),
					Price:      payload["price"].GetStringValue(),
					SourceType: payload["source_type"].GetStringValue(),
				},
			},
			Score:    point.GetScore(),
			Position: int(payload["position"].GetIntegerValue()),
		}
	}

	return settleHits(hits, k), nil
}

// orders hits by score then position and keeps the best k
func settleHits(hits []Hit, k int) []Hit {
	SortHits(hits)
	if k >= 0 && len(hits) > k {
		hits = hits[:k]
	}

	return hits
}

func (h *qdrantHandle) Len() int {
	return h.count
}

// the connection belongs to the store
func (h *qdrantHandle) Close() error {
	return nil
}
