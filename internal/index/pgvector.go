package index

import (
	"context"
	"fmt"

	"github.com/sushrutsadana/SalesChatAgent/internal/products"
	"github.com/sushrutsadana/SalesChatAgent/internal/storage"
)

// keeps the index in a postgres table with a pgvector column
type PgvectorStore struct {
	client *storage.Client
}

func NewPgvectorStore(ctx context.Context, connString string) (*PgvectorStore, error) {
	client, err := storage.NewClient(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := client.EnsureSchema(ctx); err != nil {
		client.Close()
		return nil, err
	}

	return &PgvectorStore{client: client}, nil
}

// replaces the stored product set in one transaction
func (s *PgvectorStore) Persist(ctx context.Context, handle *MemoryHandle) error {
	if handle == nil || handle.Len() == 0 {
		return fmt.Errorf("%w: nothing to persist", ErrIndexBuild)
	}

	rows := make([]storage.ProductRow, handle.Len())
	for i, e := range handle.entries {
		rows[i] = storage.ProductRow{
			Position:   i,
			DocID:      e.Document.ID,
			URL:        e.Document.Metadata.URL,
			Title:      e.Document.Metadata.Title,
			Price:      e.Document.Metadata.Price,
			SourceType: e.Document.Metadata.SourceType,
			Content:    e.Document.Text,
			Embedding:  e.Vector,
		}
	}

	return s.client.ReplaceProducts(ctx, rows)
}

// an empty table yields (nil, nil)
func (s *PgvectorStore) Load(ctx context.Context) (Handle, error) {
	count, err := s.client.GetProductCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexLoad, err)
	}

	if count == 0 {
		return nil, nil
	}

	return &pgvectorHandle{client: s.client, count: count}, nil
}

func (s *PgvectorStore) Clear(ctx context.Context) error {
	return s.client.ClearProducts(ctx)
}

func (s *PgvectorStore) Close() error {
	s.client.Close()
	return nil
}

type pgvectorHandle struct {
	client *storage.Client
	count  int
}

func (h *pgvectorHandle) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	rows, err := h.client.SearchProducts(ctx, vector, k)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, len(rows))
	for i, row := range rows {
		hits[i] = Hit{
			Document: products.Document{
				ID:   row.DocID,
				Text: row.Content,
				Metadata: products.Metadata{
					URL:        row.URL,
					Title:      row.Title,
					Price:      row.Price,
					SourceType: row.SourceType,
				},
			},
			Score:    row.Similarity,
			Position: row.Position,
		}
	}

	return hits, nil
}

func (h *pgvectorHandle) Len() int {
	return h.count
}

// the pool belongs to the store
func (h *pgvectorHandle) Close() error {
	return nil
}
