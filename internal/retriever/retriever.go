package retriever

import (
	"context"
	"fmt"

	"github.com/sushrutsadana/SalesChatAgent/internal/index"
)

// creates a retriever embedding queries with embedder
func NewClient(embedder QueryEmbedder, topK int) *Client {
	if topK <= 0 {
		topK = defaultTopK
	}

	return &Client{
		embedder: embedder,
		topK:     topK,
	}
}

func (c *Client) TopK() int {
	return c.topK
}

// returns the topK nodes most similar to text, by descending score.
// equal scores keep document insertion order.
func (c *Client) Query(ctx context.Context, handle index.Handle, text string) ([]Node, error) {
	return c.QueryK(ctx, handle, text, c.topK)
}

// like Query with an explicit k; k larger than the corpus returns every document
func (c *Client) QueryK(ctx context.Context, handle index.Handle, text string, k int) ([]Node, error) {
	if handle == nil {
		return nil, fmt.Errorf("%w: index handle is not set", ErrRetrieval)
	}

	if k <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive, got %d", ErrRetrieval, k)
	}

	if c.embedder == nil {
		return nil, fmt.Errorf("%w: no embedder configured", ErrRetrieval)
	}

	embedding, err := c.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate query embedding: %w", ErrRetrieval, err)
	}

	hits, err := handle.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	return rankHits(hits, k), nil
}
