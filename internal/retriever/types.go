package retriever

import (
	"context"
	"errors"

	"github.com/sushrutsadana/SalesChatAgent/internal/products"
)

var ErrRetrieval = errors.New("retrieval failed")

// embeds a single query text
type QueryEmbedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// one retrieved document with its similarity and 1-based rank
type Node struct {
	Document products.Document
	Score    float32
	Rank     int
}

type Client struct {
	embedder QueryEmbedder
	topK     int
}
