package index

import (
	"context"
	"errors"

	"github.com/sushrutsadana/SalesChatAgent/internal/products"
)

var (
	ErrIndexBuild = errors.New("index build failed")
	ErrIndexLoad  = errors.New("index load failed")
)

// read-only view over an index, shared by concurrent queries
type Handle interface {
	// returns at most k hits, best first
	Search(ctx context.Context, vector []float32, k int) ([]Hit, error)
	Len() int
	Close() error
}

// backend that persists and reloads a built index
type Store interface {
	Persist(ctx context.Context, handle *MemoryHandle) error
	Load(ctx context.Context) (Handle, error)
	Clear(ctx context.Context) error
	Close() error
}

// generates embeddings for a batch of texts
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

type Hit struct {
	Document products.Document
	Score    float32
	Position int // insertion order, used to break score ties
}

// document plus its embedding
type Entry struct {
	Document products.Document
	Vector   []float32
}
