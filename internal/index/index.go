package index

import (
	"context"
	"fmt"

	"github.com/sushrutsadana/SalesChatAgent/internal/products"
)

// embeds every document and returns an in-memory handle over them
func Build(ctx context.Context, embedder Embedder, docs []products.Document) (*MemoryHandle, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents to index", ErrIndexBuild)
	}

	if embedder == nil {
		return nil, fmt.Errorf("%w: no embedder configured", ErrIndexBuild)
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	vectors, err := embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexBuild, err)
	}

	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", ErrIndexBuild, len(docs), len(vectors))
	}

	entries := make([]Entry, len(docs))
	for i, doc := range docs {
		entries[i] = Entry{Document: doc, Vector: vectors[i]}
	}

	handle, err := NewMemoryHandle(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexBuild, err)
	}

	return handle, nil
}
