package index

import (
	"context"
	"fmt"

	"github.com/sushrutsadana/SalesChatAgent/internal/config"
)

// opens the backend selected by INDEX_BACKEND
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.IndexBackend {
	case config.BackendSnapshot, "":
		return NewSnapshotStore(cfg.SnapshotPath), nil
	case config.BackendPgvector:
		return NewPgvectorStore(ctx, cfg.DatabaseURL)
	case config.BackendQdrant:
		return NewQdrantStore(ctx, cfg.QdrantHost, cfg.QdrantPort, cfg.QdrantCollection)
	default:
		return nil, fmt.Errorf("unsupported index backend: %s", cfg.IndexBackend)
	}
}
