package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Client struct {
	pool *pgxpool.Pool
}

// one indexed product page as stored in postgres
type ProductRow struct {
	Position   int
	DocID      string
	URL        string
	Title      string
	Price      string
	SourceType string
	Content    string
	Embedding  []float32
	Similarity float32 // set by SearchProducts only
}

func NewClient(ctx context.Context, connString string) (*Client, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{pool: pool}, nil
}

func (c *Client) Close() {
	c.pool.Close()
}

// creates the pgvector extension and the product_documents table if missing
func (c *Client) EnsureSchema(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, createVectorExtensionQuery); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	if _, err := c.pool.Exec(ctx, createProductsTableQuery); err != nil {
		return fmt.Errorf("failed to create product_documents table: %w", err)
	}

	return nil
}
