package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"github.com/sushrutsadana/SalesChatAgent/internal/logger"
)

// deletes all indexed products
func (c *Client) ClearProducts(ctx context.Context) error {
	_, err := c.pool.Exec(ctx, deleteAllProductsQuery)
	if err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	return nil
}

// replaces the whole product set in a single transaction
func (c *Client) ReplaceProducts(ctx context.Context, rows []ProductRow) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, deleteAllProductsQuery); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	batch := &pgx.Batch{}

	for _, row := range rows {
		batch.Queue(insertProductQuery,
			row.Position,
			row.DocID,
			row.URL,
			row.Title,
			row.Price,
			row.SourceType,
			row.Content,
			pgvector.NewVector(row.Embedding),
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range len(rows) {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to insert product %d: %w", i, err)
		}
	}

	// must close batch results before committing, otherwise connection is still "busy"
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// returns the total number of indexed products
func (c *Client) GetProductCount(ctx context.Context) (int, error) {
	var count int

	err := c.pool.QueryRow(ctx, getProductCountQuery).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get product count: %w", err)
	}

	return count, nil
}

// returns the k products closest to embedding by cosine distance
func (c *Client) SearchProducts(ctx context.Context, embedding []float32, k int) ([]ProductRow, error) {
	rows, err := c.pool.Query(ctx, searchProductsQuery, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}

	defer rows.Close()

	var results []ProductRow

	for rows.Next() {
		var (
			row        ProductRow
			similarity float64
		)

		err := rows.Scan(
			&row.Position,
			&row.DocID,
			&row.URL,
			&row.Title,
			&row.Price,
			&row.SourceType,
			&row.Content,
			&similarity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row.Similarity = float32(similarity)
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}
