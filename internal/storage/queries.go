package storage

const (
	createVectorExtensionQuery = "CREATE EXTENSION IF NOT EXISTS vector"

	createProductsTableQuery = `
		CREATE TABLE IF NOT EXISTS product_documents (
			position    INTEGER PRIMARY KEY,
			doc_id      TEXT NOT NULL,
			url         TEXT NOT NULL DEFAULT '',
			title       TEXT NOT NULL DEFAULT '',
			price       TEXT NOT NULL DEFAULT '',
			source_type TEXT NOT NULL DEFAULT '',
			content     TEXT NOT NULL,
			embedding   vector NOT NULL
		)
	`

	getProductCountQuery   = "SELECT COUNT(*) FROM product_documents"
	deleteAllProductsQuery = "DELETE FROM product_documents"

	insertProductQuery = `
		INSERT INTO product_documents (position, doc_id, url, title, price, source_type, content, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// cosine distance; ties fall back to insertion order
	searchProductsQuery = `
		SELECT
			position,
			doc_id,
			url,
			title,
			price,
			source_type,
			content,
			1 - (embedding <=> $1) AS similarity
		FROM product_documents
		ORDER BY embedding <=> $1, position
		LIMIT $2
	`
)
