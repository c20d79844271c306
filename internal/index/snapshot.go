package index

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sushrutsadana/SalesChatAgent/internal/products"
	_ "modernc.org/sqlite" // SQLite driver
)

// file written inside the snapshot directory
const snapshotFile = "index.db"

const (
	createSnapshotDocuments = `
		CREATE TABLE documents (
			position    INTEGER PRIMARY KEY,
			doc_id      TEXT NOT NULL,
			url         TEXT NOT NULL DEFAULT '',
			title       TEXT NOT NULL DEFAULT '',
			price       TEXT NOT NULL DEFAULT '',
			source_type TEXT NOT NULL DEFAULT '',
			content     TEXT NOT NULL,
			embedding   BLOB NOT NULL
		)
	`

	createSnapshotMeta = `
		CREATE TABLE snapshot_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`

	insertSnapshotDocument = `
		INSERT INTO documents (position, doc_id, url, title, price, source_type, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertSnapshotMeta = "INSERT INTO snapshot_meta (key, value) VALUES (?, ?)"

	selectSnapshotDocuments = `
		SELECT position, doc_id, url, title, price, source_type, content, embedding
		FROM documents
		ORDER BY position
	`
)

// persists the index as a sqlite file inside a directory
type SnapshotStore struct {
	dir string
}

func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

func (s *SnapshotStore) path() string {
	return filepath.Join(s.dir, snapshotFile)
}

// overwrites any existing snapshot. a crash mid-write leaves a partial file.
func (s *SnapshotStore) Persist(ctx context.Context, handle *MemoryHandle) error {
	if handle == nil || handle.Len() == 0 {
		return fmt.Errorf("%w: nothing to persist", ErrIndexBuild)
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	if err := s.Clear(ctx); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", s.path())
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}

	defer db.Close() //nolint:errcheck

	for _, ddl := range []string{createSnapshotDocuments, createSnapshotMeta} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating snapshot schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot write: %w", err)
	}

	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, insertSnapshotDocument)
	if err != nil {
		return fmt.Errorf("preparing snapshot insert: %w", err)
	}

	defer stmt.Close() //nolint:errcheck

	for i, e := range handle.entries {
		meta := e.Document.Metadata

		_, err := stmt.ExecContext(ctx,
			i,
			e.Document.ID,
			meta.URL,
			meta.Title,
			meta.Price,
			meta.SourceType,
			e.Document.Text,
			float32SliceToBytes(e.Vector),
		)
		if err != nil {
			return fmt.Errorf("writing document %d: %w", i, err)
		}
	}

	meta := map[string]string{
		"dimensions": strconv.Itoa(handle.dimensions),
		"documents":  strconv.Itoa(handle.Len()),
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, insertSnapshotMeta, k, v); err != nil {
			return fmt.Errorf("writing snapshot metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}

	return nil
}

// a missing directory or an unreadable snapshot is ErrIndexLoad.
// a directory without a snapshot, or with an empty one, yields (nil, nil).
func (s *SnapshotStore) Load(ctx context.Context) (Handle, error) {
	info, err := os.Stat(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot directory %s: %w", ErrIndexLoad, s.dir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrIndexLoad, s.dir)
	}

	if _, err := os.Stat(s.path()); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexLoad, err)
	}

	entries, err := s.readEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexLoad, err)
	}

	if len(entries) == 0 {
		return nil, nil
	}

	handle, err := NewMemoryHandle(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt snapshot: %w", ErrIndexLoad, err)
	}

	return handle, nil
}

func (s *SnapshotStore) readEntries(ctx context.Context) ([]Entry, error) {
	db, err := sql.Open("sqlite", s.path())
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}

	defer db.Close() //nolint:errcheck

	rows, err := db.QueryContext(ctx, selectSnapshotDocuments)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	defer rows.Close() //nolint:errcheck

	var entries []Entry

	for rows.Next() {
		var (
			position int
			doc      products.Document
			blob     []byte
		)

		err := rows.Scan(
			&position,
			&doc.ID,
			&doc.Metadata.URL,
			&doc.Metadata.Title,
			&doc.Metadata.Price,
			&doc.Metadata.SourceType,
			&doc.Text,
			&blob,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		if len(blob) == 0 || len(blob)%4 != 0 {
			return nil, fmt.Errorf("document %d has a malformed embedding", position)
		}

		entries = append(entries, Entry{Document: doc, Vector: bytesToFloat32Slice(blob)})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot: %w", err)
	}

	return entries, nil
}

// removes the snapshot file, keeping the directory
func (s *SnapshotStore) Clear(_ context.Context) error {
	for _, suffix := range []string{"", "-wal", "-shm", "-journal"} {
		if err := os.Remove(s.path() + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing snapshot: %w", err)
		}
	}

	return nil
}

func (s *SnapshotStore) Close() error {
	return nil
}

func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}

	return buf
}

func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}

	return floats
}
