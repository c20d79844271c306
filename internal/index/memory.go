package index

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
)

// brute-force cosine index held entirely in memory
type MemoryHandle struct {
	entries    []Entry
	dimensions int
}

// all vectors must share one non-zero dimension
func NewMemoryHandle(entries []Entry) (*MemoryHandle, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries")
	}

	dims := len(entries[0].Vector)
	if dims == 0 {
		return nil, fmt.Errorf("entry 0 has an empty vector")
	}

	for i, e := range entries {
		if len(e.Vector) != dims {
			return nil, fmt.Errorf("entry %d has %d dimensions, expected %d", i, len(e.Vector), dims)
		}
	}

	return &MemoryHandle{entries: entries, dimensions: dims}, nil
}

func (h *MemoryHandle) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	if len(vector) != h.dimensions {
		return nil, fmt.Errorf("query has %d dimensions, index has %d", len(vector), h.dimensions)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hits := make([]Hit, len(h.entries))
	for i, e := range h.entries {
		hits[i] = Hit{
			Document: e.Document,
			Score:    cosineSimilarity(vector, e.Vector),
			Position: i,
		}
	}

	SortHits(hits)

	if k > 0 && k < len(hits) {
		hits = hits[:k]
	}

	return hits, nil
}

func (h *MemoryHandle) Len() int {
	return len(h.entries)
}

func (h *MemoryHandle) Dimensions() int {
	return h.dimensions
}

// returns a copy of the indexed entries in insertion order
func (h *MemoryHandle) Entries() []Entry {
	return slices.Clone(h.entries)
}

func (h *MemoryHandle) Close() error {
	return nil
}

// orders hits by descending score, then by insertion order
func SortHits(hits []Hit) {
	slices.SortStableFunc(hits, func(a, b Hit) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Position, b.Position)
	})
}

func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64

	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
