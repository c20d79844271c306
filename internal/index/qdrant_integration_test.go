//go:build integration

package index

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQdrantStoreRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	store, err := NewQdrantStore(ctx, "localhost", 6334, "products-test-"+uuid.NewString())
	if err != nil {
		t.Skipf("qdrant unreachable: %v", err)
	}

	defer store.Close() //nolint:errcheck
	defer store.Clear(context.Background()) //nolint:errcheck

	handle, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, handle)

	built, err := Build(ctx, &mockEmbedder{}, testDocs())
	require.NoError(t, err)
	require.NoError(t, store.Persist(ctx, built))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 3, loaded.Len())

	hits, err := loaded.Search(ctx, []float32{3, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "https://x/untitled", hits[0].Document.Metadata.URL)
}
