package storage

import (
	"recstore/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCollectionStore_MatchesFileSemantics(t *testing.T) {
	store := NewMemoryCollectionStore(collection(t, models.KindGroup))

	exists, _ := store.Exists()
	assert.False(t, exists)

	records, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, records)

	exists, _ = store.Exists()
	assert.True(t, exists, "a read creates the collection")

	_, _ = store.Save(models.Record(`{"group_id":"g1","v":1}`))
	_, _ = store.Save(models.Record(`{"group_id":"g2"}`))
	n, err := store.Save(models.Record(`{"group_id":"g1","v":2}`))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, _ = store.Load()
	assert.JSONEq(t, `{"group_id":"g1","v":2}`, string(records[1]))
}

func TestMemoryCollectionStore_CopiesRecords(t *testing.T) {
	store := NewMemoryCollectionStore(collection(t, models.KindUser))
	in := models.Record(`{"user_id":"u1"}`)
	_, _ = store.Save(in)
	in[2] = 'X'

	records, _ := store.Load()
	assert.JSONEq(t, `{"user_id":"u1"}`, string(records[0]))
}

func TestMemoryConfigStore(t *testing.T) {
	store := NewMemoryConfigStore()

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(cfg))
	exists, _ := store.Exists()
	assert.False(t, exists)

	require.NoError(t, store.Save(models.Record(`{"a":1}`)))
	require.NoError(t, store.Save(models.Record(`{"b":2}`)))
	cfg, _ = store.Load()
	assert.Equal(t, `{"b":2}`, string(cfg))
}
