package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/hollow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSaveStoreContract runs a suite of tests to verify that a SaveStore implementation
// adheres to the defined interface contract.
func RunSaveStoreContract(t *testing.T, store SaveStore) {
	ctx := context.Background()
	key := "contract-test-slot-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		blob := []byte(`{"current_scene_id":"gate","inventory":[{"id":"lantern","quantity":1}]}`)

		require.NoError(t, store.Put(ctx, key, blob), "Put should not return error")

		got, err := store.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, blob, got)
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, []byte("first")))
		require.NoError(t, store.Put(ctx, key, []byte("second")))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("Returned Blob Is Isolated", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, []byte("stable")))
		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		got[0] = 'X'

		again, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "stable", string(again))
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrSlotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, []byte("doomed")))

		require.NoError(t, store.Delete(ctx, key), "Delete should not return error")

		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrSlotNotFound, "Get after Delete should return ErrSlotNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Deleting a missing key should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		_ = store.Put(ctx, k1, []byte("a"))
		_ = store.Put(ctx, k2, []byte("b"))

		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
