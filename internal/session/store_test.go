package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brbranch/places_mcp/internal/model"
)

// TestStore_CreateAndGet はセッション作成と取得をテスト
func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore()

	snapshot := model.ConfigMap{"apiKey": "XYZ"}
	sess := store.Create(snapshot)

	require.NotEmpty(t, sess.ID)
	assert.False(t, sess.CreatedAt.IsZero())
	assert.Equal(t, snapshot, sess.Config)

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)
}

// TestStore_UniqueIDs は発行IDの一意性をテスト
func TestStore_UniqueIDs(t *testing.T) {
	store := NewStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sess := store.Create(model.ConfigMap{})
		assert.False(t, seen[sess.ID], "duplicate session ID: %s", sess.ID)
		seen[sess.ID] = true
	}
	assert.Equal(t, 100, store.Len())
}

// TestStore_Delete は削除の冪等性をテスト
func TestStore_Delete(t *testing.T) {
	store := NewStore()
	sess := store.Create(model.ConfigMap{})

	assert.True(t, store.Delete(sess.ID), "first delete should report existing")
	assert.False(t, store.Delete(sess.ID), "second delete should report missing")

	_, ok := store.Get(sess.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

// TestStore_GetUnknown は未知IDの検索をテスト
func TestStore_GetUnknown(t *testing.T) {
	store := NewStore()
	_, ok := store.Get("does-not-exist")
	assert.False(t, ok)
}

// TestStore_Concurrent は並行アクセスの安全性をテスト
func TestStore_Concurrent(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				sess := store.Create(model.ConfigMap{})
				store.Get(sess.ID)
				store.Delete(sess.ID)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, store.Len())
}
