package config

import (
	"sync"
	"testing"

	"github.com/brbranch/places_mcp/internal/model"
)

// TestStore_MergeQuery はクエリ文字列のマージをテスト
func TestStore_MergeQuery(t *testing.T) {
	store := NewStore()

	if err := store.MergeQuery("apiKey=XYZ&server.port=8080"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.GetString("apiKey"); got != "XYZ" {
		t.Errorf("apiKey = %q, want %q", got, "XYZ")
	}
	if got := store.GetString("server", "port"); got != "8080" {
		t.Errorf("server.port = %q, want %q", got, "8080")
	}
}

// TestStore_MergeQuery_LastWriterWins は後勝ちマージをテスト
func TestStore_MergeQuery_LastWriterWins(t *testing.T) {
	store := NewStore()

	if err := store.MergeQuery("apiKey=first&server.host=a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.MergeQuery("apiKey=second&server.port=8080"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.GetString("apiKey"); got != "second" {
		t.Errorf("apiKey = %q, want %q", got, "second")
	}
	// 既存のネスト値はマージで保持される
	if got := store.GetString("server", "host"); got != "a" {
		t.Errorf("server.host = %q, want %q", got, "a")
	}
	if got := store.GetString("server", "port"); got != "8080" {
		t.Errorf("server.port = %q, want %q", got, "8080")
	}
}

// TestStore_MergeQuery_InvalidQuery は不正クエリでストアが変更されないことをテスト
func TestStore_MergeQuery_InvalidQuery(t *testing.T) {
	store := NewStore()
	if err := store.MergeQuery("a=1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.MergeQuery("b=%zz"); err == nil {
		t.Fatal("expected error for invalid query, got nil")
	}

	snapshot := store.Snapshot()
	if len(snapshot) != 1 || snapshot.GetString("a") != "1" {
		t.Errorf("store changed after failed merge: %#v", snapshot)
	}
}

// TestStore_Snapshot_Isolation はスナップショットの独立性をテスト
func TestStore_Snapshot_Isolation(t *testing.T) {
	store := NewStore()
	if err := store.MergeQuery("server.port=8080"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot := store.Snapshot()
	if nested, ok := snapshot["server"].(model.ConfigMap); ok {
		nested["port"] = "mutated"
	} else {
		t.Fatalf("server is not a ConfigMap: %#v", snapshot["server"])
	}

	if got := store.GetString("server", "port"); got != "8080" {
		t.Errorf("store mutated via snapshot: %q", got)
	}
}

// TestStore_GetString_Missing は未設定キーで空文字列が返ることをテスト
func TestStore_GetString_Missing(t *testing.T) {
	store := NewStore()
	if got := store.GetString("missing"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := store.GetString("a", "b", "c"); got != "" {
		t.Errorf("expected empty string for nested miss, got %q", got)
	}
}

// TestStore_ConcurrentMerge は並行マージで競合しないことをテスト
func TestStore_ConcurrentMerge(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = store.MergeQuery("apiKey=XYZ&server.port=8080")
				_ = store.Snapshot()
				_ = store.GetString("server", "port")
			}
		}()
	}
	wg.Wait()

	if got := store.GetString("apiKey"); got != "XYZ" {
		t.Errorf("apiKey = %q, want %q", got, "XYZ")
	}
}
