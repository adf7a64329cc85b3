// Package session implements MCP session management for mcp-places.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brbranch/places_mcp/internal/model"
)

// Session は1クライアント分のMCPセッション
// initializeで作成され、Mcp-Session-Idヘッダーで参照される
type Session struct {
	ID        string
	Config    model.ConfigMap // 作成時点の設定スナップショット
	CreatedAt time.Time
}

// Store はミューテックスで保護されたセッションストア
// セッションの所有権はStoreが独占する（TTLなし、明示削除のみ）
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore は空のセッションストアを作成する
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create は新しいセッションを作成して返す
// IDはUUIDv4で、過去に発行したIDと衝突しない
func (s *Store) Create(snapshot model.ConfigMap) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Config:    snapshot,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

// Get はIDでセッションを検索する
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Delete はセッションを即時削除する
// 存在した場合はtrueを返す（2回目の削除はfalse）
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len は現在のセッション数を返す
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
