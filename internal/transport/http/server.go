// Package http implements the MCP streamable HTTP transport for mcp-places.
package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/brbranch/places_mcp/internal/config"
	"github.com/brbranch/places_mcp/internal/jsonrpc"
	"github.com/brbranch/places_mcp/internal/session"
)

const (
	// DefaultAddr はデフォルトのリッスンアドレス
	DefaultAddr = "0.0.0.0:8000"

	// MaxBodySize はリクエストボディの最大サイズ（1MB）
	MaxBodySize = 1024 * 1024
)

// Config はHTTPサーバー設定
type Config struct {
	Addr string // listen address (例: "0.0.0.0:8000")
}

// Server はMCP streamable HTTPサーバー
type Server struct {
	dispatcher *jsonrpc.Dispatcher
	sessions   *session.Store
	config     *config.Store
	logger     *slog.Logger
	srv        *http.Server
}

// New は新しいServerを生成
func New(dispatcher *jsonrpc.Dispatcher, sessions *session.Store, cfgStore *config.Store, cfg Config, logger *slog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		dispatcher: dispatcher,
		sessions:   sessions,
		config:     cfgStore,
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{SessionHeader},
		AllowCredentials: true,
	}))

	r.Post("/mcp", s.handlePost)
	r.Get("/mcp", s.handleGet)
	r.Delete("/mcp", s.handleDelete)
	r.Get("/healthz", s.handleHealthz)

	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler はルーティング設定済みのhttp.Handlerを返す
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run はサーバーを起動し、contextがキャンセルされるまで実行
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.srv.Shutdown(context.Background())
	}()

	s.logger.Info("starting MCP HTTP server", "addr", s.srv.Addr)

	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		// Graceful shutdownはエラーではない
		return nil
	}
	return err
}

// handlePost はMCPメッセージ（単一またはバッチ）を処理する
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if !s.validateOrigin(r) {
		http.Error(w, "Invalid origin", http.StatusForbidden)
		return
	}

	// クエリパラメータをプロセス設定にマージ（ディスパッチ前）
	if raw := r.URL.RawQuery; raw != "" {
		if err := s.config.MergeQuery(raw); err != nil {
			s.logger.Warn("ignoring unparseable query config", "error", err)
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if len(body) > MaxBodySize {
		http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
		return
	}

	msgs, err := jsonrpc.ParseMessages(body)
	if err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// 通知のみのバッチは202で受理し、ディスパッチしない
	if !jsonrpc.HasRequests(msgs) {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	result := s.dispatcher.DispatchBatch(r.Context(), msgs)

	// SSEを受理するクライアントにはイベントストリームで応答する
	if negotiateAccept(r).eventStream {
		writeEventStream(w, result.Responses, result.SessionID)
		return
	}
	writeJSON(w, result.Responses, result.SessionID)
}

// handleGet はサーバー起点ストリーム用のGETを処理する
// この設計では単一の終端フレームのみ（継続的な購読ではない）
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if !s.validateOrigin(r) {
		http.Error(w, "Invalid origin", http.StatusForbidden)
		return
	}

	if !negotiateAccept(r).eventStream {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "data: {}\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// handleDelete はセッション終了リクエストを処理する
// 削除は同期・即時で、2回目の削除は404になる
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" || !s.sessions.Delete(sessionID) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleHealthz はヘルスチェック
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}
