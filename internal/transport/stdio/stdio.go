// Package stdio implements stdio transport for mcp-places.
package stdio

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
)

// MaxBufferSize はScannerの最大バッファサイズ（1MB）
const MaxBufferSize = 1024 * 1024

// Handler は1行分のJSON-RPCメッセージを処理するインターフェース
// 戻り値nilは「応答なし」（通知のみの行）を意味する
type Handler interface {
	HandleLine(ctx context.Context, line []byte) []byte
}

// Server はstdio JSON-RPCサーバー（NDJSON: 1行=1メッセージ）
type Server struct {
	handler Handler
	reader  io.Reader
	writer  io.Writer
}

// Option はサーバーオプション
type Option func(*Server)

// WithReader はreaderを設定（テスト用）
func WithReader(r io.Reader) Option {
	return func(s *Server) {
		s.reader = r
	}
}

// WithWriter はwriterを設定（テスト用）
func WithWriter(w io.Writer) Option {
	return func(s *Server) {
		s.writer = w
	}
}

// New は新しいServerを生成
func New(handler Handler, opts ...Option) *Server {
	s := &Server{
		handler: handler,
		reader:  os.Stdin,
		writer:  os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run はサーバーを起動し、EOFまたはcontextキャンセルまで実行
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.reader)
	buf := make([]byte, MaxBufferSize)
	scanner.Buffer(buf, MaxBufferSize)

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(done)
	}()

	for {
		select {
		case <-done:
			return ctx.Err()
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			// EOF: 正常終了
			return nil
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		response := s.handler.HandleLine(ctx, []byte(line))
		// 通知のみの行は応答を書かない
		if response == nil {
			continue
		}

		if _, err := s.writer.Write(response); err != nil {
			return err
		}
		if _, err := s.writer.Write([]byte("\n")); err != nil {
			return err
		}
	}
}
