package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/brbranch/places_mcp/internal/bootstrap"
	"github.com/brbranch/places_mcp/internal/config"
	httptransport "github.com/brbranch/places_mcp/internal/transport/http"
	"github.com/brbranch/places_mcp/internal/transport/stdio"
)

// ビルド時変数（-ldflags で変更可能）
var (
	defaultTransport = "http"
	version          = "1.0.0"
)

// Options はCLI引数オプション
type Options struct {
	Transport string
	Host      string
	Port      int
	CachePath string
	Verbose   bool
}

func main() {
	// .envファイルから環境変数を読み込み（存在しない場合は無視）
	_ = godotenv.Load()

	var err error
	if len(os.Args) < 2 {
		err = run([]string{})
	} else {
		switch os.Args[1] {
		case "serve":
			err = run(os.Args[1:])
		case "search":
			err = runSearchCmd(os.Args[2:])
		case "version", "-v", "--version":
			printVersion()
			return
		case "help", "-h", "--help":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// printUsage prints the usage information
func printUsage() {
	fmt.Println(`mcp-places - MCP Restaurant Search Server (Singapore)

Usage:
  mcp-places <command> [options]

Commands:
  serve     Start the MCP server (http or stdio)
  search    Search restaurants (oneshot command)
  version   Print version information
  help      Print this help message

Serve Options:
  -t, --transport string   Transport type: http, stdio (default: http)
  --host string            HTTP host (default: 0.0.0.0)
  -p, --port int           HTTP port (default: 8000, or $PORT)
  -cache string            SQLite search cache path (default: disabled)
  --verbose                Enable debug logging

Search Options:
  -f, --format string      Output format: text, json (default: text)

Environment:
  GOOGLE_PLACES_API_KEY    Default Google Places API key
  PORT                     Default HTTP port

Examples:
  mcp-places serve
  mcp-places serve -p 8080 -cache ~/.mcp-places/cache.db
  mcp-places serve -t stdio
  mcp-places search "laksa"
  mcp-places search -f json "vegan tiramisu"`)
}

// printVersion prints the version information
func printVersion() {
	fmt.Printf("mcp-places version %s\n", version)
}

// run parses flags and starts the server
func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	setupLogger(opts.Verbose)

	ctx, cancel := setupSignalHandler()
	defer cancel()

	return runServe(ctx, opts)
}

// parseFlags は引数をパースしてOptionsを返す
func parseFlags(args []string) (*Options, error) {
	fs := flag.NewFlagSet("mcp-places", flag.ContinueOnError)

	defaultPort := 8000
	if p := config.PortFromEnv(); p != "" {
		fmt.Sscanf(p, "%d", &defaultPort)
	}

	opts := &Options{}
	fs.StringVar(&opts.Transport, "transport", defaultTransport, "Transport type: http, stdio")
	fs.StringVar(&opts.Transport, "t", defaultTransport, "Transport type (shorthand)")
	fs.StringVar(&opts.Host, "host", "0.0.0.0", "HTTP host")
	fs.IntVar(&opts.Port, "port", defaultPort, "HTTP port")
	fs.IntVar(&opts.Port, "p", defaultPort, "HTTP port (shorthand)")
	fs.StringVar(&opts.CachePath, "cache", "", "SQLite search cache path")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")

	var flagArgs []string
	if len(args) == 0 {
		flagArgs = []string{}
	} else if args[0] == "serve" {
		flagArgs = args[1:]
	} else {
		return nil, fmt.Errorf("usage: mcp-places serve [options]")
	}

	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}

	if opts.Transport != "stdio" && opts.Transport != "http" {
		return nil, fmt.Errorf("invalid transport: %s (must be http or stdio)", opts.Transport)
	}
	if opts.Port < 1 || opts.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d (must be 1-65535)", opts.Port)
	}

	return opts, nil
}

// setupLogger installs a tinted slog handler on stderr
func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

// setupSignalHandler はSIGINT/SIGTERMを受けてcontextをキャンセルする
func setupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx, cancel
}

// runServe はserveコマンドを実行
func runServe(ctx context.Context, opts *Options) error {
	services, cleanup, err := bootstrap.Initialize(ctx, bootstrap.Options{
		CachePath: opts.CachePath,
		Logger:    slog.Default(),
	})
	if err != nil {
		return err
	}
	defer cleanup()

	switch opts.Transport {
	case "stdio":
		server := stdio.New(services.Dispatcher)
		return server.Run(ctx)
	case "http":
		server := httptransport.New(
			services.Dispatcher,
			services.Sessions,
			services.Config,
			httptransport.Config{Addr: fmt.Sprintf("%s:%d", opts.Host, opts.Port)},
			slog.Default(),
		)
		return server.Run(ctx)
	default:
		return fmt.Errorf("unknown transport: %s", opts.Transport)
	}
}
