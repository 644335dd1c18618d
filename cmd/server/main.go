package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/rpggio/qontract/internal/config"
	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/domain/workflow"
	"github.com/rpggio/qontract/internal/export"
	"github.com/rpggio/qontract/internal/generation"
	"github.com/rpggio/qontract/internal/localization"
	"github.com/rpggio/qontract/internal/mcp"
	"github.com/rpggio/qontract/internal/repository"
	"github.com/rpggio/qontract/internal/sqlite"
	"github.com/rpggio/qontract/internal/transport"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "qontract: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	// Stdout carries JSON-RPC in stdio mode.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.ModeStdio {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := newLogger(logWriter, cfg.Log)

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	var apiKeys repository.APIKeyRepository = sqlite.NewAPIKeyRepository(db)
	if err := registerAPIKeys(ctx, apiKeys, cfg.Auth.Keys); err != nil {
		return err
	}

	messages, err := localization.NewManager(localization.Language(cfg.I18n.DefaultLanguage))
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	generator, err := generation.New(ctx, generation.Config{
		APIKey:  cfg.Generation.APIKey,
		Model:   cfg.Generation.Model,
		Timeout: cfg.Generation.Timeout,
	}, logger)
	if err != nil {
		return err
	}

	contractSvc := dashboard.NewService(sqlite.NewContractRepository(db), logger)
	wizardSvc := workflow.NewService(
		sqlite.NewWizardRepository(db),
		generator,
		export.NewRenderer(),
		contractSvc,
		messages,
		logger,
	)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Wizards:   wizardSvc,
			Contracts: contractSvc,
			Messages:  messages,
		},
		Resolver:      apiKeys,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Version:       version,
		Logger:        logger,
	})

	if cfg.Transport.Mode == config.ModeStdio {
		return runStdio(ctx, logger, mcpServer)
	}

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)
	routes := transport.Config{
		Wizards:   wizardSvc,
		Contracts: contractSvc,
		Messages:  messages,
		MCP:       mcpHandler,
		Logger:    logger,
	}
	if cfg.Auth.Enabled {
		routes.Auth = transport.AuthMiddleware(apiKeys)
	}
	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	return runHTTP(ctx, logger, &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(routes),
		ReadHeaderTimeout: 10 * time.Second,
	})
}

// registerAPIKeys loads the configured token:tenant pairs.
func registerAPIKeys(ctx context.Context, keys repository.APIKeyRepository, tokens map[string]string) error {
	for token, tenantID := range tokens {
		if err := keys.AddAPIKey(ctx, token, tenantID, "config"); err != nil {
			return fmt.Errorf("register api key for tenant %s: %w", tenantID, err)
		}
	}
	return nil
}

func runStdio(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")
	// Run returns when stdin closes or ctx is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTP(ctx context.Context, logger *slog.Logger, server *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := parseLogLevel(cfg.Level)
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isTerminal(f)
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    noColor,
	}))
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
