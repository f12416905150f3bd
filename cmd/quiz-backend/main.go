package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-session/internal/backend"
	"quiz-session/internal/config"
	"quiz-session/internal/identity"
	"quiz-session/internal/opentdb"
	"quiz-session/internal/questionfile"
	"quiz-session/internal/quiz"
	"quiz-session/internal/quiz/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv()

	cfg, err := config.ParseBackendFlags(os.Args[1:], os.Getenv)
	if err != nil {
		return err
	}

	logger := config.NewLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.IssueTokenFor != "" {
		token, err := identity.IssueToken(cfg.IssueTokenFor, "", cfg.AuthSecret, identity.DefaultTokenTTL)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.NewSQLiteStore(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := seed(ctx, logger, store, cfg); err != nil {
		return err
	}

	if cfg.ExportFile != "" {
		return export(ctx, store, cfg.ExportFile)
	}

	if cfg.History > 0 {
		results, err := store.ListResults(ctx, cfg.HistoryUser, cfg.History)
		if err != nil {
			return err
		}
		backend.WriteHistory(os.Stdout, results, time.Now())
		return nil
	}

	return serve(ctx, logger, store, cfg.Addr)
}

func seed(ctx context.Context, logger *slog.Logger, store quiz.QuestionRepository, cfg config.BackendConfig) error {
	var (
		questions []quiz.Question
		origin    string
	)

	switch {
	case cfg.SeedFile != "":
		loaded, err := questionfile.Load(cfg.SeedFile)
		if err != nil {
			return err
		}
		questions, origin = loaded, cfg.SeedFile
	case cfg.OpenTDBAmount > 0:
		raw, err := opentdb.NewClient(nil).FetchQuestions(ctx, cfg.OpenTDBAmount)
		if err != nil {
			return err
		}
		questions, origin = opentdb.ToQuestions(raw), "opentdb"
	default:
		return nil
	}

	if err := store.ReplaceQuestions(ctx, questions); err != nil {
		return err
	}
	logger.Info("question bank replaced", "source", origin, "count", len(questions))
	return nil
}

func export(ctx context.Context, store quiz.QuestionRepository, path string) error {
	questions, err := store.ListQuestions(ctx)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := questionfile.Encode(file, questions); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func serve(ctx context.Context, logger *slog.Logger, store *sqlite.SQLiteStore, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           backend.NewRouter(backend.NewAPI(store, store, logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("quiz-backend listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}
