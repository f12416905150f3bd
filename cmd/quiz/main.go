package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-session/internal/cli"
	"quiz-session/internal/config"
	"quiz-session/internal/controller"
	"quiz-session/internal/identity"
	"quiz-session/internal/questionfile"
	"quiz-session/internal/quizapi"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv()

	cfg, err := config.ParseClientFlags(os.Args[1:], os.Getenv)
	if err != nil {
		return err
	}

	logger := config.NewLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := quizapi.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout})

	var source controller.QuestionSource = api
	if cfg.QuestionsFile != "" {
		source = questionfile.Source{Path: cfg.QuestionsFile}
	}

	opts := []controller.Option{
		controller.WithLogger(logger),
		controller.WithEmitTimeout(cfg.EmitTimeout),
	}
	if !cfg.Guest {
		var provider identity.Provider = identity.Anonymous{}
		if cfg.AuthToken != "" {
			provider = identity.NewTokenProvider(cfg.AuthToken, cfg.AuthSecret, logger)
		}
		opts = append(opts, controller.WithProgressSink(api, provider))
	}

	logger.Debug("starting quiz",
		"api", api.BaseURL(),
		"questions_file", cfg.QuestionsFile,
		"reporting", !cfg.Guest,
	)

	return cli.Run(ctx, os.Stdin, os.Stdout, controller.New(source, opts...), cli.Options{
		Title:       cfg.Title,
		WaitTimeout: cfg.EmitTimeout + time.Second,
	})
}
