package config

import (
	"log/slog"
	"testing"
	"time"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestParseClientFlagsDefaults(t *testing.T) {
	cfg, err := ParseClientFlags(nil, envMap(nil))
	if err != nil {
		t.Fatalf("ParseClientFlags failed: %v", err)
	}

	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Title != DefaultTitle {
		t.Fatalf("Title = %q", cfg.Title)
	}
	if cfg.Guest {
		t.Fatalf("Guest should default to false")
	}
	if cfg.HTTPTimeout != DefaultHTTPTimeout || cfg.EmitTimeout != DefaultEmitTimeout {
		t.Fatalf("timeouts = %v/%v", cfg.HTTPTimeout, cfg.EmitTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestParseClientFlagsEnvFallback(t *testing.T) {
	cfg, err := ParseClientFlags(nil, envMap(map[string]string{
		"API_BASE_URL":   "http://localhost:8080",
		"QUESTIONS_FILE": "q.yaml",
		"QUIZ_GUEST":     "true",
		"HTTP_TIMEOUT":   "3",
		"EMIT_TIMEOUT":   "750ms",
		"LOG_LEVEL":      "debug",
		"AUTH_TOKEN":     "tok",
		"AUTH_SECRET":    "secret",
	}))
	if err != nil {
		t.Fatalf("ParseClientFlags failed: %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:8080" || cfg.QuestionsFile != "q.yaml" {
		t.Fatalf("unexpected sources: %+v", cfg)
	}
	if !cfg.Guest {
		t.Fatalf("expected guest from env")
	}
	if cfg.HTTPTimeout != 3*time.Second || cfg.EmitTimeout != 750*time.Millisecond {
		t.Fatalf("timeouts = %v/%v", cfg.HTTPTimeout, cfg.EmitTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.AuthToken != "tok" || cfg.AuthSecret != "secret" {
		t.Fatalf("auth = %q/%q", cfg.AuthToken, cfg.AuthSecret)
	}
}

func TestParseClientFlagsOverrideEnv(t *testing.T) {
	cfg, err := ParseClientFlags(
		[]string{"-api", "http://flag.test", "-guest", "-timeout", "1m", "-title", "Heat"},
		envMap(map[string]string{"API_BASE_URL": "http://env.test"}),
	)
	if err != nil {
		t.Fatalf("ParseClientFlags failed: %v", err)
	}
	if cfg.APIBaseURL != "http://flag.test" || !cfg.Guest || cfg.HTTPTimeout != time.Minute || cfg.Title != "Heat" {
		t.Fatalf("flags did not win: %+v", cfg)
	}
}

func TestParseClientFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "unknown flag", args: []string{"-nope"}},
		{name: "bad timeout", args: []string{"-timeout", "soon"}},
		{name: "zero timeout", env: map[string]string{"HTTP_TIMEOUT": "0"}},
		{name: "bad guest", env: map[string]string{"QUIZ_GUEST": "maybe"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "token without secret", env: map[string]string{"AUTH_TOKEN": "tok"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseClientFlags(tc.args, envMap(tc.env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseBackendFlags(t *testing.T) {
	cfg, err := ParseBackendFlags(nil, envMap(nil))
	if err != nil {
		t.Fatalf("ParseBackendFlags failed: %v", err)
	}
	if cfg.Addr != DefaultAddr || cfg.DBPath != DefaultDBPath {
		t.Fatalf("defaults = %+v", cfg)
	}

	cfg, err = ParseBackendFlags(
		[]string{"-db", "x.db", "-history", "5", "-user", "alice"},
		envMap(map[string]string{"ADDR": ":9090", "SEED_FILE": "seed.yaml"}),
	)
	if err != nil {
		t.Fatalf("ParseBackendFlags failed: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.DBPath != "x.db" || cfg.SeedFile != "seed.yaml" || cfg.History != 5 || cfg.HistoryUser != "alice" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseBackendFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "negative opentdb", args: []string{"-opentdb", "-1"}},
		{name: "seed and opentdb", args: []string{"-seed", "a.yaml", "-opentdb", "5"}},
		{name: "issue token without secret", args: []string{"-issue-token", "alice"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseBackendFlags(tc.args, envMap(tc.env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("WARN")
	if err != nil || level != slog.LevelWarn {
		t.Fatalf("ParseLogLevel(WARN) = (%v, %v)", level, err)
	}
}
