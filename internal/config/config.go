package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"quiz-session/internal/quizapi"
)

const (
	DefaultAPIBaseURL  = quizapi.DefaultBaseURL
	DefaultTitle       = "Thermodynamics Quiz"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultEmitTimeout = 5 * time.Second
	DefaultAddr        = ":8080"
	DefaultDBPath      = "quiz-backend.db"
)

// ClientConfig configures the quiz terminal client.
type ClientConfig struct {
	APIBaseURL    string
	QuestionsFile string
	Title         string
	Guest         bool
	AuthToken     string
	AuthSecret    string
	HTTPTimeout   time.Duration
	EmitTimeout   time.Duration
	LogLevel      slog.Level
}

// BackendConfig configures the development backend.
type BackendConfig struct {
	Addr          string
	DBPath        string
	SeedFile      string
	OpenTDBAmount int
	ExportFile    string
	History       int
	HistoryUser   string
	IssueTokenFor string
	AuthSecret    string
	LogLevel      slog.Level
}

// LoadDotEnv reads .env from the working directory if present. Variables
// already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ParseClientFlags reads flags first and falls back to environment
// variables for anything left unset.
func ParseClientFlags(args []string, getenv func(string) string) (ClientConfig, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	var (
		cfg         ClientConfig
		logLevel    string
		httpTimeout string
		emitTimeout string
	)

	fs := flag.NewFlagSet("quiz", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.APIBaseURL, "api", "", "question and progress API base URL (env API_BASE_URL)")
	fs.StringVar(&cfg.QuestionsFile, "questions", "", "load questions from a YAML file instead of the API (env QUESTIONS_FILE)")
	fs.StringVar(&cfg.Title, "title", "", "quiz title (env QUIZ_TITLE)")
	fs.BoolVar(&cfg.Guest, "guest", false, "do not report progress (env QUIZ_GUEST)")
	fs.StringVar(&cfg.AuthToken, "token", "", "signed identity token (prefer env AUTH_TOKEN)")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", "", "identity token secret (prefer env AUTH_SECRET)")
	fs.StringVar(&httpTimeout, "timeout", "", "HTTP timeout (env HTTP_TIMEOUT)")
	fs.StringVar(&emitTimeout, "emit-timeout", "", "progress report timeout (env EMIT_TIMEOUT)")
	fs.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")

	if err := fs.Parse(args); err != nil {
		return ClientConfig{}, err
	}

	cfg.APIBaseURL = firstNonEmpty(cfg.APIBaseURL, getenv("API_BASE_URL"), DefaultAPIBaseURL)
	cfg.QuestionsFile = firstNonEmpty(cfg.QuestionsFile, getenv("QUESTIONS_FILE"))
	cfg.Title = firstNonEmpty(cfg.Title, getenv("QUIZ_TITLE"), DefaultTitle)
	cfg.AuthToken = firstNonEmpty(cfg.AuthToken, getenv("AUTH_TOKEN"))
	cfg.AuthSecret = firstNonEmpty(cfg.AuthSecret, getenv("AUTH_SECRET"))

	if !cfg.Guest {
		guest, err := parseBool(getenv("QUIZ_GUEST"))
		if err != nil {
			return ClientConfig{}, fmt.Errorf("invalid QUIZ_GUEST: %w", err)
		}
		cfg.Guest = guest
	}

	var err error
	if cfg.HTTPTimeout, err = parseDuration(firstNonEmpty(httpTimeout, getenv("HTTP_TIMEOUT")), DefaultHTTPTimeout); err != nil {
		return ClientConfig{}, fmt.Errorf("invalid HTTP timeout: %w", err)
	}
	if cfg.EmitTimeout, err = parseDuration(firstNonEmpty(emitTimeout, getenv("EMIT_TIMEOUT")), DefaultEmitTimeout); err != nil {
		return ClientConfig{}, fmt.Errorf("invalid emit timeout: %w", err)
	}
	if cfg.LogLevel, err = ParseLogLevel(firstNonEmpty(logLevel, getenv("LOG_LEVEL"))); err != nil {
		return ClientConfig{}, err
	}

	if cfg.AuthToken != "" && cfg.AuthSecret == "" {
		return ClientConfig{}, errors.New("AUTH_SECRET required when an auth token is set")
	}

	return cfg, nil
}

func ParseBackendFlags(args []string, getenv func(string) string) (BackendConfig, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	var (
		cfg      BackendConfig
		logLevel string
	)

	fs := flag.NewFlagSet("quiz-backend", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "addr", "", "HTTP listen address (env ADDR)")
	fs.StringVar(&cfg.DBPath, "db", "", "SQLite database path (env DATABASE_PATH)")
	fs.StringVar(&cfg.SeedFile, "seed", "", "replace the question bank from a YAML file (env SEED_FILE)")
	fs.IntVar(&cfg.OpenTDBAmount, "opentdb", 0, "replace the question bank with N OpenTriviaDB questions")
	fs.StringVar(&cfg.ExportFile, "export", "", "write the question bank to a YAML file and exit")
	fs.IntVar(&cfg.History, "history", 0, "print the N most recent results and exit")
	fs.StringVar(&cfg.HistoryUser, "user", "", "restrict -history to one user id")
	fs.StringVar(&cfg.IssueTokenFor, "issue-token", "", "print a signed identity token for this uid and exit")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", "", "identity token secret (prefer env AUTH_SECRET)")
	fs.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")

	if err := fs.Parse(args); err != nil {
		return BackendConfig{}, err
	}

	cfg.Addr = firstNonEmpty(cfg.Addr, getenv("ADDR"), DefaultAddr)
	cfg.DBPath = firstNonEmpty(cfg.DBPath, getenv("DATABASE_PATH"), DefaultDBPath)
	cfg.SeedFile = firstNonEmpty(cfg.SeedFile, getenv("SEED_FILE"))
	cfg.AuthSecret = firstNonEmpty(cfg.AuthSecret, getenv("AUTH_SECRET"))

	if cfg.OpenTDBAmount < 0 {
		return BackendConfig{}, errors.New("-opentdb must not be negative")
	}
	if cfg.SeedFile != "" && cfg.OpenTDBAmount > 0 {
		return BackendConfig{}, errors.New("use either -seed or -opentdb, not both")
	}
	if cfg.IssueTokenFor != "" && cfg.AuthSecret == "" {
		return BackendConfig{}, errors.New("AUTH_SECRET required to issue tokens")
	}

	var err error
	if cfg.LogLevel, err = ParseLogLevel(firstNonEmpty(logLevel, getenv("LOG_LEVEL"))); err != nil {
		return BackendConfig{}, err
	}

	return cfg, nil
}

func ParseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(value) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", value)
	}
	return level, nil
}

// NewLogger builds the text logger both binaries use.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func parseBool(value string) (bool, error) {
	if strings.TrimSpace(value) == "" {
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(value))
}

// parseDuration accepts Go durations ("2s") or a bare number of seconds.
func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return 0, errors.New("must be positive")
		}
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.New("must be positive")
	}
	return d, nil
}
