package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"quiz-session/internal/identity"
	"quiz-session/internal/quiz"
)

const defaultEmitTimeout = 5 * time.Second

var ErrAlreadySubmitted = quiz.ErrAlreadySubmitted

type QuestionSource interface {
	FetchQuestions(ctx context.Context) ([]quiz.Question, error)
}

type ProgressSink interface {
	ReportProgress(ctx context.Context, record quiz.ResultRecord) error
}

// Controller owns the lifecycle of one quiz attempt. The session value is
// swapped under mu; rendering reads a snapshot via Session.
type Controller struct {
	mu      sync.Mutex
	session quiz.Session

	source      QuestionSource
	sink        ProgressSink
	identity    identity.Provider
	logger      *slog.Logger
	now         func() time.Time
	emitTimeout time.Duration
}

type Option func(*Controller)

// WithProgressSink turns on result reporting. A nil provider reports as
// anonymous.
func WithProgressSink(sink ProgressSink, provider identity.Provider) Option {
	return func(c *Controller) {
		c.sink = sink
		c.identity = provider
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func WithEmitTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		if timeout > 0 {
			c.emitTimeout = timeout
		}
	}
}

func New(source QuestionSource, opts ...Option) *Controller {
	c := &Controller{
		session:     quiz.NewSession(),
		source:      source,
		logger:      slog.Default(),
		now:         time.Now,
		emitTimeout: defaultEmitTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) ReportingEnabled() bool {
	return c.sink != nil
}

// Session returns the current session value.
func (c *Controller) Session() quiz.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Load fetches the question set. On failure the set stays empty; the error
// is logged and returned so the caller can show an empty state. There is no
// retry.
func (c *Controller) Load(ctx context.Context) error {
	if c.source == nil {
		return errors.New("question source is not configured")
	}

	questions, err := c.source.FetchQuestions(ctx)
	if err != nil {
		c.logger.Error("failed to load questions", "error", err)
		return fmt.Errorf("load questions: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.session.LoadQuestions(questions)
	if err != nil {
		c.logger.Error("failed to load questions", "error", err)
		return fmt.Errorf("load questions: %w", err)
	}
	c.session = next

	c.logger.Debug("questions loaded", "count", next.Total())
	return nil
}

// Select records an answer. After submission it is a no-op returning
// quiz.ErrAnswersFrozen.
func (c *Controller) Select(questionID string, optionIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.session.SelectAnswer(questionID, optionIndex)
	if err != nil {
		return err
	}
	c.session = next
	return nil
}

type Submission struct {
	Score  int
	Total  int
	Record quiz.ResultRecord
	// Emission is nil when reporting is disabled.
	Emission *Emission
}

// Submit scores the attempt and moves to Reviewing. Concurrent or repeated
// calls after the first return ErrAlreadySubmitted, so at most one result is
// emitted per session.
func (c *Controller) Submit(ctx context.Context) (Submission, error) {
	c.mu.Lock()
	next, err := c.session.Submit()
	if err != nil {
		c.mu.Unlock()
		return Submission{}, err
	}
	c.session = next
	c.mu.Unlock()

	record, err := next.Result(identity.UserID(ctx, c.identity), c.now())
	if err != nil {
		return Submission{}, err
	}

	submission := Submission{
		Score:  next.Score(),
		Total:  next.Total(),
		Record: record,
	}
	c.logger.Info("quiz submitted", "score", submission.Score, "total", submission.Total, "user_id", record.UserID)

	if c.sink != nil {
		submission.Emission = c.emit(record)
	}
	return submission, nil
}

// emit delivers the record in the background. The request outlives the
// caller's context and is bounded by emitTimeout instead.
func (c *Controller) emit(record quiz.ResultRecord) *Emission {
	emission := &Emission{done: make(chan struct{})}

	go func() {
		defer close(emission.done)

		ctx, cancel := context.WithTimeout(context.Background(), c.emitTimeout)
		defer cancel()

		if err := c.sink.ReportProgress(ctx, record); err != nil {
			c.logger.Error("progress save failed", "error", err, "user_id", record.UserID)
			emission.err = err
			return
		}
		c.logger.Debug("progress saved", "user_id", record.UserID)
	}()

	return emission
}
