package backend

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"quiz-session/internal/quiz"
)

type API struct {
	questions quiz.QuestionRepository
	results   quiz.ResultRepository
	logger    *slog.Logger
	newID     func() string
	now       func() time.Time
}

func NewAPI(questions quiz.QuestionRepository, results quiz.ResultRepository, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		questions: questions,
		results:   results,
		logger:    logger,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}
