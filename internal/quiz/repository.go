package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidResult = errors.New("invalid result")

// StoredResult is a ResultRecord as accepted by the progress endpoint.
type StoredResult struct {
	ID         string
	Record     ResultRecord
	ReceivedAt time.Time
}

func (r ResultRecord) Validate() error {
	switch {
	case r.UserID == "":
		return fmt.Errorf("%w: userId is required", ErrInvalidResult)
	case r.Total < 0:
		return fmt.Errorf("%w: total must not be negative", ErrInvalidResult)
	case r.Score < 0 || r.Score > r.Total:
		return fmt.Errorf("%w: score must be between 0 and total", ErrInvalidResult)
	case r.Timestamp <= 0:
		return fmt.Errorf("%w: timestamp is required", ErrInvalidResult)
	}
	return nil
}

type QuestionRepository interface {
	ReplaceQuestions(ctx context.Context, questions []Question) error
	ListQuestions(ctx context.Context) ([]Question, error)
}

type ResultRepository interface {
	SaveResult(ctx context.Context, result StoredResult) error
	// ListResults returns newest first. An empty userID lists every user.
	ListResults(ctx context.Context, userID string, limit int) ([]StoredResult, error)
}
