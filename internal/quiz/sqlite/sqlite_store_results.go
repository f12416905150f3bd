package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quiz-session/internal/quiz"
)

const defaultResultsLimit = 20

// SaveResult appends one accepted progress record. Records are never
// updated: a client that submits twice produces two rows.
func (s *SQLiteStore) SaveResult(ctx context.Context, result quiz.StoredResult) error {
	if result.ID == "" {
		return errors.New("result id is required")
	}
	if err := result.Record.Validate(); err != nil {
		return err
	}
	if result.ReceivedAt.IsZero() {
		result.ReceivedAt = time.Now().UTC()
	}

	answers := result.Record.Answers
	if answers == nil {
		answers = map[string]int{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO results (result_id, user_id, score, total, answers_json, submitted_at_ms, received_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.ID,
		result.Record.UserID,
		result.Record.Score,
		result.Record.Total,
		string(answersJSON),
		result.Record.Timestamp,
		result.ReceivedAt.UTC().UnixNano(),
	)
	return err
}

func (s *SQLiteStore) ListResults(ctx context.Context, userID string, limit int) ([]quiz.StoredResult, error) {
	if limit <= 0 {
		limit = defaultResultsLimit
	}

	// Empty user id matches every row.
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT result_id, user_id, score, total, answers_json, submitted_at_ms, received_at_unix
		 FROM results
		 WHERE (? = '' OR user_id = ?)
		 ORDER BY received_at_unix DESC, result_id ASC
		 LIMIT ?`,
		userID,
		userID,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]quiz.StoredResult, 0)
	for rows.Next() {
		var (
			item           quiz.StoredResult
			answersJSON    string
			receivedAtUnix int64
		)
		if err := rows.Scan(
			&item.ID,
			&item.Record.UserID,
			&item.Record.Score,
			&item.Record.Total,
			&answersJSON,
			&item.Record.Timestamp,
			&receivedAtUnix,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answersJSON), &item.Record.Answers); err != nil {
			return nil, err
		}
		item.ReceivedAt = time.Unix(0, receivedAtUnix).UTC()
		results = append(results, item)
	}

	return results, rows.Err()
}
