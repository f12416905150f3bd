package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"quiz-session/internal/quiz"
)

// ReplaceQuestions swaps the whole bank in one transaction so readers see
// either the old set or the new one.
func (s *SQLiteStore) ReplaceQuestions(ctx context.Context, questions []quiz.Question) error {
	if err := quiz.ValidateQuestions(questions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return err
	}

	now := time.Now().UTC().UnixNano()
	for idx, question := range questions {
		optionsJSON, err := json.Marshal(question.Options)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO questions (question_id, prompt, options_json, correct_index, position, created_at_unix)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			question.ID,
			question.Prompt,
			string(optionsJSON),
			question.CorrectIndex,
			idx,
			now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListQuestions(ctx context.Context) ([]quiz.Question, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT question_id, prompt, options_json, correct_index
		 FROM questions
		 ORDER BY position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]quiz.Question, 0)
	for rows.Next() {
		var (
			question    quiz.Question
			optionsJSON string
		)
		if err := rows.Scan(&question.ID, &question.Prompt, &optionsJSON, &question.CorrectIndex); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &question.Options); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	return questions, rows.Err()
}
