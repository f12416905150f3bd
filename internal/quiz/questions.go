package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidQuestion = errors.New("invalid question")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidOption   = errors.New("invalid option")
)

// Question mirrors the question bank payload. CorrectIndex is exposed to the
// client because scoring happens locally.
type Question struct {
	ID           string   `json:"_id"`
	Prompt       string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswerIndex"`
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidQuestion)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: %s has no options", ErrInvalidQuestion, q.ID)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: %s correct index %d out of range", ErrInvalidQuestion, q.ID, q.CorrectIndex)
	}
	return nil
}

func (q Question) HasOption(index int) bool {
	return index >= 0 && index < len(q.Options)
}

// CorrectOption returns the text of the correct option, or "" when the
// question is malformed.
func (q Question) CorrectOption() string {
	if !q.HasOption(q.CorrectIndex) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// ValidateQuestions checks every question and rejects duplicate ids.
func ValidateQuestions(questions []Question) error {
	seen := make(map[string]struct{}, len(questions))
	for _, question := range questions {
		if err := question.Validate(); err != nil {
			return err
		}
		if _, dup := seen[question.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidQuestion, question.ID)
		}
		seen[question.ID] = struct{}{}
	}
	return nil
}

func cloneQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	for idx, question := range questions {
		question.Options = append([]string(nil), question.Options...)
		out[idx] = question
	}
	return out
}

// OptionLetter labels option index 0 as "A", 1 as "B" and so on.
func OptionLetter(index int) string {
	if index < 0 || index >= 26 {
		return "?"
	}
	return string(rune('A' + index))
}

// ParseOptionLetter maps a single letter (case-insensitive, surrounding
// whitespace ignored) to an option index below optionCount.
func ParseOptionLetter(input string, optionCount int) (int, bool) {
	letter := strings.ToUpper(strings.TrimSpace(input))
	if len(letter) != 1 || optionCount < 1 {
		return -1, false
	}

	index := int(letter[0]) - 'A'
	if index < 0 || index >= optionCount {
		return -1, false
	}
	return index, true
}
