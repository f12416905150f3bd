package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrQuestionsLoaded  = errors.New("questions already loaded")
	ErrAnswersFrozen    = errors.New("answers are frozen after submission")
	ErrAlreadySubmitted = errors.New("session already submitted")
	ErrNotSubmitted     = errors.New("session not submitted")
)

type State int

const (
	Answering State = iota
	Reviewing
)

func (s State) String() string {
	switch s {
	case Answering:
		return "answering"
	case Reviewing:
		return "reviewing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is one quiz attempt. It is a value: every transition returns a new
// Session and leaves the receiver untouched, so a caller holding an older
// value never observes later selections.
//
// Invariants:
//   - while Answering, every answer is a valid option index of its question.
//   - the state moves Answering -> Reviewing once, on Submit.
//   - score is computed on Submit and never recomputed.
type Session struct {
	questions []Question
	answers   map[string]int
	state     State
	score     int
}

func NewSession() Session {
	return Session{answers: map[string]int{}}
}

func (s Session) LoadQuestions(questions []Question) (Session, error) {
	if s.state == Reviewing {
		return s, ErrAnswersFrozen
	}
	if len(s.questions) > 0 {
		return s, ErrQuestionsLoaded
	}
	if err := ValidateQuestions(questions); err != nil {
		return s, err
	}

	next := s
	next.questions = cloneQuestions(questions)
	return next, nil
}

// SelectAnswer records optionIndex for questionID, replacing any earlier
// selection. A Reviewing session is returned unchanged.
func (s Session) SelectAnswer(questionID string, optionIndex int) (Session, error) {
	if s.state == Reviewing {
		return s, ErrAnswersFrozen
	}

	question, ok := s.question(questionID)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if !question.HasOption(optionIndex) {
		return s, fmt.Errorf("%w: %d for question %s", ErrInvalidOption, optionIndex, questionID)
	}

	next := s
	next.answers = s.Answers()
	next.answers[questionID] = optionIndex
	return next, nil
}

// Submit scores the attempt and moves the session to Reviewing. Unanswered
// questions score zero.
func (s Session) Submit() (Session, error) {
	if s.state == Reviewing {
		return s, ErrAlreadySubmitted
	}

	score := 0
	for _, question := range s.questions {
		if selected, ok := s.answers[question.ID]; ok && selected == question.CorrectIndex {
			score++
		}
	}

	next := s
	next.answers = s.Answers()
	next.state = Reviewing
	next.score = score
	return next, nil
}

func (s Session) State() State {
	return s.state
}

// Score is the submitted score; it is zero while Answering.
func (s Session) Score() int {
	return s.score
}

func (s Session) Total() int {
	return len(s.questions)
}

func (s Session) Questions() []Question {
	return cloneQuestions(s.questions)
}

func (s Session) Answers() map[string]int {
	out := make(map[string]int, len(s.answers))
	for id, idx := range s.answers {
		out[id] = idx
	}
	return out
}

func (s Session) Answer(questionID string) (int, bool) {
	idx, ok := s.answers[questionID]
	return idx, ok
}

func (s Session) AnsweredCount() int {
	return len(s.answers)
}

func (s Session) question(id string) (Question, bool) {
	for _, question := range s.questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}
