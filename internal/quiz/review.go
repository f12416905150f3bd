package quiz

// OptionView classifies one option for rendering. Correct and Wrong are only
// set once the session is Reviewing.
type OptionView struct {
	Letter   string
	Text     string
	Selected bool
	Correct  bool
	Wrong    bool
}

type QuestionView struct {
	Number        int
	QuestionID    string
	Prompt        string
	Options       []OptionView
	Answered      bool
	CorrectAnswer string
}

// Review derives the presentation state of every question. It reads the
// session only and carries no state of its own.
func (s Session) Review() []QuestionView {
	reviewing := s.state == Reviewing

	views := make([]QuestionView, 0, len(s.questions))
	for idx, question := range s.questions {
		selected, answered := s.answers[question.ID]

		view := QuestionView{
			Number:     idx + 1,
			QuestionID: question.ID,
			Prompt:     question.Prompt,
			Options:    make([]OptionView, len(question.Options)),
			Answered:   answered,
		}
		if reviewing {
			view.CorrectAnswer = question.CorrectOption()
		}

		for optIdx, text := range question.Options {
			isSelected := answered && selected == optIdx
			isCorrect := reviewing && question.CorrectIndex == optIdx
			view.Options[optIdx] = OptionView{
				Letter:   OptionLetter(optIdx),
				Text:     text,
				Selected: isSelected,
				Correct:  isCorrect,
				Wrong:    reviewing && isSelected && !isCorrect,
			}
		}
		views = append(views, view)
	}
	return views
}
