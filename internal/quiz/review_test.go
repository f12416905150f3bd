package quiz

import "testing"

func TestReviewWhileAnsweringOnlyMarksSelection(t *testing.T) {
	session := loadedSession(t, twoQuestions())
	session = mustSelect(t, session, "q2", 0)

	views := session.Review()
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}

	q2 := views[1]
	if q2.Number != 2 || q2.QuestionID != "q2" || !q2.Answered {
		t.Fatalf("unexpected view header: %+v", q2)
	}
	if !q2.Options[0].Selected {
		t.Fatalf("expected option A selected")
	}
	for _, option := range q2.Options {
		if option.Correct || option.Wrong {
			t.Fatalf("correctness leaked while answering: %+v", option)
		}
	}
	if q2.CorrectAnswer != "" {
		t.Fatalf("correct answer shown while answering: %q", q2.CorrectAnswer)
	}
	if views[0].Answered {
		t.Fatalf("q1 should be unanswered")
	}
}

func TestReviewAfterSubmitClassifiesOptions(t *testing.T) {
	session := loadedSession(t, twoQuestions())
	session = mustSelect(t, session, "q1", 0)
	session = mustSelect(t, session, "q2", 2)
	session = mustSubmit(t, session)

	views := session.Review()

	q1 := views[0]
	if !q1.Options[0].Selected || !q1.Options[0].Correct || q1.Options[0].Wrong {
		t.Fatalf("q1 option A = %+v, want selected and correct", q1.Options[0])
	}
	if q1.CorrectAnswer != "Energy is conserved" {
		t.Fatalf("q1 correct answer = %q", q1.CorrectAnswer)
	}

	q2 := views[1]
	want := []OptionView{
		{Letter: "A", Text: "Newton"},
		{Letter: "B", Text: "Joule", Correct: true},
		{Letter: "C", Text: "Pascal", Selected: true, Wrong: true},
	}
	for idx := range want {
		if q2.Options[idx] != want[idx] {
			t.Fatalf("q2 option %d = %+v, want %+v", idx, q2.Options[idx], want[idx])
		}
	}
}

func TestReviewUnansweredAfterSubmitShowsCorrectOnly(t *testing.T) {
	session := mustSubmit(t, loadedSession(t, twoQuestions()))

	for _, view := range session.Review() {
		for idx, option := range view.Options {
			if option.Selected || option.Wrong {
				t.Fatalf("unanswered question %s has selection marks: %+v", view.QuestionID, option)
			}
			if option.Correct != (idx == correctIndexFor(view.QuestionID)) {
				t.Fatalf("question %s option %d correct = %t", view.QuestionID, idx, option.Correct)
			}
		}
	}
}

func correctIndexFor(id string) int {
	for _, question := range twoQuestions() {
		if question.ID == id {
			return question.CorrectIndex
		}
	}
	return -1
}
