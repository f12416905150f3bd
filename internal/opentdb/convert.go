package opentdb

import (
	"crypto/sha1"
	"encoding/hex"
	"html"
	"math/rand"
	"sort"

	"quiz-session/internal/quiz"
)

// ToQuestions converts upstream questions into the wire shape served by the
// backend. Options are shuffled so the correct answer is not always last.
func ToQuestions(raw []RawQuestion) []quiz.Question {
	return toQuestions(raw, rand.Shuffle)
}

func toQuestions(raw []RawQuestion, shuffle func(n int, swap func(i, j int))) []quiz.Question {
	questions := make([]quiz.Question, 0, len(raw))
	for _, item := range raw {
		question := buildQuestion(item, shuffle)
		question.ID = makeQuestionID(question)
		questions = append(questions, question)
	}
	return questions
}

func buildQuestion(raw RawQuestion, shuffle func(n int, swap func(i, j int))) quiz.Question {
	type choice struct {
		text      string
		isCorrect bool
	}

	choices := make([]choice, 0, len(raw.IncorrectAnswers)+1)
	for _, incorrect := range raw.IncorrectAnswers {
		choices = append(choices, choice{text: html.UnescapeString(incorrect)})
	}
	choices = append(choices, choice{
		text:      html.UnescapeString(raw.CorrectAnswer),
		isCorrect: true,
	})

	shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	options := make([]string, len(choices))
	correctIndex := -1
	for idx, candidate := range choices {
		options[idx] = candidate.text
		if candidate.isCorrect {
			correctIndex = idx
		}
	}

	return quiz.Question{
		Prompt:       html.UnescapeString(raw.Question),
		Options:      options,
		CorrectIndex: correctIndex,
	}
}

// makeQuestionID hashes the prompt and the option set in sorted order, so
// the id survives reshuffling.
func makeQuestionID(question quiz.Question) string {
	sorted := append([]string(nil), question.Options...)
	sort.Strings(sorted)

	hash := sha1.New()
	hash.Write([]byte(question.Prompt))
	for _, option := range sorted {
		hash.Write([]byte{0})
		hash.Write([]byte(option))
	}
	return "q_" + hex.EncodeToString(hash.Sum(nil))[:16]
}
