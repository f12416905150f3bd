package questionfile

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"quiz-session/internal/quiz"
)

// Document is the on-disk layout:
//
//	questions:
//	  - id: q1
//	    question: What is conserved in an isolated system?
//	    options: [Energy, Temperature]
//	    correct: 0
type Document struct {
	Questions []Entry `yaml:"questions"`
}

type Entry struct {
	ID       string   `yaml:"id"`
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
	Correct  int      `yaml:"correct"`
}

func Load(path string) ([]quiz.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	questions, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return questions, nil
}

func Decode(r io.Reader) ([]quiz.Question, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse question file: %w", err)
	}

	questions := make([]quiz.Question, 0, len(doc.Questions))
	for _, entry := range doc.Questions {
		questions = append(questions, quiz.Question{
			ID:           entry.ID,
			Prompt:       entry.Question,
			Options:      entry.Options,
			CorrectIndex: entry.Correct,
		})
	}

	if err := quiz.ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Encode writes questions in the layout Load reads.
func Encode(w io.Writer, questions []quiz.Question) error {
	doc := Document{Questions: make([]Entry, 0, len(questions))}
	for _, question := range questions {
		doc.Questions = append(doc.Questions, Entry{
			ID:       question.ID,
			Question: question.Prompt,
			Options:  question.Options,
			Correct:  question.CorrectIndex,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// Source serves a question file as the quiz's question source.
type Source struct {
	Path string
}

func (s Source) FetchQuestions(ctx context.Context) ([]quiz.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path)
}
