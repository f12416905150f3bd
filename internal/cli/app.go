package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"quiz-session/internal/controller"
	"quiz-session/internal/quiz"
	"quiz-session/internal/quizapi"
)

const (
	defaultTitle       = "Thermodynamics Quiz"
	defaultWaitTimeout = 10 * time.Second
)

type Options struct {
	Title string
	// WaitTimeout bounds how long submit waits for the progress report
	// before giving up on the confirmation line.
	WaitTimeout time.Duration
}

// Run loads the question set and drives one quiz attempt from in until
// exit or EOF.
func Run(ctx context.Context, in io.Reader, out io.Writer, ctrl *controller.Controller, opts Options) error {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = defaultTitle
	}
	waitTimeout := opts.WaitTimeout
	if waitTimeout <= 0 {
		waitTimeout = defaultWaitTimeout
	}

	fmt.Fprintf(out, "%s\n\n", title)

	if err := ctrl.Load(ctx); err != nil {
		fmt.Fprintf(out, "Could not load questions: %v\n", describeLoadError(err))
	}
	if ctrl.Session().Total() == 0 {
		fmt.Fprintln(out, "No questions available.")
		return nil
	}

	renderSession(out, ctrl.Session())
	fmt.Fprintln(out)
	printHelp(out)

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "\n> ")
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			if readErr != nil {
				fmt.Fprintln(out)
				return nil
			}
			continue
		}

		switch command := strings.ToLower(args[0]); command {
		case "help":
			printHelp(out)
		case "exit", "quit":
			return nil
		case "show":
			renderSession(out, ctrl.Session())
		case "submit":
			runSubmit(ctx, out, ctrl, waitTimeout)
		case "answer":
			runAnswer(out, ctrl, args[1:])
		default:
			if _, err := strconv.Atoi(command); err == nil {
				runAnswer(out, ctrl, args)
			} else {
				fmt.Fprintln(out, "unknown command. type 'help' for usage.")
			}
		}

		if readErr != nil {
			fmt.Fprintln(out)
			return nil
		}
	}
}

func runAnswer(out io.Writer, ctrl *controller.Controller, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(out, "usage: answer <question number> <letter>")
		return
	}

	session := ctrl.Session()
	questions := session.Questions()

	number, err := strconv.Atoi(args[0])
	if err != nil || number < 1 || number > len(questions) {
		fmt.Fprintf(out, "Invalid question number. Please enter 1-%d.\n", len(questions))
		return
	}
	question := questions[number-1]

	optionIndex, ok := quiz.ParseOptionLetter(args[1], len(question.Options))
	if !ok {
		fmt.Fprintf(out, "Invalid input. Please enter a letter A-%s.\n", quiz.OptionLetter(len(question.Options)-1))
		return
	}

	if err := ctrl.Select(question.ID, optionIndex); err != nil {
		if errors.Is(err, quiz.ErrAnswersFrozen) {
			fmt.Fprintln(out, "Answers are locked after submission.")
			return
		}
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}

	fmt.Fprintf(out, "Q%d: %s\n", number, quiz.OptionLetter(optionIndex))
}

func runSubmit(ctx context.Context, out io.Writer, ctrl *controller.Controller, waitTimeout time.Duration) {
	submission, err := ctrl.Submit(ctx)
	if err != nil {
		if errors.Is(err, controller.ErrAlreadySubmitted) {
			fmt.Fprintln(out, "Quiz already submitted.")
			return
		}
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}

	renderSession(out, ctrl.Session())
	fmt.Fprintf(out, "\nYour score: %d / %d\n", submission.Score, submission.Total)

	if submission.Emission == nil {
		return
	}

	waitCtx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()
	if err := submission.Emission.Wait(waitCtx); err != nil {
		fmt.Fprintln(out, "Progress could not be saved.")
		return
	}
	fmt.Fprintln(out, "Progress saved.")
}

func renderSession(out io.Writer, session quiz.Session) {
	views := session.Review()
	for idx, view := range views {
		if idx > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d. %s\n", view.Number, view.Prompt)
		for _, option := range view.Options {
			fmt.Fprintf(out, "   %s. %s%s\n", option.Letter, option.Text, optionMarker(option))
		}
		if view.CorrectAnswer != "" {
			fmt.Fprintf(out, "   Correct Answer: %s\n", view.CorrectAnswer)
		}
	}
}

// optionMarker returns "(*)" for a selection while answering and the review
// classification once submitted.
func optionMarker(option quiz.OptionView) string {
	var tags []string
	if option.Correct {
		tags = append(tags, "correct")
	}
	if option.Wrong {
		tags = append(tags, "wrong")
	}
	if len(tags) == 0 {
		if option.Selected {
			return " (*)"
		}
		return ""
	}
	if option.Selected {
		tags = append(tags, "selected")
	}
	return " [" + strings.Join(tags, ", ") + "]"
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  show")
	fmt.Fprintln(out, "  <n> <letter>   (same as: answer <n> <letter>)")
	fmt.Fprintln(out, "  submit")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  exit")
}

func describeLoadError(err error) error {
	if errors.Is(err, quizapi.ErrServiceUnavailable) {
		return errors.New("question service unavailable")
	}
	return err
}
