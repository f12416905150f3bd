package backend

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"quiz-session/internal/quiz"
)

// WriteHistory prints stored results, newest first as given, with times
// relative to now.
func WriteHistory(out io.Writer, results []quiz.StoredResult, now time.Time) {
	if len(results) == 0 {
		fmt.Fprintln(out, "No results recorded.")
		return
	}

	for idx, result := range results {
		record := result.Record
		fmt.Fprintf(out, "%d. %s scored %d / %d (%s answered), submitted %s\n",
			idx+1,
			record.UserID,
			record.Score,
			record.Total,
			humanize.Comma(int64(len(record.Answers))),
			humanize.RelTime(record.SubmittedAt(), now, "ago", "from now"),
		)
	}
}
