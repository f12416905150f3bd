package quiz

import (
	"strings"
	"time"
)

// AnonymousUserID is reported when no authenticated identity is available.
const AnonymousUserID = "anonymous"

// ResultRecord is the payload sent to the progress endpoint.
type ResultRecord struct {
	UserID    string         `json:"userId"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	Answers   map[string]int `json:"answers"`
	Timestamp int64          `json:"timestamp"`
}

func (r ResultRecord) SubmittedAt() time.Time {
	return time.UnixMilli(r.Timestamp).UTC()
}

// Result builds the record for a submitted session.
func (s Session) Result(userID string, at time.Time) (ResultRecord, error) {
	if s.state != Reviewing {
		return ResultRecord{}, ErrNotSubmitted
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = AnonymousUserID
	}

	return ResultRecord{
		UserID:    userID,
		Score:     s.score,
		Total:     len(s.questions),
		Answers:   s.Answers(),
		Timestamp: at.UnixMilli(),
	}, nil
}
