package backend

import (
	"time"

	"quiz-session/internal/quiz"
)

type progressCreatedResponse struct {
	ID string `json:"id"`
}

type storedResultResponse struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	Score      int            `json:"score"`
	Total      int            `json:"total"`
	Answers    map[string]int `json:"answers"`
	Timestamp  int64          `json:"timestamp"`
	ReceivedAt time.Time      `json:"receivedAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toStoredResultResponses(results []quiz.StoredResult) []storedResultResponse {
	response := make([]storedResultResponse, 0, len(results))
	for _, result := range results {
		answers := result.Record.Answers
		if answers == nil {
			answers = map[string]int{}
		}
		response = append(response, storedResultResponse{
			ID:         result.ID,
			UserID:     result.Record.UserID,
			Score:      result.Record.Score,
			Total:      result.Record.Total,
			Answers:    answers,
			Timestamp:  result.Record.Timestamp,
			ReceivedAt: result.ReceivedAt.UTC(),
		})
	}
	return response
}
