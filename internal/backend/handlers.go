package backend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"quiz-session/internal/quiz"
)

const (
	defaultHistoryLimit = 20
	maxProgressBody     = 1 << 20
)

// HandleQuestions serves the whole bank in bank order.
func (a *API) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if a.questions == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "question bank unavailable"})
		return
	}

	questions, err := a.questions.ListQuestions(r.Context())
	if err != nil {
		a.logger.Error("failed to list questions", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
		return
	}
	if questions == nil {
		questions = []quiz.Question{}
	}

	writeJSON(w, http.StatusOK, questions)
}

func (a *API) HandleProgress(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.saveProgress(w, r)
	case http.MethodGet:
		a.listProgress(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (a *API) saveProgress(w http.ResponseWriter, r *http.Request) {
	if a.results == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "result store unavailable"})
		return
	}

	defer r.Body.Close()

	var record quiz.ResultRecord
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProgressBody))
	if err := decoder.Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	record.UserID = strings.TrimSpace(record.UserID)
	if err := record.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	stored := quiz.StoredResult{
		ID:         a.newID(),
		Record:     record,
		ReceivedAt: a.now().UTC(),
	}
	if err := a.results.SaveResult(r.Context(), stored); err != nil {
		if errors.Is(err, quiz.ErrInvalidResult) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		a.logger.Error("failed to save result", "error", err, "user_id", record.UserID)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
		return
	}

	a.logger.Info("result saved", "id", stored.ID, "user_id", record.UserID, "score", record.Score, "total", record.Total)
	writeJSON(w, http.StatusCreated, progressCreatedResponse{ID: stored.ID})
}

func (a *API) listProgress(w http.ResponseWriter, r *http.Request) {
	if a.results == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "result store unavailable"})
		return
	}

	limit, err := parseIntParam(r, "limit", defaultHistoryLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))

	results, err := a.results.ListResults(r.Context(), userID, limit)
	if err != nil {
		a.logger.Error("failed to list results", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
		return
	}

	writeJSON(w, http.StatusOK, toStoredResultResponses(results))
}
