package backend

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusRecorderWriteTracksAndTruncates(t *testing.T) {
	base := httptest.NewRecorder()
	recorder := &statusRecorder{
		ResponseWriter: base,
		statusCode:     http.StatusOK,
		maxLogBytes:    10,
	}

	payload := []byte("abcdefghijklmnopqrstuvwxyz")
	written, err := recorder.Write(payload)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if written != len(payload) {
		t.Fatalf("written bytes = %d, want %d", written, len(payload))
	}
	if recorder.bytesWritten != len(payload) {
		t.Fatalf("bytesWritten = %d, want %d", recorder.bytesWritten, len(payload))
	}
	if recorder.logBody.Len() != 10 {
		t.Fatalf("log body length = %d, want 10", recorder.logBody.Len())
	}
	if !recorder.truncated {
		t.Fatalf("expected truncated flag to be true")
	}
	if base.Body.Len() != len(payload) {
		t.Fatalf("underlying body length = %d, want %d", base.Body.Len(), len(payload))
	}
}

func TestStatusRecorderCapturesStatus(t *testing.T) {
	recorder := &statusRecorder{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK, maxLogBytes: 64}
	recorder.WriteHeader(http.StatusCreated)
	_, _ = recorder.Write([]byte("ok"))

	if recorder.statusCode != http.StatusCreated {
		t.Fatalf("statusCode = %d", recorder.statusCode)
	}
	if recorder.truncated || recorder.logBody.String() != "ok" {
		t.Fatalf("unexpected log body %q truncated=%v", recorder.logBody.String(), recorder.truncated)
	}
}
