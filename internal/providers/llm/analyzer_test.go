package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sandevgo/remindme/internal/config"
)

func completionResponse(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func newTestAnalyzer(serverURL string) *Analyzer {
	return NewAnalyzer(&config.AnalyzerConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Model:   "test-model",
	})
}

func TestAnalyzer_DetectsReminder(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	fireAt := now.Add(24 * time.Hour)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		verdict := fmt.Sprintf(`{"isReminder": true, "isoTimestamp": %q, "label": "Buy milk"}`, fireAt.Format(time.RFC3339))
		fmt.Fprint(w, completionResponse(verdict))
	}))
	defer server.Close()

	intent, err := newTestAnalyzer(server.URL).AnalyzeReminder(context.Background(), "buy milk tomorrow", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !intent.IsReminder {
		t.Fatal("expected reminder intent")
	}
	if intent.Timestamp != fireAt.UnixMilli() {
		t.Errorf("timestamp: got %d, want %d", intent.Timestamp, fireAt.UnixMilli())
	}
	if intent.Label != "Buy milk" {
		t.Errorf("label: got %q", intent.Label)
	}
}

func TestAnalyzer_NoReminder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(`{"isReminder": false}`))
	}))
	defer server.Close()

	intent, err := newTestAnalyzer(server.URL).AnalyzeReminder(context.Background(), "nice weather today", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.IsReminder {
		t.Error("expected no reminder intent")
	}
}

func TestAnalyzer_ToleratesFencedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := "```json\n{\"isReminder\": true, \"isoTimestamp\": \"2030-01-01T09:00:00Z\", \"label\": \"New year\"}\n```"
		fmt.Fprint(w, completionResponse(content))
	}))
	defer server.Close()

	intent, err := newTestAnalyzer(server.URL).AnalyzeReminder(context.Background(), "remind me on new year", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !intent.IsReminder || intent.Label != "New year" {
		t.Errorf("unexpected intent: %+v", intent)
	}
}

func TestAnalyzer_HTTPErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestAnalyzer(server.URL).AnalyzeReminder(context.Background(), "anything", time.Now())
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestAnalyzer_MissingTimestampMeansNoReminder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(`{"isReminder": true, "label": "vague"}`))
	}))
	defer server.Close()

	intent, err := newTestAnalyzer(server.URL).AnalyzeReminder(context.Background(), "sometime soon", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.IsReminder {
		t.Error("a verdict without a timestamp must degrade to no reminder")
	}
}
