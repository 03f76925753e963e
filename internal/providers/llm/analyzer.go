package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/remindme/internal/config"
	"github.com/sandevgo/remindme/internal/core"
)

// Analyzer detects reminder intent in captured notes via an
// OpenAI-compatible chat completions endpoint.
type Analyzer struct {
	baseProvider
}

func NewAnalyzer(cfg *config.AnalyzerConfig) *Analyzer {
	return &Analyzer{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model),
	}
}

// analyzerVerdict is the JSON object the model is asked to produce.
type analyzerVerdict struct {
	IsReminder   bool   `json:"isReminder"`
	ISOTimestamp string `json:"isoTimestamp"`
	Label        string `json:"label"`
}

func (a *Analyzer) AnalyzeReminder(ctx context.Context, text string, now time.Time) (core.ReminderIntent, error) {
	payload := map[string]any{
		"model": a.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a reminder intent detector. Output only valid JSON."},
			{"role": "user", "content": buildAnalysisPrompt(text, now)},
		},
		"response_format": map[string]string{"type": "json_object"},
	}

	resp, err := a.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload)
	if err != nil {
		return core.ReminderIntent{}, err
	}
	defer resp.Body.Close()

	content, err := parseCompletion(resp)
	if err != nil {
		return core.ReminderIntent{}, err
	}

	verdict, err := parseVerdict(content)
	if err != nil {
		return core.ReminderIntent{}, err
	}

	if !verdict.IsReminder || verdict.ISOTimestamp == "" {
		return core.ReminderIntent{IsReminder: false}, nil
	}

	at, err := time.Parse(time.RFC3339, verdict.ISOTimestamp)
	if err != nil {
		return core.ReminderIntent{}, fmt.Errorf("bad timestamp %q: %w", verdict.ISOTimestamp, err)
	}

	return core.ReminderIntent{
		IsReminder: true,
		Timestamp:  at.UnixMilli(),
		Label:      verdict.Label,
	}, nil
}

func buildAnalysisPrompt(text string, now time.Time) string {
	return fmt.Sprintf(`Current Date/Time: %s

Analyze the text below. Does the user want to be reminded of something at a specific future time?
If yes, return JSON {"isReminder": true, "isoTimestamp": "<ISO 8601>", "label": "<short label>"}; otherwise {"isReminder": false}.

Rules for time inference:
- If the user says "tomorrow", assume 9:00 AM tomorrow if no specific time is given.
- If the user says "evening", assume 6:00 PM.
- If the user says "morning", assume 9:00 AM.
- If the user says "afternoon", assume 2:00 PM.
- The timestamp MUST be in the future relative to the Current Date/Time provided above.

Text: %q`, now.Format(time.RFC3339), text)
}

func parseCompletion(resp *http.Response) (string, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices: %s", string(data))
	}
	return result.Choices[0].Message.Content, nil
}

// parseVerdict tolerates models that wrap the JSON object in prose or
// code fences.
func parseVerdict(content string) (analyzerVerdict, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return analyzerVerdict{}, fmt.Errorf("no JSON object found in response")
	}

	var verdict analyzerVerdict
	if err := json.Unmarshal([]byte(content[start:end+1]), &verdict); err != nil {
		return analyzerVerdict{}, fmt.Errorf("unmarshal verdict: %w", err)
	}
	return verdict, nil
}
