package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/actiondesk/action-tracker/pkg/config"
)

// Candidate is one action item proposed by the model. DueDate stays a
// raw "YYYY-MM-DD" string or empty; the caller decides how strict to
// be about malformed dates.
type Candidate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// GroqClient is a minimal client for Groq API calls used for action item extraction
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GROQ_API_URL")
		if base == "" {
			base = "https://api.groq.com"
		}
	}

	model := "llama-3.1-70b-versatile"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	timeout := 30 * time.Second
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &GroqClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string      `json:"model,omitempty"`
	Messages    interface{} `json:"messages,omitempty"`
	Temperature float64     `json:"temperature,omitempty"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractActionItems sends the transcript to Groq and parses the
// returned JSON array of candidates. Transient failures are retried
// with exponential backoff before giving up.
func (g *GroqClient) ExtractActionItems(ctx context.Context, transcript string, participants []string, meetingDate *time.Time) ([]Candidate, error) {
	prompt := buildExtractionPrompt(transcript, participants, meetingDate)

	var content string
	callFn := func() error {
		var err error
		content, err = g.chatCompletion(ctx, prompt)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 60 * time.Second
	bo.MaxInterval = 10 * time.Second

	if err := backoff.Retry(callFn, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}

	var candidates []Candidate
	if err := json.Unmarshal([]byte(extractJSON(content)), &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}
	return candidates, nil
}

func (g *GroqClient) chatCompletion(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model:       g.model,
		Messages:    []map[string]string{{"role": "user", "content": prompt}},
		Temperature: 0.2,
		MaxTokens:   4000,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		// Client errors won't recover on retry
		io.Copy(io.Discard, resp.Body)
		return "", backoff.Permanent(fmt.Errorf("groq returned status %d", resp.StatusCode))
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", backoff.Permanent(fmt.Errorf("empty response from groq"))
	}
	return cr.Choices[0].Message.Content, nil
}

func buildExtractionPrompt(transcript string, participants []string, meetingDate *time.Time) string {
	var b strings.Builder
	b.WriteString("Extract every action item from the following meeting transcript.\n")
	b.WriteString("Return ONLY a JSON array, no prose. Each element has the fields:\n")
	b.WriteString(`  title (string, required), description (string), owner (string), due_date ("YYYY-MM-DD"), priority ("high"|"medium"|"low")` + "\n")
	b.WriteString("Omit a field when the transcript gives no value for it. Resolve relative dates against the meeting date.\n\n")

	if meetingDate != nil {
		fmt.Fprintf(&b, "Meeting date: %s\n", meetingDate.Format("2006-01-02"))
	}
	if len(participants) > 0 {
		fmt.Fprintf(&b, "Participants: %s\n", strings.Join(participants, ", "))
	}
	fmt.Fprintf(&b, "\nTranscript:\n%s", transcript)
	return b.String()
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
