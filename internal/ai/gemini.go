// Package ai is the client for the Gemini generateContent API. It covers
// the two calls the site makes: structured project analysis and the
// stateless chatbot relay.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/project-catalyst/catalyst-api/internal/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   "gemini-2.5-flash",
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
	Temperature      float64         `json:"temperature,omitempty"`
	MaxOutputTokens  int             `json:"maxOutputTokens,omitempty"`
}

// generateResponse covers the response shapes the API is known to produce:
// some variants expose the reply as a top-level text field, others only as
// a candidates/content/parts tree. extractText normalizes both.
type generateResponse struct {
	Text       string `json:"text"`
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// analysisSchema constrains the analysis reply to strict JSON matching
// models.AIAnalysis.
var analysisSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"summary": {"type": "STRING"},
		"category": {"type": "STRING"},
		"estimatedComplexity": {"type": "STRING", "enum": ["Low", "Medium", "High"]}
	},
	"required": ["summary", "category", "estimatedComplexity"]
}`)

// Analyze asks the model for a structured assessment of a project
// description. The reply is requested as schema-constrained JSON, but
// fence-wrapped output is still tolerated before parsing.
func (c *Client) Analyze(ctx context.Context, description string) (*models.AIAnalysis, error) {
	prompt := fmt.Sprintf("Analyze the following project description and return strict JSON.\n\n%s\n", description)

	raw, err := c.generate(ctx, prompt, &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema,
		Temperature:      0.6,
		MaxOutputTokens:  500,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	var analysis models.AIAnalysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("analyze: parse reply: %w", err)
	}
	return &analysis, nil
}

// Chat flattens the message history into a single transcript and returns
// the model's reply. All conversation state lives with the caller.
func (c *Client) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteByte('\n')
		}
		speaker := "Assistant"
		if m.Role == "user" {
			speaker = "User"
		}
		b.WriteString(speaker)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}

	reply, err := c.generate(ctx, b.String(), nil)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return reply, nil
}

func (c *Client) generate(ctx context.Context, prompt string, cfg *generationConfig) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var gr generateResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if gr.Error != nil {
		return "", fmt.Errorf("provider error %d: %s", gr.Error.Code, gr.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider status %d", resp.StatusCode)
	}

	text := extractText(&gr)
	if text == "" {
		return "", fmt.Errorf("empty reply")
	}
	return text, nil
}

// extractText maps any known response shape to a plain string: a top-level
// text field wins, otherwise all parts of the first candidate are joined.
func extractText(gr *generateResponse) string {
	if gr.Text != "" {
		return gr.Text
	}
	if len(gr.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// stripFences removes Markdown code-fence wrapping (```json ... ```) some
// models still emit around JSON replies.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
