package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/project-catalyst/catalyst-api/internal/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key")
	c.baseURL = srv.URL
	return c
}

func TestExtractTextTopLevelField(t *testing.T) {
	gr := &generateResponse{Text: "direct reply"}
	if got := extractText(gr); got != "direct reply" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractTextParts(t *testing.T) {
	var gr generateResponse
	body := `{"candidates":[{"content":{"parts":[{"text":"hello "},{"text":"world"}]}}]}`
	if err := json.Unmarshal([]byte(body), &gr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := extractText(&gr); got != "hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractTextEmpty(t *testing.T) {
	if got := extractText(&generateResponse{}); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestStripFencesRoundTrip(t *testing.T) {
	plain := `{"summary":"s","category":"c","estimatedComplexity":"Low"}`
	fenced := "```json\n" + plain + "\n```"

	var a, b map[string]string
	if err := json.Unmarshal([]byte(stripFences(plain)), &a); err != nil {
		t.Fatalf("unwrapped: %v", err)
	}
	if err := json.Unmarshal([]byte(stripFences(fenced)), &b); err != nil {
		t.Fatalf("fenced: %v", err)
	}
	for k, v := range a {
		if b[k] != v {
			t.Fatalf("mismatch at %q: %q vs %q", k, v, b[k])
		}
	}
}

func TestAnalyze(t *testing.T) {
	var gotBody []byte
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"{\"summary\":\"A shop app\",\"category\":\"E-commerce\",\"estimatedComplexity\":\"Medium\"}"}]}}]}`)
	})

	analysis, err := c.Analyze(context.Background(), "Build an e-commerce app with cart and payments")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if analysis.Summary != "A shop app" || analysis.Category != "E-commerce" || analysis.EstimatedComplexity != "Medium" {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}

	var req generateRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if req.GenerationConfig == nil {
		t.Fatal("analyze request carries no generationConfig")
	}
	if req.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Fatalf("responseMimeType = %q", req.GenerationConfig.ResponseMIMEType)
	}
	if len(req.GenerationConfig.ResponseSchema) == 0 {
		t.Fatal("analyze request carries no responseSchema")
	}
}

func TestAnalyzeFencedReply(t *testing.T) {
	fenced := "```json\n{\"summary\":\"s\",\"category\":\"c\",\"estimatedComplexity\":\"High\"}\n```"
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{
					map[string]any{"text": fenced},
				}}},
			},
		})
	})

	analysis, err := c.Analyze(context.Background(), "some long enough description")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if analysis.EstimatedComplexity != "High" {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
}

func TestAnalyzeParseFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"not json at all"}]}}]}`)
	})

	if _, err := c.Analyze(context.Background(), "some long enough description"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAnalyzeProviderError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":{"code":403,"message":"key invalid"}}`)
	})

	if _, err := c.Analyze(context.Background(), "some long enough description"); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestChatTranscript(t *testing.T) {
	var gotBody []byte
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"Usually two weeks."}]}}]}`)
	})

	reply, err := c.Chat(context.Background(), []models.ChatMessage{
		{Role: "user", Content: "What's your turnaround time?"},
		{Role: "model", Content: "Depends on scope."},
		{Role: "user", Content: "For a small site?"},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "Usually two weeks." {
		t.Fatalf("reply = %q", reply)
	}

	var req generateRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if req.GenerationConfig != nil {
		t.Fatal("chat request should not carry a generationConfig")
	}
	if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected contents shape: %+v", req.Contents)
	}
	prompt := req.Contents[0].Parts[0].Text
	want := "User: What's your turnaround time?\nAssistant: Depends on scope.\nUser: For a small site?"
	if prompt != want {
		t.Fatalf("transcript = %q, want %q", prompt, want)
	}
}
