package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewGeminiClient("test-key", "test-model", 0.7, 10*time.Second)
	client.SetBaseURL(srv.URL)
	return client
}

func userPrompt(text string) []Content {
	return []Content{{Role: "user", Parts: []Part{{Text: text}}}}
}

func TestGenerateContentMissingKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewGeminiClient("", "test-model", 0.7, 10*time.Second)
	client.SetBaseURL(srv.URL)

	_, err := client.GenerateContent(context.Background(), userPrompt("hi"), ToolSet{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
	if called {
		t.Error("no network call may happen without a credential")
	}
}

func TestGenerateContentRequestShape(t *testing.T) {
	var captured geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	_, err := client.GenerateContent(context.Background(), userPrompt("hi"), ToolSet{Inbox: true})
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}

	if captured.GenerationConfig.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", captured.GenerationConfig.Temperature)
	}
	if len(captured.Tools) != 2 {
		t.Fatalf("tools = %d entries, want google_search plus function declarations", len(captured.Tools))
	}
	if captured.Tools[0].GoogleSearch == nil {
		t.Error("google_search tool missing")
	}
	decls := captured.Tools[1].FunctionDeclarations
	if len(decls) != 1 || decls[0].Name != InboxToolName {
		t.Errorf("function declarations = %v, want single %s", decls, InboxToolName)
	}
}

func TestGenerateContentSearchOnlyByDefault(t *testing.T) {
	var captured geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	if _, err := client.GenerateContent(context.Background(), userPrompt("hi"), ToolSet{}); err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if len(captured.Tools) != 1 || captured.Tools[0].GoogleSearch == nil {
		t.Errorf("tools = %v, want google_search only", captured.Tools)
	}
}

func TestGenerateContentParsesTextAndGrounding(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "## Digest\n"}, {"text": "Body."}]},
				"groundingMetadata": {
					"groundingChunks": [
						{"web": {"uri": "https://a.com", "title": "A"}},
						{"web": {"uri": "", "title": "No URI"}}
					]
				}
			}]
		}`))
	})

	resp, err := client.GenerateContent(context.Background(), userPrompt("hi"), ToolSet{})
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if resp.Text != "## Digest\nBody." {
		t.Errorf("text = %q, want concatenated parts", resp.Text)
	}
	if len(resp.GroundingRefs) != 2 {
		t.Errorf("grounding refs = %d, want 2 raw entries", len(resp.GroundingRefs))
	}
	if resp.GroundingRefs[0].URI != "https://a.com" || resp.GroundingRefs[0].Title != "A" {
		t.Errorf("first ref = %+v", resp.GroundingRefs[0])
	}
}

func TestGenerateContentParsesFunctionCall(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"functionCall": {"name": "fetch_recent_emails", "args": {"days_back": 7}}}]}
			}]
		}`))
	})

	resp, err := client.GenerateContent(context.Background(), userPrompt("hi"), ToolSet{Inbox: true})
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if len(resp.FunctionCalls) != 1 {
		t.Fatalf("function calls = %d, want 1", len(resp.FunctionCalls))
	}
	call := resp.FunctionCalls[0]
	if call.Name != InboxToolName {
		t.Errorf("call name = %s", call.Name)
	}
	if v, ok := call.Args["days_back"].(float64); !ok || v != 7 {
		t.Errorf("days_back arg = %v", call.Args["days_back"])
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	})

	_, err := client.GenerateContent(context.Background(), userPrompt("hi"), ToolSet{})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestGenerateContentEmptyCandidates(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := client.GenerateContent(context.Background(), userPrompt("hi"), ToolSet{})
	if err == nil {
		t.Fatal("expected an error for a response without candidates")
	}
}
