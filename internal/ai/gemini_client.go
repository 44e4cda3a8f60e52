package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/wittyweekly/wire/internal/models"
)

// ErrMissingAPIKey is returned before any network attempt when the ambient
// Gemini credential is absent. Callers treat it as a configuration failure
// rather than a transient one.
var ErrMissingAPIKey = errors.New("gemini api key is missing")

// InboxToolName is the single callable function exposed to the model when the
// connected-inbox context is requested. No other tool name is recognized.
const InboxToolName = "fetch_recent_emails"

// Content is one turn of the conversation sent to the model.
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part carries exactly one of a text segment, a function call requested by
// the model, or a function response supplied back to it.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

// FunctionCall is the model's request to invoke a named tool.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResponse feeds a locally executed tool result back to the model.
type FunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// ToolSet is the tool-enablement decision for one model call. Web search is
// always on; the inbox function is opt-in.
type ToolSet struct {
	Inbox bool
}

// ModelResponse is the normalized shape the orchestrator consumes: final text
// (if any), tool calls (if any), and the raw grounding references.
type ModelResponse struct {
	Text          string
	FunctionCalls []FunctionCall
	GroundingRefs []models.Citation
}

// ModelClient is the seam between the orchestrator and the remote model.
type ModelClient interface {
	GenerateContent(ctx context.Context, contents []Content, tools ToolSet) (*ModelResponse, error)
}

type GeminiClient struct {
	client      *resty.Client
	apiKey      string
	model       string
	temperature float64
	baseURL     string
}

type geminiRequest struct {
	Contents         []Content       `json:"contents"`
	Tools            []geminiTool    `json:"tools,omitempty"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiTool struct {
	GoogleSearch         *struct{}             `json:"google_search,omitempty"`
	FunctionDeclarations []functionDeclaration `json:"function_declarations,omitempty"`
}

type functionDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type geminiGenConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewGeminiClient(apiKey, model string, temperature float64, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		client:      resty.New().SetTimeout(timeout),
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		baseURL:     "https://generativelanguage.googleapis.com/v1beta/models",
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (g *GeminiClient) SetBaseURL(url string) {
	g.baseURL = url
}

// GenerateContent calls the Gemini generateContent endpoint with web search
// always enabled and the inbox function attached when tools.Inbox is set.
func (g *GeminiClient) GenerateContent(ctx context.Context, contents []Content, tools ToolSet) (*ModelResponse, error) {
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	req := geminiRequest{
		Contents:         contents,
		Tools:            buildTools(tools),
		GenerationConfig: geminiGenConfig{Temperature: g.temperature},
	}

	var resp geminiResponse
	_, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(url)

	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("API error: %s", resp.Error.Message)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	return normalizeResponse(&resp), nil
}

func buildTools(tools ToolSet) []geminiTool {
	out := []geminiTool{{GoogleSearch: &struct{}{}}}
	if tools.Inbox {
		out = append(out, geminiTool{
			FunctionDeclarations: []functionDeclaration{{
				Name:        InboxToolName,
				Description: "Fetch summaries of the user's recent newsletter subscription emails.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"days_back": map[string]any{
							"type":        "number",
							"description": "How many days of inbox history to scan.",
						},
					},
				},
			}},
		})
	}
	return out
}

func normalizeResponse(resp *geminiResponse) *ModelResponse {
	out := &ModelResponse{}
	cand := resp.Candidates[0]

	for _, part := range cand.Content.Parts {
		if part.Text != "" {
			out.Text += part.Text
		}
		if part.FunctionCall != nil {
			out.FunctionCalls = append(out.FunctionCalls, *part.FunctionCall)
		}
	}

	for _, chunk := range cand.GroundingMetadata.GroundingChunks {
		out.GroundingRefs = append(out.GroundingRefs, models.Citation{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}

	return out
}
