package newsletter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wittyweekly/wire/internal/ai"
	"github.com/wittyweekly/wire/internal/logger"
	"github.com/wittyweekly/wire/internal/models"
)

// maxContinuations caps the tool round-trips per generation. The model gets
// exactly one chance to call the inbox tool; a second request is ignored.
const maxContinuations = 1

type generationState int

const (
	stateAwaitingFirstResponse generationState = iota
	stateAwaitingContinuation
	stateDone
)

// Generator drives the model call(s) for one newsletter edition.
type Generator struct {
	model ai.ModelClient
	inbox InboxProvider
}

func NewGenerator(model ai.ModelClient, inbox InboxProvider) *Generator {
	return &Generator{
		model: model,
		inbox: inbox,
	}
}

// Generate composes the prompt, runs the model with at most one tool
// continuation, and packages the final response into an Edition. Any model
// failure aborts the whole operation; no partial Edition is ever returned.
func (g *Generator) Generate(ctx context.Context, req models.GenerationRequest) (*models.Edition, error) {
	if len(req.Topics) == 0 {
		return nil, fmt.Errorf("at least one topic is required")
	}

	log := logger.Get()
	start := time.Now()

	prompt := ai.BuildDigestPrompt(req.Topics, req.PreferredSources, req.CustomSources, req.UseInboxContext)
	tools := ai.Tools(req.UseInboxContext)

	contents := []ai.Content{{
		Role:  "user",
		Parts: []ai.Part{{Text: prompt}},
	}}

	var resp *ai.ModelResponse
	continuations := 0

	for state := stateAwaitingFirstResponse; state != stateDone; {
		r, err := g.model.GenerateContent(ctx, contents, tools)
		if err != nil {
			return nil, fmt.Errorf("model call failed: %w", err)
		}
		resp = r

		call := g.recognizedCall(r)
		if call == nil || continuations >= maxContinuations {
			if call != nil {
				log.Warn().
					Str("tool", call.Name).
					Msg("Ignoring tool request past the continuation cap")
			}
			state = stateDone
			continue
		}

		result, err := g.executeInboxTool(ctx, call)
		if err != nil {
			return nil, fmt.Errorf("inbox tool failed: %w", err)
		}

		contents = append(contents,
			ai.Content{Role: "model", Parts: []ai.Part{{FunctionCall: call}}},
			ai.Content{Role: "user", Parts: []ai.Part{{FunctionResponse: result}}},
		)
		continuations++
		state = stateAwaitingContinuation
	}

	content := cleanContent(resp.Text)
	if content == "" {
		content = FallbackContent
	}

	edition := &models.Edition{
		ID:               uuid.NewString(),
		Content:          content,
		Sources:          SelectCitations(resp.GroundingRefs),
		GeneratedAt:      time.Now(),
		UsedInboxContext: req.UseInboxContext,
		Themes:           append([]string(nil), req.Topics...),
	}

	log.Info().
		Str("id", edition.ID).
		Strs("themes", edition.Themes).
		Int("citations", len(edition.Sources)).
		Int("continuations", continuations).
		Dur("duration", time.Since(start)).
		Msg("Generated newsletter edition")

	return edition, nil
}

// recognizedCall returns the inbox tool call if the response contains one.
// Any other tool name is logged and dropped.
func (g *Generator) recognizedCall(resp *ai.ModelResponse) *ai.FunctionCall {
	for i := range resp.FunctionCalls {
		call := &resp.FunctionCalls[i]
		if call.Name == ai.InboxToolName {
			return call
		}
		logger.Get().Warn().
			Str("tool", call.Name).
			Msg("Model requested an unrecognized tool")
	}
	return nil
}

func (g *Generator) executeInboxTool(ctx context.Context, call *ai.FunctionCall) (*ai.FunctionResponse, error) {
	daysBack := 7
	if v, ok := call.Args["days_back"].(float64); ok && v > 0 {
		daysBack = int(v)
	}

	messages, err := g.inbox.RecentMessages(ctx, daysBack)
	if err != nil {
		return nil, err
	}

	return &ai.FunctionResponse{
		Name: call.Name,
		Response: map[string]any{
			"messages": messages,
		},
	}, nil
}
