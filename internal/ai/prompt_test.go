package ai

import (
	"strings"
	"testing"

	"github.com/wittyweekly/wire/internal/models"
)

func TestBuildDigestPromptFixedClauses(t *testing.T) {
	prompt := BuildDigestPrompt([]string{"Artificial Intelligence", "Space Exploration"}, nil, nil, false)

	for _, want := range []string{
		"Artificial Intelligence, Space Exploration",
		"past 7 days",
		"H2 (##)",
		"under 800 words",
		"Strictly English",
		"Google Search tool",
		"Fun Fact of the Week",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildDigestPromptSourceBias(t *testing.T) {
	tests := []struct {
		name        string
		preferred   []string
		custom      []models.CustomSource
		useInbox    bool
		wantClauses []string
		skipClauses []string
	}{
		{
			name:        "no sources means open search",
			wantClauses: []string{"no source bias"},
			skipClauses: []string{"Prioritize coverage", "reader-supplied"},
		},
		{
			name:        "preferred sources are prioritized",
			preferred:   []string{"TechCrunch", "The Verge"},
			wantClauses: []string{"Prioritize coverage from these preferred sources: TechCrunch, The Verge."},
			skipClauses: []string{"no source bias"},
		},
		{
			name: "custom sources rendered with kind nouns",
			custom: []models.CustomSource{
				{Value: "example.com/blog", Kind: models.SourceKindURL},
				{Value: "@spacewatcher", Kind: models.SourceKindSocial},
				{Value: "Morning Brew", Kind: models.SourceKindNewsletter},
			},
			wantClauses: []string{
				"Website: example.com/blog",
				"Social Account: @spacewatcher",
				"Newsletter name: Morning Brew",
			},
			skipClauses: []string{"no source bias"},
		},
		{
			name:     "inbox clause appears only when requested",
			useInbox: true,
			wantClauses: []string{
				InboxToolName,
				"scanning your recent subscriptions",
			},
			skipClauses: []string{"no source bias"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildDigestPrompt([]string{"World News"}, tt.preferred, tt.custom, tt.useInbox)

			for _, want := range tt.wantClauses {
				if !strings.Contains(prompt, want) {
					t.Errorf("prompt missing %q", want)
				}
			}
			for _, skip := range tt.skipClauses {
				if strings.Contains(prompt, skip) {
					t.Errorf("prompt unexpectedly contains %q", skip)
				}
			}
		})
	}
}

func TestToolsEnablement(t *testing.T) {
	if Tools(false).Inbox {
		t.Error("inbox tool enabled without an inbox request")
	}
	if !Tools(true).Inbox {
		t.Error("inbox tool disabled despite an inbox request")
	}
}
