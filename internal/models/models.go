package models

import "time"

// SourceKind tags a user-entered custom source.
type SourceKind string

const (
	SourceKindURL        SourceKind = "url"
	SourceKindSocial     SourceKind = "social"
	SourceKindNewsletter SourceKind = "newsletter"
)

// Noun returns the label used when a custom source is rendered into a prompt.
func (k SourceKind) Noun() string {
	switch k {
	case SourceKindSocial:
		return "Social Account"
	case SourceKindNewsletter:
		return "Newsletter name"
	default:
		return "Website"
	}
}

// CustomSource is a free-text source entered by the user for one generation.
type CustomSource struct {
	ID    string     `json:"id"`
	Value string     `json:"value"`
	Kind  SourceKind `json:"kind"`
}

// Citation is a (title, uri) pair taken from the model's grounding metadata.
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Edition is one persisted generation result. Immutable after creation.
type Edition struct {
	ID               string     `json:"id"`
	Content          string     `json:"content"`
	Sources          []Citation `json:"sources"`
	GeneratedAt      time.Time  `json:"generated_at"`
	UsedInboxContext bool       `json:"used_inbox_context"`
	Themes           []string   `json:"themes"`
}

// GenerationRequest parameterizes a single newsletter generation. Built fresh
// per generate action and never mutated afterwards.
type GenerationRequest struct {
	Topics           []string       `json:"topics" validate:"required,min=1"`
	PreferredSources []string       `json:"preferred_sources"`
	CustomSources    []CustomSource `json:"custom_sources"`
	UseInboxContext  bool           `json:"use_inbox_context"`
}

// ScheduleConfig captures a recurring-delivery preference. It is recorded and
// echoed back, but nothing in this service executes it.
type ScheduleConfig struct {
	Frequency  string `json:"frequency" validate:"required,oneof=daily weekly biweekly"`
	Target     string `json:"target" validate:"required,oneof=personal mailing-list"`
	Recipients string `json:"recipients" validate:"required"`
	SendTime   string `json:"send_time"`
}

// InboxMessage is one entry of the mock connected-inbox fixture.
type InboxMessage struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Summary string `json:"summary"`
	DaysAgo int    `json:"days_ago"`
}
