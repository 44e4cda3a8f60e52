package newsletter

import (
	"context"

	"github.com/wittyweekly/wire/internal/models"
)

// InboxProvider is the connected-inbox capability the generation tool call
// executes against. The shipped implementation is a fixture; a live provider
// would be a drop-in replacement.
type InboxProvider interface {
	RecentMessages(ctx context.Context, daysBack int) ([]models.InboxMessage, error)
}

// FixtureInbox serves a fixed set of mock subscription summaries. It never
// performs a network fetch.
type FixtureInbox struct{}

var fixtureMessages = []models.InboxMessage{
	{Sender: "The Pragmatic Engineer", Subject: "Inside the big platform rewrite", Summary: "A deep dive into why a major tech company rebuilt its deployment pipeline from scratch.", DaysAgo: 1},
	{Sender: "Benedict's Newsletter", Subject: "AI eats the enterprise", Summary: "Enterprise software vendors are racing to bolt LLM assistants onto every product tier.", DaysAgo: 2},
	{Sender: "Launch Roundup", Subject: "Three launches, one landing", Summary: "A busy week on the pads with two commercial missions and a crewed rotation flight.", DaysAgo: 3},
	{Sender: "Chip Letter", Subject: "The 2nm race heats up", Summary: "Foundries announced competing timelines for next-generation process nodes.", DaysAgo: 4},
	{Sender: "Game Dev Digest", Subject: "Indie hits and studio shutters", Summary: "A surprise indie release topped the charts while two mid-size studios closed.", DaysAgo: 6},
}

func NewFixtureInbox() *FixtureInbox {
	return &FixtureInbox{}
}

// RecentMessages returns fixture entries no older than daysBack days.
func (f *FixtureInbox) RecentMessages(ctx context.Context, daysBack int) ([]models.InboxMessage, error) {
	if daysBack <= 0 {
		daysBack = 7
	}

	var out []models.InboxMessage
	for _, msg := range fixtureMessages {
		if msg.DaysAgo <= daysBack {
			out = append(out, msg)
		}
	}
	return out, nil
}
