package catalog

// Topic is a fixed subject area the user can select for coverage.
type Topic struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// NewsSource is a curated publication the user can ask the model to prioritize.
type NewsSource struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Icon   string `json:"icon"`
}

// Topics is the full topic catalog. Reference data, loaded once, never mutated.
var Topics = []Topic{
	{ID: "ai", Label: "Artificial Intelligence", Icon: "🤖", Description: "LLMs, generative art, and our future robot overlords."},
	{ID: "robotics", Label: "Robotics", Icon: "🦾", Description: "Boston Dynamics dances and automated helpers."},
	{ID: "hardware", Label: "Hardware & Wearables", Icon: "⌚", Description: "The latest chips, vision pros, and smart rings."},
	{ID: "science", Label: "Scientific Breakthroughs", Icon: "🧬", Description: "CRISPR, fusion energy, and curing the incurable."},
	{ID: "space", Label: "Space Exploration", Icon: "🚀", Description: "Mars missions, Webb telescope, and aliens (maybe)."},
	{ID: "world", Label: "World News", Icon: "🌍", Description: "Global events, minus the doomscrolling vibe."},
	{ID: "crypto", Label: "Crypto & Web3", Icon: "🪙", Description: "Coins, chains, and whatever an NFT is this week."},
	{ID: "gaming", Label: "Gaming Industry", Icon: "🎮", Description: "Studio news, launches, and delightful delays."},
}

// Sources is the curated publication catalog.
var Sources = []NewsSource{
	{ID: "techcrunch", Name: "TechCrunch", Domain: "techcrunch.com", Icon: "📰"},
	{ID: "verge", Name: "The Verge", Domain: "theverge.com", Icon: "🔺"},
	{ID: "wired", Name: "Wired", Domain: "wired.com", Icon: "🔌"},
	{ID: "arstechnica", Name: "Ars Technica", Domain: "arstechnica.com", Icon: "🛠"},
	{ID: "reuters", Name: "Reuters", Domain: "reuters.com", Icon: "🌐"},
	{ID: "bbc", Name: "BBC News", Domain: "bbc.com", Icon: "🎙"},
	{ID: "nature", Name: "Nature", Domain: "nature.com", Icon: "🧪"},
	{ID: "spacenews", Name: "SpaceNews", Domain: "spacenews.com", Icon: "🛰"},
}

// TopicLabel resolves a topic ID to its display label. Unknown IDs pass
// through unchanged so a stale client selection still produces a section.
func TopicLabel(id string) string {
	for _, t := range Topics {
		if t.ID == id {
			return t.Label
		}
	}
	return id
}

// SourceName resolves a source ID to its display name, falling back to the ID.
func SourceName(id string) string {
	for _, s := range Sources {
		if s.ID == id {
			return s.Name
		}
	}
	return id
}
