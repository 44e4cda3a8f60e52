package newsletter

import "github.com/wittyweekly/wire/internal/models"

// SelectCitations keeps grounding references that carry both a URI and a
// title, then removes URI duplicates. The result is what an Edition stores.
func SelectCitations(refs []models.Citation) []models.Citation {
	var kept []models.Citation
	for _, ref := range refs {
		if ref.URI != "" && ref.Title != "" {
			kept = append(kept, ref)
		}
	}
	return DedupeCitations(kept)
}

// DedupeCitations filters a citation list down to unique URIs. The first
// occurrence wins, including its title, and first-seen order is preserved.
// Idempotent.
func DedupeCitations(citations []models.Citation) []models.Citation {
	seen := make(map[string]struct{}, len(citations))
	out := make([]models.Citation, 0, len(citations))

	for _, c := range citations {
		if _, ok := seen[c.URI]; ok {
			continue
		}
		seen[c.URI] = struct{}{}
		out = append(out, c)
	}
	return out
}
