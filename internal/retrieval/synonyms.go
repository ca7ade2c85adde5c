package retrieval

// SynonymTable maps a canonical query term to its expansion terms.
// The table is static and read-only; it is consulted only during keyword
// expansion, never during scoring.
type SynonymTable map[string][]string

// DefaultSynonyms returns the built-in expansion table for beekeeping and
// plant-phenology vocabulary.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		"daisies": {"daisy", "bellis", "marguerite", "oxeye"},
		"grow":    {"growing", "cultivate", "plant", "planting", "cultivation"},
		"best":    {"optimal", "ideal", "perfect", "excellent", "suitable"},
		"where":   {"location", "place", "region", "area", "country"},
		"bees":    {"bee", "honeybee", "pollinator", "pollination"},
		"honey":   {"nectar", "honey production", "honey yield"},
		"bloom":   {"blooming", "flowering", "blossom", "blossoming"},
		"season":  {"time", "period", "when", "timing"},
	}
}

// Expand unions every member's expansion terms into the set until no new
// terms appear. Expansion is purely additive and idempotent: expanding an
// already-expanded set yields the same set.
func (t SynonymTable) Expand(keywords map[string]struct{}) map[string]struct{} {
	expanded := make(map[string]struct{}, len(keywords))
	for k := range keywords {
		expanded[k] = struct{}{}
	}

	for {
		grew := false
		for k := range expanded {
			for _, term := range t[k] {
				if _, ok := expanded[term]; !ok {
					expanded[term] = struct{}{}
					grew = true
				}
			}
		}
		if !grew {
			return expanded
		}
	}
}
