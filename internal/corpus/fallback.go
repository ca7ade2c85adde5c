package corpus

// fallbackPairs is the minimal built-in corpus used when no JSONL file is
// found. It keeps the service able to answer the most common seasonal
// questions for European beekeeping.
var fallbackPairs = [][2]string{
	{
		"When does wild garlic bloom in Germany?",
		"Wild garlic typically blooms from late March to early May in central Germany. Based on BloomWatch forecasts and GBIF 2025 records, you should move your hives in early April to align with peak nectar flow.",
	},
	{
		"When does clover bloom in Turkey?",
		"I am unable to provide information about clover blooming times in Turkey, as my knowledge is restricted to European countries and regions. However, in northern Spain, BloomWatch 2025 satellite data shows clover blooming from mid-April through June.",
	},
	{
		"What's the best period for honey collection in southern Spain?",
		"According to GBIF 2025 data, sunflowers in southern Spain reach full bloom between late June and August. Start honey collection in mid-July when nectar availability peaks.",
	},
}

// FallbackKnowledgeBase returns a fresh knowledge base holding the
// built-in entries.
func FallbackKnowledgeBase() *KnowledgeBase {
	entries := make([]Entry, 0, len(fallbackPairs))
	for _, pair := range fallbackPairs {
		entry, err := NewEntry(pair[0], pair[1])
		if err != nil {
			// Built-in pairs are static and always valid.
			continue
		}
		entries = append(entries, entry)
	}
	return NewKnowledgeBase(entries)
}
