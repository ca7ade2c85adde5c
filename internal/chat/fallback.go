package chat

import "strings"

// Canned responses used when no model is available. The bilingual strings
// match the deployed assistant's audience, which asks questions in both
// Turkish and English.
const (
	fallbackWildGarlic = "Almanya'da yabani sarımsak genellikle Mart sonundan Mayıs başına kadar çiçek açar. BloomWatch tahminlerine göre, kovanlarınızı Nisan başında taşımanız önerilir."
	fallbackGreeting   = "Merhaba! Ben Bee AI, arıcılık ve bitki fenolojisi konularında size yardımcı olabilirim. Hangi konuda soru sormak istiyorsunuz?"
	fallbackBloom      = "Avrupa'da çiçeklenme zamanları bölgeye ve iklim koşullarına göre değişir. Hangi bitki ve bölge hakkında bilgi almak istiyorsunuz?"
	fallbackDefault    = "Arıcılık, bitki fenolojisi veya bal üretimi hakkında sorularınızı yanıtlayabilirim. Hangi konuda yardıma ihtiyacınız var?"
)

// fallbackResponse picks a canned answer by keyword when the model is
// unavailable. Matching is case-insensitive substring search.
func fallbackResponse(question string) string {
	q := strings.ToLower(question)

	switch {
	case strings.Contains(q, "almanya") && (strings.Contains(q, "yabani sarımsak") || strings.Contains(q, "wild garlic")):
		return fallbackWildGarlic
	case strings.Contains(q, "merhaba") || strings.Contains(q, "hello") || strings.Contains(q, "hi"):
		return fallbackGreeting
	case strings.Contains(q, "çiçek") || strings.Contains(q, "bloom"):
		return fallbackBloom
	default:
		return fallbackDefault
	}
}
