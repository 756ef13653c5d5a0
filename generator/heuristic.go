package generator

import (
	"context"
	"fmt"
	"strings"
)

// maxCitedExperiences bounds how many context items a heuristic reply quotes.
const maxCitedExperiences = 3

// Heuristic is the local fallback Generator: a pure function of the request,
// it always succeeds and produces identical output for identical input.
type Heuristic struct{}

// NewHeuristic constructs the deterministic local generator.
func NewHeuristic() *Heuristic { return &Heuristic{} }

// Info implements Generator.
func (h *Heuristic) Info() Info {
	return Info{Name: "heuristic", Provider: "heuristic", Remote: false}
}

// Generate implements Generator. Never returns an error.
func (h *Heuristic) Generate(_ context.Context, req Request) (string, error) {
	if len(req.Context) == 0 {
		return defaultResponse(req.Input), nil
	}
	return contextResponse(req), nil
}

// defaultResponse answers without memory context, keyed on simple input
// markers (mirrors the assistant's bilingual user base).
func defaultResponse(input string) string {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "halo") || strings.Contains(lower, "hello"):
		return "Halo! Ada yang bisa saya bantu? Saya memiliki akses ke memori dan pengalaman yang tersimpan."
	case strings.Contains(lower, "apa") || strings.Contains(lower, "what"):
		return "Saya adalah asisten yang dapat membantu Anda mengakses dan menganalisis informasi dari memori. Silakan tanyakan sesuatu yang lebih spesifik."
	case strings.Contains(lower, "bagaimana") || strings.Contains(lower, "how"):
		return "Saya menggunakan pengenalan pola dan analisis memori untuk menjawab. Coba berikan lebih banyak konteks atau kata kunci."
	case strings.Contains(lower, "terima kasih") || strings.Contains(lower, "thanks"):
		return "Sama-sama! Senang bisa membantu. Ada yang lain yang ingin ditanyakan?"
	default:
		return fmt.Sprintf("Saya memahami pertanyaan Anda tentang %q, namun belum menemukan informasi relevan dalam memori. Silakan tambahkan lebih banyak pengalaman atau berikan konteks yang lebih spesifik.", input)
	}
}

// contextResponse summarizes the retrieved bundle: the strongest
// experiences, then the detected keywords.
func contextResponse(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Berdasarkan %d pengalaman relevan yang saya temukan:\n\n", len(req.Context))

	cited := len(req.Context)
	if cited > maxCitedExperiences {
		cited = maxCitedExperiences
	}
	for i := 0; i < cited; i++ {
		item := req.Context[i]
		fmt.Fprintf(&b, "%d. %s (dari %s)\n", i+1, item.Content, item.Source)
	}

	if len(req.Keywords) > 0 {
		kws := req.Keywords
		if len(kws) > 3 {
			kws = kws[:3]
		}
		fmt.Fprintf(&b, "\nPola yang terdeteksi: %s\n", strings.Join(kws, ", "))
	}

	b.WriteString("\nApakah ini menjawab pertanyaan Anda?")
	return b.String()
}
