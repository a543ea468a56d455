package utils

const (
	SummaryMaxRunes = 50
	summaryEllipsis = "..."
)

// Summarize shortens text to SummaryMaxRunes runes, marking the cut with "...".
func Summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= SummaryMaxRunes {
		return text
	}
	return string(runes[:SummaryMaxRunes]) + summaryEllipsis
}
