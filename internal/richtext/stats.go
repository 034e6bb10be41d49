package richtext

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// wordsPerMinute is the reading speed the estimate divides by.
const wordsPerMinute = 200

var (
	codeFences    = regexp.MustCompile("(?s)```.*?```")
	inlineCode    = regexp.MustCompile("`[^`]*`")
	headerMarks   = regexp.MustCompile(`#{1,6}\s`)
	emphasisMarks = regexp.MustCompile("[*_~`]")
	linkSyntax    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	imageSyntax   = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
)

// PostStats holds derived reading statistics for a piece of content.
type PostStats struct {
	WordCount          int    `json:"word_count"`
	ReadingTime        string `json:"reading_time"`
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
}

// Stats computes word count and reading time for content of either kind.
// Markdown punctuation is stripped first so fences and link targets do not
// inflate the word count.
func Stats(content string) PostStats {
	text := PlainText(content)
	text = imageSyntax.ReplaceAllString(text, "")
	text = codeFences.ReplaceAllString(text, "")
	text = inlineCode.ReplaceAllString(text, "")
	text = headerMarks.ReplaceAllString(text, "")
	text = emphasisMarks.ReplaceAllString(text, "")
	text = linkSyntax.ReplaceAllString(text, "$1")
	text = strings.TrimSpace(text)

	words := len(strings.Fields(text))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if words > 0 && minutes < 1 {
		minutes = 1
	}

	return PostStats{
		WordCount:          words,
		ReadingTime:        FormatReadingTime(minutes),
		ReadingTimeMinutes: minutes,
	}
}

// FormatReadingTime renders minutes as a human-readable label.
func FormatReadingTime(minutes int) string {
	switch {
	case minutes < 1:
		return "< 1 min read"
	case minutes == 1:
		return "1 min read"
	default:
		return fmt.Sprintf("%d min read", minutes)
	}
}

// Excerpt derives a short preview from content: the first maxLen runes of
// the extracted plain text, cut at a word boundary when one exists.
func Excerpt(content string, maxLen int) string {
	text := strings.TrimSpace(PlainText(content))
	text = strings.ReplaceAll(text, "\n", " ")

	// Find the byte offset of rune maxLen so the cut never splits a
	// multibyte character.
	cutAt := len(text)
	runes := 0
	for i := range text {
		if runes == maxLen {
			cutAt = i
			break
		}
		runes++
	}
	if cutAt == len(text) {
		return text
	}

	cut := text[:cutAt]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
