package richtext

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestStatsPlainText(t *testing.T) {
	stats := Stats("one two three four five")
	assert.Equal(t, 5, stats.WordCount)
	assert.Equal(t, 1, stats.ReadingTimeMinutes)
	assert.Equal(t, "1 min read", stats.ReadingTime)
}

func TestStatsEmptyContent(t *testing.T) {
	stats := Stats("")
	assert.Equal(t, 0, stats.WordCount)
	assert.Equal(t, 0, stats.ReadingTimeMinutes)
	assert.Equal(t, "< 1 min read", stats.ReadingTime)
}

func TestStatsStripsMarkdown(t *testing.T) {
	content := "# Heading\n\nSome *emphasized* text with [a link](https://example.com) " +
		"and an image ![alt](https://example.com/x.png).\n\n```\ncode block ignored entirely\n```\n\n" +
		"And `inline code` too."
	stats := Stats(content)
	// heading(1) + some emphasized text with a link and an image(10) + and too(2)
	assert.Equal(t, 13, stats.WordCount)
}

func TestStatsLongContentRoundsUp(t *testing.T) {
	// 201 words should round up to 2 minutes at 200 wpm.
	stats := Stats(strings.TrimSpace(strings.Repeat("word ", 201)))
	assert.Equal(t, 201, stats.WordCount)
	assert.Equal(t, 2, stats.ReadingTimeMinutes)
	assert.Equal(t, "2 min read", stats.ReadingTime)
}

func TestStatsOnDocumentTree(t *testing.T) {
	stats := Stats(FromPlainText("one two three"))
	assert.Equal(t, 3, stats.WordCount)
	assert.Equal(t, 1, stats.ReadingTimeMinutes)
}

func TestFormatReadingTime(t *testing.T) {
	assert.Equal(t, "< 1 min read", FormatReadingTime(0))
	assert.Equal(t, "1 min read", FormatReadingTime(1))
	assert.Equal(t, "7 min read", FormatReadingTime(7))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short text", Excerpt("short text", 160))

	long := strings.TrimSpace(strings.Repeat("lorem ipsum ", 40))
	got := Excerpt(long, 50)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len(got), 50+len("…"))
	// cut lands on a word boundary, never mid-word
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, "…"), "lore"))
}

func TestExcerptFlattensNewlines(t *testing.T) {
	assert.Equal(t, "line one line two", Excerpt("line one\nline two", 160))
}

func TestExcerptFromDocumentTree(t *testing.T) {
	doc := FromPlainText("First paragraph.\n\nSecond paragraph.")
	assert.Equal(t, "First paragraph. Second paragraph.", Excerpt(doc, 160))
}

func TestExcerptCutsOnRuneBoundary(t *testing.T) {
	// spaceless multibyte content has no word boundary to rescue the cut
	got := Excerpt(strings.Repeat("日", 100), 60)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, 60+1, utf8.RuneCountInString(got))
}

func TestExcerptCountsRunesNotBytes(t *testing.T) {
	// 10 runes, 30 bytes: no truncation at a 10-rune budget
	text := strings.Repeat("語", 10)
	assert.Equal(t, text, Excerpt(text, 10))
}
