package editor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// WordsPerMinute is the reading speed used for estimates.
const WordsPerMinute = 200

// ReadingTime estimates minutes to read an HTML fragment. Any text at all
// counts as at least one minute.
func ReadingTime(html string) int {
	if strings.TrimSpace(html) == "" {
		return 0
	}
	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		text = doc.Text()
	}
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
