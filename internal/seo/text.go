package seo

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"
)

const (
	// descriptionLimit caps auto-generated descriptions.
	descriptionLimit = 160

	// wordsPerMinute drives the reading time estimate.
	wordsPerMinute = 200
)

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(script|style)>`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	spaceRe       = regexp.MustCompile(`\s+`)
	h1Re          = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
)

// StripTags reduces an HTML body to whitespace-collapsed plain text.
// Script and style payloads are dropped entirely, not just untagged.
func StripTags(body string) string {
	text := scriptBlockRe.ReplaceAllString(body, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// firstHeading extracts the text of the first h1 element, if any.
func firstHeading(body string) string {
	m := h1Re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return StripTags(m[1])
}

// countWords counts whitespace-separated words in plain text.
func countWords(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Fields(text))
}

// readingTime formats the estimated reading time, or returns "" for an
// empty body.
func readingTime(wordCount int) string {
	if wordCount <= 0 {
		return ""
	}
	minutes := int(math.Ceil(float64(wordCount) / wordsPerMinute))
	return fmt.Sprintf("%d min read", minutes)
}

// TruncateDescription shortens text to at most limit characters, preferring
// a sentence end when it falls past 60% of the limit, then a word boundary
// past 80%, then a hard cut. Sentence cuts keep the terminator and take no
// ellipsis; the other two append "...".
func TruncateDescription(text string, limit int) string {
	if limit <= 0 {
		limit = descriptionLimit
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	cut := runes[:limit]

	if idx := lastSentenceEnd(cut); idx >= 0 && idx+1 > limit*60/100 {
		return string(cut[:idx+1])
	}
	if idx := lastIndexRune(cut, ' '); idx > limit*80/100 {
		return string(cut[:idx]) + "..."
	}
	return string(cut) + "..."
}

// TruncateTitle shortens a title to at most limit characters plus an
// ellipsis, cutting at the last word boundary when it falls past 80% of the
// limit. Titles within the limit pass through unchanged.
func TruncateTitle(title string, limit int) string {
	runes := []rune(title)
	if len(runes) <= limit {
		return title
	}
	cut := runes[:limit]
	if idx := lastIndexRune(cut, ' '); idx >= limit*80/100 {
		return string(cut[:idx]) + "..."
	}
	return string(cut) + "..."
}

func lastSentenceEnd(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		switch runes[i] {
		case '.', '!', '?':
			return i
		}
	}
	return -1
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// autoDescription derives a description from the document body when no
// front matter source yields one.
func autoDescription(body string) string {
	text := StripTags(body)
	if text == "" {
		return ""
	}
	return TruncateDescription(text, descriptionLimit)
}
