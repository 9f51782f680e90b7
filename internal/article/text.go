package article

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	slugStrip    = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
)

// Slugify derives a URL-friendly slug from a title: lowercase, punctuation
// stripped, runs of whitespace/underscores/hyphens collapsed to a single
// hyphen, no leading or trailing hyphen. Deterministic: the same title
// always yields the same slug.
func Slugify(title string) string {
	if title == "" {
		return ""
	}
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "")
	slug = slugCollapse.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// StripHTML returns the visible text of an HTML fragment. Content in the
// store is an HTML/Markdown mix; plain text passes through unchanged.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// Words counts whitespace-separated tokens of the HTML-stripped content.
func Words(content string) int {
	return len(strings.Fields(StripHTML(content)))
}

// ReadingTime estimates reading minutes at 200 words per minute, minimum 1.
func ReadingTime(wordCount int) int {
	minutes := int(math.Round(float64(wordCount) / 200))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// TitleKey is the case-insensitive duplicate-detection key for titles.
func TitleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// ContentKey is the duplicate-detection key for article bodies: the first
// 200 characters of the trimmed content, lowercased. Deliberately a weak
// prefix heuristic, not a similarity metric.
func ContentKey(content string) string {
	c := strings.TrimSpace(content)
	if c == "" {
		return ""
	}
	if utf8.RuneCountInString(c) > 200 {
		c = string([]rune(c)[:200])
	}
	return strings.ToLower(c)
}
