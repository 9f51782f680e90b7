package dedup

import (
	"unicode/utf8"

	"github.com/jamsa/articlegen/internal/article"
)

// Score ranks an article inside a duplicate group. Higher means more
// complete and therefore the better record to keep. The value is relative
// only; it can be negative and is never reported as an absolute quality
// measure. Total: missing fields contribute nothing or a penalty, never
// an error.
func Score(a *article.Article) float64 {
	var score float64

	// Longer content is better, capped so very long drafts don't dominate.
	score += min(float64(utf8.RuneCountInString(a.Content))/100, 50)

	if a.Title != "" {
		score += 10
	}
	if a.Excerpt != "" {
		score += 5
	}
	if a.Category != "" {
		score += 5
	}
	if len(a.Tags) > 0 {
		score += 3
	}
	if a.DatePublished != "" {
		score += 3
	}
	if a.Author != "" {
		score += 2
	}
	if a.OGImage != "" {
		score += 2
	}
	if a.ThumbnailImageURL != "" {
		score += 2
	}
	if a.MetaDescription != "" {
		score += 2
	}

	// A record without slug or id cannot be safely linked downstream, so
	// these outweigh any single bonus.
	if a.Slug == "" {
		score -= 20
	}
	if a.ID == "" {
		score -= 15
	}

	return score
}
