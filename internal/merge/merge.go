// Package merge folds records from the retired legacy article store into
// the current enriched schema. One-directional and additive: current
// records are never touched, every legacy record gets a fresh id and the
// enrichment fields the legacy generator never produced.
package merge

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jamsa/articlegen/internal/article"
	"github.com/jamsa/articlegen/internal/logger"
)

// Publisher identifies the site in synthesized bylines and structured data.
type Publisher struct {
	Name    string `yaml:"name"`
	SiteURL string `yaml:"siteUrl"`
	LogoURL string `yaml:"logoUrl"`
	// CallToAction closes every migrated article.
	CallToAction string `yaml:"callToAction"`
}

// DefaultPublisher matches the production site.
func DefaultPublisher() Publisher {
	return Publisher{
		Name:         "JAMSA - Country's News",
		SiteURL:      "https://countrysnews.com",
		LogoURL:      "https://countrysnews.com/logo.png",
		CallToAction: "Stay informed with the latest news and updates. Subscribe to our newsletter for more exclusive content!",
	}
}

var (
	markdownHeader = regexp.MustCompile(`#{1,3}\s+(.+)`)
	nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)
	whitespace     = regexp.MustCompile(`\s+`)
	wordPattern    = regexp.MustCompile(`\b\w+\b`)
)

// Merge appends the legacy records to the current collection. Each legacy
// record is assigned an id strictly greater than the numeric maximum of the
// current ids (sequential, never reused), gets the canonical publisher
// byline, and has the current schema's enrichment fields synthesized from
// what the legacy record already carries.
func Merge(current, legacy []article.Article, pub Publisher) []article.Article {
	maxID := 0
	for i := range current {
		if n, ok := current[i].ID.Int(); ok && n > maxID {
			maxID = n
		}
	}
	logger.Info("merging legacy articles", "current", len(current), "legacy", len(legacy), "maxId", maxID)

	merged := make([]article.Article, len(current), len(current)+len(legacy))
	copy(merged, current)

	for _, a := range legacy {
		maxID++
		a.ID = article.FlexString(strconv.Itoa(maxID))
		a.Author = pub.Name
		a.KeyTakeaways = keyTakeaways(&a)
		a.SocialMediaHashtags = hashtags(a.Tags)
		a.CallToActionText = pub.CallToAction
		a.StructuredData = structuredData(&a, pub)
		a.SourceKeyword = sourceKeyword(&a)

		merged = append(merged, a)
		logger.Info("migrated legacy article", "id", a.ID, "title", a.Title)
	}
	return merged
}

// keyTakeaways builds takeaways from the excerpt and any markdown headers
// in the body, padded with generic ones up to three, capped at five.
func keyTakeaways(a *article.Article) []string {
	var takeaways []string
	if a.Excerpt != "" {
		takeaways = append(takeaways, a.Excerpt)
	}

	if a.Content != "" {
		headers := markdownHeader.FindAllStringSubmatch(a.Content, 3)
		for _, h := range headers {
			takeaways = append(takeaways, strings.TrimSpace(h[1]))
		}
	}

	if len(takeaways) < 3 {
		category := a.Category
		if category == "" {
			category = "news"
		}
		subCategory := a.SubCategory
		if subCategory == "" {
			subCategory = "current events"
		}
		takeaways = append(takeaways,
			fmt.Sprintf("This article covers %s updates and analysis.", category),
			fmt.Sprintf("Key insights into %s are discussed.", subCategory),
			fmt.Sprintf("Stay informed about the latest developments in %s.", category),
		)
	}

	if len(takeaways) > 5 {
		takeaways = takeaways[:5]
	}
	return takeaways
}

// hashtags turns the first five tags into share-ready hashtags, stripping
// anything that is not a word character. Only untagged records get the
// generic defaults; tags that all clean away yield an empty list.
func hashtags(tags []string) []string {
	if len(tags) == 0 {
		return []string{"#News", "#Update"}
	}

	var out []string
	for _, tag := range tags[:min(5, len(tags))] {
		clean := nonWordOrSpace.ReplaceAllString(tag, "")
		clean = whitespace.ReplaceAllString(clean, "")
		if clean != "" {
			out = append(out, "#"+clean)
		}
	}
	return out
}

// sourceKeyword guesses the keyword that spawned the article: first tag,
// else the first word of the title, else "news".
func sourceKeyword(a *article.Article) string {
	if len(a.Tags) > 0 {
		return strings.ToLower(a.Tags[0])
	}
	words := wordPattern.FindAllString(strings.ToLower(a.Title), 1)
	if len(words) > 0 {
		return words[0]
	}
	return "news"
}

// structuredData renders a schema.org NewsArticle JSON-LD string for the
// migrated record.
func structuredData(a *article.Article, pub Publisher) string {
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "NewsArticle",
		"headline":      a.Title,
		"image":         []string{a.OGImage},
		"datePublished": structuredDate(a),
		"dateModified":  structuredDate(a),
		"author": []map[string]string{{
			"@type": "Person",
			"name":  pub.Name,
		}},
		"publisher": map[string]interface{}{
			"@type": "Organization",
			"name":  pub.Name,
			"logo": map[string]string{
				"@type": "ImageObject",
				"url":   pub.LogoURL,
			},
		},
		"description": a.MetaDescription,
		"keywords":    []string(a.Keywords),
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   a.CanonicalURL,
		},
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		// Only unmarshalable values reach here; the map above never does.
		return ""
	}
	return string(out)
}

// structuredDate picks the best date the legacy record has: the legacy
// publishDate (a bare day, so noon UTC is appended), the current-schema
// datePublished, or today.
func structuredDate(a *article.Article) string {
	if a.PublishDate != "" {
		return a.PublishDate + "T12:00:00+00:00"
	}
	if a.DatePublished != "" {
		return a.DatePublished
	}
	return time.Now().UTC().Format("2006-01-02") + "T12:00:00+00:00"
}
