// Package article defines the article record stored in the site's JSON
// article store. Records come from several generators that ran over time
// with slightly different schemas, so every field is optional at the
// storage layer; an empty value means "missing".
package article

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Article is one record of the article store. Field names match the
// camelCase keys used in perplexityArticles.json.
type Article struct {
	ID       FlexString `json:"id,omitempty"`
	Title    string     `json:"title,omitempty"`
	Slug     string     `json:"slug,omitempty"`
	Content  string     `json:"content,omitempty"`
	Category string     `json:"category,omitempty"`

	SubCategory     string     `json:"subCategory,omitempty"`
	Excerpt         string     `json:"excerpt,omitempty"`
	Author          string     `json:"author,omitempty"`
	DatePublished   string     `json:"datePublished,omitempty"`
	DateModified    string     `json:"dateModified,omitempty"`
	PublishDate     string     `json:"publishDate,omitempty"` // legacy schema date
	MetaDescription string     `json:"metaDescription,omitempty"`
	Tags            StringList `json:"tags,omitempty"`
	Keywords        StringList `json:"keywords,omitempty"`

	WordCount          int `json:"wordCount,omitempty"`
	ReadingTimeMinutes int `json:"readingTimeMinutes,omitempty"`

	OGImage           string `json:"ogImage,omitempty"`
	ThumbnailImageURL string `json:"thumbnailImageUrl,omitempty"`
	CanonicalURL      string `json:"canonicalUrl,omitempty"`

	// Enrichment fields of the current schema; absent on legacy records.
	SourceKeyword       string   `json:"sourceKeyword,omitempty"`
	KeyTakeaways        []string `json:"keyTakeaways,omitempty"`
	SocialMediaHashtags []string `json:"socialMediaHashtags,omitempty"`
	StructuredData      string   `json:"structuredData,omitempty"`
	CallToActionText    string   `json:"callToActionText,omitempty"`
}

// FlexString is a string that also accepts a JSON number on input. Older
// generators wrote numeric ids.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// Int returns the numeric value of the id, or ok=false for non-numeric ids.
func (f FlexString) Int() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(f)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// StringList is a []string that also accepts a single comma-separated
// JSON string on input ("a, b, c" -> ["a","b","c"]).
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*l = nil
		return nil
	}
	if len(s) > 0 && s[0] == '[' {
		var v []string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*l = v
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*l = out
	return nil
}
