package merge

import (
	"strings"
	"testing"

	"github.com/jamsa/articlegen/internal/article"
)

func TestMergeAssignsSequentialIDs(t *testing.T) {
	current := []article.Article{
		{ID: "5", Title: "A"},
		{ID: "abc", Title: "B"}, // non-numeric, ignored for the max
		{ID: "12", Title: "C"},
	}
	legacy := []article.Article{
		{Title: "Legacy One", Content: "Body one."},
		{Title: "Legacy Two", Content: "Body two."},
	}

	merged := Merge(current, legacy, DefaultPublisher())
	if len(merged) != 5 {
		t.Fatalf("merged = %d records, want 5", len(merged))
	}
	if merged[3].ID != "13" || merged[4].ID != "14" {
		t.Errorf("legacy ids = %s, %s, want 13, 14", merged[3].ID, merged[4].ID)
	}
	// Current records pass through untouched.
	if merged[0].ID != "5" || merged[2].ID != "12" {
		t.Errorf("current records changed: %+v", merged[:3])
	}
}

func TestMergeForcesPublisherByline(t *testing.T) {
	pub := DefaultPublisher()
	legacy := []article.Article{{Title: "L", Author: "Someone Else"}}
	merged := Merge(nil, legacy, pub)
	if merged[0].Author != pub.Name {
		t.Errorf("author = %q, want %q", merged[0].Author, pub.Name)
	}
	if merged[0].CallToActionText != pub.CallToAction {
		t.Errorf("callToActionText not set")
	}
}

func TestKeyTakeawaysFromExcerptAndHeaders(t *testing.T) {
	a := article.Article{
		Excerpt: "The summary sentence.",
		Content: "Intro.\n## First Header\ntext\n### Second Header\nmore\n# Third Header\nend\n## Fourth Header\n",
	}
	got := keyTakeaways(&a)
	if len(got) != 4 {
		t.Fatalf("takeaways = %d, want 4: %v", len(got), got)
	}
	if got[0] != "The summary sentence." {
		t.Errorf("first takeaway = %q, want the excerpt", got[0])
	}
	if got[1] != "First Header" || got[2] != "Second Header" || got[3] != "Third Header" {
		t.Errorf("headers = %v", got[1:])
	}
}

func TestKeyTakeawaysPaddedWithGeneric(t *testing.T) {
	a := article.Article{Category: "Sports", SubCategory: "Football"}
	got := keyTakeaways(&a)
	if len(got) != 3 {
		t.Fatalf("takeaways = %d, want 3: %v", len(got), got)
	}
	if !strings.Contains(got[0], "Sports") || !strings.Contains(got[1], "Football") {
		t.Errorf("generic takeaways should mention category and subcategory: %v", got)
	}
}

func TestKeyTakeawaysCap(t *testing.T) {
	a := article.Article{
		Excerpt: "One.",
		Content: "## H1\n## H2\n## H3\n## H4\n## H5\n",
	}
	if got := keyTakeaways(&a); len(got) > 5 {
		t.Errorf("takeaways = %d, want at most 5: %v", len(got), got)
	}
}

func TestHashtags(t *testing.T) {
	// Only the first five tags are considered; empty cleanups drop out.
	got := hashtags([]string{"AI News!", "Tech", "", "machine learning", "one", "two", "three"})
	want := []string{"#AINews", "#Tech", "#machinelearning", "#one"}
	if len(got) != len(want) {
		t.Fatalf("hashtags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hashtags[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHashtagsDefault(t *testing.T) {
	got := hashtags(nil)
	if len(got) != 2 || got[0] != "#News" || got[1] != "#Update" {
		t.Errorf("default hashtags = %v", got)
	}
}

func TestHashtagsAllUncleanYieldsNone(t *testing.T) {
	if got := hashtags([]string{"!!!", "???", "  "}); len(got) != 0 {
		t.Errorf("punctuation-only tags should yield no hashtags, got %v", got)
	}
}

func TestSourceKeyword(t *testing.T) {
	cases := []struct {
		a    article.Article
		want string
	}{
		{article.Article{Tags: []string{"Cricket World Cup"}}, "cricket world cup"},
		{article.Article{Title: "Breaking: markets rally"}, "breaking"},
		{article.Article{}, "news"},
	}
	for _, c := range cases {
		if got := sourceKeyword(&c.a); got != c.want {
			t.Errorf("sourceKeyword(%+v) = %q, want %q", c.a, got, c.want)
		}
	}
}

func TestStructuredData(t *testing.T) {
	pub := DefaultPublisher()
	a := article.Article{
		Title:       "Headline Here",
		PublishDate: "2024-03-01",
	}
	data := structuredData(&a, pub)
	for _, want := range []string{
		`"@type": "NewsArticle"`,
		`"headline": "Headline Here"`,
		`"2024-03-01T12:00:00+00:00"`,
		pub.Name,
	} {
		if !strings.Contains(data, want) {
			t.Errorf("structuredData missing %q:\n%s", want, data)
		}
	}
}

func TestStructuredDatePreference(t *testing.T) {
	legacy := article.Article{PublishDate: "2024-03-01", DatePublished: "2025-01-01T00:00:00Z"}
	if got := structuredDate(&legacy); got != "2024-03-01T12:00:00+00:00" {
		t.Errorf("structuredDate = %q, legacy publishDate should win", got)
	}
	current := article.Article{DatePublished: "2025-01-01T00:00:00Z"}
	if got := structuredDate(&current); got != "2025-01-01T00:00:00Z" {
		t.Errorf("structuredDate = %q", got)
	}
	empty := article.Article{}
	if got := structuredDate(&empty); !strings.HasSuffix(got, "T12:00:00+00:00") {
		t.Errorf("structuredDate fallback = %q", got)
	}
}
