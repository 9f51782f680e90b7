package dedup

import (
	"strings"
	"testing"

	"github.com/jamsa/articlegen/internal/article"
)

func TestScoreRewardsCompleteness(t *testing.T) {
	rich := article.Article{
		ID:            "1",
		Title:         "t",
		Slug:          "t",
		Content:       strings.Repeat("x", 1200),
		Excerpt:       "e",
		Category:      "News",
		Tags:          []string{"a"},
		DatePublished: "2025-08-01T00:00:00Z",
		Author:        "a",
	}
	poor := article.Article{
		ID:      "1",
		Title:   "t",
		Content: strings.Repeat("x", 1200),
	}
	if Score(&rich) <= Score(&poor) {
		t.Errorf("rich record should outscore poor: %v vs %v", Score(&rich), Score(&poor))
	}
}

func TestScoreContentCap(t *testing.T) {
	a := article.Article{Content: strings.Repeat("x", 5000)}
	b := article.Article{Content: strings.Repeat("x", 50000)}
	if Score(&a) != Score(&b) {
		t.Errorf("content bonus should cap at 50: %v vs %v", Score(&a), Score(&b))
	}
}

func TestScorePenalties(t *testing.T) {
	full := article.Article{ID: "1", Slug: "s"}
	noSlug := article.Article{ID: "1"}
	noID := article.Article{Slug: "s"}
	if Score(&full)-Score(&noSlug) != 20 {
		t.Errorf("missing slug penalty = %v, want 20", Score(&full)-Score(&noSlug))
	}
	if Score(&full)-Score(&noID) != 15 {
		t.Errorf("missing id penalty = %v, want 15", Score(&full)-Score(&noID))
	}
}

func TestFindGroupsByEachKey(t *testing.T) {
	articles := []article.Article{
		{ID: "7", Title: "A", Slug: "a", Content: "alpha"},
		{ID: "7", Title: "B", Slug: "b", Content: "beta"},
		{ID: "8", Title: "same title", Slug: "c", Content: "gamma"},
		{ID: "9", Title: "Same Title", Slug: "d", Content: "delta"},
		{ID: "10", Title: "E", Slug: "shared", Content: "epsilon"},
		{ID: "11", Title: "F", Slug: "shared", Content: "zeta"},
		{ID: "12", Title: "G", Slug: "g", Content: "The very same opening paragraph."},
		{ID: "13", Title: "H", Slug: "h", Content: "the very same opening paragraph."},
	}
	groups := FindGroups(articles)
	if len(groups) != 4 {
		t.Fatalf("groups = %d, want 4: %+v", len(groups), groups)
	}
	wantKinds := []string{"ID", "Title", "Slug", "Content"}
	for i, g := range groups {
		if g.Kind != wantKinds[i] {
			t.Errorf("group %d kind = %s, want %s", i, g.Kind, wantKinds[i])
		}
		if len(g.Indices) != 2 {
			t.Errorf("group %d members = %d, want 2", i, len(g.Indices))
		}
	}
}

// A record already claimed by a higher-priority key must not pull a second
// group's members in under a lower-priority key.
func TestFindGroupsClaimOnce(t *testing.T) {
	articles := []article.Article{
		{ID: "1", Title: "Shared Headline", Slug: "a"},
		{ID: "1", Title: "Shared Headline", Slug: "b"},
		{ID: "2", Title: "Shared Headline", Slug: "c"},
	}
	groups := FindGroups(articles)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1: %+v", len(groups), groups)
	}
	if groups[0].Kind != "ID" {
		t.Errorf("kind = %s, want ID", groups[0].Kind)
	}
	// Index 2 shares a title with claimed indices 0 and 1; the title group is
	// skipped entirely so record 2 survives untouched.
	res := Deduplicate(articles, groups)
	if len(res.Articles) != 2 {
		t.Fatalf("survivors = %d, want 2", len(res.Articles))
	}
	if res.Articles[1].ID != "2" {
		t.Errorf("record with distinct id should survive, got %+v", res.Articles[1])
	}
}

func TestFindGroupsIgnoresEmptyKeys(t *testing.T) {
	articles := []article.Article{
		{Title: "A", Content: "one"},
		{Title: "B", Content: "two"},
		{Title: "C", Content: "three"},
	}
	if groups := FindGroups(articles); len(groups) != 0 {
		t.Errorf("empty ids/slugs must not group: %+v", groups)
	}
}

func TestDeduplicateKeepsBestRecord(t *testing.T) {
	articles := []article.Article{
		{
			ID:       "42",
			Title:    "Quantum Leap",
			Slug:     "quantum-leap",
			Content:  strings.Repeat("a", 1200),
			Excerpt:  "A fine excerpt.",
			Category: "Technology",
		},
		{ID: "7", Title: "Unrelated One", Slug: "unrelated-one", Content: "body one"},
		{ID: "42", Title: "Quantum Leap Again", Content: strings.Repeat("b", 400)},
		{ID: "8", Title: "Unrelated Two", Slug: "unrelated-two", Content: "body two"},
		{ID: "9", Title: "Unrelated Three", Slug: "unrelated-three", Content: "body three"},
	}
	groups := FindGroups(articles)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	res := Deduplicate(articles, groups)
	if res.Removed != 1 {
		t.Errorf("removed = %d, want 1", res.Removed)
	}
	if len(res.Articles) != 4 {
		t.Fatalf("survivors = %d, want 4", len(res.Articles))
	}
	if res.Articles[0].Title != "Quantum Leap" {
		t.Errorf("survivor of id group = %q, want the richer record", res.Articles[0].Title)
	}
	// Survivors keep original relative order.
	wantOrder := []string{"42", "7", "8", "9"}
	for i, want := range wantOrder {
		if res.Articles[i].ID.String() != want {
			t.Errorf("order[%d] = %s, want %s", i, res.Articles[i].ID, want)
		}
	}
}

func TestDeduplicateTieKeepsFirst(t *testing.T) {
	articles := []article.Article{
		{ID: "1", Title: "First Copy", Slug: "a", Content: "same length"},
		{ID: "1", Title: "Second Copy", Slug: "b", Content: "same length"},
	}
	res := Deduplicate(articles, FindGroups(articles))
	if len(res.Articles) != 1 || res.Articles[0].Title != "First Copy" {
		t.Errorf("tie must keep first occurrence, got %+v", res.Articles)
	}
}

func TestDeduplicateBackfillsSlugs(t *testing.T) {
	articles := []article.Article{
		{ID: "1", Title: "Hello, World! 2025", Content: "x"},
		{ID: "2", Title: "Another Piece", Slug: "another-piece", Content: "y"},
	}
	res := Deduplicate(articles, nil)
	if res.SlugsBackfilled != 1 {
		t.Errorf("slugsBackfilled = %d, want 1", res.SlugsBackfilled)
	}
	if res.Articles[0].Slug != "hello-world-2025" {
		t.Errorf("slug = %q, want %q", res.Articles[0].Slug, "hello-world-2025")
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	articles := []article.Article{
		{ID: "42", Title: "Dup", Slug: "dup", Content: strings.Repeat("a", 600)},
		{ID: "42", Title: "Dup B", Slug: "dup-b", Content: strings.Repeat("b", 100)},
		{ID: "2", Title: "Keep", Slug: "keep", Content: "body"},
	}
	first := Deduplicate(articles, FindGroups(articles))

	again := FindGroups(first.Articles)
	if len(again) != 0 {
		t.Fatalf("second pass found groups: %+v", again)
	}
	second := Deduplicate(first.Articles, again)
	if second.Removed != 0 || second.SlugsBackfilled != 0 {
		t.Errorf("second pass changed data: removed=%d backfilled=%d", second.Removed, second.SlugsBackfilled)
	}
	if len(second.Articles) != len(first.Articles) {
		t.Errorf("second pass length %d, want %d", len(second.Articles), len(first.Articles))
	}
}
