// Package dedup finds and removes duplicate article records. Articles are
// grouped along four independent keys (id, normalized title, slug, content
// prefix); each group keeps its highest-scoring member and drops the rest.
package dedup

import (
	"strings"
	"unicode/utf8"

	"github.com/jamsa/articlegen/internal/article"
	"github.com/jamsa/articlegen/internal/logger"
)

// Group is a set of record indices considered the same underlying article
// under one matching key.
type Group struct {
	Kind    string // "ID", "Title", "Slug" or "Content"
	Key     string
	Indices []int
}

type keySpec struct {
	kind  string
	keyOf func(*article.Article) string
}

// Keys are checked in priority order: id collisions are the strongest
// duplicate signal (same generator re-run), title/slug collisions catch
// independent regenerations of the same topic, content-prefix collisions
// catch near-identical drafts under different titles.
var keySpecs = []keySpec{
	{"ID", func(a *article.Article) string { return a.ID.String() }},
	{"Title", func(a *article.Article) string { return article.TitleKey(a.Title) }},
	{"Slug", func(a *article.Article) string { return strings.TrimSpace(a.Slug) }},
	{"Content", func(a *article.Article) string { return article.ContentKey(a.Content) }},
}

// FindGroups scans the whole collection and returns duplicate groups,
// merged across keys so that every index lands in at most one group: once
// an index is claimed under a higher-priority key it is not reconsidered
// under a lower one. Read-only; group order is deterministic (key priority,
// then first occurrence).
func FindGroups(articles []article.Article) []Group {
	claimed := make(map[int]bool)
	var groups []Group

	for _, spec := range keySpecs {
		byKey := make(map[string][]int)
		var order []string
		for i := range articles {
			key := spec.keyOf(&articles[i])
			if key == "" {
				continue
			}
			if _, seen := byKey[key]; !seen {
				order = append(order, key)
			}
			byKey[key] = append(byKey[key], i)
		}

		for _, key := range order {
			indices := byKey[key]
			if len(indices) < 2 {
				continue
			}
			if anyClaimed(claimed, indices) {
				continue
			}
			groups = append(groups, Group{Kind: spec.kind, Key: key, Indices: indices})
			for _, idx := range indices {
				claimed[idx] = true
			}
		}
	}

	return groups
}

func anyClaimed(claimed map[int]bool, indices []int) bool {
	for _, idx := range indices {
		if claimed[idx] {
			return true
		}
	}
	return false
}

// Result reports what Deduplicate did.
type Result struct {
	Articles        []article.Article
	Removed         int
	SlugsBackfilled int
}

// Deduplicate keeps exactly one survivor per group: the member with the
// highest quality score, ties broken by original array order (first
// occurrence wins, so runs are reproducible). Survivors keep their original
// relative order and get a slug synthesized from the title when missing.
// Running it again on its own output finds zero groups and changes nothing.
func Deduplicate(articles []article.Article, groups []Group) Result {
	remove := make(map[int]bool)

	for _, g := range groups {
		best := g.Indices[0]
		bestScore := Score(&articles[best])
		for _, idx := range g.Indices[1:] {
			if s := Score(&articles[idx]); s > bestScore {
				best, bestScore = idx, s
			}
		}
		for _, idx := range g.Indices {
			if idx != best {
				remove[idx] = true
			}
		}
		logger.Info("resolved duplicate group",
			"kind", g.Kind,
			"key", truncateKey(g.Key),
			"members", len(g.Indices),
			"kept", best,
			"score", bestScore)
	}

	res := Result{Articles: make([]article.Article, 0, len(articles)-len(remove))}
	for i := range articles {
		if remove[i] {
			res.Removed++
			continue
		}
		a := articles[i]
		if a.Slug == "" && a.Title != "" {
			a.Slug = article.Slugify(a.Title)
			res.SlugsBackfilled++
			logger.Info("generated missing slug", "title", a.Title, "slug", a.Slug)
		}
		res.Articles = append(res.Articles, a)
	}
	return res
}

func truncateKey(key string) string {
	if utf8.RuneCountInString(key) <= 50 {
		return key
	}
	return string([]rune(key)[:50]) + "..."
}
