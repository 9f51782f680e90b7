// Package trends pulls trending search keywords from Google-Trends-style
// RSS feeds. The feed list is YAML config, one URL per region.
package trends

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/jamsa/articlegen/internal/logger"
)

// Keyword is one trending search term.
type Keyword struct {
	Term    string
	Traffic string // approximate search volume as reported by the feed, e.g. "200,000+"
	Region  string
}

// FeedsConfig is the YAML config structure:
//
// feeds:
//   - region: IN
//     url: https://trends.google.com/trending/rss?geo=IN
type FeedsConfig struct {
	Feeds []FeedSource `yaml:"feeds"`
}

type FeedSource struct {
	Region string `yaml:"region"`
	URL    string `yaml:"url"`
}

// LoadFeeds reads the trend feed list from a YAML file.
func LoadFeeds(path string) ([]FeedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// Fetch downloads and parses all trend feeds, returning de-duplicated
// keywords in feed order. A feed that fails to parse is logged and skipped;
// the rest still contribute.
func Fetch(ctx context.Context, sources []FeedSource, timeout time.Duration) []Keyword {
	parser := gofeed.NewParser()

	seen := make(map[string]struct{})
	var keywords []Keyword
	successCount := 0

	for _, src := range sources {
		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		feed, err := parser.ParseURLWithContext(src.URL, fetchCtx)
		cancel()
		if err != nil {
			logger.Warn("error parsing trend feed", "url", src.URL, "error", err)
			continue
		}
		successCount++

		for _, item := range feed.Items {
			term := strings.TrimSpace(item.Title)
			if term == "" {
				continue
			}
			key := strings.ToLower(term)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			keywords = append(keywords, Keyword{
				Term:    term,
				Traffic: approxTraffic(item),
				Region:  src.Region,
			})
		}
		logger.Info("loaded trending keywords", "count", len(feed.Items), "region", src.Region)
	}

	logger.Info("processed trend feeds", "ok", successCount, "total", len(sources), "keywords", len(keywords))
	return keywords
}

// approxTraffic digs the ht:approx_traffic extension out of a Google Trends
// RSS item; empty when the feed doesn't report it.
func approxTraffic(item *gofeed.Item) string {
	ns, ok := item.Extensions["ht"]
	if !ok {
		return ""
	}
	exts, ok := ns["approx_traffic"]
	if !ok || len(exts) == 0 {
		return ""
	}
	return strings.TrimSpace(exts[0].Value)
}
