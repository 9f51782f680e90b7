// Package generator drafts new article records from trending keywords with
// the Gemini API. Drafts come back with the known-but-unreliable field set
// of any upstream generator; the dedup/normalize pipeline is what makes
// them store-worthy.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jamsa/articlegen/internal/article"
	"github.com/jamsa/articlegen/internal/cache"
	"github.com/jamsa/articlegen/internal/logger"
	"github.com/jamsa/articlegen/internal/ratelimit"
	"github.com/jamsa/articlegen/internal/retry"
	"github.com/jamsa/articlegen/internal/trends"
)

type Generator struct {
	client   *genai.Client
	model    string
	limiter  *ratelimit.Limiter
	used     *cache.KeywordCache
	retryCfg retry.Config
}

func New(ctx context.Context, apiKey, model string, limiter *ratelimit.Limiter, used *cache.KeywordCache, retryCfg retry.Config) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Generator{
		client:   client,
		model:    model,
		limiter:  limiter,
		used:     used,
		retryCfg: retryCfg,
	}, nil
}

func (g *Generator) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

// draft mirrors the JSON object the model is asked to produce.
type draft struct {
	Title               string   `json:"title"`
	Excerpt             string   `json:"excerpt"`
	Content             string   `json:"content"`
	MetaDescription     string   `json:"metaDescription"`
	Keywords            []string `json:"keywords"`
	Tags                []string `json:"tags"`
	Category            string   `json:"category"`
	SubCategory         string   `json:"subCategory"`
	KeyTakeaways        []string `json:"keyTakeaways"`
	SocialMediaHashtags []string `json:"socialMediaHashtags"`
	CallToActionText    string   `json:"callToActionText"`
	StructuredData      string   `json:"structuredData"`
}

// DraftFromTrends drafts up to count articles, skipping keywords already
// used and stopping when the request budget runs out. Failed drafts are
// logged and skipped; generation is best-effort.
func (g *Generator) DraftFromTrends(ctx context.Context, keywords []trends.Keyword, count int) []article.Article {
	var drafts []article.Article

	for _, kw := range keywords {
		if len(drafts) >= count {
			break
		}
		if g.used.Seen(kw.Term) {
			logger.Debug("keyword already used, skipping", "keyword", kw.Term)
			continue
		}
		if !g.limiter.Allow() {
			break
		}

		var a *article.Article
		err := retry.WithRetry(ctx, g.retryCfg, func() error {
			var draftErr error
			a, draftErr = g.Draft(ctx, kw)
			return draftErr
		})
		if err != nil {
			logger.Error("draft failed", "keyword", kw.Term, "error", err)
			continue
		}

		g.used.Mark(kw.Term, a.Title)
		drafts = append(drafts, *a)
		logger.Info("drafted article", "keyword", kw.Term, "title", a.Title)
	}

	return drafts
}

// Draft generates one article for the keyword. Spends one request from the
// budget even when parsing fails, since the API call already happened.
func (g *Generator) Draft(ctx context.Context, kw trends.Keyword) (*article.Article, error) {
	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"

	prompt := buildPrompt(kw)
	g.limiter.Record()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	raw := responseText(resp)
	if raw == "" {
		return nil, fmt.Errorf("empty response from model for %q", kw.Term)
	}

	var d draft
	if err := json.Unmarshal([]byte(stripFences(raw)), &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft for %q: %w", kw.Term, err)
	}
	if d.Title == "" || d.Content == "" {
		return nil, fmt.Errorf("draft for %q is missing title or content", kw.Term)
	}

	now := time.Now().UTC().Format("2006-01-02T15:04:05Z")
	a := &article.Article{
		Title:               d.Title,
		Slug:                article.Slugify(d.Title),
		Content:             d.Content,
		Excerpt:             d.Excerpt,
		MetaDescription:     d.MetaDescription,
		Keywords:            article.StringList(d.Keywords),
		Tags:                article.StringList(d.Tags),
		Category:            d.Category,
		SubCategory:         d.SubCategory,
		KeyTakeaways:        d.KeyTakeaways,
		SocialMediaHashtags: d.SocialMediaHashtags,
		CallToActionText:    d.CallToActionText,
		StructuredData:      d.StructuredData,
		SourceKeyword:       strings.ToLower(kw.Term),
		DatePublished:       now,
		DateModified:        now,
	}
	return a, nil
}

func buildPrompt(kw trends.Keyword) string {
	traffic := kw.Traffic
	if traffic == "" {
		traffic = "unknown"
	}
	return fmt.Sprintf(`Generate a comprehensive news article based on the keyword %q from the region %q. This keyword is trending with %s searches.
The article should be informative, engaging, and suitable for a news website.
The content should be substantial, aiming for a minimum of 800-1000 words, covering the topic in depth with insights and analysis relevant to readers in %s.

Also provide:
- a concise list of 3-5 keyTakeaways,
- 3-5 socialMediaHashtags for sharing,
- a callToActionText encouraging further engagement,
- a valid JSON-LD structuredData string for a NewsArticle schema.

Respond with a single JSON object with exactly these keys:
title, excerpt, content, metaDescription, keywords, tags, category, subCategory, keyTakeaways, socialMediaHashtags, callToActionText, structuredData.`,
		kw.Term, kw.Region, traffic, kw.Region)
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// stripFences removes a markdown code fence the model sometimes wraps
// around the JSON despite the response MIME type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
