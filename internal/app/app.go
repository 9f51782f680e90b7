// Package app sequences the article pipeline: backup, optional generation
// and legacy merge, duplicate detection and removal, field repair,
// validation, persistence, and an optional downstream site rebuild. Every
// mutating stage gets its own backup so any stage can be rolled back on its
// own.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jamsa/articlegen/internal/article"
	"github.com/jamsa/articlegen/internal/cache"
	"github.com/jamsa/articlegen/internal/config"
	"github.com/jamsa/articlegen/internal/dedup"
	"github.com/jamsa/articlegen/internal/generator"
	"github.com/jamsa/articlegen/internal/logger"
	"github.com/jamsa/articlegen/internal/merge"
	"github.com/jamsa/articlegen/internal/metrics"
	"github.com/jamsa/articlegen/internal/normalize"
	"github.com/jamsa/articlegen/internal/ratelimit"
	"github.com/jamsa/articlegen/internal/retry"
	"github.com/jamsa/articlegen/internal/storage"
	"github.com/jamsa/articlegen/internal/trends"
	"github.com/jamsa/articlegen/internal/validate"
)

// ErrValidationIssues is returned when post-repair validation still reports
// records with missing required fields; the store is persisted anyway, but
// the process should exit non-zero.
var ErrValidationIssues = errors.New("validation reported missing required fields after repair")

// Options selects which stages a run executes.
type Options struct {
	InputFile             string
	LegacyFile            string // when set, merge this legacy store first
	GenerateCount         int    // when >0, draft this many articles from trends first
	SkipBackup            bool
	SkipEnhance           bool
	SkipSite              bool
	DryRun                bool
	Interactive           bool
	ConsolidateCategories bool
}

type workflow struct {
	cfg   *config.Config
	opts  Options
	store *storage.Store
	in    *bufio.Reader
}

// Run executes the pipeline. The returned error is nil only on full
// success with a clean post-repair validation.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	start := time.Now()
	defer func() {
		metrics.Global.RecordProcessingTime(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	if opts.InputFile == "" {
		opts.InputFile = cfg.ArticlesFile
	}

	w := &workflow{
		cfg:   cfg,
		opts:  opts,
		store: storage.NewStore(opts.InputFile),
		in:    bufio.NewReader(os.Stdin),
	}

	articles, err := w.store.Load()
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	originalCount := len(articles)
	metrics.Global.SetArticlesLoaded(originalCount)
	logger.Info("loaded article store", "file", opts.InputFile, "articles", originalCount)

	if opts.DryRun {
		logger.Info("dry run: no files will be written")
	}

	// Pre-run integrity check, for the before/after comparison.
	validate.Print(validate.Check(articles), len(articles))

	if opts.GenerateCount > 0 {
		articles, err = w.generate(ctx, articles)
		if err != nil {
			metrics.Global.SetError(err.Error())
			return err
		}
	}

	if opts.LegacyFile != "" {
		articles, err = w.mergeLegacy(articles)
		if err != nil {
			metrics.Global.SetError(err.Error())
			return err
		}
	}

	// Duplicate analysis is read-only and always runs.
	groups := dedup.FindGroups(articles)
	logGroupSummary(groups)
	metrics.Global.AddDuplicateGroups(len(groups))

	if opts.DryRun {
		logger.Info("dry run complete", "articles", len(articles), "duplicate_groups", len(groups))
		return nil
	}

	countBeforeDedup := len(articles)
	removed := 0
	if len(groups) == 0 {
		logger.Info("no duplicates found, skipping deduplication")
	} else if w.confirm("Duplicates found. Proceed with deduplication?", false) {
		if err := w.backup("pre_deduplication", articles); err != nil {
			metrics.Global.SetError(err.Error())
			return err
		}
		res := dedup.Deduplicate(articles, groups)
		articles, removed = res.Articles, res.Removed
		metrics.Global.AddDuplicatesRemoved(removed)
		metrics.Global.AddFieldsBackfilled(res.SlugsBackfilled)
		logger.Info("deduplication complete",
			"before", countBeforeDedup,
			"after", len(articles),
			"removed", removed,
			"slugs_backfilled", res.SlugsBackfilled)
		if len(articles) != countBeforeDedup-removed {
			// Anything else means records were silently lost.
			return fmt.Errorf("record count mismatch after dedup: %d -> %d with %d removed",
				countBeforeDedup, len(articles), removed)
		}
	}

	if !opts.SkipEnhance && w.confirm("Proceed with article enhancement?", true) {
		if err := w.backup("pre_enhancement", articles); err != nil {
			metrics.Global.SetError(err.Error())
			return err
		}

		editorial, err := normalize.LoadConfig(w.cfg.EditorialConfigPath)
		if err != nil {
			metrics.Global.SetError(err.Error())
			return err
		}
		normalizer := normalize.New(editorial, w.cfg.Seed)

		var stats normalize.Stats
		articles, stats = normalizer.Normalize(articles)
		metrics.Global.AddFieldsBackfilled(stats.Total())
		logger.Info("enhancement complete",
			"articles", len(articles),
			"fields_backfilled", stats.Total(),
			"dates_added", stats.DatesAdded,
			"titles_shortened", stats.TitlesShortened,
			"authors_added", stats.AuthorsAdded,
			"excerpts_generated", stats.ExcerptsGenerated)

		if opts.ConsolidateCategories {
			var changed int
			articles, changed = normalize.Consolidate(articles, editorial)
			logger.Info("category consolidation complete", "changed", changed)
		}
	}

	reports := validate.Check(articles)
	validate.Print(reports, len(articles))
	metrics.Global.SetValidationIssues(len(reports))

	if err := w.store.Save(articles); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	logger.Info("saved article store", "file", w.store.Path(), "articles", len(articles))

	if !opts.SkipSite {
		w.regenerateSite(ctx)
	}

	logger.Info("workflow complete",
		"original", originalCount,
		"final", len(articles),
		"duplicates_removed", removed)

	if validate.HasHardIssues(reports) {
		return ErrValidationIssues
	}
	return nil
}

// generate drafts new articles from trending keywords and appends them to
// the collection, raw; the downstream stages clean them up like any other
// upstream generator's output.
func (w *workflow) generate(ctx context.Context, articles []article.Article) ([]article.Article, error) {
	sources, err := trends.LoadFeeds(w.cfg.TrendsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load trend feeds: %w", err)
	}
	keywords := trends.Fetch(ctx, sources, w.cfg.RequestTimeout)
	if len(keywords) == 0 {
		logger.Warn("no trending keywords available, skipping generation")
		return articles, nil
	}

	used := cache.NewKeywordCache(w.cfg.UsedKeywordsPath, w.cfg.KeywordTTLHours)
	if err := used.Load(); err != nil {
		return nil, err
	}

	// Dry run reports what would be drafted without spending API quota or
	// marking keywords as used.
	if w.opts.DryRun {
		candidates := 0
		for _, kw := range keywords {
			if candidates >= w.opts.GenerateCount {
				break
			}
			if used.Seen(kw.Term) {
				continue
			}
			logger.Info("dry run: would draft article", "keyword", kw.Term, "traffic", kw.Traffic)
			candidates++
		}
		logger.Info("dry run: generation skipped", "candidates", candidates)
		return articles, nil
	}

	if err := w.cfg.ValidateForGeneration(); err != nil {
		return nil, err
	}

	gen, err := generator.New(ctx, w.cfg.GeminiAPIKey, w.cfg.GeminiModel,
		ratelimit.New(w.cfg.MaxGeminiRequests), used,
		retry.Config{MaxAttempts: w.cfg.RetryAttempts, Delay: w.cfg.RetryDelay, Backoff: true})
	if err != nil {
		return nil, err
	}
	defer gen.Close()

	if err := w.backup("pre_generation", articles); err != nil {
		return nil, err
	}

	drafts := gen.DraftFromTrends(ctx, keywords, w.opts.GenerateCount)
	metrics.Global.AddDraftsGenerated(len(drafts))
	logger.Info("generation complete", "requested", w.opts.GenerateCount, "drafted", len(drafts))

	if err := used.Save(); err != nil {
		logger.Warn("failed to persist used keywords", "error", err)
	}
	return append(articles, drafts...), nil
}

func (w *workflow) mergeLegacy(articles []article.Article) ([]article.Article, error) {
	legacyStore := storage.NewStore(w.opts.LegacyFile)
	legacy, err := legacyStore.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load legacy store: %w", err)
	}
	logger.Info("loaded legacy store", "file", w.opts.LegacyFile, "articles", len(legacy))

	if w.opts.DryRun {
		logger.Info("dry run: would merge legacy articles", "count", len(legacy))
		return articles, nil
	}
	if !w.confirm(fmt.Sprintf("Merge %d legacy articles?", len(legacy)), true) {
		return articles, nil
	}

	if err := w.backup("pre_merge", articles); err != nil {
		return nil, err
	}

	merged := merge.Merge(articles, legacy, merge.DefaultPublisher())
	metrics.Global.AddLegacyMerged(len(legacy))
	logger.Info("legacy merge complete", "before", len(articles), "after", len(merged))
	return merged, nil
}

func (w *workflow) backup(suffix string, articles []article.Article) error {
	if w.opts.SkipBackup || w.opts.DryRun {
		return nil
	}
	path, err := w.store.Backup(suffix, articles)
	if err != nil {
		return err
	}
	logger.Info("backup created", "file", path)
	return nil
}

// regenerateSite rebuilds the static site after persistence. A failure
// here is only a warning: the article store and the rendered site are
// separate failure domains, and the saved store is never rolled back.
func (w *workflow) regenerateSite(ctx context.Context) {
	if w.cfg.SiteGenerateCmd == "" {
		logger.Debug("no site generation command configured, skipping")
		return
	}

	logger.Info("regenerating site", "cmd", w.cfg.SiteGenerateCmd)
	cmd := exec.CommandContext(ctx, "sh", "-c", w.cfg.SiteGenerateCmd)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		logger.Warn("site regeneration failed; article store remains saved", "error", err)
		return
	}
	logger.Info("site regenerated")
}

// confirm asks the operator in interactive mode; otherwise it is a no-op
// returning the stage's default.
func (w *workflow) confirm(question string, defaultYes bool) bool {
	if !w.opts.Interactive {
		return true
	}

	suffix := "(y/N)"
	if defaultYes {
		suffix = "(Y/n)"
	}
	fmt.Printf("%s %s: ", question, suffix)

	line, err := w.in.ReadString('\n')
	if err != nil {
		return defaultYes
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return defaultYes
	}
	return answer == "y" || answer == "yes"
}

func logGroupSummary(groups []dedup.Group) {
	if len(groups) == 0 {
		logger.Info("no duplicate groups found")
		return
	}
	byKind := make(map[string]int)
	for _, g := range groups {
		byKind[g.Kind]++
	}
	logger.Info("duplicate groups found",
		"total", len(groups),
		"by_id", byKind["ID"],
		"by_title", byKind["Title"],
		"by_slug", byKind["Slug"],
		"by_content", byKind["Content"])
}
