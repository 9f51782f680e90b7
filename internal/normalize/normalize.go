// Package normalize is the field repair engine: an independent pass over a
// duplicate-free collection that backfills missing or malformed fields.
// Every backfill is a no-op when the target field is already present, which
// is what makes repeated pipeline runs safe.
package normalize

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"

	"github.com/jamsa/articlegen/internal/article"
	"github.com/jamsa/articlegen/internal/logger"
)

// isoFormat is the canonical date layout of the article store.
const isoFormat = "2006-01-02T15:04:05Z"

var isoShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

// Stats counts, per field, how many records a Normalize pass touched. All
// zero on a second run over the same data.
type Stats struct {
	IDsAssigned           int
	SlugsGenerated        int
	DatesAdded            int
	ModifiedDatesAdded    int
	DatesReformatted      int
	TitlesShortened       int
	AuthorsAdded          int
	WordCountsSet         int
	ReadingTimesSet       int
	ExcerptsGenerated     int
	MetaDescriptionsAdded int
	CategoriesDefaulted   int
}

func (s Stats) Total() int {
	return s.IDsAssigned + s.SlugsGenerated + s.DatesAdded + s.ModifiedDatesAdded +
		s.DatesReformatted + s.TitlesShortened + s.AuthorsAdded + s.WordCountsSet +
		s.ReadingTimesSet + s.ExcerptsGenerated + s.MetaDescriptionsAdded +
		s.CategoriesDefaulted
}

// Normalizer repairs article records using explicit editorial config and an
// injected seeded RNG, so runs are reproducible under test.
type Normalizer struct {
	cfg Config
	rng *rand.Rand
	now func() time.Time
}

func New(cfg Config, seed int64) *Normalizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Normalizer{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Normalize returns a repaired copy of the collection. Repairs are
// best-effort and field-isolated: a value that cannot be fixed (for example
// an unparseable date) is left alone and the rest of the record is still
// repaired.
func (n *Normalizer) Normalize(articles []article.Article) ([]article.Article, Stats) {
	out := make([]article.Article, len(articles))
	copy(out, articles)

	var stats Stats
	for i := range out {
		n.repairRecord(&out[i], i, &stats)
	}
	return out, stats
}

func (n *Normalizer) repairRecord(a *article.Article, index int, stats *Stats) {
	if a.ID == "" {
		a.ID = article.FlexString(fmt.Sprintf("article_%d", index+1))
		stats.IDsAssigned++
		logger.Info("assigned missing id", "id", a.ID, "title", a.Title)
	}

	if a.Slug == "" && a.Title != "" {
		a.Slug = article.Slugify(a.Title)
		stats.SlugsGenerated++
		logger.Info("generated missing slug", "slug", a.Slug)
	}

	n.repairDates(a, stats)
	n.repairTitle(a, stats)
	n.repairAuthor(a, stats)
	n.repairMetrics(a, stats)
	n.repairExcerpt(a, stats)

	if strings.TrimSpace(a.Category) == "" {
		a.Category = n.cfg.DefaultCategory
		stats.CategoriesDefaulted++
	}
}

func (n *Normalizer) repairDates(a *article.Article, stats *Stats) {
	if a.DatePublished == "" {
		base := n.now().UTC().AddDate(0, 0, -30)
		pub := base.Add(time.Duration(n.rng.Intn(31))*24*time.Hour +
			time.Duration(n.rng.Intn(24))*time.Hour +
			time.Duration(n.rng.Intn(60))*time.Minute)
		a.DatePublished = pub.Format(isoFormat)
		stats.DatesAdded++
		logger.Info("backfilled publication date", "title", a.Title, "datePublished", a.DatePublished)
	}

	if a.DateModified == "" {
		if pub, err := parseStoreDate(a.DatePublished); err == nil {
			mod := pub.Add(time.Duration(n.rng.Intn(25)) * time.Hour)
			a.DateModified = mod.UTC().Format(isoFormat)
			stats.ModifiedDatesAdded++
		} else {
			logger.Warn("cannot derive dateModified, publish date unparseable",
				"title", a.Title, "datePublished", a.DatePublished)
		}
	}

	// Re-key existing but malformed dates onto the canonical layout.
	for _, field := range []*string{&a.DatePublished, &a.DateModified} {
		v := *field
		if v == "" || isoShape.MatchString(v) {
			continue
		}
		t, err := dateparse.ParseAny(v)
		if err != nil {
			// Field-isolated: keep the original value, keep repairing.
			logger.Warn("unparseable date left as is", "value", v, "title", a.Title)
			continue
		}
		*field = t.UTC().Format(isoFormat)
		stats.DatesReformatted++
	}
}

func (n *Normalizer) repairTitle(a *article.Article, stats *Stats) {
	title := a.Title
	if utf8.RuneCountInString(title) <= n.cfg.MaxTitleLength {
		return
	}
	original := title

	for _, r := range n.cfg.TitleFillers {
		title = strings.ReplaceAll(title, r.Old, r.New)
	}

	if utf8.RuneCountInString(title) > n.cfg.MaxTitleLength {
		title = truncateAtWord(title, n.cfg.MaxTitleLength-3) + "..."
	}

	if title != original {
		a.Title = title
		stats.TitlesShortened++
		logger.Info("shortened title", "from", original, "to", title)
	}
}

// truncateAtWord keeps whole words while the running length (with a
// trailing space) stays within limit. Never cuts mid-word.
func truncateAtWord(s string, limit int) string {
	var shortened string
	for _, word := range strings.Fields(s) {
		if utf8.RuneCountInString(shortened+word+" ") > limit {
			break
		}
		shortened += word + " "
	}
	return strings.TrimSpace(shortened)
}

func (n *Normalizer) repairAuthor(a *article.Article, stats *Stats) {
	if a.Author != "" {
		return
	}
	category := strings.ToLower(strings.TrimSpace(a.Category))
	pool, ok := n.cfg.AuthorPools[category]
	if !ok || len(pool) == 0 {
		pool = n.cfg.AuthorPools[n.cfg.FallbackPool]
	}
	if len(pool) == 0 {
		return
	}
	a.Author = pool[n.rng.Intn(len(pool))]
	stats.AuthorsAdded++
}

func (n *Normalizer) repairMetrics(a *article.Article, stats *Stats) {
	wordCount := a.WordCount
	if a.Content != "" {
		wordCount = article.Words(a.Content)
		if a.WordCount != wordCount {
			a.WordCount = wordCount
			stats.WordCountsSet++
		}
	}
	if a.ReadingTimeMinutes == 0 {
		a.ReadingTimeMinutes = article.ReadingTime(wordCount)
		stats.ReadingTimesSet++
	}
}

func (n *Normalizer) repairExcerpt(a *article.Article, stats *Stats) {
	if a.Excerpt == "" && a.Content != "" {
		if excerpt := MakeExcerpt(a.Content, n.cfg.MaxExcerptLength); excerpt != "" {
			a.Excerpt = excerpt
			stats.ExcerptsGenerated++
			logger.Info("generated excerpt", "title", a.Title)
		}
	}

	if a.MetaDescription == "" {
		var meta string
		switch {
		case a.Excerpt != "":
			meta = a.Excerpt
		case a.Content != "":
			meta = MakeExcerpt(a.Content, n.cfg.MaxMetaDescLength)
		default:
			meta = a.Title
		}
		if meta != "" {
			a.MetaDescription = meta
			stats.MetaDescriptionsAdded++
		}
	}
}

// MakeExcerpt builds a meta-description-sized excerpt from the article
// body: the first sentence, plus the second when the first is under 80
// characters, capped at max with an ellipsis.
func MakeExcerpt(content string, max int) string {
	clean := article.StripHTML(content)
	sentences := strings.Split(clean, ". ")
	excerpt := sentences[0]

	if utf8.RuneCountInString(excerpt) < 80 && len(sentences) > 1 {
		excerpt += ". " + sentences[1]
	}

	if utf8.RuneCountInString(excerpt) > max {
		excerpt = string([]rune(excerpt)[:max-3]) + "..."
	}
	return strings.TrimSpace(excerpt)
}

func parseStoreDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(isoFormat, v); err == nil {
		return t, nil
	}
	return dateparse.ParseAny(v)
}

// Consolidate maps variant category names onto the site's canonical set
// (e.g. "Finance" and "Economy" both fold into "Business"); unknown
// categories fall back to cfg.FallbackCategory. Optional pass, run only
// when explicitly requested, since it rewrites categories that are present
// and valid under the looser historical scheme.
func Consolidate(articles []article.Article, cfg Config) ([]article.Article, int) {
	out := make([]article.Article, len(articles))
	copy(out, articles)

	changed := 0
	for i := range out {
		original := strings.TrimSpace(out[i].Category)
		if original == "" {
			continue
		}
		canonical, ok := cfg.CategoryAliases[original]
		if !ok {
			canonical = cfg.FallbackCategory
		}
		if canonical != original {
			logger.Info("consolidated category", "from", original, "to", canonical, "title", out[i].Title)
			out[i].Category = canonical
			changed++
		}
	}
	return out, changed
}
