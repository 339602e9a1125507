package analysis

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Jasmynewlk/netflix-content-analysis/models"
	"github.com/Jasmynewlk/netflix-content-analysis/parser"
)

// Skip reasons recorded when a row is excluded from the cleaned table.
const (
	SkipEmptyDuration  = "empty_duration"
	SkipNoNumericToken = "no_numeric_token"
)

type cacheEntry struct {
	d  models.Duration
	ok bool
}

// Cleaner filters raw records down to the cleaned table. Duration
// strings repeat heavily across a catalog, so parses go through an LRU
// cache keyed by the raw string.
type Cleaner struct {
	cache   *lru.Cache[string, cacheEntry]
	metrics *Metrics
}

// NewCleaner builds a cleaner with a parse cache of the given size.
func NewCleaner(cacheSize int, metrics *Metrics) (*Cleaner, error) {
	cache, err := lru.New[string, cacheEntry](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create parse cache: %w", err)
	}
	return &Cleaner{cache: cache, metrics: metrics}, nil
}

// Clean parses every record's duration and keeps the rows that carry a
// numeric value. Unparseable rows are skipped, never failed; the second
// return value counts the skips by reason.
func (c *Cleaner) Clean(records []*models.TitleRecord) ([]models.CleanedTitle, map[string]int) {
	cleaned := make([]models.CleanedTitle, 0, len(records))
	skips := make(map[string]int)

	for _, rec := range records {
		raw := strings.TrimSpace(rec.Duration)
		if raw == "" || strings.EqualFold(raw, "nan") {
			skips[SkipEmptyDuration]++
			c.metrics.IncParseSkip(SkipEmptyDuration)
			continue
		}

		d, ok := c.parseCached(raw)
		if !ok {
			skips[SkipNoNumericToken]++
			c.metrics.IncParseSkip(SkipNoNumericToken)
			continue
		}

		year, yearOK := parser.ParseYear(rec.ReleaseYear)
		cleaned = append(cleaned, models.CleanedTitle{
			Record:   rec,
			Duration: d,
			Type:     parser.NormalizeType(rec.Type),
			Rating:   parser.NormalizeRating(rec.Rating),
			Year:     year,
			YearOK:   yearOK,
		})
	}
	return cleaned, skips
}

func (c *Cleaner) parseCached(raw string) (models.Duration, bool) {
	if entry, ok := c.cache.Get(raw); ok {
		c.metrics.IncCacheHit()
		return entry.d, entry.ok
	}

	d, ok := parser.ParseDuration(raw)
	c.cache.Add(raw, cacheEntry{d: d, ok: ok})
	return d, ok
}
