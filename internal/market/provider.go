package market

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL        = time.Hour
	DefaultMaxEntries = 1024
)

// Config tunes the provider cache.
type Config struct {
	TTL time.Duration `mapstructure:"ttl" validate:"gte=0"`
	// MaxEntries caps the number of cached titles; expired entries go first,
	// then the oldest. Zero or less disables the cap.
	MaxEntries int `mapstructure:"max_entries"`
}

// Option customizes a Provider.
type Option func(*Provider)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithGenerator replaces the rule-table generator.
func WithGenerator(gen func(title string) JobMarketData) Option {
	return func(p *Provider) { p.generate = gen }
}

type cacheEntry struct {
	data      JobMarketData
	expiresAt time.Time
}

// Provider serves JobMarketData by title through a TTL cache keyed by the
// lowercased, trimmed title. It is safe for concurrent use.
type Provider struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	generate   func(title string) JobMarketData
	logger     *zap.Logger

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewProvider builds a provider. Zero config values fall back to DefaultTTL
// and DefaultMaxEntries.
func NewProvider(cfg Config, logger *zap.Logger, opts ...Option) *Provider {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Provider{
		ttl:        cfg.TTL,
		maxEntries: cfg.MaxEntries,
		now:        time.Now,
		generate:   Generate,
		logger:     logger,
		entries:    make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key normalizes a title into its cache key.
func Key(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Get returns the snapshot for title, regenerating it on miss or expiry.
// Concurrent misses on one key generate once.
func (p *Provider) Get(title string) JobMarketData {
	key := Key(title)

	if data, ok := p.lookup(key); ok {
		p.hits.Add(1)
		return data
	}

	v, _, _ := p.group.Do(key, func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if data, ok := p.lookup(key); ok {
			return data, nil
		}

		p.misses.Add(1)
		data := p.generate(strings.TrimSpace(title))
		p.store(key, data)

		p.logger.Debug("market data generated",
			zap.String("key", key),
			zap.Strings("trending_skills", data.TrendingSkills),
		)
		return data, nil
	})

	return v.(JobMarketData).clone()
}

func (p *Provider) lookup(key string) (JobMarketData, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[key]
	if !ok {
		return JobMarketData{}, false
	}
	if !p.now().Before(entry.expiresAt) {
		delete(p.entries, key)
		return JobMarketData{}, false
	}
	return entry.data.clone(), true
}

func (p *Provider) store(key string, data JobMarketData) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.entries[key]; !exists {
		p.evictLocked()
	}
	p.entries[key] = cacheEntry{data: data.clone(), expiresAt: p.now().Add(p.ttl)}
}

// evictLocked makes room for one entry: expired entries first, then the
// entry with the earliest expiry, which is the oldest insert.
func (p *Provider) evictLocked() {
	if p.maxEntries <= 0 || len(p.entries) < p.maxEntries {
		return
	}

	now := p.now()
	for key, entry := range p.entries {
		if !now.Before(entry.expiresAt) {
			delete(p.entries, key)
		}
	}

	for len(p.entries) >= p.maxEntries {
		var oldestKey string
		var oldestAt time.Time
		for key, entry := range p.entries {
			if oldestKey == "" || entry.expiresAt.Before(oldestAt) ||
				(entry.expiresAt.Equal(oldestAt) && key < oldestKey) {
				oldestKey, oldestAt = key, entry.expiresAt
			}
		}
		delete(p.entries, oldestKey)
		p.logger.Debug("market cache evicted", zap.String("key", oldestKey))
	}
}

// Len reports the number of cached titles, expired ones included.
func (p *Provider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Stats returns cache hit and miss counters.
func (p *Provider) Stats() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

var levelMultipliers = map[string]float64{
	"entry":     0.7,
	"junior":    0.8,
	"mid":       1.0,
	"senior":    1.3,
	"lead":      1.5,
	"principal": 1.8,
}

// Levels lists the experience levels with a salary multiplier.
func Levels() []string {
	return []string{"entry", "junior", "mid", "senior", "lead", "principal"}
}

// SalaryInsights is a salary range adjusted for experience level.
type SalaryInsights struct {
	BaseRange      SalaryRange `json:"base_range"`
	AdjustedRange  SalaryRange `json:"adjusted_range"`
	DemandScore    float64     `json:"demand_score"`
	GrowthRate     float64     `json:"growth_rate"`
	MarketInsights []string    `json:"market_insights"`
}

// SalaryInsights scales the title's salary range by the level multiplier.
// Unknown levels use 1.0. Adjusted values are truncated toward zero.
func (p *Provider) SalaryInsights(title, level string) SalaryInsights {
	data := p.Get(title)

	mult, ok := levelMultipliers[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		mult = 1.0
	}

	base := data.SalaryRange
	return SalaryInsights{
		BaseRange: base,
		AdjustedRange: SalaryRange{
			Min:    int(float64(base.Min) * mult),
			Max:    int(float64(base.Max) * mult),
			Median: int(float64(base.Median) * mult),
		},
		DemandScore:    data.DemandScore,
		GrowthRate:     data.GrowthRate,
		MarketInsights: data.MarketInsights,
	}
}
