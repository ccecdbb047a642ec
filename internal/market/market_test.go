package market

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func countingGenerator(calls *atomic.Int64) func(string) JobMarketData {
	return func(title string) JobMarketData {
		calls.Add(1)
		return Generate(title)
	}
}

func TestGenerateRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title  string
		demand float64
		first  string
	}{
		{"AI Engineer", 9.2, "python"},
		{"Senior ML Engineer", 9.0, "python"},
		{"Data Scientist", 8.8, "python"},
		{"DevOps Engineer", 9.0, "kubernetes"},
		{"Cloud Solutions Architect", 8.9, "aws"},
		{"SRE", 8.7, "kubernetes"},
		{"Cybersecurity Analyst", 8.8, "python"},
		{"Security Engineer", 8.6, "python"},
		{"Data Engineer", 8.5, "python"},
		{"Frontend Developer", 8.2, "javascript"},
		{"Backend Engineer", 8.3, "python"},
		{"Product Manager", 8.0, "product management"},
		{"Data Analyst", 7.8, "sql"},
		{"Web Developer", 7.9, "javascript"},
		{"Software Engineer", 8.1, "python"},
		{"Office Manager", 7.2, "leadership"},
		{"Financial Analyst", 7.4, "data analysis"},
		{"Chef", 7.0, "communication"},
		{"HTML Developer", 7.0, "communication"},
		{"Maintenance Engineer", 7.0, "communication"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Generate(tt.title)
			assert.Equal(t, tt.title, got.Title)
			assert.InDelta(t, tt.demand, got.DemandScore, 1e-9)
			require.NotEmpty(t, got.TrendingSkills)
			assert.Equal(t, tt.first, got.TrendingSkills[0])
		})
	}
}

func TestGenerateReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	a := Generate("DevOps Engineer")
	a.TrendingSkills[0] = "mutated"
	b := Generate("DevOps Engineer")
	assert.Equal(t, "kubernetes", b.TrendingSkills[0])
}

func TestProviderCachesWithinTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	var calls atomic.Int64
	p := NewProvider(Config{TTL: time.Hour}, nil, WithClock(clock.Now), WithGenerator(countingGenerator(&calls)))

	first := p.Get("DevOps Engineer")
	clock.Advance(59 * time.Minute)
	second := p.Get("  devops engineer ")

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load())

	hits, misses := p.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestProviderRegeneratesAfterTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	var calls atomic.Int64
	p := NewProvider(Config{TTL: time.Hour}, nil, WithClock(clock.Now), WithGenerator(countingGenerator(&calls)))

	first := p.Get("Data Engineer")
	clock.Advance(time.Hour)
	second := p.Get("Data Engineer")

	assert.Equal(t, int64(2), calls.Load())
	assert.Equal(t, first, second, "generation is deterministic per title")
}

func TestProviderReturnsCopies(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{}, nil)
	got := p.Get("DevOps Engineer")
	got.TrendingSkills[0] = "mutated"

	assert.Equal(t, "kubernetes", p.Get("DevOps Engineer").TrendingSkills[0])
}

func TestProviderEvictsOldest(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	var calls atomic.Int64
	p := NewProvider(Config{TTL: time.Hour, MaxEntries: 3}, nil,
		WithClock(clock.Now), WithGenerator(countingGenerator(&calls)))

	for i := range 5 {
		p.Get(fmt.Sprintf("title %d", i))
		clock.Advance(time.Second)
	}
	assert.Equal(t, 3, p.Len())

	// title 0 was evicted and must be regenerated; title 4 is still cached.
	calls.Store(0)
	p.Get("title 4")
	assert.Equal(t, int64(0), calls.Load())
	p.Get("title 0")
	assert.Equal(t, int64(1), calls.Load())
}

func TestProviderEvictsExpiredFirst(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	p := NewProvider(Config{TTL: time.Minute, MaxEntries: 2}, nil, WithClock(clock.Now))

	p.Get("a")
	p.Get("b")
	clock.Advance(2 * time.Minute)
	p.Get("c")

	assert.Equal(t, 1, p.Len())
}

func TestProviderConcurrentMissGeneratesOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	p := NewProvider(Config{}, nil, WithGenerator(countingGenerator(&calls)))

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Get("Backend Engineer")
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
}

func TestSalaryInsights(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{}, nil)

	tests := []struct {
		level  string
		expect SalaryRange
	}{
		{"entry", SalaryRange{Min: 77000, Max: 125999, Median: 101500}},
		{"junior", SalaryRange{Min: 88000, Max: 144000, Median: 116000}},
		{"mid", SalaryRange{Min: 110000, Max: 180000, Median: 145000}},
		{"Senior", SalaryRange{Min: 143000, Max: 234000, Median: 188500}},
		{"lead", SalaryRange{Min: 165000, Max: 270000, Median: 217500}},
		{"principal", SalaryRange{Min: 198000, Max: 324000, Median: 261000}},
		{"wizard", SalaryRange{Min: 110000, Max: 180000, Median: 145000}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got := p.SalaryInsights("DevOps Engineer", tt.level)
			assert.Equal(t, SalaryRange{Min: 110000, Max: 180000, Median: 145000}, got.BaseRange)
			assert.Equal(t, tt.expect, got.AdjustedRange)
			assert.InDelta(t, 0.28, got.GrowthRate, 1e-9)
		})
	}
}

func TestTrendingSkillsByIndustry(t *testing.T) {
	t.Parallel()

	assert.Contains(t, TrendingSkillsByIndustry("Healthcare"), "hipaa")
	assert.Equal(t, []string{"python", "data analysis", "communication", "project management"},
		TrendingSkillsByIndustry("aerospace"))

	for _, industry := range Industries() {
		assert.NotEqual(t, defaultIndustrySkills, TrendingSkillsByIndustry(industry), industry)
	}
}
