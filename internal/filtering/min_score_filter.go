package filtering

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/resume-matcher/internal/postings"
)

type minScoreFilter struct {
	min int
}

// NewMinScore creates a filter that drops postings scoring below minimum.
// Unscored postings are dropped too.
func NewMinScore(minimum int) Filter {
	return &minScoreFilter{min: minimum}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Disable(string) {}

func (f *minScoreFilter) IsEnabled() bool { return true }

func (f *minScoreFilter) Validate() error {
	if f.min < 0 || f.min > 100 {
		return fmt.Errorf("minimum score must be within 0..100, got %d", f.min)
	}
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, p *postings.Postings) (*postings.Postings, Step, error) {
	initial := p.Len()
	if f.min == 0 {
		return p, unchanged(p), nil
	}

	dropped := p.Keep(func(po *postings.Posting) bool { return po.Score() >= f.min })

	return p, Step{Initial: initial, Dropped: len(dropped), Left: p.Len()}, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{"minimum_score": strconv.Itoa(f.min)}}
}
