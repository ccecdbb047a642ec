package filtering

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/resume-matcher/internal/postings"
)

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes postings listed in the exclude file.
func NewExcludeFile(path string) Filter {
	return &excludeFileFilter{
		path: strings.TrimSpace(path),
	}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate() error { return nil }

func (f *excludeFileFilter) Apply(_ context.Context, p *postings.Postings) (*postings.Postings, Step, error) {
	initial := p.Len()
	if f.path == "" {
		return p, unchanged(p), nil
	}

	excluded, err := postings.LoadExcluded(f.path)
	if err != nil {
		return p, Step{}, fmt.Errorf("getting excluded postings from file: %w", err)
	}

	removed := p.Exclude(postings.PostingIDField, excluded.IDs())

	return p, Step{Initial: initial, Dropped: len(removed), Left: p.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
