package filtering

import (
	"context"
	"strings"

	"github.com/spigell/resume-matcher/internal/postings"
)

type companiesFilter struct {
	companies []string
}

// NewExcludedCompanies creates a filter that removes postings by the configured companies.
func NewExcludedCompanies(companies []string) Filter {
	return &companiesFilter{
		companies: companies,
	}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Disable(string) {}

func (f *companiesFilter) IsEnabled() bool { return true }

func (f *companiesFilter) Validate() error { return nil }

func (f *companiesFilter) Apply(_ context.Context, p *postings.Postings) (*postings.Postings, Step, error) {
	initial := p.Len()
	if len(f.companies) == 0 {
		return p, unchanged(p), nil
	}

	excluded := p.Exclude(postings.PostingCompanyField, f.companies)

	return p, Step{Initial: initial, Dropped: len(excluded), Left: p.Len()}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
