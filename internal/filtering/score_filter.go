package filtering

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/postings"
)

type scoreFilter struct {
	deps *ScoreDeps
}

type ScoreDeps struct {
	Analyzer   *analyzer.Service
	ResumeText string
	Logger     *zap.Logger
}

// NewScore creates the step that scores every posting against the résumé and
// sorts the batch by score. It never drops postings.
func NewScore(deps *ScoreDeps) Filter {
	return &scoreFilter{deps: deps}
}

func (f *scoreFilter) Name() string { return "score" }

func (f *scoreFilter) Disable(string) {}

func (f *scoreFilter) IsEnabled() bool { return true }

func (f *scoreFilter) Validate() error {
	if f.deps == nil || f.deps.Analyzer == nil {
		return errors.New("analyzer is required")
	}
	if strings.TrimSpace(f.deps.ResumeText) == "" {
		return errors.New("resume text is empty")
	}
	return nil
}

func (f *scoreFilter) Apply(_ context.Context, p *postings.Postings) (*postings.Postings, Step, error) {
	log := logger.WithFields(f.deps.Logger)

	for _, posting := range p.Items {
		res := f.deps.Analyzer.Analyze(f.deps.ResumeText, posting.Text(), posting.Title)
		posting.Match = &postings.Match{
			OverallScore:  res.OverallScore,
			Scores:        res.Scores,
			MatchedSkills: res.SkillGapAnalysis.MatchedSkills,
			MissingSkills: res.Gaps.MissingSkills,
			Suggestions:   res.Suggestions,
		}

		log.Debug("posting scored",
			zap.String(logger.FieldPostingID, posting.ID),
			zap.Int("overall_score", res.OverallScore),
		)
	}

	p.SortByScore()

	return p, unchanged(p), nil
}
