// Package analyzer composes the extractors and scorers into the public
// operations: scoring a résumé against a job, against a catalog role, and
// comparing two résumés for the same job.
package analyzer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/entities"
	"github.com/spigell/resume-matcher/internal/gap"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/market"
	"github.com/spigell/resume-matcher/internal/roles"
	"github.com/spigell/resume-matcher/internal/scoring"
	"github.com/spigell/resume-matcher/internal/similarity"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/textproc"
)

// Service runs analyses. It is safe for concurrent use; the only shared
// mutable state is the market cache, which guards itself.
type Service struct {
	extractor  *skills.Extractor
	similarity *similarity.Scorer
	market     *market.Provider
	catalog    *roles.Catalog
	reviewer   ai.Reviewer
	logger     *zap.Logger
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithExtractor(e *skills.Extractor) Option {
	return func(s *Service) { s.extractor = e }
}

func WithSimilarity(sc *similarity.Scorer) Option {
	return func(s *Service) { s.similarity = sc }
}

func WithMarket(p *market.Provider) Option {
	return func(s *Service) { s.market = p }
}

func WithCatalog(c *roles.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

// WithReviewer enables Review. A nil reviewer leaves it disabled.
func WithReviewer(r ai.Reviewer) Option {
	return func(s *Service) { s.reviewer = r }
}

// New returns a Service with default collaborators for anything not set by opts.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.extractor == nil {
		s.extractor = skills.New(nil)
	}
	if s.similarity == nil {
		s.similarity = similarity.NewScorer(nil, s.logger)
	}
	if s.market == nil {
		s.market = market.NewProvider(market.Config{}, s.logger)
	}
	if s.catalog == nil {
		s.catalog = roles.Default()
	}

	return s
}

func (s *Service) Catalog() *roles.Catalog { return s.catalog }

func (s *Service) Market() *market.Provider { return s.market }

// Analyze scores resumeText against jobDescription. An empty description is
// synthesized from jobTitle. Any input strings are accepted; empty text
// yields zeroed sub-scores.
func (s *Service) Analyze(resumeText, jobDescription, jobTitle string) Result {
	resumeText = textproc.Normalize(resumeText)
	jobDescription = textproc.Normalize(jobDescription)

	source := SourceProvided
	if jobDescription == "" {
		jobDescription = textproc.Normalize(s.catalog.DescriptionFromTitle(jobTitle))
		source = SourceTitle
	}

	sections := textproc.SplitSections(resumeText)
	education := entities.ExtractEducation(orText(sections.Get(textproc.SectionEducation), resumeText))
	experience := entities.ExtractExperience(orText(sections.Get(textproc.SectionExperience, textproc.SectionWorkExperience), resumeText))

	resumeKeywords := textproc.TopKeywords(resumeText, textproc.DefaultKeywordLimit)
	jobKeywords := textproc.TopKeywords(jobDescription, textproc.DefaultKeywordLimit)

	jobSkills := s.extractor.Extract(jobDescription, nil, skills.Open)
	resumeSkills := s.extractor.Extract(resumeText, jobSkills, skills.Permissive)

	scored := scoring.ScoreJob(scoring.JobInput{
		ResumeText:     resumeText,
		Sections:       sections,
		Education:      education.Lines,
		Experience:     experience,
		ResumeSkills:   resumeSkills,
		JobSkills:      jobSkills,
		ResumeKeywords: resumeKeywords,
		JobKeywords:    jobKeywords,
		Similarity:     s.similarity.Score(resumeText, jobDescription),
	})

	years := entities.TenureYears(resumeText)
	level := entities.ExperienceLevel(years)

	marketData := s.market.Get(jobTitle)
	salary := s.market.SalaryInsights(jobTitle, level)

	resumeSkillList := resumeSkills.Sorted()
	jobSkillList := jobSkills.Sorted()

	res := Result{
		JobTitle:             jobTitle,
		JobDescriptionSource: source,
		OverallScore:         scored.Overall,
		Scores:               scored.Scores,
		Resume: ResumeSummary{
			TopKeywords:     resumeKeywords,
			Skills:          resumeSkillList,
			Education:       education.Lines,
			Experience:      experience,
			SectionsPresent: scored.SectionsPresent,
			EducationLevel:  education.Level,
			ExperienceYears: years,
			ExperienceLevel: level,
		},
		Job: JobSummary{
			TopKeywords: jobKeywords,
			Skills:      jobSkillList,
		},
		Gaps: Gaps{
			MissingSkills:   scored.MissingSkills,
			MissingKeywords: scored.MissingKeywords,
		},
		Suggestions: scored.Suggestions,
		MarketInsights: MarketInsights{
			DemandScore:    marketData.DemandScore,
			SalaryRange:    salary.AdjustedRange,
			TrendingSkills: marketData.TrendingSkills,
			GrowthRate:     marketData.GrowthRate,
			MarketInsights: marketData.MarketInsights,
		},
		SkillGapAnalysis: gap.Analyze(resumeSkillList, jobSkillList, scored.MissingSkills, marketData.TrendingSkills),

		jobDescription: jobDescription,
		resumeText:     resumeText,
	}

	s.logger.Debug("analysis completed", append(logger.AnalysisFields(jobTitle, source),
		zap.Int("overall_score", res.OverallScore),
		zap.Int("resume_skills", len(resumeSkillList)),
		zap.Int("job_skills", len(jobSkillList)),
	)...)

	return res
}

// AnalyzeRole scores text against the catalog role slug. The only error is
// roles.ErrUnknownRole.
func (s *Service) AnalyzeRole(text, slug string) (scoring.RoleResult, error) {
	role, err := s.catalog.Get(slug)
	if err != nil {
		return scoring.RoleResult{}, err
	}

	text = textproc.Normalize(text)
	sections := textproc.SplitSections(text)
	education := entities.ExtractEducation(orText(sections.Get(textproc.SectionEducation), text))
	experience := entities.ExtractExperience(orText(sections.Get(textproc.SectionExperience, textproc.SectionWorkExperience), text))

	res := scoring.ScoreRole(scoring.RoleInput{
		Text:        text,
		Sections:    sections,
		Education:   education.Lines,
		Experience:  experience,
		Extracted:   s.extractor.Extract(text, skills.NewSet(role.Candidates()...), skills.Strict),
		TopKeywords: textproc.TopKeywords(text, textproc.DefaultKeywordLimit),
		Role:        role,
	})

	s.logger.Debug("role analysis completed",
		zap.String(logger.FieldRole, slug),
		zap.Int("score", res.Score),
	)

	return res, nil
}

// Review asks the configured reviewer for a narrative verdict and attaches it
// to res. Scores are left untouched.
func (s *Service) Review(ctx context.Context, res *Result, instructions string) error {
	if s.reviewer == nil {
		return ai.ErrDisabled
	}

	review, err := s.reviewer.Review(ctx, ai.ReviewRequest{
		ResumeText:     res.resumeText,
		JobTitle:       res.JobTitle,
		JobDescription: res.jobDescription,
		OverallScore:   res.OverallScore,
		MatchedSkills:  res.SkillGapAnalysis.MatchedSkills,
		MissingSkills:  res.Gaps.MissingSkills,
		Instructions:   instructions,
	})
	if err != nil {
		return fmt.Errorf("review %q: %w", res.JobTitle, err)
	}

	res.AIReview = review
	return nil
}

func orText(section, text string) string {
	if section != "" {
		return section
	}
	return text
}
