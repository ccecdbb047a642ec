package analyzer

import (
	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/gap"
	"github.com/spigell/resume-matcher/internal/market"
	"github.com/spigell/resume-matcher/internal/scoring"
)

// Where the job description of a run came from.
const (
	SourceProvided = "provided"
	SourceTitle    = "title"
)

// Result is the outcome of scoring one résumé against one job.
type Result struct {
	JobTitle             string         `json:"job_title"`
	JobDescriptionSource string         `json:"job_description_source"`
	OverallScore         int            `json:"overall_score"`
	Scores               scoring.Scores `json:"scores"`
	Resume               ResumeSummary  `json:"resume"`
	Job                  JobSummary     `json:"job"`
	Gaps                 Gaps           `json:"gaps"`
	Suggestions          []string       `json:"suggestions"`
	MarketInsights       MarketInsights `json:"market_insights"`
	SkillGapAnalysis     gap.Analysis   `json:"skill_gap_analysis"`
	AIReview             *ai.Review     `json:"ai_review,omitempty"`

	jobDescription string
	resumeText     string
}

type ResumeSummary struct {
	TopKeywords     []string                `json:"top_keywords"`
	Skills          []string                `json:"skills"`
	Education       []string                `json:"education"`
	Experience      []string                `json:"experience"`
	SectionsPresent scoring.SectionsPresent `json:"sections_present"`
	EducationLevel  string                  `json:"education_level"`
	ExperienceYears float64                 `json:"experience_years"`
	ExperienceLevel string                  `json:"experience_level"`
}

type JobSummary struct {
	TopKeywords []string `json:"top_keywords"`
	Skills      []string `json:"skills"`
}

type Gaps struct {
	MissingSkills   []string `json:"missing_skills"`
	MissingKeywords []string `json:"missing_keywords"`
}

// MarketInsights is the market snapshot of the job title. SalaryRange is
// already adjusted for the résumé's experience level.
type MarketInsights struct {
	DemandScore    float64            `json:"demand_score"`
	SalaryRange    market.SalaryRange `json:"salary_range"`
	TrendingSkills []string           `json:"trending_skills"`
	GrowthRate     float64            `json:"growth_rate"`
	MarketInsights []string           `json:"market_insights"`
}
