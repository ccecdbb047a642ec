package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBuckets(t *testing.T) {
	t.Parallel()

	resume := []string{"python", "docker"}
	job := []string{"aws", "docker", "kubernetes", "python", "terraform"}
	missing := []string{"aws", "kubernetes", "terraform", "haskell"}
	trending := []string{"Kubernetes", "docker", "aws"}

	a := Analyze(resume, job, missing, trending)

	assert.Equal(t, []string{"aws", "kubernetes"}, a.MissingSkills.Critical)
	assert.Equal(t, []string{"terraform"}, a.MissingSkills.Important)
	assert.Equal(t, []string{"haskell"}, a.MissingSkills.NiceToHave)
	assert.Equal(t, []string{"docker", "python"}, a.MatchedSkills)
	assert.Equal(t, 2, a.TotalMatched)
	assert.Equal(t, 4, a.TotalMissing)
	assert.InDelta(t, 40.0, a.SkillCoveragePercentage, 1e-9)
	assert.Equal(t, Summary{HighPriorityGap: true, MediumPriorityGap: true, OverallGapSeverity: SeverityMedium}, a.GapAnalysis)
	assert.Len(t, a.LearningRecommendations, 3)
}

func TestAnalyzeNoJobSkills(t *testing.T) {
	t.Parallel()

	a := Analyze(nil, nil, nil, nil)

	assert.Zero(t, a.SkillCoveragePercentage)
	assert.Equal(t, SeverityHigh, a.GapAnalysis.OverallGapSeverity)
	assert.NotNil(t, a.MatchedSkills)
	assert.NotNil(t, a.MissingSkills.Critical)
	assert.NotNil(t, a.LearningRecommendations)
}

func TestAnalyzeCoverageRounding(t *testing.T) {
	t.Parallel()

	a := Analyze([]string{"a", "b"}, []string{"a", "b", "c"}, []string{"c"}, nil)
	assert.InDelta(t, 66.7, a.SkillCoveragePercentage, 1e-9)
	assert.Equal(t, SeverityMedium, a.GapAnalysis.OverallGapSeverity)
}

func TestSeverity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SeverityHigh, Severity(39.9))
	assert.Equal(t, SeverityMedium, Severity(40))
	assert.Equal(t, SeverityMedium, Severity(69.9))
	assert.Equal(t, SeverityLow, Severity(70))
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	critical := []string{"python", "kubernetes", "rust", "go", "sql", "java"}
	important := []string{"machine learning", "graphql", "aws", "react"}

	recs := Recommend(critical, important)
	require.Len(t, recs, 8)

	assert.Equal(t, Recommendation{
		Skill:              "python",
		Priority:           PriorityCritical,
		RecommendedCourses: []string{"Python for Data Science", "Complete Python Bootcamp"},
		Platforms:          []string{"Coursera", "Udemy", "edX"},
		EstimatedTime:      "2-4 weeks",
		Difficulty:         "beginner",
	}, recs[0])

	assert.Equal(t, []string{"Learn Rust"}, recs[2].RecommendedCourses)
	assert.Equal(t, "4-8 weeks", recs[2].EstimatedTime)

	assert.Equal(t, Recommendation{
		Skill:              "graphql",
		Priority:           PriorityImportant,
		RecommendedCourses: []string{"Learn Graphql"},
		Platforms:          []string{"Coursera", "Udemy"},
		EstimatedTime:      "3-6 weeks",
		Difficulty:         "intermediate",
	}, recs[6])

	for _, rec := range recs {
		assert.NotEqual(t, "java", rec.Skill, "only five critical skills are recommended")
		assert.NotEqual(t, "react", rec.Skill, "only three important skills are recommended")
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Machine learning", capitalize("machine learning"))
	assert.Equal(t, "Ci/cd", capitalize("CI/CD"))
	assert.Equal(t, "Élan", capitalize("élan"))
	assert.Equal(t, "", capitalize(""))
}
