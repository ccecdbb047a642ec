// Package gap buckets missing skills by priority and suggests how to learn
// the most important ones.
package gap

import (
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Priorities of a missing skill.
const (
	PriorityCritical   = "critical"
	PriorityImportant  = "important"
	PriorityNiceToHave = "nice_to_have"
)

// Severity labels.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

const (
	maxCriticalRecommendations  = 5
	maxImportantRecommendations = 3
	maxCourses                  = 2
)

type MissingSkills struct {
	Critical   []string `json:"critical"`
	Important  []string `json:"important"`
	NiceToHave []string `json:"nice_to_have"`
}

type Summary struct {
	HighPriorityGap    bool   `json:"high_priority_gap"`
	MediumPriorityGap  bool   `json:"medium_priority_gap"`
	OverallGapSeverity string `json:"overall_gap_severity"`
}

type Recommendation struct {
	Skill              string   `json:"skill"`
	Priority           string   `json:"priority"`
	RecommendedCourses []string `json:"recommended_courses"`
	Platforms          []string `json:"platforms"`
	EstimatedTime      string   `json:"estimated_time"`
	Difficulty         string   `json:"difficulty"`
}

// Analysis is the skill-gap breakdown of one job-path run.
type Analysis struct {
	SkillCoveragePercentage float64          `json:"skill_coverage_percentage"`
	MatchedSkills           []string         `json:"matched_skills"`
	MissingSkills           MissingSkills    `json:"missing_skills"`
	TotalMissing            int              `json:"total_missing"`
	TotalMatched            int              `json:"total_matched"`
	GapAnalysis             Summary          `json:"gap_analysis"`
	LearningRecommendations []Recommendation `json:"learning_recommendations"`
}

// Analyze partitions missing into critical (trending), important (required by
// the job) and nice-to-have, and computes coverage of jobSkills by
// resumeSkills. Comparisons ignore case; list order follows the inputs.
func Analyze(resumeSkills, jobSkills, missing, trending []string) Analysis {
	resumeSet := lowerSet(resumeSkills)
	jobSet := lowerSet(jobSkills)
	trendingSet := lowerSet(trending)

	a := Analysis{
		MatchedSkills: []string{},
		MissingSkills: MissingSkills{Critical: []string{}, Important: []string{}, NiceToHave: []string{}},
		TotalMissing:  len(missing),
	}

	matched := make(map[string]struct{})
	for _, skill := range jobSkills {
		key := strings.ToLower(skill)
		if _, ok := resumeSet[key]; !ok {
			continue
		}
		a.MatchedSkills = append(a.MatchedSkills, skill)
		matched[key] = struct{}{}
	}
	a.TotalMatched = len(matched)

	for _, skill := range missing {
		key := strings.ToLower(skill)
		switch {
		case has(trendingSet, key):
			a.MissingSkills.Critical = append(a.MissingSkills.Critical, skill)
		case has(jobSet, key):
			a.MissingSkills.Important = append(a.MissingSkills.Important, skill)
		default:
			a.MissingSkills.NiceToHave = append(a.MissingSkills.NiceToHave, skill)
		}
	}

	coverage := 0.0
	if len(jobSkills) > 0 {
		coverage = float64(len(matched)) / float64(len(jobSkills)) * 100
	}
	a.SkillCoveragePercentage = math.Round(coverage*10) / 10

	a.GapAnalysis = Summary{
		HighPriorityGap:    len(a.MissingSkills.Critical) > 0,
		MediumPriorityGap:  len(a.MissingSkills.Important) > 0,
		OverallGapSeverity: Severity(coverage),
	}
	a.LearningRecommendations = Recommend(a.MissingSkills.Critical, a.MissingSkills.Important)

	return a
}

// Severity labels a coverage percentage: below 40 is high, below 70 medium.
func Severity(coverage float64) string {
	switch {
	case coverage < 40:
		return SeverityHigh
	case coverage < 70:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

var platforms = []string{"Coursera", "Udemy", "edX", "LinkedIn Learning", "Pluralsight"}

var courses = map[string][]string{
	"python":           {"Python for Data Science", "Complete Python Bootcamp"},
	"javascript":       {"JavaScript: The Complete Guide", "Modern JavaScript From The Beginning"},
	"react":            {"React - The Complete Guide", "Modern React with Redux"},
	"aws":              {"AWS Certified Solutions Architect", "AWS Fundamentals"},
	"docker":           {"Docker & Kubernetes", "Docker Mastery"},
	"sql":              {"SQL for Data Analysis", "Complete SQL Bootcamp"},
	"machine learning": {"Machine Learning A-Z", "Deep Learning Specialization"},
	"java":             {"Java Programming Masterclass", "Complete Java Development"},
	"git":              {"Git Complete: The definitive guide", "Git & GitHub Bootcamp"},
	"node.js":          {"Node.js Complete Guide", "Advanced Node.js"},
	"typescript":       {"Understanding TypeScript", "TypeScript Course"},
	"kubernetes":       {"Kubernetes for Developers", "Kubernetes Complete Guide"},
	"tableau":          {"Tableau 2022 A-Z", "Tableau Desktop Specialist"},
	"power bi":         {"Power BI A-Z", "Microsoft Power BI"},
}

var easySkills = map[string]struct{}{"python": {}, "javascript": {}, "sql": {}}

// Recommend builds learning recommendations for the first five critical and
// first three important skills.
func Recommend(critical, important []string) []Recommendation {
	out := []Recommendation{}

	for _, skill := range critical[:min(len(critical), maxCriticalRecommendations)] {
		key := strings.ToLower(skill)
		rec := Recommendation{
			Skill:              skill,
			Priority:           PriorityCritical,
			RecommendedCourses: coursesFor(skill),
			Platforms:          append([]string(nil), platforms[:3]...),
			EstimatedTime:      "4-8 weeks",
			Difficulty:         "intermediate",
		}
		if has(easySkills, key) {
			rec.EstimatedTime = "2-4 weeks"
			rec.Difficulty = "beginner"
		}
		out = append(out, rec)
	}

	for _, skill := range important[:min(len(important), maxImportantRecommendations)] {
		out = append(out, Recommendation{
			Skill:              skill,
			Priority:           PriorityImportant,
			RecommendedCourses: coursesFor(skill),
			Platforms:          append([]string(nil), platforms[:2]...),
			EstimatedTime:      "3-6 weeks",
			Difficulty:         "intermediate",
		})
	}

	return out
}

func coursesFor(skill string) []string {
	if list, ok := courses[strings.ToLower(skill)]; ok {
		return append([]string(nil), list[:min(len(list), maxCourses)]...)
	}
	return []string{"Learn " + capitalize(skill)}
}

// capitalize upper-cases the first letter and lower-cases the rest. Casers
// are stateful, so each call builds its own.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.English).String(s[:size]) + cases.Lower(language.English).String(s[size:])
}

func lowerSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[strings.ToLower(name)] = struct{}{}
	}
	return out
}

func has(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
