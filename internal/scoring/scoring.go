// Package scoring turns extracted signals into 0-100 integer scores and an
// ordered list of improvement suggestions.
//
// Two paths exist. The role path scores a résumé against a catalog role
// rubric. The job path blends textual similarity, skill overlap, keyword
// overlap and section completeness against an arbitrary job description.
package scoring

import (
	"math"
	"strings"

	"github.com/spigell/resume-matcher/internal/textproc"
)

// maxListed is how many missing items a suggestion spells out.
const maxListed = 10

// Section weights of the job path, in points out of 100.
var sectionWeights = map[string]int{
	textproc.SectionSummary:    10,
	textproc.SectionSkills:     25,
	textproc.SectionEducation:  15,
	textproc.SectionExperience: 35,
	textproc.SectionProjects:   15,
}

// Blend weights of the job-path overall score.
const (
	weightSimilarity = 0.45
	weightSkills     = 0.30
	weightKeywords   = 0.15
	weightSections   = 0.10
)

// SectionsPresent records which résumé sections carry content.
type SectionsPresent struct {
	Summary    bool `json:"summary"`
	Skills     bool `json:"skills"`
	Education  bool `json:"education"`
	Experience bool `json:"experience"`
	Projects   bool `json:"projects"`
}

// DetectSections fills SectionsPresent from the split sections and the
// extracted entities. Skills, education and experience also count as present
// when their extractor found something outside a dedicated section.
func DetectSections(s textproc.Sections, haveSkills bool, education, experience []string) SectionsPresent {
	return SectionsPresent{
		Summary:    s.Has(textproc.SectionSummary, textproc.SectionProfessionalSummary, textproc.SectionObjective),
		Skills:     s.Has(textproc.SectionSkills, textproc.SectionTechnicalSkills) || haveSkills,
		Education:  s.Has(textproc.SectionEducation) || len(education) > 0,
		Experience: s.Has(textproc.SectionExperience, textproc.SectionWorkExperience) || len(experience) > 0,
		Projects:   s.Has(textproc.SectionProjects),
	}
}

// Score is the weighted completeness of the present sections, 0..100.
func (p SectionsPresent) Score() int {
	total := 0
	for label, present := range map[string]bool{
		textproc.SectionSummary:    p.Summary,
		textproc.SectionSkills:     p.Skills,
		textproc.SectionEducation:  p.Education,
		textproc.SectionExperience: p.Experience,
		textproc.SectionProjects:   p.Projects,
	} {
		if present {
			total += sectionWeights[label]
		}
	}
	return total
}

// Scores holds the job-path sub-scores, each 0..100.
type Scores struct {
	Similarity int `json:"similarity"`
	Skills     int `json:"skills"`
	Keywords   int `json:"keywords"`
	Sections   int `json:"sections"`
}

// Overall blends the sub-scores into the job-path overall score.
func (s Scores) Overall() int {
	return clamp(round(
		float64(s.Similarity)*weightSimilarity +
			float64(s.Skills)*weightSkills +
			float64(s.Keywords)*weightKeywords +
			float64(s.Sections)*weightSections,
	))
}

// ratio is matched/total with the denominator floored at 1.
func ratio(matched, total int) float64 {
	return float64(matched) / float64(max(1, total))
}

// percent maps a 0..1 ratio to an integer 0..100.
func percent(r float64) int {
	return clamp(round(math.Max(0, math.Min(1, r)) * 100))
}

// round rounds half to even so scores match banker's rounding.
func round(v float64) int {
	return int(math.RoundToEven(v))
}

func clamp(v int) int {
	return max(0, min(100, v))
}

// listWithEllipsis joins up to maxListed items and appends " …" when more remain.
func listWithEllipsis(items []string) string {
	shown := items
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	out := strings.Join(shown, ", ")
	if len(items) > maxListed {
		out += " …"
	}
	return out
}

// HasBullets reports whether text uses bullet markers.
func HasBullets(text string) bool {
	return strings.Contains(text, "•") || strings.Contains(text, "\n- ")
}
