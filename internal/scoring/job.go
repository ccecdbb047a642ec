package scoring

import (
	"sort"

	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/textproc"
)

// JobInput carries the résumé and job signals of the job path.
type JobInput struct {
	// ResumeText is the normalized résumé.
	ResumeText     string
	Sections       textproc.Sections
	Education      []string
	Experience     []string
	ResumeSkills   skills.Set
	JobSkills      skills.Set
	ResumeKeywords []string
	JobKeywords    []string
	// Similarity is the raw 0..1 textual similarity.
	Similarity float64
}

// JobResult is the scored outcome of the job path.
type JobResult struct {
	Overall         int             `json:"overall_score"`
	Scores          Scores          `json:"scores"`
	SectionsPresent SectionsPresent `json:"sections_present"`
	MatchedSkills   []string        `json:"matched_skills"`
	MissingSkills   []string        `json:"missing_skills"`
	MissingKeywords []string        `json:"missing_keywords"`
	Suggestions     []string        `json:"suggestions"`

	input        JobInput
	keywordRatio float64
}

// ScoreJob blends similarity, skill overlap, keyword overlap and section
// completeness into the overall score and derives suggestions.
func ScoreJob(in JobInput) JobResult {
	resumeSkills := orEmpty(in.ResumeSkills)
	jobSkills := orEmpty(in.JobSkills)
	resumeKW := skills.NewSet(in.ResumeKeywords...)
	jobKW := skills.NewSet(in.JobKeywords...)

	res := JobResult{input: in}

	res.MatchedSkills = jobSkills.Intersect(resumeSkills).Sorted()
	res.MissingSkills = missing(jobSkills.Sorted(), resumeSkills)
	res.MissingKeywords = missing(in.JobKeywords, resumeKW)

	res.keywordRatio = ratio(len(resumeKW.Intersect(jobKW)), len(jobKW))
	res.SectionsPresent = DetectSections(in.Sections, len(resumeSkills) > 0, in.Education, in.Experience)

	res.Scores = Scores{
		Similarity: percent(in.Similarity),
		Skills:     percent(ratio(len(res.MatchedSkills), len(jobSkills))),
		Keywords:   percent(res.keywordRatio),
		Sections:   res.SectionsPresent.Score(),
	}
	res.Overall = res.Scores.Overall()
	res.Suggestions = evaluate(jobSuggestionRules, &res, jobFallbackSuggestion)

	return res
}

// missing returns the names absent from set, sorted.
func missing(names []string, set skills.Set) []string {
	out := []string{}
	for _, name := range names {
		if !set.Has(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func orEmpty(s skills.Set) skills.Set {
	if s == nil {
		return skills.NewSet()
	}
	return s
}
