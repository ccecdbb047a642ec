package analyzer

// Criteria a comparison can be decided by, in order of precedence.
const (
	ByOverall    = "overall_score"
	BySkills     = "skills"
	BySimilarity = "similarity"
	ByKeywords   = "keywords"
	BySections   = "sections"
	ByTie        = "tie"
)

// Comparison ranks two résumés against the same job. Winner is 1 or 2.
type Comparison struct {
	JobTitle  string `json:"job_title"`
	First     Result `json:"first"`
	Second    Result `json:"second"`
	Winner    int    `json:"winner"`
	DecidedBy string `json:"decided_by"`
	Margin    int    `json:"margin"`
}

type criterion struct {
	name  string
	value func(Result) int
}

var criteria = []criterion{
	{ByOverall, func(r Result) int { return r.OverallScore }},
	{BySkills, func(r Result) int { return r.Scores.Skills }},
	{BySimilarity, func(r Result) int { return r.Scores.Similarity }},
	{ByKeywords, func(r Result) int { return r.Scores.Keywords }},
	{BySections, func(r Result) int { return r.Scores.Sections }},
}

// Compare analyzes both résumés against one job. The winner has the higher
// overall score, then skills, similarity, keywords and sections scores; a
// full tie goes to the first résumé.
func (s *Service) Compare(first, second, jobDescription, jobTitle string) Comparison {
	c := Comparison{
		JobTitle:  jobTitle,
		First:     s.Analyze(first, jobDescription, jobTitle),
		Second:    s.Analyze(second, jobDescription, jobTitle),
		Winner:    1,
		DecidedBy: ByTie,
	}

	for _, crit := range criteria {
		a, b := crit.value(c.First), crit.value(c.Second)
		if a == b {
			continue
		}
		if b > a {
			c.Winner = 2
		}
		c.DecidedBy = crit.name
		c.Margin = max(a, b) - min(a, b)
		break
	}

	return c
}
