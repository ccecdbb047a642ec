package scoring

import (
	"sort"

	"github.com/spigell/resume-matcher/internal/roles"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/textproc"
)

// Role-path points.
const (
	roleRequiredPoints  = 70
	rolePreferredPoints = 20
	roleKeywordPoints   = 10
	roleSkillsPoints    = 4
	roleEduPoints       = 3
	roleExpPoints       = 3
)

// RoleInput carries the résumé signals of the role path.
type RoleInput struct {
	// Text is the normalized résumé.
	Text        string
	Sections    textproc.Sections
	Education   []string
	Experience  []string
	Extracted   skills.Set
	TopKeywords []string
	Role        roles.Requirements
}

// RoleResult is the outcome of scoring a résumé against one catalog role.
type RoleResult struct {
	Score                  int      `json:"score"`
	Education              []string `json:"education"`
	Experience             []string `json:"experience"`
	ExtractedSkills        []string `json:"extracted_skills"`
	MatchedSkills          []string `json:"matched_skills"`
	MissingRequiredSkills  []string `json:"missing_required_skills"`
	MissingPreferredSkills []string `json:"missing_preferred_skills"`
	TopKeywords            []string `json:"top_keywords"`
	MatchedRoleKeywords    []string `json:"matched_role_keywords"`
	Suggestions            []string `json:"suggestions"`

	text            string
	role            roles.Requirements
	matchedRequired []string
	keywordRatio    float64
}

// ScoreRole scores in against its role rubric. The score is
// round(70*required + 20*preferred) + round(10*keywords) + section points,
// clamped to 0..100.
func ScoreRole(in RoleInput) RoleResult {
	res := RoleResult{
		Education:   nonNil(in.Education),
		Experience:  nonNil(in.Experience),
		TopKeywords: nonNil(in.TopKeywords),
		text:        in.Text,
		role:        in.Role,
	}

	extracted := in.Extracted
	if extracted == nil {
		extracted = skills.NewSet()
	}
	res.ExtractedSkills = extracted.Sorted()

	var matchedPreferred []string
	res.matchedRequired, res.MissingRequiredSkills = partition(in.Role.RequiredSkills, extracted)
	matchedPreferred, res.MissingPreferredSkills = partition(in.Role.PreferredSkills, extracted)

	top := skills.NewSet(in.TopKeywords...)
	res.MatchedRoleKeywords, _ = partition(in.Role.Keywords, top)

	reqRatio := ratio(len(res.matchedRequired), len(in.Role.RequiredSkills))
	prefRatio := ratio(len(matchedPreferred), len(in.Role.PreferredSkills))
	res.keywordRatio = ratio(len(res.MatchedRoleKeywords), len(in.Role.Keywords))

	skillScore := round(reqRatio*roleRequiredPoints + prefRatio*rolePreferredPoints)
	keywordScore := round(res.keywordRatio * roleKeywordPoints)

	sectionScore := 0
	if in.Sections.Has(textproc.SectionSkills, textproc.SectionTechnicalSkills) || len(extracted) > 0 {
		sectionScore += roleSkillsPoints
	}
	if in.Sections.Has(textproc.SectionEducation) || len(in.Education) > 0 {
		sectionScore += roleEduPoints
	}
	if in.Sections.Has(textproc.SectionExperience, textproc.SectionWorkExperience) || len(in.Experience) > 0 {
		sectionScore += roleExpPoints
	}

	res.Score = clamp(skillScore + keywordScore + sectionScore)
	res.MatchedSkills = union(res.matchedRequired, matchedPreferred)
	res.Suggestions = evaluate(roleSuggestionRules, &res, roleFallbackSuggestion)

	return res
}

// partition splits names into those present in set and those absent, both sorted.
func partition(names []string, set skills.Set) (present, absent []string) {
	present, absent = []string{}, []string{}
	for _, name := range names {
		if set.Has(name) {
			present = append(present, name)
		} else {
			absent = append(absent, name)
		}
	}
	sort.Strings(present)
	sort.Strings(absent)
	return present, absent
}

func union(a, b []string) []string {
	set := skills.NewSet(a...)
	for _, name := range b {
		set.Add(name)
	}
	return set.Sorted()
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
