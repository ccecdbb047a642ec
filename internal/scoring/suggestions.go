package scoring

import "unicode/utf8"

// suggestionRule fires message when when holds. Rules are independent and
// evaluated in order, so the most actionable advice comes first.
type suggestionRule[T any] struct {
	when    func(T) bool
	message func(T) string
}

func evaluate[T any](rules []suggestionRule[T], in T, fallback string) []string {
	var out []string
	for _, r := range rules {
		if r.when(in) {
			out = append(out, r.message(in))
		}
	}
	if len(out) == 0 {
		out = append(out, fallback)
	}
	return out
}

func text[T any](msg string) func(T) string {
	return func(T) string { return msg }
}

var jobSuggestionRules = []suggestionRule[*JobResult]{
	{
		when: func(r *JobResult) bool { return len(r.MissingSkills) > 0 },
		message: func(r *JobResult) string {
			return "Add missing job skills (only if you actually have them): " + listWithEllipsis(r.MissingSkills)
		},
	},
	{
		when: func(r *JobResult) bool { return len(r.MissingKeywords) > 0 },
		message: func(r *JobResult) string {
			return "Improve keyword alignment: weave these terms into project/experience bullets naturally: " + listWithEllipsis(r.MissingKeywords)
		},
	},
	{
		when:    func(r *JobResult) bool { return !r.SectionsPresent.Projects },
		message: text[*JobResult]("Add a Projects section with 2-4 role-relevant projects. Use action verbs + measurable results (%, time saved, users)."),
	},
	{
		when:    func(r *JobResult) bool { return len(r.input.Education) == 0 },
		message: text[*JobResult]("Education looks weak or missing. Include degree, institute, year, and relevant coursework (especially for students)."),
	},
	{
		when:    func(r *JobResult) bool { return len(r.input.Experience) == 0 },
		message: text[*JobResult]("Experience looks weak. Add internships, freelance, volunteer work, or project impact bullets to strengthen ATS signals."),
	},
	{
		when: func(r *JobResult) bool {
			return r.Scores.Similarity < lowSimilarity || r.keywordRatio < lowKeywordRatio
		},
		message: text[*JobResult]("Tailor the top summary to match the job title and core requirements (2-3 lines) so recruiters see relevance immediately."),
	},
	{
		when:    func(r *JobResult) bool { return !HasBullets(r.input.ResumeText) },
		message: text[*JobResult]("Use bullet points in Experience/Projects (2-5 bullets each). This improves readability and ATS parsing."),
	},
}

const jobFallbackSuggestion = "Good alignment. Next: strengthen impact with numbers and tailor 1-2 strongest projects directly to the job requirements."

var roleSuggestionRules = []suggestionRule[*RoleResult]{
	{
		when: func(r *RoleResult) bool { return len(r.MissingRequiredSkills) > 0 },
		message: func(r *RoleResult) string {
			return "Add the missing required skills for this role: " + listWithEllipsis(r.MissingRequiredSkills)
		},
	},
	{
		when: func(r *RoleResult) bool {
			return len(r.matchedRequired) < max(2, int(0.4*float64(len(r.role.RequiredSkills))))
		},
		message: text[*RoleResult]("Strengthen your skills section by listing tools/technologies you actually used in projects (not just familiar with)."),
	},
	{
		when:    func(r *RoleResult) bool { return len(r.Education) == 0 },
		message: text[*RoleResult]("Your education section looks weak or missing. Add degree, institute, graduation year, and relevant coursework (if student/fresher)."),
	},
	{
		when:    func(r *RoleResult) bool { return len(r.Experience) == 0 },
		message: text[*RoleResult]("Your experience section looks weak. Add internships, projects, freelance work, or campus roles with measurable impact (numbers, outcomes)."),
	},
	{
		when:    func(r *RoleResult) bool { return r.keywordRatio < lowKeywordRatio },
		message: text[*RoleResult]("Optimize keywords: include more role-relevant terms naturally inside project and experience bullet points (avoid keyword stuffing)."),
	},
	{
		when:    func(r *RoleResult) bool { return !HasBullets(r.text) },
		message: text[*RoleResult]("Use bullet points in experience/projects (2-5 bullets each) to improve readability and ATS parsing."),
	},
	{
		when:    func(r *RoleResult) bool { return utf8.RuneCountInString(r.text) > longResumeChars },
		message: text[*RoleResult]("Your resume text seems long. Consider condensing to 1 page (students) or 1-2 pages (experienced) and prioritize recent, relevant work."),
	},
}

const roleFallbackSuggestion = "Your resume is already fairly aligned. Next, tailor 1-2 strongest projects to match this role and add measurable outcomes (%, time saved, users, revenue)."

const (
	lowSimilarity   = 55
	lowKeywordRatio = 0.34
	longResumeChars = 9000
)
