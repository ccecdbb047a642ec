package roles

import (
	"strings"
	"unicode"

	"github.com/spigell/resume-matcher/internal/textproc"
)

// title is a lowercase job title with its word list, for rule predicates.
type title struct {
	text  string
	words map[string]struct{}
}

func newTitle(raw string) title {
	t := title{text: strings.ToLower(strings.TrimSpace(raw)), words: make(map[string]struct{})}
	for _, w := range strings.FieldsFunc(t.text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		t.words[w] = struct{}{}
	}
	return t
}

// has reports whether any of subs occurs in the title as a substring.
func (t title) has(subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(t.text, s) {
			return true
		}
	}
	return false
}

// word reports whether any of ws is a whole word of the title. Short
// abbreviations go through here so "ai" does not fire on "maintenance".
func (t title) word(ws ...string) bool {
	for _, w := range ws {
		if _, ok := t.words[w]; ok {
			return true
		}
	}
	return false
}

type titleRule struct {
	match func(t title) bool
	// slug selects a catalog template.
	slug string
	// skills is a generic core-skill list used when slug is empty.
	skills []string
}

var developerOrEngineer = func(t title) bool { return t.has("developer", "engineer") }

// titleRules is evaluated top to bottom; the first match wins.
var titleRules = []titleRule{
	{match: func(t title) bool { return t.word("ai") && developerOrEngineer(t) }, slug: "ai_engineer"},
	{match: func(t title) bool { return t.has("machine learning") || t.word("ml") }, slug: "machine_learning_engineer"},
	{match: func(t title) bool { return t.has("data scientist", "data science") }, slug: "data_scientist"},
	{match: func(t title) bool { return t.has("devops") }, slug: "devops_engineer"},
	{match: func(t title) bool { return t.has("cloud") && t.has("architect") }, slug: "cloud_architect"},
	{match: func(t title) bool { return t.has("site reliability") || t.word("sre") }, slug: "site_reliability_engineer"},
	{match: func(t title) bool { return t.has("cybersecurity", "cyber security") }, slug: "cybersecurity_analyst"},
	{match: func(t title) bool { return t.has("security") && t.has("engineer") }, slug: "security_engineer"},
	{match: func(t title) bool { return t.has("data") && t.has("engineer") }, slug: "data_engineer"},
	{match: func(t title) bool { return t.has("frontend", "front-end") && developerOrEngineer(t) }, slug: "frontend_engineer"},
	{match: func(t title) bool { return t.has("backend", "back-end") && developerOrEngineer(t) }, slug: "backend_engineer"},
	{match: func(t title) bool { return t.has("product") && t.has("manager", "owner") }, slug: "product_manager"},
	{match: func(t title) bool { return t.has("data") && t.has("analyst") }, slug: "data_analyst"},
	{match: func(t title) bool { return t.has("web") && t.has("developer") }, slug: "web_developer"},
	{match: developerOrEngineer, slug: "software_developer"},
	{match: func(t title) bool { return t.has("sales") && t.has("executive", "manager", "representative") }, slug: "sales_executive"},
	{match: func(t title) bool { return t.has("marketing") && t.has("manager", "specialist", "coordinator") }, slug: "marketing_manager"},
	{match: func(t title) bool { return t.has("project") && t.has("manager", "coordinator") }, slug: "project_manager"},
	{match: func(t title) bool { return (t.has("human") && t.has("resources")) || t.word("hr") }, slug: "hr_manager"},
	{match: func(t title) bool { return t.has("consultant", "advisor") }, slug: "consultant"},
	{match: func(t title) bool { return t.has("designer") && t.word("ux", "ui") }, slug: "designer"},

	{match: func(t title) bool { return t.has("analyst") }, skills: []string{"sql", "excel", "python", "statistics", "power bi", "tableau", "data visualization"}},
	{match: func(t title) bool { return t.has("frontend", "front-end", "react") }, skills: []string{"javascript", "react", "html", "css", "typescript", "rest"}},
	{match: func(t title) bool { return t.has("backend", "back-end") }, skills: []string{"python", "sql", "rest", "docker", "aws", "git"}},
	{match: func(t title) bool { return t.has("full") && t.has("stack") }, skills: []string{"javascript", "react", "node", "python", "sql", "rest", "git"}},
	{match: func(t title) bool { return t.has("sales") }, skills: []string{"salesforce", "crm", "negotiation", "communication", "prospecting", "closing", "pipeline management", "microsoft office", "powerpoint"}},
	{match: func(t title) bool { return t.has("marketing") }, skills: []string{"seo", "sem", "content marketing", "social media", "analytics", "campaigns", "branding", "copywriting", "google analytics"}},
	{match: func(t title) bool { return t.has("product") }, skills: []string{"product roadmap", "agile", "scrum", "user stories", "prioritization", "market research", "jira", "confluence"}},
	{match: func(t title) bool { return t.has("project") }, skills: []string{"project planning", "risk management", "stakeholder management", "budgeting", "timeline", "ms project", "asana", "trello"}},
	{match: func(t title) bool { return t.has("human") }, skills: []string{"recruiting", "onboarding", "performance management", "hris", "payroll", "benefits administration", "labor law"}},
	{match: func(t title) bool { return t.has("designer") }, skills: []string{"figma", "sketch", "adobe xd", "prototyping", "wireframing", "usability testing", "design systems"}},
}

var fallbackSkills = []string{"python", "javascript", "git", "sql", "rest"}

// MatchTitle returns the catalog slug selected by the first matching title
// rule, or "" when the title only maps to a generic skill list.
func MatchTitle(jobTitle string) string {
	rule, ok := matchRule(newTitle(jobTitle))
	if !ok {
		return ""
	}
	return rule.slug
}

func matchRule(t title) (titleRule, bool) {
	if t.text == "" {
		return titleRule{}, false
	}
	for _, rule := range titleRules {
		if rule.match(t) {
			return rule, true
		}
	}
	return titleRule{}, false
}

// JobDescriptionFromTitle synthesizes a job description from a bare title
// using the built-in catalog.
func JobDescriptionFromTitle(jobTitle string) string {
	return defaultCatalog.DescriptionFromTitle(jobTitle)
}

// DescriptionFromTitle synthesizes a job description for jobTitle. Titles
// mapping to a catalog role get a structured template; everything else gets a
// generic core-skill list. A blank title yields "".
func (c *Catalog) DescriptionFromTitle(jobTitle string) string {
	t := newTitle(jobTitle)
	if t.text == "" {
		return ""
	}

	rule, ok := matchRule(t)
	if ok && rule.slug != "" {
		if req, err := c.Get(rule.slug); err == nil {
			return "Job Title: " + req.Title + "\n" +
				"Required skills: " + strings.Join(req.RequiredSkills, ", ") + "\n" +
				"Preferred skills: " + strings.Join(req.PreferredSkills, ", ") + "\n" +
				"Keywords: " + strings.Join(req.Keywords, ", ")
		}
	}

	skills := fallbackSkills
	if ok && len(rule.skills) > 0 {
		skills = rule.skills
	}

	trimmed := strings.TrimSpace(jobTitle)
	focus := strings.Join(textproc.Tokenize(trimmed), " ")
	if focus == "" {
		focus = trimmed
	}

	return "Job Title: " + trimmed + "\n" +
		"Core skills: " + strings.Join(skills, ", ") + "\n" +
		"Focus areas: " + focus
}
