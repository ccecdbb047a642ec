// Package roles holds the static role catalog used by the single-role scoring
// path and the title rules that turn a bare job title into a synthetic job
// description.
package roles

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ErrUnknownRole is returned when a slug is not in the catalog.
var ErrUnknownRole = errors.New("unknown role")

const maxNameLen = 40

// Requirements is the rubric of one role archetype.
type Requirements struct {
	Title           string   `mapstructure:"title" json:"title"`
	RequiredSkills  []string `mapstructure:"required_skills" json:"required_skills"`
	PreferredSkills []string `mapstructure:"preferred_skills" json:"preferred_skills"`
	Keywords        []string `mapstructure:"keywords" json:"keywords"`
}

// Candidates returns the union of required, preferred skills and keywords.
func (r Requirements) Candidates() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range [][]string{r.RequiredSkills, r.PreferredSkills, r.Keywords} {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (r Requirements) normalized() (Requirements, error) {
	out := Requirements{Title: strings.TrimSpace(r.Title)}
	if out.Title == "" {
		return out, errors.New("title is empty")
	}

	var err error
	if out.RequiredSkills, err = normalizeNames(r.RequiredSkills); err != nil {
		return out, fmt.Errorf("required_skills: %w", err)
	}
	if out.PreferredSkills, err = normalizeNames(r.PreferredSkills); err != nil {
		return out, fmt.Errorf("preferred_skills: %w", err)
	}
	if out.Keywords, err = normalizeNames(r.Keywords); err != nil {
		return out, fmt.Errorf("keywords: %w", err)
	}
	return out, nil
}

func normalizeNames(names []string) ([]string, error) {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, errors.New("empty name")
		}
		if len(name) > maxNameLen {
			return nil, fmt.Errorf("%q is longer than %d characters", name, maxNameLen)
		}
		set[name] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Catalog maps role slugs to requirements. It is immutable once built.
type Catalog struct {
	roles map[string]Requirements
}

// NewCatalog builds a catalog from entries, normalizing every name.
func NewCatalog(entries map[string]Requirements) (*Catalog, error) {
	c := &Catalog{roles: make(map[string]Requirements, len(entries))}
	for slug, req := range entries {
		norm, err := req.normalized()
		if err != nil {
			return nil, fmt.Errorf("role %q: %w", slug, err)
		}
		c.roles[slug] = norm
	}
	return c, nil
}

// WithOverrides returns a new catalog where raw entries (as decoded from the
// "roles" config key) replace or extend the receiver's roles.
func (c *Catalog) WithOverrides(raw map[string]any) (*Catalog, error) {
	if len(raw) == 0 {
		return c, nil
	}

	var decoded map[string]Requirements
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &decoded,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("build roles decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	merged := make(map[string]Requirements, len(c.roles)+len(decoded))
	for slug, req := range c.roles {
		merged[slug] = req
	}
	for slug, req := range decoded {
		merged[strings.ToLower(strings.TrimSpace(slug))] = req
	}
	return NewCatalog(merged)
}

// Get returns the requirements for slug.
func (c *Catalog) Get(slug string) (Requirements, error) {
	req, ok := c.roles[slug]
	if !ok {
		return Requirements{}, fmt.Errorf("%w: %q", ErrUnknownRole, slug)
	}
	return req, nil
}

// Slugs lists every slug in ascending order.
func (c *Catalog) Slugs() []string {
	out := make([]string, 0, len(c.roles))
	for slug := range c.roles {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

var defaultCatalog = mustCatalog(builtinRoles)

// Default returns the built-in catalog.
func Default() *Catalog { return defaultCatalog }

func mustCatalog(entries map[string]Requirements) *Catalog {
	c, err := NewCatalog(entries)
	if err != nil {
		panic(err)
	}
	return c
}

func list(names ...string) []string { return names }

var builtinRoles = map[string]Requirements{
	"ai_engineer": {
		Title:           "AI Engineer",
		RequiredSkills:  list("python", "machine learning", "deep learning", "pytorch", "tensorflow", "llm"),
		PreferredSkills: list("docker", "aws", "mlops", "nlp", "langchain", "fastapi"),
		Keywords:        list("model", "inference", "training", "deployment", "prompt", "evaluation"),
	},
	"machine_learning_engineer": {
		Title:           "Machine Learning Engineer",
		RequiredSkills:  list("python", "machine learning", "scikit-learn", "pandas", "numpy", "sql"),
		PreferredSkills: list("pytorch", "tensorflow", "docker", "kubernetes", "mlops", "spark"),
		Keywords:        list("model", "features", "training", "pipeline", "evaluation", "production"),
	},
	"data_scientist": {
		Title:           "Data Scientist",
		RequiredSkills:  list("python", "sql", "statistics", "machine learning", "pandas"),
		PreferredSkills: list("numpy", "scikit-learn", "tableau", "matplotlib", "data visualization", "spark"),
		Keywords:        list("analysis", "experiment", "model", "insights", "hypothesis", "regression"),
	},
	"devops_engineer": {
		Title:           "DevOps Engineer",
		RequiredSkills:  list("aws", "ci/cd", "docker", "kubernetes", "linux", "terraform"),
		PreferredSkills: list("ansible", "bash", "git", "jenkins", "monitoring", "python"),
		Keywords:        list("automation", "deployment", "infrastructure", "pipelines", "reliability", "scalability"),
	},
	"cloud_architect": {
		Title:           "Cloud Architect",
		RequiredSkills:  list("aws", "azure", "gcp", "terraform", "networking", "security"),
		PreferredSkills: list("kubernetes", "docker", "serverless", "python", "ci/cd"),
		Keywords:        list("architecture", "migration", "design", "cost", "governance", "scalability"),
	},
	"site_reliability_engineer": {
		Title:           "Site Reliability Engineer",
		RequiredSkills:  list("linux", "kubernetes", "monitoring", "python", "go", "incident response"),
		PreferredSkills: list("prometheus", "grafana", "terraform", "aws", "bash"),
		Keywords:        list("reliability", "availability", "latency", "slo", "on-call", "automation"),
	},
	"cybersecurity_analyst": {
		Title:           "Cybersecurity Analyst",
		RequiredSkills:  list("network security", "siem", "incident response", "vulnerability assessment", "linux"),
		PreferredSkills: list("python", "firewalls", "splunk", "penetration testing", "cissp"),
		Keywords:        list("threat", "security", "compliance", "risk", "monitoring", "forensics"),
	},
	"security_engineer": {
		Title:           "Security Engineer",
		RequiredSkills:  list("application security", "cloud security", "python", "linux", "networking"),
		PreferredSkills: list("aws", "kubernetes", "penetration testing", "iam", "cryptography"),
		Keywords:        list("security", "threat", "vulnerability", "hardening", "compliance", "audit"),
	},
	"data_engineer": {
		Title:           "Data Engineer",
		RequiredSkills:  list("python", "sql", "spark", "etl", "airflow"),
		PreferredSkills: list("kafka", "aws", "docker", "dbt", "snowflake", "postgresql"),
		Keywords:        list("pipeline", "warehouse", "ingestion", "batch", "streaming", "data modeling"),
	},
	"frontend_engineer": {
		Title:           "Frontend Engineer",
		RequiredSkills:  list("javascript", "typescript", "react", "html", "css"),
		PreferredSkills: list("next.js", "tailwind", "redux", "unit testing", "graphql"),
		Keywords:        list("ui", "components", "responsive", "accessibility", "performance", "design"),
	},
	"backend_engineer": {
		Title:           "Backend Engineer",
		RequiredSkills:  list("python", "sql", "rest", "docker", "git"),
		PreferredSkills: list("postgresql", "redis", "kubernetes", "aws", "go", "kafka"),
		Keywords:        list("api", "services", "database", "scalability", "performance", "microservices"),
	},
	"product_manager": {
		Title:           "Product Manager",
		RequiredSkills:  list("product roadmap", "agile", "user stories", "prioritization", "stakeholder management"),
		PreferredSkills: list("jira", "sql", "analytics", "a/b testing", "market research"),
		Keywords:        list("product", "customers", "strategy", "launch", "metrics", "requirements"),
	},
	"data_analyst": {
		Title:           "Data Analyst",
		RequiredSkills:  list("sql", "excel", "python", "data visualization", "statistics"),
		PreferredSkills: list("power bi", "tableau", "pandas", "numpy"),
		Keywords:        list("analysis", "dashboard", "insights", "reporting", "kpi", "data"),
	},
	"web_developer": {
		Title:           "Web Developer",
		RequiredSkills:  list("html", "css", "javascript", "react", "git"),
		PreferredSkills: list("node", "typescript", "next.js", "tailwind", "rest"),
		Keywords:        list("website", "responsive", "frontend", "deployment", "ui", "performance"),
	},
	"software_developer": {
		Title:           "Software Developer",
		RequiredSkills:  list("python", "java", "javascript", "git", "sql"),
		PreferredSkills: list("docker", "rest", "unit testing", "ci/cd", "aws"),
		Keywords:        list("software", "development", "debugging", "testing", "design", "api"),
	},
	"sales_executive": {
		Title:           "Sales Executive",
		RequiredSkills:  list("crm", "negotiation", "communication", "prospecting", "closing"),
		PreferredSkills: list("salesforce", "pipeline management", "microsoft office", "powerpoint"),
		Keywords:        list("sales", "revenue", "quota", "clients", "leads", "targets"),
	},
	"marketing_manager": {
		Title:           "Marketing Manager",
		RequiredSkills:  list("seo", "content marketing", "social media", "analytics", "campaigns"),
		PreferredSkills: list("sem", "branding", "copywriting", "google analytics"),
		Keywords:        list("marketing", "brand", "growth", "audience", "engagement", "conversion"),
	},
	"project_manager": {
		Title:           "Project Manager",
		RequiredSkills:  list("project planning", "risk management", "stakeholder management", "budgeting", "agile"),
		PreferredSkills: list("ms project", "jira", "asana", "trello", "scrum"),
		Keywords:        list("delivery", "timeline", "scope", "milestones", "coordination", "reporting"),
	},
	"hr_manager": {
		Title:           "HR Manager",
		RequiredSkills:  list("recruiting", "onboarding", "performance management", "labor law"),
		PreferredSkills: list("hris", "payroll", "benefits administration"),
		Keywords:        list("employees", "talent", "culture", "retention", "policy", "hiring"),
	},
	"consultant": {
		Title:           "Consultant",
		RequiredSkills:  list("problem solving", "stakeholder management", "presentation", "excel"),
		PreferredSkills: list("powerpoint", "reporting", "data analysis", "sql"),
		Keywords:        list("clients", "strategy", "recommendations", "analysis", "engagement", "delivery"),
	},
	"designer": {
		Title:           "UI/UX Designer",
		RequiredSkills:  list("figma", "prototyping", "wireframing", "usability testing"),
		PreferredSkills: list("sketch", "adobe xd", "design systems", "html", "css"),
		Keywords:        list("design", "user", "research", "interface", "experience", "accessibility"),
	},
}
