package skills

import (
	"sort"
	"strings"
)

// AliasTable maps a canonical skill name to its surface forms.
// Matching any alias implies the canonical skill.
type AliasTable map[string][]string

// DefaultAliases is the built-in alias table.
var DefaultAliases = AliasTable{
	"javascript":         {"javascript", "js"},
	"typescript":         {"typescript", "ts"},
	"node":               {"node", "node.js", "nodejs"},
	"next.js":            {"next", "next.js", "nextjs"},
	"react":              {"react", "react.js", "reactjs"},
	"power bi":           {"power bi", "powerbi"},
	"ci/cd":              {"ci/cd", "cicd", "ci cd"},
	"rest":               {"rest", "rest api", "restful"},
	"unit testing":       {"unit testing", "unit tests", "pytest", "junit"},
	"data visualization": {"data visualization", "dataviz", "visualization", "charts"},
	"python":             {"python", "py"},
	"java":               {"java"},
	"sql":                {"sql", "structured query language"},
	"aws":                {"aws", "amazon web services"},
	"azure":              {"azure", "microsoft azure"},
	"gcp":                {"gcp", "google cloud platform"},
	"docker":             {"docker", "containerization"},
	"kubernetes":         {"kubernetes", "k8s"},
	"git":                {"git", "version control"},
	"graphql":            {"graphql", "gql"},
	"mongodb":            {"mongodb", "mongo"},
	"postgresql":         {"postgresql", "postgres"},
	"mysql":              {"mysql"},
	"redis":              {"redis", "cache"},
	"elasticsearch":      {"elasticsearch", "elastic"},
	"jenkins":            {"jenkins", "ci"},
	"terraform":          {"terraform", "iac"},
	"ansible":            {"ansible", "automation"},
	"bash":               {"bash", "shell", "sh"},
	"powershell":         {"powershell", "ps"},
	"linux":              {"linux", "ubuntu", "debian"},
	"html":               {"html", "markup"},
	"css":                {"css", "styles"},
	"tailwind":           {"tailwind", "tailwindcss"},
	"sass":               {"sass", "scss"},
	"flask":              {"flask", "python flask"},
	"fastapi":            {"fastapi", "python fastapi"},
	"django":             {"django", "python django"},
	"pandas":             {"pandas", "dataframes"},
	"numpy":              {"numpy", "arrays"},
	"excel":              {"excel", "spreadsheet"},
	"tableau":            {"tableau", "bi", "analytics"},
	"go":                 {"go", "golang"},
}

// Of returns the aliases of skill, or the skill itself when it has none.
func (t AliasTable) Of(skill string) []string {
	if aliases, ok := t[skill]; ok && len(aliases) > 0 {
		return aliases
	}
	return []string{skill}
}

// Canonical resolves a surface form to its canonical skill name.
// Unknown forms are returned lowercased.
func (t AliasTable) Canonical(form string) string {
	form = strings.ToLower(strings.TrimSpace(form))
	if _, ok := t[form]; ok {
		return form
	}
	canonicals := make([]string, 0, len(t))
	for canonical := range t {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)
	for _, canonical := range canonicals {
		for _, alias := range t[canonical] {
			if alias == form {
				return canonical
			}
		}
	}
	return form
}

// JobVocabulary is the technology list scanned by alias in job text. Aliases
// of the other KnownTech names are common words ("automation", "cache"), so
// those names only match literally.
var JobVocabulary = []string{
	"python", "java", "javascript", "typescript", "react", "node", "node.js", "next.js", "sql",
	"excel", "power bi", "tableau", "pandas", "numpy", "docker", "kubernetes", "aws", "git",
	"rest", "rest api", "linux", "flask", "fastapi", "django", "html", "css", "tailwind",
}

// KnownTech is the open vocabulary used when no role rubric constrains matching.
var KnownTech = []string{
	"python", "java", "javascript", "typescript", "react", "node", "node.js", "next.js", "sql", "excel",
	"power bi", "tableau", "pandas", "numpy", "docker", "kubernetes", "aws", "gcp", "azure", "git",
	"rest", "rest api", "graphql", "flask", "fastapi", "django", "html", "css", "tailwind", "sass",
	"mongodb", "postgresql", "mysql", "redis", "elasticsearch", "ci/cd", "jenkins", "github actions",
	"terraform", "ansible", "linux", "ubuntu", "windows", "macos", "bash", "powershell", "shell",
}

var knownTechSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(KnownTech))
	for _, name := range KnownTech {
		set[name] = struct{}{}
	}
	return set
}()

// IsKnownTech reports whether name is part of KnownTech.
func IsKnownTech(name string) bool {
	_, ok := knownTechSet[name]
	return ok
}
