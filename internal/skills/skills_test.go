package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzyMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b   string
		expect bool
	}{
		{"python", "python", true},
		{"python", "phthon", true},
		{"python", "pythons", true},
		{"python", "pyhon", true},
		{"python", "java", false},
		{"docker", "dockerfile", false},
		{"react", "ract", true},
		{"go", "do", true},
		{"abcx", "abd", false},
		{"", "a", true},
		{"", "ab", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, FuzzyMatch(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
		assert.Equal(t, tt.expect, FuzzyMatch(tt.b, tt.a), "%q vs %q (swapped)", tt.b, tt.a)
	}
}

func TestExtractAliasesResolveToCanonical(t *testing.T) {
	t.Parallel()

	e := New(nil)
	got := e.Extract("proficient in JS and Node.js", NewSet("javascript", "node"), Strict)
	assert.Equal(t, []string{"javascript", "node"}, got.Sorted())
}

func TestExtractEveryAliasResolves(t *testing.T) {
	t.Parallel()

	e := New(nil)
	for canonical, aliases := range DefaultAliases {
		for _, alias := range aliases {
			got := e.Extract("worked with "+alias+" daily", NewSet(canonical), Strict)
			assert.True(t, got.Has(canonical), "alias %q should resolve to %q", alias, canonical)
		}
	}
}

func TestExtractWordBoundaries(t *testing.T) {
	t.Parallel()

	e := New(nil)
	got := e.Extract("javascripting and scss-like things", NewSet("java", "css"), Strict)
	assert.Empty(t, got)
}

func TestExtractStrictKeepsSectionFragments(t *testing.T) {
	t.Parallel()

	text := "Summary\nBuilder of things\nSkills\nPython, K8s | Team Leadership • Rust\n- Go:"
	got := New(nil).Extract(text, NewSet("python", "kubernetes"), Strict)

	assert.ElementsMatch(t, []string{"python", "kubernetes", "team leadership", "rust", "go"}, got.Sorted())
}

func TestExtractPermissiveFuzzy(t *testing.T) {
	t.Parallel()

	text := "Skills\nPyton, Dockr\n\nBuilt services with kubernets"
	got := New(nil).Extract(text, NewSet("python", "docker", "kubernetes", "terraform"), Permissive)

	assert.True(t, got.Has("python"))
	assert.True(t, got.Has("docker"))
	assert.True(t, got.Has("kubernetes"))
	assert.False(t, got.Has("terraform"))
	assert.False(t, got.Has("pyton"), "permissive mode drops unmatched fragments")
}

func TestExtractPermissiveKnownTechFallback(t *testing.T) {
	t.Parallel()

	got := New(nil).Extract("Deployed with ansible on ubuntu", NewSet("python"), Permissive)
	assert.True(t, got.Has("ansible"))
	assert.True(t, got.Has("ubuntu"))
	assert.False(t, got.Has("python"))
}

func TestExtractOpenDiscoversKnownTech(t *testing.T) {
	t.Parallel()

	text := "Job Title: DevOps Engineer\nRequired skills: aws, ci/cd, docker, kubernetes, terraform"
	got := New(nil).Extract(text, nil, Open)

	for _, skill := range []string{"aws", "ci/cd", "docker", "kubernetes", "terraform"} {
		assert.True(t, got.Has(skill), "expected %q", skill)
	}
}

func TestExtractOpenIgnoresCommonWordAliases(t *testing.T) {
	t.Parallel()

	got := New(nil).Extract("We value automation and cache design and analytics. Shell access via CI.", nil, Open)

	assert.Equal(t, []string{"shell", "tableau"}, got.Sorted())
	for _, skill := range []string{"ansible", "redis", "jenkins", "bash", "elasticsearch"} {
		assert.False(t, got.Has(skill), "unexpected %q", skill)
	}
}

func TestExtractOpenMatchesKnownTechLiterally(t *testing.T) {
	t.Parallel()

	got := New(nil).Extract("Experience with Redis, Ansible and GitHub Actions; JS a plus", nil, Open)

	assert.Equal(t, []string{"ansible", "github actions", "javascript", "redis"}, got.Sorted())
}

func TestExtractEmptyText(t *testing.T) {
	t.Parallel()

	e := New(nil)
	for _, mode := range []Mode{Strict, Permissive, Open} {
		assert.Empty(t, e.Extract("", NewSet("python"), mode), mode.String())
	}
}

func TestExtractLengthBounds(t *testing.T) {
	t.Parallel()

	text := "Skills\nx, this fragment is far too long to be considered a real skill name, sql"
	got := New(nil).Extract(text, nil, Strict)
	assert.Equal(t, []string{"sql"}, got.Sorted())
}

func TestFragments(t *testing.T) {
	t.Parallel()

	got := Fragments("Go, Rust | – SQL –\n• Kafka:")
	assert.Equal(t, []string{"go", "rust", "sql", "kafka"}, got)
}

func TestAliasTableCanonical(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "kubernetes", DefaultAliases.Canonical("K8s"))
	assert.Equal(t, "javascript", DefaultAliases.Canonical("javascript"))
	assert.Equal(t, "haskell", DefaultAliases.Canonical(" Haskell "))
}

func TestSetOperations(t *testing.T) {
	t.Parallel()

	a := NewSet("Go", " python ", "")
	b := NewSet("python", "rust")

	assert.Equal(t, []string{"go", "python"}, a.Sorted())
	assert.Equal(t, []string{"python"}, a.Intersect(b).Sorted())

	c := a.Clone()
	c.Add("java")
	assert.False(t, a.Has("java"))
}
