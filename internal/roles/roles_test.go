package roles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogInvariants(t *testing.T) {
	t.Parallel()

	c := Default()
	require.NotEmpty(t, c.Slugs())

	for _, slug := range c.Slugs() {
		req, err := c.Get(slug)
		require.NoError(t, err)
		assert.NotEmpty(t, req.Title, slug)
		assert.NotEmpty(t, req.RequiredSkills, slug)

		for _, name := range req.Candidates() {
			assert.NotEmpty(t, name, slug)
			assert.LessOrEqual(t, len(name), maxNameLen, slug)
			assert.Equal(t, strings.ToLower(name), name, slug)
		}
	}
}

func TestGetUnknownRole(t *testing.T) {
	t.Parallel()

	_, err := Default().Get("astronaut")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestMatchTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title  string
		expect string
	}{
		{"DevOps Engineer", "devops_engineer"},
		{"Senior AI Engineer", "ai_engineer"},
		{"ML Researcher", "machine_learning_engineer"},
		{"Maintenance Engineer", "software_developer"},
		{"Cloud Solutions Architect", "cloud_architect"},
		{"SRE", "site_reliability_engineer"},
		{"Cyber Security Analyst", "cybersecurity_analyst"},
		{"Big Data Engineer", "data_engineer"},
		{"Frontend Developer", "frontend_engineer"},
		{"Junior Data Analyst", "data_analyst"},
		{"Web Developer", "web_developer"},
		{"Product Owner", "product_manager"},
		{"Regional Sales Manager", "sales_executive"},
		{"HR Business Partner", "hr_manager"},
		{"UX Designer", "designer"},
		{"Financial Analyst", ""},
		{"Chef", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expect, MatchTitle(tt.title))
		})
	}
}

func TestJobDescriptionFromTitleTemplate(t *testing.T) {
	t.Parallel()

	got := JobDescriptionFromTitle("DevOps Engineer")
	assert.Equal(t, "Job Title: DevOps Engineer\n"+
		"Required skills: aws, ci/cd, docker, kubernetes, linux, terraform\n"+
		"Preferred skills: ansible, bash, git, jenkins, monitoring, python\n"+
		"Keywords: automation, deployment, infrastructure, pipelines, reliability, scalability", got)
}

func TestJobDescriptionFromTitleGeneric(t *testing.T) {
	t.Parallel()

	got := JobDescriptionFromTitle("  Financial Analyst ")
	assert.Equal(t, "Job Title: Financial Analyst\n"+
		"Core skills: sql, excel, python, statistics, power bi, tableau, data visualization\n"+
		"Focus areas: financial analyst", got)

	got = JobDescriptionFromTitle("Chef")
	assert.Equal(t, "Job Title: Chef\nCore skills: python, javascript, git, sql, rest\nFocus areas: chef", got)

	assert.Empty(t, JobDescriptionFromTitle("   "))
}

func TestWithOverrides(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"Platform_Engineer": map[string]any{
			"title":            "Platform Engineer",
			"required_skills":  []any{"Go", "Kubernetes"},
			"preferred_skills": []any{"terraform"},
			"keywords":         []any{"platform"},
		},
	}

	c, err := Default().WithOverrides(raw)
	require.NoError(t, err)

	req, err := c.Get("platform_engineer")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "kubernetes"}, req.RequiredSkills)

	_, err = c.Get("devops_engineer")
	assert.NoError(t, err, "built-in roles survive overrides")

	_, err = Default().Get("platform_engineer")
	assert.ErrorIs(t, err, ErrUnknownRole, "default catalog is not mutated")
}

func TestWithOverridesRejectsBadEntries(t *testing.T) {
	t.Parallel()

	_, err := Default().WithOverrides(map[string]any{
		"x": map[string]any{"title": "X", "required_skills": []any{strings.Repeat("a", 41)}},
	})
	assert.Error(t, err)

	_, err = Default().WithOverrides(map[string]any{
		"x": map[string]any{"title": "X", "unexpected": true},
	})
	assert.Error(t, err)
}
