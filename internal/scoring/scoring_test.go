package scoring

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-matcher/internal/roles"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/textproc"
)

func TestRoundHalfToEven(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, round(2.5))
	assert.Equal(t, 4, round(3.5))
	assert.Equal(t, 0, round(0.5))
	assert.Equal(t, 3, round(2.6))
}

func TestSectionsScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, SectionsPresent{}.Score())
	assert.Equal(t, 100, SectionsPresent{Summary: true, Skills: true, Education: true, Experience: true, Projects: true}.Score())
	assert.Equal(t, 60, SectionsPresent{Skills: true, Experience: true}.Score())
}

func TestDetectSections(t *testing.T) {
	t.Parallel()

	s := textproc.SplitSections("Objective\nShip things\nProjects\nA compiler")
	got := DetectSections(s, false, nil, []string{"Intern at Acme"})

	assert.Equal(t, SectionsPresent{Summary: true, Experience: true, Projects: true}, got)
}

func TestScoresOverall(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 72, Scores{Similarity: 80, Skills: 75, Keywords: 50, Sections: 60}.Overall())
	assert.Equal(t, 100, Scores{Similarity: 100, Skills: 100, Keywords: 100, Sections: 100}.Overall())
	assert.Equal(t, 0, Scores{}.Overall())
}

func TestScoreJob(t *testing.T) {
	t.Parallel()

	text := "Skills\nPython, Docker, AWS\nExperience\n• Engineer at Acme 2019 - 2021"
	in := JobInput{
		ResumeText:     text,
		Sections:       textproc.SplitSections(text),
		Experience:     []string{"• Engineer at Acme 2019 - 2021"},
		ResumeSkills:   skills.NewSet("python", "docker", "aws"),
		JobSkills:      skills.NewSet("python", "docker", "aws", "kubernetes"),
		ResumeKeywords: []string{"python", "docker", "aws"},
		JobKeywords:    []string{"python", "kubernetes", "docker", "terraform"},
		Similarity:     0.8,
	}

	res := ScoreJob(in)

	assert.Equal(t, Scores{Similarity: 80, Skills: 75, Keywords: 50, Sections: 60}, res.Scores)
	assert.Equal(t, 72, res.Overall)
	assert.Equal(t, []string{"aws", "docker", "python"}, res.MatchedSkills)
	assert.Equal(t, []string{"kubernetes"}, res.MissingSkills)
	assert.Equal(t, []string{"kubernetes", "terraform"}, res.MissingKeywords)

	assert.Equal(t, []string{
		"Add missing job skills (only if you actually have them): kubernetes",
		"Improve keyword alignment: weave these terms into project/experience bullets naturally: kubernetes, terraform",
		"Add a Projects section with 2-4 role-relevant projects. Use action verbs + measurable results (%, time saved, users).",
		"Education looks weak or missing. Include degree, institute, year, and relevant coursework (especially for students).",
	}, res.Suggestions)
}

func TestScoreJobEmptyInput(t *testing.T) {
	t.Parallel()

	res := ScoreJob(JobInput{})

	assert.Equal(t, Scores{}, res.Scores)
	assert.Equal(t, 0, res.Overall)
	assert.NotNil(t, res.MissingSkills)
	assert.NotNil(t, res.MissingKeywords)
	assert.Len(t, res.Suggestions, 5, "projects, education, experience, relevance, bullets")
}

func TestScoreJobFallbackSuggestion(t *testing.T) {
	t.Parallel()

	text := "Summary\nBuilder\nProjects\n- shipped a thing\nEducation\nBS CS"
	in := JobInput{
		ResumeText:     text,
		Sections:       textproc.SplitSections(text),
		Education:      []string{"BS CS"},
		Experience:     []string{"Engineer"},
		ResumeSkills:   skills.NewSet("go"),
		JobSkills:      skills.NewSet("go"),
		ResumeKeywords: []string{"builder"},
		JobKeywords:    []string{"builder"},
		Similarity:     0.9,
	}

	res := ScoreJob(in)
	assert.Equal(t, []string{jobFallbackSuggestion}, res.Suggestions)
}

func TestListWithEllipsis(t *testing.T) {
	t.Parallel()

	var items []string
	for i := range 12 {
		items = append(items, fmt.Sprintf("s%02d", i))
	}

	got := listWithEllipsis(items)
	assert.True(t, strings.HasSuffix(got, "s09 …"), got)
	assert.NotContains(t, got, "s10")
	assert.Equal(t, "a, b", listWithEllipsis([]string{"a", "b"}))
}

func backendRole() roles.Requirements {
	return roles.Requirements{
		Title:           "Backend",
		RequiredSkills:  []string{"aws", "docker", "git", "python", "sql"},
		PreferredSkills: []string{"react", "redis"},
		Keywords:        []string{"api", "backend", "cloud"},
	}
}

func TestScoreRole(t *testing.T) {
	t.Parallel()

	text := "Skills\nPython, SQL, React, Team Leadership\nEducation\n• BS Computer Science"
	res := ScoreRole(RoleInput{
		Text:        text,
		Sections:    textproc.SplitSections(text),
		Education:   []string{"• BS Computer Science"},
		Extracted:   skills.NewSet("python", "sql", "react", "team leadership"),
		TopKeywords: []string{"python", "api", "sql"},
		Role:        backendRole(),
	})

	// skills round(0.4*70 + 0.5*20) = 38, keywords round(10/3) = 3, sections 4+3.
	assert.Equal(t, 48, res.Score)
	assert.Equal(t, []string{"python", "react", "sql"}, res.MatchedSkills)
	assert.Equal(t, []string{"aws", "docker", "git"}, res.MissingRequiredSkills)
	assert.Equal(t, []string{"redis"}, res.MissingPreferredSkills)
	assert.Equal(t, []string{"api"}, res.MatchedRoleKeywords)
	assert.Equal(t, []string{"python", "react", "sql", "team leadership"}, res.ExtractedSkills)
	assert.Empty(t, res.Experience)
	assert.NotNil(t, res.Experience)

	require.Len(t, res.Suggestions, 3)
	assert.Equal(t, "Add the missing required skills for this role: aws, docker, git", res.Suggestions[0])
	assert.Contains(t, res.Suggestions[1], "Your experience section looks weak.")
	assert.Contains(t, res.Suggestions[2], "Optimize keywords")
}

func TestScoreRoleEmptyText(t *testing.T) {
	t.Parallel()

	res := ScoreRole(RoleInput{Sections: textproc.SplitSections(""), Role: backendRole()})

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []string{}, res.MatchedSkills)
	assert.Len(t, res.Suggestions, 6, "everything but the length rule fires")
}

func TestScoreRoleLongText(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("é", 9001)
	res := ScoreRole(RoleInput{Text: text, Sections: textproc.Sections{}, Role: backendRole()})
	assert.Contains(t, res.Suggestions, "Your resume text seems long. Consider condensing to 1 page (students) or 1-2 pages (experienced) and prioritize recent, relevant work.")

	res = ScoreRole(RoleInput{Text: strings.Repeat("é", 9000), Sections: textproc.Sections{}, Role: backendRole()})
	assert.NotContains(t, strings.Join(res.Suggestions, "\n"), "seems long", "length counts characters, not bytes")
}

func TestScoreRoleWeakSkillsThreshold(t *testing.T) {
	t.Parallel()

	role := backendRole()
	base := RoleInput{Sections: textproc.Sections{}, Role: role}

	one := base
	one.Extracted = skills.NewSet("python")
	assert.Contains(t, strings.Join(ScoreRole(one).Suggestions, "\n"), "Strengthen your skills section")

	two := base
	two.Extracted = skills.NewSet("python", "sql")
	assert.NotContains(t, strings.Join(ScoreRole(two).Suggestions, "\n"), "Strengthen your skills section")
}
