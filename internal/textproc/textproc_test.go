package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "empty", input: "", expect: ""},
		{name: "trims", input: "  hello  ", expect: "hello"},
		{name: "nbsp", input: "hello\u00a0world\u00a0", expect: "hello world"},
		{name: "tabs and carriage returns", input: "a\t\t\r\nb", expect: "a \nb"},
		{name: "collapses newlines", input: "a\n\n\n\n\nb", expect: "a\n\nb"},
		{name: "keeps double newline", input: "a\n\nb", expect: "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"\t\t",
		" \n\n\n ",
		"Skills\r\n\r\n\r\nGo,\tPython\n\n\n\n",
		"a \n \n \nb",
		"   lead \t\t trail   ",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := Tokenize("I am a Go developer with Node.js, C++ and CI/CD on AWS. Go go")
	assert.Equal(t, []string{"developer", "node.js", "c++", "ci/cd", "aws."}, got)
}

func TestTokenizeKeepsDuplicatesAndOrder(t *testing.T) {
	t.Parallel()

	got := Tokenize("python docker python kubernetes docker")
	assert.Equal(t, []string{"python", "docker", "python", "kubernetes", "docker"}, got)
}

func TestTokensIsRestartable(t *testing.T) {
	t.Parallel()

	seq := Tokens("terraform ansible terraform")

	var first, second []string
	for tok := range seq {
		first = append(first, tok)
	}
	for tok := range seq {
		second = append(second, tok)
	}

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestTokensStopsEarly(t *testing.T) {
	t.Parallel()

	var got []string
	for tok := range Tokens("alpha bravo charlie delta") {
		got = append(got, tok)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"alpha", "bravo"}, got)
}

func TestSplitSections(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{"Skills", "Python, SQL", "Education", "BS Computer Science 2020"}, "\n")
	sections := SplitSections(text)

	assert.Equal(t, "Python, SQL", sections[SectionSkills])
	assert.Equal(t, "BS Computer Science 2020", sections[SectionEducation])
	assert.Equal(t, text, sections.All())

	labels := make([]string, 0, len(sections))
	for label := range sections {
		labels = append(labels, label)
	}
	assert.ElementsMatch(t, []string{SectionAll, SectionSkills, SectionEducation}, labels)
}

func TestSplitSectionsHeadingVariants(t *testing.T) {
	t.Parallel()

	text := "Jane Doe\n\nWORK EXPERIENCE:\nEngineer at Acme 2019 - present\n\n## Technical Skills ##\nGo | Rust\nThis line mentions experience but is long"
	sections := SplitSections(text)

	require.Contains(t, sections, SectionWorkExperience)
	assert.Equal(t, "Engineer at Acme 2019 - present", sections[SectionWorkExperience])
	assert.Equal(t, "Go | Rust\nThis line mentions experience but is long", sections[SectionTechnicalSkills])
	assert.Equal(t, "Go | Rust\nThis line mentions experience but is long", sections.Skills())
	assert.True(t, strings.HasPrefix(sections.All(), "Jane Doe\n\nWORK EXPERIENCE:"))
}

func TestSplitSectionsEmpty(t *testing.T) {
	t.Parallel()

	sections := SplitSections("")
	assert.Equal(t, "", sections.All())
	assert.False(t, sections.Has(SectionSkills, SectionTechnicalSkills))
}

func TestHeadingLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SectionProjects, HeadingLabel("  Projects:  "))
	assert.Equal(t, SectionProfessionalSummary, HeadingLabel("PROFESSIONAL SUMMARY"))
	assert.Equal(t, "", HeadingLabel("Python projects"))
	assert.Equal(t, "", HeadingLabel("2020"))
}

func TestTopKeywords(t *testing.T) {
	t.Parallel()

	text := "kubernetes docker kubernetes terraform docker kubernetes python"
	assert.Equal(t, []string{"kubernetes", "docker", "terraform"}, TopKeywords(text, 3))
	assert.Equal(t, []string{"kubernetes", "docker", "terraform", "python"}, TopKeywords(text, 0))
}

func TestTopKeywordsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, TopKeywords("", 20))
	assert.Empty(t, TopKeywords("a an the 12 34", 20))
}
