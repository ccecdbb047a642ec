package textproc

import (
	"regexp"
	"strings"
)

// Section labels recognised as headings.
const (
	SectionSummary             = "summary"
	SectionProfessionalSummary = "professional summary"
	SectionObjective           = "objective"
	SectionSkills              = "skills"
	SectionTechnicalSkills     = "technical skills"
	SectionEducation           = "education"
	SectionExperience          = "experience"
	SectionWorkExperience      = "work experience"
	SectionProjects            = "projects"
	SectionCertifications      = "certifications"
	SectionAchievements        = "achievements"
	SectionInternships         = "internships"

	// SectionAll receives every non-blank line regardless of the active section.
	SectionAll = "__all__"
)

const maxHeadingWords = 3

var headings = map[string]struct{}{
	SectionSummary:             {},
	SectionProfessionalSummary: {},
	SectionObjective:           {},
	SectionSkills:              {},
	SectionTechnicalSkills:     {},
	SectionEducation:           {},
	SectionExperience:          {},
	SectionWorkExperience:      {},
	SectionProjects:            {},
	SectionCertifications:      {},
	SectionAchievements:        {},
	SectionInternships:         {},
}

var nonAlphaRe = regexp.MustCompile(`[^a-zA-Z ]`)

// Sections maps a section label to its newline-joined, trimmed body.
type Sections map[string]string

// Get returns the body of the first non-empty section among labels.
func (s Sections) Get(labels ...string) string {
	for _, label := range labels {
		if body := s[label]; body != "" {
			return body
		}
	}
	return ""
}

// Has reports whether any of labels has a non-empty body.
func (s Sections) Has(labels ...string) bool {
	return s.Get(labels...) != ""
}

// Skills returns the skills block, preferring "skills" over "technical skills".
func (s Sections) Skills() string {
	return s.Get(SectionSkills, SectionTechnicalSkills)
}

// All returns the full-document bucket.
func (s Sections) All() string {
	return s[SectionAll]
}

// HeadingLabel returns the section label a line switches to, or "" when the
// line is not a heading.
func HeadingLabel(line string) string {
	cleaned := strings.ToLower(strings.TrimSpace(nonAlphaRe.ReplaceAllString(line, "")))
	if cleaned == "" {
		return ""
	}
	if _, ok := headings[cleaned]; !ok {
		return ""
	}
	if len(strings.Fields(cleaned)) > maxHeadingWords {
		return ""
	}
	return cleaned
}

// SplitSections segments text into labelled sections using heading lines.
// Lines before the first heading only land in SectionAll. Blank lines are kept
// inside whichever section is active.
func SplitSections(text string) Sections {
	buckets := map[string][]string{SectionAll: nil}
	current := SectionAll

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			buckets[current] = append(buckets[current], "")
			continue
		}

		buckets[SectionAll] = append(buckets[SectionAll], line)

		if label := HeadingLabel(line); label != "" {
			current = label
			if _, ok := buckets[current]; !ok {
				buckets[current] = nil
			}
			continue
		}

		if current != SectionAll {
			buckets[current] = append(buckets[current], line)
		}
	}

	sections := make(Sections, len(buckets))
	for label, lines := range buckets {
		sections[label] = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return sections
}
