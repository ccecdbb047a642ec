// Package entities pulls education lines, experience lines and tenure from
// free text with line-oriented pattern rules.
package entities

import (
	"regexp"
	"strings"
)

// Degree tiers, highest first.
const (
	LevelPhD       = "PhD"
	LevelMaster    = "Master"
	LevelBachelor  = "Bachelor"
	LevelAssociate = "Associate"
	LevelUnknown   = "Unknown"
)

const maxEducationLines = 8

type degreePattern struct {
	re    *regexp.Regexp
	level string
}

var degreePatterns = []degreePattern{
	{regexp.MustCompile(`(?i)\b(phd|ph\.d|doctor of philosophy|doctorate)\b`), LevelPhD},
	{regexp.MustCompile(`(?i)\b(masters?|master of science|mba|m\.?sc|m\.?s|m\.?tech|m\.?eng|msc)\b`), LevelMaster},
	{regexp.MustCompile(`(?i)\b(bachelors?|b\.?tech|b\.?e|b\.?sc|b\.?a|bsc|b\.?s)\b`), LevelBachelor},
	{regexp.MustCompile(`(?i)\b(associate|a\.?a|diploma)\b`), LevelAssociate},
}

// Education is the result of scanning text for degree lines.
type Education struct {
	// Lines holds up to eight matching lines in document order.
	Lines []string `json:"lines"`
	// Level is the tier of the first matching line, or LevelUnknown.
	Level string `json:"level"`
}

// DegreeLevel returns the tier of the first degree pattern matching line, or "".
func DegreeLevel(line string) string {
	for _, p := range degreePatterns {
		if p.re.MatchString(line) {
			return p.level
		}
	}
	return ""
}

// ExtractEducation scans text line by line for degree mentions.
func ExtractEducation(text string) Education {
	edu := Education{Lines: []string{}, Level: LevelUnknown}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		level := DegreeLevel(line)
		if level == "" {
			continue
		}
		if len(edu.Lines) == 0 {
			edu.Level = level
		}
		edu.Lines = append(edu.Lines, line)
		if len(edu.Lines) == maxEducationLines {
			break
		}
	}

	return edu
}
