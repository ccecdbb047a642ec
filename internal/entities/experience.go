package entities

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const maxExperienceLines = 10

var (
	yearSpanRe = regexp.MustCompile(`(?i)\b(19\d{2}|20\d{2})\b.*\b(19\d{2}|20\d{2}|present|current)\b`)
	roleWordRe = regexp.MustCompile(`(?i)\b(intern|engineer|developer|analyst|assistant)\b`)
)

// ExtractExperience returns lines that look like positions: a year followed
// by another year or "present"/"current", or a role word. Lines are
// de-duplicated case-insensitively, first occurrence wins, capped at ten.
func ExtractExperience(text string) []string {
	out := []string{}
	seen := make(map[string]struct{})

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isExperienceLine(line) {
			continue
		}
		key := strings.ToLower(line)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, line)
		if len(out) == maxExperienceLines {
			break
		}
	}

	return out
}

func isExperienceLine(line string) bool {
	return roleWordRe.MatchString(line) || yearSpanRe.MatchString(line)
}

// tenureRe alternates a range ("2 years ... 5 years", "3 years ... present yrs"),
// bare years and bare months. Leftmost alternative wins, as in Perl.
var tenureRe = regexp.MustCompile(
	`(?i)\b(\d{1,2})\s*(?:years?|yrs?|y)\b.*\b(\d{1,2}|present|current)\s*(?:years?|yrs?|y)\b` +
		`|\b(\d{1,2})\s*(?:years?|yrs?|y)\b` +
		`|\b(\d{1,2})\s*(?:months?|mos?|m)\b`,
)

// TenureYears sums every tenure mention in text and returns years rounded to
// one decimal. A range ending in "present" or "current" counts the start value
// as the whole tenure since the wall clock is never consulted. Overlapping
// mentions add up and may overcount.
func TenureYears(text string) float64 {
	months := 0
	for _, m := range tenureRe.FindAllStringSubmatch(text, -1) {
		switch {
		case m[1] != "" && m[2] != "":
			start, _ := strconv.Atoi(m[1])
			end := strings.ToLower(m[2])
			if end == "present" || end == "current" {
				months += start * 12
				continue
			}
			endNum, err := strconv.Atoi(end)
			if err != nil {
				endNum = start
			}
			months += max(0, endNum-start) * 12
		case m[3] != "":
			years, _ := strconv.Atoi(m[3])
			months += years * 12
		case m[4] != "":
			n, _ := strconv.Atoi(m[4])
			months += n
		}
	}

	return math.Round(float64(months)/12*10) / 10
}

// ExperienceLevel maps tenure to the salary band used by the market provider.
func ExperienceLevel(years float64) string {
	switch {
	case years < 2:
		return "entry"
	case years < 3:
		return "junior"
	case years < 6:
		return "mid"
	case years < 10:
		return "senior"
	default:
		return "lead"
	}
}
