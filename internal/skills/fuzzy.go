package skills

// maxLenDelta rejects pairs whose lengths differ by more than this outright.
const maxLenDelta = 2

// FuzzyMatch reports whether a and b are equal or one substitution, insertion
// or deletion apart. It is a single-pass scan, symmetric in its arguments.
//
// The check is deliberately lossy: short, common tokens match short skill
// names they only coincidentally resemble ("go" and "do"). Callers that need
// precision use Strict mode, which never runs it.
func FuzzyMatch(a, b string) bool {
	if a == b {
		return true
	}

	la, lb := len(a), len(b)
	if la-lb > maxLenDelta || lb-la > maxLenDelta {
		return false
	}

	// Walk with the longer string as s so a single deletion from s covers
	// both the insertion and deletion cases.
	s, t := a, b
	if lb > la {
		s, t = b, a
	}
	if len(s)-len(t) > 1 {
		return false
	}

	i, j := 0, 0
	edited := false
	for i < len(s) && j < len(t) {
		if s[i] == t[j] {
			i++
			j++
			continue
		}
		if edited {
			return false
		}
		edited = true
		if len(s) == len(t) {
			j++
		}
		i++
	}

	// A trailing extra character in s is the single allowed edit.
	if i < len(s) {
		return !edited
	}
	return true
}
