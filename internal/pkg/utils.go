package pkg

import "strings"

// MatchAny reports whether s equals one of patterns, case-insensitively. A
// pattern ending in "*" matches by prefix.
func MatchAny(s string, patterns []string) bool {
	s = strings.ToLower(s)

	for _, p := range patterns {
		p = strings.ToLower(p)

		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(s, prefix) {
				return true
			}
			continue
		}

		if s == p {
			return true
		}
	}

	return false
}
