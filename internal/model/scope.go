package model

import (
	"slices"
	"strings"
)

// ParseScopes splits a provider scope string. Providers disagree on the
// separator, so both commas and whitespace are accepted.
func ParseScopes(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// ScopesGrant reports whether any scope contains any of the fragments.
func ScopesGrant(scopes []string, fragments ...string) bool {
	for _, s := range scopes {
		for _, f := range fragments {
			if containsFold(s, f) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
