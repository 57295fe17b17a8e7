package platform

import (
	"slices"
	"strings"

	"onboardly.app/portal/internal/model"
)

const googleScopePrefix = "https://www.googleapis.com/auth/"

// identityScopes are requested on every consent so FetchIdentity can read
// the user behind the token.
var identityScopes = map[model.Platform][]string{
	model.PlatformMeta:   {"public_profile", "email"},
	model.PlatformGoogle: {"openid", "email", "profile"},
	model.PlatformTikTok: {"user.info.basic"},
}

// ConsentScopes returns the scopes to put on the consent screen: the
// platform's identity scopes followed by the requested ones, de-duplicated
// in order. Short Google names such as "analytics.readonly" expand to their
// full googleapis URL. Calling it on its own output is a no-op.
func ConsentScopes(p model.Platform, requested []string) []string {
	out := make([]string, 0, len(identityScopes[p])+len(requested))
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if p == model.PlatformGoogle {
			s = expandGoogleScope(s)
		}
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	for _, s := range identityScopes[p] {
		add(s)
	}
	for _, s := range requested {
		add(s)
	}
	return out
}

func expandGoogleScope(s string) string {
	if strings.Contains(s, "://") || slices.Contains(identityScopes[model.PlatformGoogle], s) {
		return s
	}
	return googleScopePrefix + s
}
