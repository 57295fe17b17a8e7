package model

import (
	"fmt"
	"strings"
)

// Platform is an OAuth provider a subject can connect.
type Platform string

const (
	PlatformMeta    Platform = "meta"
	PlatformGoogle  Platform = "google"
	PlatformTikTok  Platform = "tiktok"
	PlatformShopify Platform = "shopify"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{PlatformMeta, PlatformGoogle, PlatformTikTok, PlatformShopify}

func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unsupported platform %q", s)
	}
	return p, nil
}

func (p Platform) Valid() bool {
	switch p {
	case PlatformMeta, PlatformGoogle, PlatformTikTok, PlatformShopify:
		return true
	}
	return false
}

// DisplayName is the human name used in generated asset labels.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformMeta:
		return "Meta"
	case PlatformGoogle:
		return "Google"
	case PlatformTikTok:
		return "TikTok"
	case PlatformShopify:
		return "Shopify"
	}
	return string(p)
}

func (p Platform) String() string {
	return string(p)
}
