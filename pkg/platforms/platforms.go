// Package platforms is the registry of supported social platforms and their
// per-platform constraints.
package platforms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kaljuvee/postwave/pkg/models"
)

// ErrUnknownPlatform indicates a platform identifier outside the supported set.
var ErrUnknownPlatform = errors.New("unknown platform")

// Content length limits. Advisory only: surfaced as warnings, never enforced
// by the pipeline.
const (
	twitterLimit  = 280
	linkedinLimit = 3000
	redditLimit   = 40000
)

var limits = map[models.Platform]int{
	models.PlatformTwitter:  twitterLimit,
	models.PlatformLinkedIn: linkedinLimit,
	models.PlatformReddit:   redditLimit,
}

// Resolve maps a raw identifier to a supported platform. Matching is
// case-insensitive.
func Resolve(identifier string) (models.Platform, error) {
	platform := models.Platform(strings.ToLower(strings.TrimSpace(identifier)))
	if _, ok := limits[platform]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, identifier)
	}

	return platform, nil
}

// Limit returns the advisory maximum content length for a platform. Zero for
// unrecognized platforms.
func Limit(platform models.Platform) int {
	return limits[platform]
}

// OverLimit reports whether content exceeds the platform's advisory limit.
func OverLimit(platform models.Platform, content string) bool {
	limit := Limit(platform)

	return limit > 0 && len([]rune(content)) > limit
}

// All returns the supported platforms in a stable order.
func All() []models.Platform {
	return []models.Platform{models.PlatformTwitter, models.PlatformLinkedIn, models.PlatformReddit}
}
