package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Slugify converts a title into a URL-safe, lowercase identifier. The output
// is deterministic for a given input.
func Slugify(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range title {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// SlugWithSuffix builds a post/project slug: the slugified title plus a short
// random suffix, so identical titles never collide.
func SlugWithSuffix(title string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
	base := Slugify(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
