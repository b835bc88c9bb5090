package routes

import (
	"net/url"
	"strings"

	"superadmin/navigation/internal/domain"
)

const translationPrefix = "navigation."

// SplitPath returns the non-empty path segments of an href, ignoring scheme,
// host, query and fragment.
func SplitPath(href string) []string {
	path := href
	if strings.Contains(href, "://") {
		if u, err := url.Parse(href); err == nil {
			path = u.Path
		}
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// IsNumeric reports whether a segment is made only of ASCII digits
func IsNumeric(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeSegment maps numeric segments to the wildcard key
func NormalizeSegment(segment string) (key string, dynamic bool) {
	if IsNumeric(segment) {
		return domain.WildcardKey, true
	}
	return segment, false
}

// TranslationKey is the dictionary key used for a route segment
func TranslationKey(key string) string {
	if key == domain.WildcardKey {
		return translationPrefix + "dynamic"
	}
	return translationPrefix + key
}
