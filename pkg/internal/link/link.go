package link

import (
	"fmt"
	"net/url"
	"strings"
)

// Build builds a documentation URL path given its elements
func Build(elem ...string) (string, error) {
	if len(elem) == 0 {
		return "", nil
	}
	jointPath, err := url.JoinPath(elem[0], elem[1:]...)
	if jointPath == "" {
		return ".", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to join paths: %w", err)
	}
	escapedQuery, err := url.QueryUnescape(jointPath)
	if err != nil {
		return "", fmt.Errorf("failed to unescape joint path: %w", err)
	}
	return strings.ReplaceAll(escapedQuery, " ", "%20"), nil
}

// Normalize replaces characters that are not allowed in a documentation URL
// path segment with "_" so that same-named siblings group together
// case-insensitively regardless of punctuation.
func Normalize(segment string) string {
	var b strings.Builder
	b.Grow(len(segment))
	for _, r := range segment {
		if urlSafe(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func urlSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '.' || r == '_' || r == '~':
		return true
	default:
		return false
	}
}
