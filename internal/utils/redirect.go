package utils

import (
	"net/url"
	"strings"
)

// SafeRedirectPath returns next when it is a path on this site and "/" otherwise.
// Absolute URLs, scheme-relative "//host" forms and backslash tricks are rejected.
func SafeRedirectPath(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

// ParentPath drops the last segment of path, so "/a/b" becomes "/a" and
// "/transactions" becomes "/".
func ParentPath(path string) string {
	trimmed := strings.TrimRight(path, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx <= 0 {
		return "/"
	}
	return trimmed[:idx]
}
