package router

import "strings"

// NormalizeBasename replaces any leading run of "/" with a single "/". A
// trailing slash is kept so the application can choose its own slash policy.
func NormalizeBasename(basename string) string {
	return "/" + strings.TrimLeft(basename, "/")
}

// StripBasename removes basename from the front of pathname. It reports
// false when pathname is outside basename: the match is case-sensitive and
// must end on a segment boundary, so "/admin2" is not under "/admin".
func StripBasename(pathname, basename string) (string, bool) {
	basename = NormalizeBasename(basename)
	if basename == "/" {
		return pathname, true
	}
	if !strings.HasPrefix(pathname, basename) {
		return "", false
	}

	// A basename with a trailing slash keeps that slash in the remainder.
	start := len(basename)
	if strings.HasSuffix(basename, "/") {
		start--
	}
	if start < len(pathname) && pathname[start] != '/' {
		return "", false
	}

	rest := pathname[start:]
	if rest == "" {
		return "/", true
	}
	return rest, true
}

// JoinBasename returns the platform pathname for an application path.
func JoinBasename(basename, path string) string {
	basename = strings.TrimRight(NormalizeBasename(basename), "/")
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if basename == "" {
		return path
	}
	if path == "/" {
		return basename
	}
	return basename + path
}
