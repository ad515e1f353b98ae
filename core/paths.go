package core

import (
	"fmt"
	"regexp"
	"strings"
)

// windowsDrive matches a drive-letter prefix like C:/ after separator
// conversion.
var windowsDrive = regexp.MustCompile(`^[A-Za-z]:/`)

// suspiciousPrefixes are path prefixes that never belong to a project tree.
var suspiciousPrefixes = []string{"/proc/", "/dev/", "/etc/"}

// NormalizePath converts a tool-native file identifier into the canonical
// project-relative form used everywhere downstream.
//
// Absolute identifiers are made relative to projectRoot; identifiers that
// resolve outside the project are retained verbatim. Service identifiers
// (services/<name>, hosts/<name>/cpu) and dependency identifiers
// (node_modules/<pkg>) are already canonical and pass through untouched.
// The function is idempotent: NormalizePath(root, out) == out for any of its
// own outputs.
func NormalizePath(projectRoot, input string) (string, error) {
	if input == "" {
		return "", nil
	}

	p := strings.ReplaceAll(input, "\\", "/")
	p = strings.TrimPrefix(p, "file://")

	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q contains a parent traversal segment", ErrInvalidPath, input)
		}
	}
	for _, prefix := range suspiciousPrefixes {
		if strings.HasPrefix(p, prefix) || strings.Contains(p, prefix) {
			return "", fmt.Errorf("%w: %q points at a system location", ErrInvalidPath, input)
		}
	}

	p = strings.TrimPrefix(p, "./")

	if isAbsolute(p) {
		root := strings.TrimSuffix(strings.ReplaceAll(projectRoot, "\\", "/"), "/")
		switch {
		case root != "" && p == root:
			return ".", nil
		case root != "" && strings.HasPrefix(p, root+"/"):
			return strings.TrimPrefix(p, root+"/"), nil
		default:
			// Outside the project; keep the original identifier.
			return input, nil
		}
	}

	return p, nil
}

// isAbsolute reports whether a slash-converted identifier is absolute,
// covering both POSIX and drive-letter forms plus URL-style identifiers.
func isAbsolute(p string) bool {
	if strings.HasPrefix(p, "/") {
		return true
	}
	if windowsDrive.MatchString(p) {
		return true
	}
	if strings.HasPrefix(p, "file:/") {
		return true
	}
	return false
}
