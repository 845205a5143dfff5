package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// multiSpacePattern matches runs of whitespace, including newlines.
var multiSpacePattern = regexp.MustCompile(`\s+`)

// CleanText normalizes a free-text field from the registry: escaped slashes
// are fixed, common HTML entities decoded and whitespace collapsed.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, `\/`, `/`)
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FoldText returns the cleaned, case-folded form of s for case-insensitive
// substring matching. Folding handles Latin and Cyrillic script alike.
func FoldText(s string) string {
	s = CleanText(s)
	if s == "" {
		return ""
	}
	// Casers are stateful and must not be shared across goroutines.
	return cases.Fold().String(s)
}

// NeedsCleanup reports whether CleanText would change s.
func NeedsCleanup(s string) bool {
	return CleanText(s) != s
}
