package entities

import (
	"fmt"
	"strings"
)

// ChangelogHeading is the canonical leading heading of the changelog file.
const ChangelogHeading = "# Changelog"

// InitialChangelogContent returns the content a fresh changelog file is
// initialized with.
func InitialChangelogContent() string {
	return ChangelogHeading + "\n"
}

// InsertChangelogEntry inserts a new version entry immediately after the
// leading "# Changelog" heading, so entries read most-recent-first.
//
// The entry block is a heading line with the version and timestamp, a blank
// line, the body text, and a trailing blank line. If the leading heading is
// missing from the content, it is prepended first.
func InsertChangelogEntry(content, version, timestamp, body string) string {
	lines := strings.Split(content, "\n")

	headingIdx := findHeadingIndex(lines)
	if headingIdx < 0 {
		lines = append([]string{ChangelogHeading}, lines...)
		headingIdx = 0
	}

	block := []string{
		"",
		fmt.Sprintf("## %s - %s", version, timestamp),
		"",
	}
	if body != "" {
		block = append(block, body, "")
	}

	return strings.Join(insertLines(lines, headingIdx+1, block), "\n")
}

// findHeadingIndex returns the line index of the "# Changelog" heading,
// or -1 if not found.
func findHeadingIndex(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == ChangelogHeading {
			return i
		}
	}
	return -1
}

// insertLines inserts extra lines into slice at the given index.
func insertLines(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	result = append(result, lines[at:]...)
	return result
}
