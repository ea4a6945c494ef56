// Package utils provides shared utilities for text, math, and logging.
package utils

import (
	"regexp"
	"strings"
)

// sentenceRe matches a run of non-terminator characters followed by one or
// more sentence terminators (. ! ?).
var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+`)

// spaceRunRe matches runs of spaces and tabs.
var spaceRunRe = regexp.MustCompile(`[ \t]+`)

// blankRunRe matches two or more consecutive blank lines.
var blankRunRe = regexp.MustCompile(`\n[ \t]*\n[ \t]*(\n[ \t]*)+`)

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// NormalizeWhitespace collapses runs of spaces/tabs to a single space and
// runs of blank lines to exactly one blank line, trimming the result.
func NormalizeWhitespace(s string) string {
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// SplitSentences splits text into sentences on . ! ? terminators. Trailing
// text without a terminator is kept as a final sentence. Results are
// trimmed; empty sentences are dropped.
func SplitSentences(text string) []string {
	matches := sentenceRe.FindAllStringIndex(text, -1)
	var out []string
	end := 0
	for _, m := range matches {
		if s := strings.TrimSpace(text[m[0]:m[1]]); s != "" {
			out = append(out, s)
		}
		end = m[1]
	}
	if rest := strings.TrimSpace(text[end:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
