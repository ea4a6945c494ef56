package llm

import (
	"regexp"
	"strings"
)

// fencedJSONRe captures the body of a ```json ... ``` (or bare ```) block.
var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSONArray recovers a JSON array substring from arbitrary completion
// text: model responses often wrap the payload in prose or a markdown fence.
// Returns the candidate array text and whether one was found. The result is
// not guaranteed to parse; callers still validate it.
func ExtractJSONArray(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if m := fencedJSONRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	start := strings.Index(s, "[")
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// ExtractJSONObject recovers a JSON object substring, used for completions
// expected to return a single object.
func ExtractJSONObject(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if m := fencedJSONRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
