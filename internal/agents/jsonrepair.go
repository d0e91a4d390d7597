package agents

import (
	"regexp"
	"strings"
)

// The LLMs behind the agents frequently wrap JSON in markdown fences or
// surround it with prose. Each repair stage below is a pure function; the
// callers apply them in a fixed order and stop at the first stage whose
// output parses. There is no ad hoc string surgery outside this file.

var (
	fenceOpenRe  = regexp.MustCompile("^```[a-zA-Z]*\\s*")
	fenceCloseRe = regexp.MustCompile("\\s*```$")
	bareKeyRe    = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)
	lineCommentRe = regexp.MustCompile(`(?m)//[^\n"]*$`)
)

// StripFences removes markdown code-fence wrappers around a response.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ExtractObject returns the first balanced-looking {...} span, matching from
// the first opening brace to the last closing brace. Empty string when the
// input contains no such span.
func ExtractObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

// ExtractArray returns the first [...] span, from the first opening bracket
// to the last closing bracket. Empty string when there is none.
func ExtractArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

// RepairTokens applies best-effort token fixes: quoting bare object keys and
// dropping line comments. It never guarantees valid JSON; it is the last
// stage before giving up.
func RepairTokens(s string) string {
	s = lineCommentRe.ReplaceAllString(s, "")
	s = bareKeyRe.ReplaceAllString(s, `$1"$2"$3`)
	// Trailing commas before a closing bracket are a common model slip.
	s = strings.ReplaceAll(s, ",]", "]")
	s = strings.ReplaceAll(s, ",}", "}")
	return s
}
