package template

import "strings"

// expandBrackets turns TextFSM's completion-bracket notation into an
// optional-character regex: "sh[[ow]]" becomes "sh(o(w)?)?", allowing
// "sh", "sho" or "show" to all match the same compiled pattern.
func expandBrackets(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "[[")
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.Index(s[start:], "]]")
		if end < 0 {
			b.WriteString(s)
			break
		}
		end += start
		b.WriteString(s[:start])
		b.WriteString(nestOptional(s[start+2 : end]))
		s = s[end+2:]
	}
	return b.String()
}

func nestOptional(chars string) string {
	if chars == "" {
		return ""
	}
	return "(" + string(chars[0]) + nestOptional(chars[1:]) + ")?"
}

// stripBrackets removes the completion-bracket markup entirely, used to
// build the plain substring used by the fallback lookup pass.
func stripBrackets(s string) string {
	s = strings.ReplaceAll(s, "[[", "")
	return strings.ReplaceAll(s, "]]", "")
}
