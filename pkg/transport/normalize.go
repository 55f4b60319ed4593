package transport

import (
	"regexp"
	"strings"
)

// ansiCSI matches an ANSI CSI escape sequence: ESC '[' params... final byte.
var ansiCSI = regexp.MustCompile("\x1b\\[[0-9;?]*[a-zA-Z]")

// normalize applies the Channel Reader's pre-match normalization: CRLF is
// collapsed to LF and ANSI CSI sequences are stripped. Vendors that color
// their prompts (observed inconsistently across the pack) are handled by
// stripping before pattern evaluation; see the open question in the
// vendor packages about devices that emit color codes inside the prompt
// itself rather than around it.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return ansiCSI.ReplaceAllString(s, "")
}

// stripCommand removes a leading echoed command line (the device's local
// echo of what was just sent) from body.
func stripCommand(body, cmd string) string {
	trimmed := strings.TrimLeft(body, "\n")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		firstLine := strings.TrimRight(trimmed[:idx], "\r")
		if strings.Contains(firstLine, strings.TrimSpace(cmd)) {
			return trimmed[idx+1:]
		}
	}
	return body
}

// stripPrompt removes a trailing prompt line matching promptRe from body.
func stripPrompt(body string, promptRe *regexp.Regexp) string {
	lines := strings.Split(body, "\n")
	for len(lines) > 0 && promptRe.MatchString(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
