package layout

import (
	"regexp"
	"unicode/utf8"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the visible length of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// TruncateText truncates text to maxWidth with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text, false
	}

	ellipsis := []rune(cfg.Ellipsis)
	if maxWidth <= len(ellipsis) {
		return string(ellipsis[:maxWidth]), true
	}

	return string(runes[:maxWidth-len(ellipsis)]) + cfg.Ellipsis, true
}

// TruncateWithPrefix truncates text so that prefix+text fits in maxWidth.
// The prefix is never cut unless it alone is too wide.
func TruncateWithPrefix(text string, maxWidth int, prefix string, cfg TextConfig) (string, bool) {
	prefixLen := utf8.RuneCountInString(prefix)
	if prefixLen >= maxWidth {
		return TruncateText(prefix+text, maxWidth, cfg)
	}
	body, cut := TruncateText(text, maxWidth-prefixLen, cfg)
	return prefix + body, cut
}

// PadRight pads s with spaces to width visible characters.
func PadRight(s string, width int) string {
	for n := VisibleLength(s); n < width; n++ {
		s += " "
	}
	return s
}
