package claudehistory

import (
	"strings"

	"github.com/google/uuid"
)

const maxDescriptionLen = 120

const minCandidateLen = 4

// Filler the launcher prepends to prompts it generates itself. Stripped so
// the remainder of the prompt can serve as a description.
var fillerPrefixes = []string{
	"Implement the following plan:",
	"This session is being continued from a previous conversation.",
}

const interruptionMarker = "[Request interrupted"

// chooseDescription walks displays newest-first and returns the first entry
// that survives cleanup. When nothing qualifies it falls back to the most
// recent display, cleaned and capped.
func chooseDescription(displays []string) string {
	for i := len(displays) - 1; i >= 0; i-- {
		candidate := cleanDisplay(displays[i])
		if qualifies(candidate) {
			return capRunes(candidate, maxDescriptionLen)
		}
	}
	if len(displays) == 0 {
		return ""
	}
	return capRunes(cleanDisplay(displays[len(displays)-1]), maxDescriptionLen)
}

func qualifies(s string) bool {
	if len([]rune(s)) < minCandidateLen {
		return false
	}
	if isBareSlashCommand(s) {
		return false
	}
	if strings.HasPrefix(s, interruptionMarker) {
		return false
	}
	if isHexIdentifier(s) {
		return false
	}
	return true
}

// cleanDisplay strips structural markup and filler, then collapses
// whitespace.
func cleanDisplay(s string) string {
	s = stripTagSpans(s)
	for _, prefix := range fillerPrefixes {
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), prefix))
	}
	return strings.Join(strings.Fields(s), " ")
}

func isBareSlashCommand(s string) bool {
	return strings.HasPrefix(s, "/") && !strings.Contains(s, " ")
}

// isHexIdentifier reports whether s is nothing but an opaque id: a UUID in
// any accepted form, or a bare hex string of at least 8 digits.
func isHexIdentifier(s string) bool {
	if _, err := uuid.Parse(s); err == nil {
		return true
	}
	if len(s) < 8 {
		return false
	}
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'f':
		case ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}

// stripTagSpans removes tag-like spans. A paired span is dropped with its
// content; an opening tag with no matching close drops the rest of the
// string, and a '<' that never closes drops the tail.
func stripTagSpans(s string) string {
	var buf strings.Builder
	for {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			buf.WriteString(s)
			break
		}
		buf.WriteString(s[:i])
		rest := s[i:]
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			break
		}
		name := tagName(rest[1:end])
		if name == "" {
			// Not a tag, keep the '<' literally.
			buf.WriteByte('<')
			s = rest[1:]
			continue
		}
		closing := "</" + name + ">"
		j := strings.Index(rest[end+1:], closing)
		if j < 0 {
			break
		}
		s = rest[end+1+j+len(closing):]
	}
	return buf.String()
}

func tagName(s string) string {
	if s == "" {
		return ""
	}
	first := s[0]
	if !isTagNameByte(first) || (first >= '0' && first <= '9') || first == '-' {
		return ""
	}
	for i := 0; i < len(s); i++ {
		if !isTagNameByte(s[i]) {
			return s[:i]
		}
	}
	return s
}

func isTagNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
	case b >= 'A' && b <= 'Z':
	case b >= '0' && b <= '9':
	case b == '-' || b == '_':
	default:
		return false
	}
	return true
}

func capRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
