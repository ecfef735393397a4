package slug

import (
	"strings"
	"unicode"
)

// Make turns a course name into a lowercase, dash-separated file name stem.
func Make(input string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		switch {
		case r == '&':
			if sb.Len() > 0 && !dash {
				sb.WriteByte('-')
			}
			sb.WriteString("and-")
			dash = true
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
			dash = false
		case sb.Len() > 0 && !dash:
			sb.WriteByte('-')
			dash = true
		}
	}
	s := strings.Trim(sb.String(), "-")
	if s == "" {
		return "course"
	}
	return s
}
