package markdown

import "strings"

// Block is a region of a document delimited by marker comments that the tool
// rewrites on every export. Text outside the markers belongs to the user.
type Block struct {
	Start string
	End   string
}

func (b Block) wrap(content string) string {
	return b.Start + "\n" + strings.TrimRight(content, "\n") + "\n" + b.End
}

// Replace swaps the block's content in body, appending the block when body
// has none yet.
func (b Block) Replace(body, content string) string {
	start := strings.Index(body, b.Start)
	end := strings.Index(body, b.End)
	if start >= 0 && end > start {
		return body[:start] + b.wrap(content) + body[end+len(b.End):]
	}
	if strings.TrimSpace(body) == "" {
		return b.wrap(content) + "\n"
	}
	return strings.TrimRight(body, "\n") + "\n\n" + b.wrap(content) + "\n"
}
