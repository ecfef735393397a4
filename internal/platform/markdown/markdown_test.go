package markdown_test

import (
	"strings"
	"testing"

	"attend/internal/platform/markdown"
)

func TestRenderThenSplit(t *testing.T) {
	t.Parallel()
	doc, err := markdown.Render(map[string]any{"id": "c1", "attended": 3}, "# Title\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	meta, body, err := markdown.Split(doc)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["id"] != "c1" || meta["attended"] != 3 {
		t.Fatalf("unexpected meta %v", meta)
	}
	if body != "\n# Title\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitWithoutFrontmatterAndUnclosed(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.Split("plain")
	if err != nil || len(meta) != 0 || body != "plain" {
		t.Fatalf("plain document: meta=%v body=%q err=%v", meta, body, err)
	}
	if _, _, err := markdown.Split("---\nid: x\n"); err == nil {
		t.Fatalf("expected error for unclosed frontmatter")
	}
}

func TestBlockReplaceKeepsSurroundingText(t *testing.T) {
	t.Parallel()
	b := markdown.Block{Start: "<!-- s -->", End: "<!-- e -->"}
	first := b.Replace("", "one")
	if first != "<!-- s -->\none\n<!-- e -->\n" {
		t.Fatalf("unexpected first render %q", first)
	}
	withNotes := "my notes\n\n" + first + "\nmore notes\n"
	second := b.Replace(withNotes, "two\n")
	if !strings.HasPrefix(second, "my notes\n\n<!-- s -->\ntwo\n<!-- e -->") || !strings.HasSuffix(second, "more notes\n") {
		t.Fatalf("surrounding text lost: %q", second)
	}
	appended := b.Replace("notes only\n", "three")
	if appended != "notes only\n\n<!-- s -->\nthree\n<!-- e -->\n" {
		t.Fatalf("unexpected append %q", appended)
	}
}
