package markdown

import (
	"strings"
	"testing"
)

const doc = "# Network\n" +
	"\n" +
	"```go\n" +
	"fmt.Println()\n" +
	"```\n" +
	"\n" +
	"  ```isoedit\n" +
	"  {\"title\": \"one\",\n" +
	"    \"items\": []}\n" +
	"  ```\n" +
	"\n" +
	"```ISOEDIT\n" +
	"{\"title\": \"two\"}\n" +
	"```\n" +
	"```isoedit\n" +
	"{\"title\": \"unclosed\"}\n"

func TestFindBlocks(t *testing.T) {
	blocks := NewScanner(doc).FindBlocks()
	if len(blocks) != 2 {
		t.Fatalf("found %d blocks, want 2", len(blocks))
	}

	first := blocks[0]
	if first.StartLine != 6 || first.EndLine != 9 || first.Indent != "  " {
		t.Errorf("first block = %+v", first)
	}
	if want := "{\"title\": \"one\",\n  \"items\": []}"; first.Content != want {
		t.Errorf("first content = %q, want %q", first.Content, want)
	}
	if blocks[1].Content != "{\"title\": \"two\"}" {
		t.Errorf("second content = %q", blocks[1].Content)
	}

	if HasBlocks("```json\n{}\n```\n") {
		t.Error("json fences are not diagram blocks")
	}
}

func TestReplaceBlock(t *testing.T) {
	s := NewScanner(doc)
	block := s.FindBlocks()[0]

	out, err := s.ReplaceBlock(block, "{\n  \"title\": \"new\"\n}\n")
	if err != nil {
		t.Fatalf("ReplaceBlock() error = %v", err)
	}
	if !strings.Contains(out, "  ```isoedit\n  {\n    \"title\": \"new\"\n  }\n  ```\n") {
		t.Errorf("block not replaced with indentation:\n%s", out)
	}
	if !strings.HasPrefix(out, "# Network\n") || !strings.Contains(out, "{\"title\": \"two\"}") {
		t.Errorf("surrounding document changed:\n%s", out)
	}

	s.UpdateContent(out)
	again := s.FindBlocks()
	if len(again) != 2 || again[0].Content != "{\n  \"title\": \"new\"\n}" {
		t.Errorf("rescanned blocks = %+v", again)
	}
}

func TestReplaceBlockDetectsExternalEdits(t *testing.T) {
	s := NewScanner(doc)
	block := s.FindBlocks()[0]

	tests := []struct {
		name string
		edit func(string) string
	}{
		{"content changed", func(d string) string { return strings.Replace(d, "\"one\"", "\"uno\"", 1) }},
		{"lines inserted", func(d string) string { return "intro\n" + d }},
		{"truncated", func(d string) string { return d[:20] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edited := NewScanner(tt.edit(doc))
			if _, err := edited.ReplaceBlock(block, "{}"); err == nil {
				t.Error("expected error")
			}
		})
	}
}
