package importer

import (
	"fmt"

	"isoedit/diagram"
	"isoedit/markdown"
)

// MarkdownImporter loads a model from a fenced isoedit block of a
// markdown document.
type MarkdownImporter struct {
	// Block is the 0-based index of the diagram block to load.
	Block int
}

// NewMarkdownImporter creates an importer for the first diagram block.
func NewMarkdownImporter() *MarkdownImporter {
	return &MarkdownImporter{}
}

// CanImport checks for at least one diagram block
func (m *MarkdownImporter) CanImport(content []byte) bool {
	return markdown.HasBlocks(string(content))
}

// Import loads the selected block as a model.
func (m *MarkdownImporter) Import(content []byte) (*diagram.Model, error) {
	blocks := markdown.NewScanner(string(content)).FindBlocks()
	if m.Block < 0 || m.Block >= len(blocks) {
		return nil, fmt.Errorf("diagram block %d not found (document has %d)", m.Block+1, len(blocks))
	}
	return Load([]byte(blocks[m.Block].Content))
}

// GetFormatName returns the format name
func (m *MarkdownImporter) GetFormatName() string {
	return "Markdown"
}

// GetFileExtensions returns the file extensions for markdown
func (m *MarkdownImporter) GetFileExtensions() []string {
	return []string{".md", ".markdown"}
}
