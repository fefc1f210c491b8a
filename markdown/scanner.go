// Package markdown finds diagram models embedded in markdown documents as
// fenced code blocks tagged isoedit, and writes edited models back into
// them.
package markdown

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Language is the info string of a fenced diagram block.
const Language = "isoedit"

// Block is one diagram code block found in markdown
type Block struct {
	Content     string // JSON model, fence indentation removed
	StartLine   int    // line of the opening fence (0-based)
	EndLine     int    // line of the closing fence
	Indent      string // indentation before the opening fence
	ContentHash string // SHA256 of Content when the block was scanned
}

// Scanner finds and replaces diagram blocks in a markdown document.
type Scanner struct {
	content string
	lines   []string
}

// NewScanner creates a new markdown scanner
func NewScanner(content string) *Scanner {
	return &Scanner{
		content: content,
		lines:   strings.Split(content, "\n"),
	}
}

// UpdateContent updates the scanner's internal content after a successful replacement
func (s *Scanner) UpdateContent(newContent string) {
	s.content = newContent
	s.lines = strings.Split(newContent, "\n")
}

// GetContent returns the current markdown content
func (s *Scanner) GetContent() string {
	return s.content
}

// isOpeningFence reports whether line opens a diagram block.
func isOpeningFence(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "```") {
		return false
	}
	lang := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	return strings.EqualFold(lang, Language)
}

// FindBlocks returns every diagram block in document order. An unclosed
// block at the end of the document is ignored.
func (s *Scanner) FindBlocks() []Block {
	var blocks []Block
	var current *Block
	var body []string

	for i, line := range s.lines {
		trimmed := strings.TrimLeft(line, " \t")
		if current == nil {
			if isOpeningFence(trimmed) {
				current = &Block{StartLine: i, Indent: line[:len(line)-len(trimmed)]}
				body = body[:0]
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			current.EndLine = i
			current.Content = strings.Join(body, "\n")
			current.ContentHash = hash(current.Content)
			blocks = append(blocks, *current)
			current = nil
			continue
		}
		body = append(body, strings.TrimPrefix(line, current.Indent))
	}
	return blocks
}

// HasBlocks reports whether content contains at least one diagram block.
func HasBlocks(content string) bool {
	return len(NewScanner(content).FindBlocks()) > 0
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func (s *Scanner) checkBounds(block Block) error {
	if block.StartLine < 0 || block.EndLine >= len(s.lines) || block.StartLine >= block.EndLine {
		return fmt.Errorf("invalid block boundaries: start=%d, end=%d, total lines=%d",
			block.StartLine, block.EndLine, len(s.lines))
	}
	return nil
}

// ValidateBlockUnchanged checks that the document still holds block as it
// was scanned, so a write does not clobber an external edit.
func (s *Scanner) ValidateBlockUnchanged(block Block) error {
	if err := s.checkBounds(block); err != nil {
		return err
	}
	if !isOpeningFence(strings.TrimLeft(s.lines[block.StartLine], " \t")) {
		return fmt.Errorf("block start marker has changed at line %d", block.StartLine+1)
	}
	if !strings.HasPrefix(strings.TrimLeft(s.lines[block.EndLine], " \t"), "```") {
		return fmt.Errorf("block end marker has changed at line %d", block.EndLine+1)
	}

	body := make([]string, 0, block.EndLine-block.StartLine-1)
	for _, line := range s.lines[block.StartLine+1 : block.EndLine] {
		body = append(body, strings.TrimPrefix(line, block.Indent))
	}
	if hash(strings.Join(body, "\n")) != block.ContentHash {
		return fmt.Errorf("block content has been modified externally (hash mismatch)")
	}
	return nil
}

// ReplaceBlock returns the document with the body of block replaced by
// newContent, re-indented to the fence. The scanner is not modified.
func (s *Scanner) ReplaceBlock(block Block, newContent string) (string, error) {
	if err := s.ValidateBlockUnchanged(block); err != nil {
		return "", err
	}

	newContent = strings.TrimRight(newContent, "\n")
	out := make([]string, 0, len(s.lines))
	out = append(out, s.lines[:block.StartLine+1]...)
	for _, line := range strings.Split(newContent, "\n") {
		out = append(out, block.Indent+line)
	}
	out = append(out, s.lines[block.EndLine:]...)
	return strings.Join(out, "\n"), nil
}
