package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"isoedit/diagram"
	"isoedit/export"
	"isoedit/importer"
	"isoedit/markdown"
)

// document is the file the terminal editor saves to. Markdown documents
// keep the rest of the file and only rewrite the diagram block.
type document struct {
	path  string
	block *markdown.Block
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func loadFile(filename string) (*diagram.Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return importer.NewImporterRegistry().Import(data)
}

// openDocument loads path for editing, or starts a new diagram when the
// file does not exist yet.
func openDocument(path string) (*diagram.Model, *document, error) {
	doc := &document{path: path}
	if path == "" {
		return diagram.NewModel("Untitled"), doc, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return diagram.NewModel(title), doc, nil
	}
	if err != nil {
		return nil, nil, err
	}

	if !isMarkdown(path) {
		m, err := importer.Load(data)
		return m, doc, err
	}
	blocks := markdown.NewScanner(string(data)).FindBlocks()
	if len(blocks) == 0 {
		return nil, nil, fmt.Errorf("%s has no %s block", path, markdown.Language)
	}
	m, err := importer.Load([]byte(blocks[0].Content))
	if err != nil {
		return nil, nil, err
	}
	doc.block = &blocks[0]
	return m, doc, nil
}

// save writes m to the document. A markdown block that was edited on disk
// since it was loaded is not overwritten.
func (d *document) save(m *diagram.Model) error {
	if d.path == "" {
		return errors.New("no file to save to")
	}
	data, err := export.NewJSONExporter().Export(m)
	if err != nil {
		return err
	}
	if !isMarkdown(d.path) {
		return os.WriteFile(d.path, data, 0o644)
	}

	current, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) && d.block == nil {
		out := "```" + markdown.Language + "\n" + string(data) + "```\n"
		if err := os.WriteFile(d.path, []byte(out), 0o644); err != nil {
			return err
		}
		d.block = &markdown.NewScanner(out).FindBlocks()[0]
		return nil
	}
	if err != nil {
		return err
	}
	if d.block == nil {
		return fmt.Errorf("%s was created while editing", d.path)
	}

	s := markdown.NewScanner(string(current))
	out, err := s.ReplaceBlock(*d.block, string(data))
	if err != nil {
		return err
	}
	if err := os.WriteFile(d.path, []byte(out), 0o644); err != nil {
		return err
	}

	s.UpdateContent(out)
	for _, b := range s.FindBlocks() {
		if b.StartLine == d.block.StartLine {
			d.block = &b
			break
		}
	}
	return nil
}
