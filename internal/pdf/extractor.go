// Package pdf extracts page text from PDF documents via MuPDF.
package pdf

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Page is one page of extracted text. Number is 1-based.
type Page struct {
	Number int
	Text   string
}

// Extractor reads page text from PDF files.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractPages returns the text of every non-blank page in the document,
// in page order. Pages whose text is empty or whitespace-only are dropped.
func (e *Extractor) ExtractPages(path string) ([]Page, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer doc.Close()

	var pages []Page
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("read page %d of %s: %w", i+1, filepath.Base(path), err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, Page{Number: i + 1, Text: text})
	}

	return pages, nil
}

// ListDocuments returns the PDF files in dir, sorted by name so that corpus
// traversal order is deterministic across ingestion runs.
func ListDocuments(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("list documents in %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
