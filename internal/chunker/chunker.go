// Package chunker splits page text into overlapping fixed-size windows.
package chunker

import (
	"fmt"
	"strings"

	"github.com/bull/docquery/internal/config"
)

// Chunker produces overlapping text windows. The overlap guarantees that no
// information is lost at window boundaries; a sentence cut by one window is
// intact in the next.
type Chunker struct {
	window  int
	overlap int
}

// New validates the window parameters and returns a Chunker.
// Requires 0 < overlap < window so the cursor always advances.
func New(window, overlap int) (*Chunker, error) {
	if window <= 0 || overlap <= 0 || overlap >= window {
		return nil, fmt.Errorf("%w: size=%d overlap=%d", config.ErrInvalidChunking, window, overlap)
	}
	return &Chunker{window: window, overlap: overlap}, nil
}

// Chunk splits text into windows of at most c.window runes, each starting
// c.window-c.overlap runes after the previous one. Whitespace-only windows
// are skipped but still advance the cursor. The final window may be shorter
// than the configured size.
func (c *Chunker) Chunk(text string) []string {
	runes := []rune(text)

	var chunks []string
	for start := 0; start < len(runes); start += c.window - c.overlap {
		end := start + c.window
		if end > len(runes) {
			end = len(runes)
		}
		chunk := string(runes[start:end])
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
