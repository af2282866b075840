package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/bull/docquery/internal/config"
)

// TestChunk_WorkedExample derives the expected windows from the cursor
// algorithm: window 10, overlap 4, cursor advances by 6.
func TestChunk_WorkedExample(t *testing.T) {
	c, err := New(10, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	chunks := c.Chunk("alpha beta gamma")

	expected := []string{"alpha beta", "beta gamma", "amma"}
	if len(chunks) != len(expected) {
		t.Fatalf("expected %d chunks, got %d (%q)", len(expected), len(chunks), chunks)
	}
	for i, want := range expected {
		if chunks[i] != want {
			t.Errorf("chunk %d: expected %q, got %q", i, want, chunks[i])
		}
	}
}

// TestChunk_ShortText verifies that text no longer than the window yields
// exactly one chunk equal to the input.
func TestChunk_ShortText(t *testing.T) {
	c, err := New(100, 20)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	input := "a single short page"
	chunks := c.Chunk(input)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != input {
		t.Errorf("expected %q, got %q", input, chunks[0])
	}
}

// TestChunk_Coverage verifies every rune of the input appears in at least
// one chunk at its original offset.
func TestChunk_Coverage(t *testing.T) {
	c, err := New(10, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	input := "the quick brown fox jumps over the lazy dog near the river bank"
	chunks := c.Chunk(input)

	covered := make([]bool, len(input))
	cursor := 0
	for _, chunk := range chunks {
		// Chunks are emitted in increasing start-offset order.
		start := strings.Index(input[cursor:], chunk)
		if start < 0 {
			t.Fatalf("chunk %q not found in input after offset %d", chunk, cursor)
		}
		start += cursor
		for i := start; i < start+len(chunk); i++ {
			covered[i] = true
		}
		cursor = start
	}

	for i, ok := range covered {
		if !ok {
			t.Fatalf("position %d (%q) not covered by any chunk", i, input[i])
		}
	}
}

func TestChunk_BlankWindowsSkipped(t *testing.T) {
	c, err := New(4, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Middle windows fall entirely inside the whitespace run and are dropped.
	chunks := c.Chunk("ab         yz")
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			t.Errorf("emitted whitespace-only chunk %q", chunk)
		}
	}
	if len(chunks) == 0 {
		t.Fatal("expected non-blank chunks")
	}
}

func TestChunk_BlankText(t *testing.T) {
	c, err := New(10, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if chunks := c.Chunk("   \n\t  "); len(chunks) != 0 {
		t.Errorf("expected no chunks for blank text, got %d", len(chunks))
	}
	if chunks := c.Chunk(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestNew_InvalidParameters(t *testing.T) {
	cases := []struct {
		name    string
		window  int
		overlap int
	}{
		{"overlap equals window", 100, 100},
		{"overlap exceeds window", 100, 150},
		{"zero overlap", 100, 0},
		{"negative overlap", 100, -1},
		{"zero window", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.window, tc.overlap); !errors.Is(err, config.ErrInvalidChunking) {
				t.Errorf("New(%d, %d): expected ErrInvalidChunking, got %v", tc.window, tc.overlap, err)
			}
		})
	}
}
