// Package session drives single-shot and interactive query loops.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bull/docquery/internal/retrieval"
)

// Retriever is the slice of the retrieval engine the session needs.
type Retriever interface {
	Retrieve(ctx context.Context, question string, topK int) ([]retrieval.Result, error)
	Count(ctx context.Context) (uint64, error)
}

// exitKeywords end the interactive loop, matched case-insensitively.
var exitKeywords = map[string]bool{
	"quit": true,
	"exit": true,
	"q":    true,
}

// Session reads questions, retrieves matches and renders them. Input and
// output are injected so the loop is testable with scripted lines.
type Session struct {
	retriever Retriever
	topK      int
	in        io.Reader
	out       io.Writer
}

// New creates a session with the given default top-k.
func New(retriever Retriever, topK int, in io.Reader, out io.Writer) *Session {
	return &Session{
		retriever: retriever,
		topK:      topK,
		in:        in,
		out:       out,
	}
}

// RunOnce answers a single question and returns.
func (s *Session) RunOnce(ctx context.Context, question string) error {
	results, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		return err
	}
	renderResults(s.out, question, results)
	return nil
}

// RunInteractive loops: prompt, trim, skip blank lines, stop cleanly on an
// exit keyword, end-of-input or context cancellation, otherwise retrieve and
// render. A missing collection fails before the first prompt. Any other
// retrieval failure aborts the loop; it is never swallowed.
func (s *Session) RunInteractive(ctx context.Context) error {
	fmt.Fprintln(s.out, renderBanner())

	count, err := s.retriever.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Loaded %d document chunks\n\n", count)

	scanner := bufio.NewScanner(s.in)
	for {
		// An interrupt (ctrl-C cancels the command context) ends the
		// loop the same way an exit keyword does.
		if ctx.Err() != nil {
			fmt.Fprintln(s.out, "\nGoodbye!")
			return nil
		}

		fmt.Fprint(s.out, "Question: ")
		if !scanner.Scan() {
			// End-of-input terminates the loop cleanly.
			fmt.Fprintln(s.out, "\nGoodbye!")
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if exitKeywords[strings.ToLower(question)] {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}

		results, err := s.retriever.Retrieve(ctx, question, s.topK)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(s.out, "\nGoodbye!")
				return nil
			}
			return err
		}

		fmt.Fprintln(s.out)
		renderResults(s.out, question, results)
	}
}
