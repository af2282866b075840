package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/docquery/internal/retrieval"
	"github.com/bull/docquery/internal/storage"
)

// fakeRetriever records the questions it was asked.
type fakeRetriever struct {
	results   []retrieval.Result
	err       error
	countErr  error
	questions []string
	topKs     []int
	count     uint64
}

func (f *fakeRetriever) Retrieve(ctx context.Context, question string, topK int) ([]retrieval.Result, error) {
	f.questions = append(f.questions, question)
	f.topKs = append(f.topKs, topK)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeRetriever) Count(context.Context) (uint64, error) {
	return f.count, f.countErr
}

func sampleResults() []retrieval.Result {
	return []retrieval.Result{
		{Rank: 1, Text: "first passage", Source: "report.pdf", Page: 3, Similarity: 0.91},
		{Rank: 2, Text: "second passage", Source: "manual.pdf", Page: 12, Similarity: 0.78},
	}
}

func TestRunOnce_RendersResults(t *testing.T) {
	retriever := &fakeRetriever{results: sampleResults()}
	var out bytes.Buffer
	s := New(retriever, 5, strings.NewReader(""), &out)

	require.NoError(t, s.RunOnce(context.Background(), "what is in the report?"))

	assert.Equal(t, []string{"what is in the report?"}, retriever.questions)
	assert.Equal(t, []int{5}, retriever.topKs)

	rendered := out.String()
	assert.Contains(t, rendered, "what is in the report?")
	assert.Contains(t, rendered, "report.pdf (Page 3)")
	assert.Contains(t, rendered, "first passage")
	assert.Contains(t, rendered, "Similarity: 91.00%")
	assert.Contains(t, rendered, "manual.pdf (Page 12)")
}

func TestRunOnce_NoResults(t *testing.T) {
	var out bytes.Buffer
	s := New(&fakeRetriever{}, 5, strings.NewReader(""), &out)

	require.NoError(t, s.RunOnce(context.Background(), "anything"))
	assert.Contains(t, out.String(), "No relevant results found.")
}

func TestRunInteractive_ScriptedDialogue(t *testing.T) {
	retriever := &fakeRetriever{results: sampleResults(), count: 42}
	input := strings.NewReader("first question\n\n   \nsecond question\nquit\nnever reached\n")
	var out bytes.Buffer
	s := New(retriever, 3, input, &out)

	require.NoError(t, s.RunInteractive(context.Background()))

	// Blank lines re-prompt without querying; quit stops before later lines.
	assert.Equal(t, []string{"first question", "second question"}, retriever.questions)
	assert.Equal(t, []int{3, 3}, retriever.topKs)
	assert.Contains(t, out.String(), "Loaded 42 document chunks")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRunInteractive_ExitKeywordsCaseInsensitive(t *testing.T) {
	for _, keyword := range []string{"quit", "EXIT", "Q", "  q  "} {
		retriever := &fakeRetriever{}
		var out bytes.Buffer
		s := New(retriever, 3, strings.NewReader(keyword+"\n"), &out)

		require.NoError(t, s.RunInteractive(context.Background()), "keyword %q", keyword)
		assert.Empty(t, retriever.questions, "keyword %q must not trigger a query", keyword)
	}
}

func TestRunInteractive_EndOfInputIsClean(t *testing.T) {
	retriever := &fakeRetriever{}
	var out bytes.Buffer
	s := New(retriever, 3, strings.NewReader(""), &out)

	require.NoError(t, s.RunInteractive(context.Background()))
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRunInteractive_InterruptIsClean(t *testing.T) {
	// Cancellation noticed at the top of the loop.
	t.Run("before prompt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		retriever := &fakeRetriever{}
		var out bytes.Buffer
		s := New(retriever, 3, strings.NewReader("a question\n"), &out)

		require.NoError(t, s.RunInteractive(ctx))
		assert.Empty(t, retriever.questions)
		assert.Contains(t, out.String(), "Goodbye!")
	})

	// Cancellation surfacing from the retriever mid-question.
	t.Run("during retrieval", func(t *testing.T) {
		retriever := &fakeRetriever{err: context.Canceled}
		var out bytes.Buffer
		s := New(retriever, 3, strings.NewReader("a question\n"), &out)

		require.NoError(t, s.RunInteractive(context.Background()))
		assert.Contains(t, out.String(), "Goodbye!")
	})
}

func TestRunInteractive_MissingCollectionFailsFast(t *testing.T) {
	notFound := storage.ErrCollectionNotFound
	retriever := &fakeRetriever{countErr: notFound}
	var out bytes.Buffer
	s := New(retriever, 3, strings.NewReader("a question\n"), &out)

	err := s.RunInteractive(context.Background())
	assert.ErrorIs(t, err, notFound)
	assert.Empty(t, retriever.questions, "must fail before the first prompt")
}

func TestRunInteractive_RetrievalFailureAborts(t *testing.T) {
	boom := errors.New("store went away")
	retriever := &fakeRetriever{err: boom}
	var out bytes.Buffer
	s := New(retriever, 3, strings.NewReader("a question\n"), &out)

	err := s.RunInteractive(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestTruncate_LongText(t *testing.T) {
	long := strings.Repeat("x", maxDisplayRunes+100)
	got := truncate(long)
	assert.Len(t, []rune(got), maxDisplayRunes+3)
	assert.True(t, strings.HasSuffix(got, "..."))

	short := "short enough"
	assert.Equal(t, short, truncate(short))
}
