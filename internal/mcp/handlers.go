package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/docquery/internal/retrieval"
	"github.com/bull/docquery/internal/storage"
)

// makeAskHandler creates the ask tool handler. A missing collection is
// reported with guidance to ingest; zero matches is a normal empty answer.
func makeAskHandler(engine *retrieval.Engine, defaultTopK int) func(
	context.Context, *mcp.CallToolRequest, AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (
		*mcp.CallToolResult, AskOutput, error,
	) {
		topK := input.TopK
		if topK <= 0 {
			topK = defaultTopK
		}

		results, err := engine.Retrieve(ctx, input.Question, topK)
		if err != nil {
			if errors.Is(err, storage.ErrCollectionNotFound) {
				return nil, AskOutput{}, fmt.Errorf("no collection has been ingested yet: run 'docquery ingest' first")
			}
			return nil, AskOutput{}, fmt.Errorf("retrieval failed: %w", err)
		}

		if len(results) == 0 {
			return nil, AskOutput{
				Results: []AskResult{},
				Message: "No matching passages found. Try broader phrasing.",
			}, nil
		}

		out := make([]AskResult, len(results))
		for i, res := range results {
			out[i] = AskResult{
				Rank:       res.Rank,
				Text:       res.Text,
				Source:     res.Source,
				Page:       res.Page,
				Similarity: res.Similarity,
			}
		}

		return nil, AskOutput{Results: out}, nil
	}
}
