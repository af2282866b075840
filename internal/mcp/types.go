// Package mcp exposes the retrieval engine as an MCP tool over stdio.
package mcp

// AskInput defines the input parameters for the ask tool.
type AskInput struct {
	// Question is the natural-language question to answer from the corpus.
	Question string `json:"question" jsonschema:"required,description=The natural-language question to search the document corpus with"`
	// TopK is the number of passages to return.
	TopK int `json:"top_k,omitempty" jsonschema:"minimum=1,maximum=20,default=5,description=Number of passages to return"`
}

// AskOutput contains the ranked passages.
type AskOutput struct {
	// Results is the ranked list of matching passages.
	Results []AskResult `json:"results"`
	// Message provides informational context (e.g. no matches found).
	Message string `json:"message,omitempty"`
}

// AskResult is one ranked passage.
type AskResult struct {
	// Rank is the 1-based position in the store's similarity order.
	Rank int `json:"rank"`
	// Text is the chunk text.
	Text string `json:"text"`
	// Source is the document file name.
	Source string `json:"source"`
	// Page is the 1-based page number within the source document.
	Page int `json:"page"`
	// Similarity is the display score derived from the distance metric.
	Similarity float64 `json:"similarity"`
}
