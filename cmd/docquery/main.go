// Package main provides the docquery CLI for ingesting and querying a PDF corpus.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bull/docquery/internal/chunker"
	"github.com/bull/docquery/internal/config"
	"github.com/bull/docquery/internal/corpus"
	"github.com/bull/docquery/internal/embedding"
	"github.com/bull/docquery/internal/ingest"
	mcpserver "github.com/bull/docquery/internal/mcp"
	"github.com/bull/docquery/internal/pdf"
	"github.com/bull/docquery/internal/retrieval"
	"github.com/bull/docquery/internal/session"
	"github.com/bull/docquery/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "docquery",
	Short: "Semantic search over a PDF document corpus",
	Long:  "CLI for ingesting PDF documents into a vector index and answering natural-language questions against it",
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the collection from the configured document directory",
	Long: `Drops the existing collection and rebuilds it from the docs directory.

This command:
1. Connects to Qdrant and verifies health
2. Extracts page text from every PDF in the docs directory
3. Splits pages into overlapping chunks
4. Embeds and stores all chunks in a freshly created collection

Environment variables:
  DOCS_DIR        Directory containing the PDF corpus (default: docs)
  QDRANT_HOST     Qdrant hostname (default: localhost)
  QDRANT_PORT     Qdrant gRPC port (default: 6334)
  COLLECTION_NAME Collection name (default: documents)
  OPENAI_API_KEY  OpenAI API key for embeddings (required)`,
	RunE: runIngest,
}

var (
	queryInteractive bool
	queryTopK        int
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question against the ingested corpus",
	Long: `Answers a single question, or starts an interactive loop when no
question is given or --interactive is set. Fails if no collection has been
ingested yet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose retrieval as an MCP tool over stdio",
	RunE:  runServe,
}

func init() {
	queryCmd.Flags().BoolVarP(&queryInteractive, "interactive", "i", false, "enter interactive mode for multiple queries")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results to return (default from config)")
	rootCmd.AddCommand(ingestCmd, queryCmd, serveCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// connect loads config and opens the embedder-bound store.
func connect() (*config.Config, *storage.QdrantStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	client, err := embedding.NewClient()
	if err != nil {
		return nil, nil, fmt.Errorf("create embedding client: %w", err)
	}
	embedder := embedding.NewEmbedder(client, cfg.EmbeddingModel, 0)

	store, err := storage.NewQdrantStore(cfg.QdrantHost, cfg.QdrantPort, embedder)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to Qdrant: %w", err)
	}
	return cfg, store, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	start := time.Now()

	cfg, store, err := connect()
	if err != nil {
		return err
	}
	defer store.Close()

	paths, err := pdf.ListDocuments(cfg.DocsDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Printf("No PDF files found in %s\n", cfg.DocsDir)
	} else {
		fmt.Printf("Found %d PDF files to process\n\n", len(paths))
	}

	chunk, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return err
	}

	builder := corpus.NewBuilder(pdf.NewExtractor(), chunk, slog.Default())
	built := builder.Build(paths)
	fmt.Printf("Produced %d chunks from %d documents\n", len(built.Records), built.Documents)

	progress := func(stored, total int) {
		fmt.Printf("Stored %d/%d chunks\n", stored, total)
	}
	batcher := ingest.NewBatcher(store, cfg.Collection, cfg.BatchSize, progress, slog.Default())

	result, err := batcher.Ingest(ctx, built.Records)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Println()
	if result.ChunksStored == 0 {
		fmt.Println("No text content found; collection is empty")
	} else {
		fmt.Printf("Successfully ingested %d chunks from %d documents\n", result.ChunksStored, built.Documents)
	}

	if len(built.Failed) > 0 {
		fmt.Println()
		fmt.Println("Failed documents:")
		for _, failed := range built.Failed {
			fmt.Printf("  - %s: %s\n", failed.Path, failed.Reason)
		}
	}

	fmt.Printf("\nTotal time: %s\n", time.Since(start).Round(time.Second))
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, store, err := connect()
	if err != nil {
		return err
	}
	defer store.Close()

	topK := cfg.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	engine := retrieval.NewEngine(store, cfg.Collection)
	sess := session.New(engine, topK, os.Stdin, os.Stdout)

	if queryInteractive || len(args) == 0 {
		err = sess.RunInteractive(ctx)
	} else {
		err = sess.RunOnce(ctx, args[0])
	}

	if errors.Is(err, storage.ErrCollectionNotFound) {
		return fmt.Errorf("collection %q not found: run 'docquery ingest' first", cfg.Collection)
	}
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, store, err := connect()
	if err != nil {
		return err
	}
	defer store.Close()

	engine := retrieval.NewEngine(store, cfg.Collection)
	server := mcpserver.NewServer(engine, cfg.TopK)

	slog.Info("Starting docquery MCP server (stdio mode)")
	return server.Run(cmd.Context())
}
