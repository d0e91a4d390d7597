package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/studybuddy-ai/studybuddy/internal/docstore"
	"github.com/studybuddy-ai/studybuddy/internal/ingest"
	"github.com/studybuddy-ai/studybuddy/internal/progress"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [patterns...]",
	Short: "Ingest study material into the document store",
	Long: `Chunks and embeds the given files so they can be searched and chatted
with. Patterns may be literal paths or globs like "notes/**/*.md".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := ingest.Discover(args)
	if err != nil {
		return fmt.Errorf("resolving patterns: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No ingestable files matched.")
		return nil
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Found %d files to ingest\n", len(files))
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store, err := docstore.New(database)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}

	pipeline := ingest.New(store, embedder, cfg.ChunkSize)

	reporter := progress.NewReporter()
	reporter.Start(len(files))

	var ingested, failed, skippedChunks int
	for i, path := range files {
		reporter.Update(i+1, path)
		result, err := pipeline.IngestFile(ctx, path)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", path, err)
			continue
		}
		ingested++
		skippedChunks += result.SkippedChunks
		if verbose {
			fmt.Fprintf(os.Stderr, "%s -> %s (%d chunks)\n", path, result.Document.ID, result.ChunkCount)
		}
	}
	reporter.Finish()

	fmt.Println()
	fmt.Println("Ingestion complete!")
	fmt.Printf("  Files ingested: %d\n", ingested)
	fmt.Printf("  Files failed:   %d\n", failed)
	if skippedChunks > 0 {
		fmt.Printf("  Chunks skipped: %d (no embedding)\n", skippedChunks)
	}
	fmt.Printf("  Duration:       %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
