package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studybuddy-ai/studybuddy/internal/docstore"
	"github.com/studybuddy-ai/studybuddy/internal/retrieval"
)

var queryCmd = &cobra.Command{
	Use:   "query [document-id] [question]",
	Short: "Semantically search an ingested document",
	Long:  `Embeds the question and returns the document chunks most similar to it. Use "studybuddy documents" output or the API to find document IDs.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().Int("limit", retrieval.DefaultTopK, "maximum number of chunks")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	documentID, question := args[0], args[1]

	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
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

	doc, err := store.Get(ctx, documentID)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("no document with id %q; run `studybuddy ingest` first", documentID)
	}

	vectors, err := embedder.Embed(ctx, []string{question})
	if err != nil {
		return fmt.Errorf("embedding question: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return fmt.Errorf("embedder returned no vector for the question")
	}

	scored := retrieval.TopK(vectors[0], doc.Embeddings, limit)
	if len(scored) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if jsonOutput {
		return printQueryResultsJSON(scored)
	}
	printQueryResultsTable(doc.Filename, scored)
	return nil
}

type queryResultJSON struct {
	Rank        int     `json:"rank"`
	Similarity  float64 `json:"similarity"`
	ChunkNumber int     `json:"chunkNumber"`
	Content     string  `json:"content"`
}

func printQueryResultsJSON(scored []retrieval.Scored) error {
	var out []queryResultJSON
	for i, sc := range scored {
		out = append(out, queryResultJSON{
			Rank:        i + 1,
			Similarity:  float64(sc.Similarity),
			ChunkNumber: sc.Record.Metadata.ChunkNumber,
			Content:     sc.Record.Content,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printQueryResultsTable(filename string, scored []retrieval.Scored) {
	fmt.Printf("Found %d chunks in %s:\n\n", len(scored), filename)
	for i, sc := range scored {
		fmt.Printf("  %d. [%.1f%%] chunk %d\n", i+1, sc.Similarity*100, sc.Record.Metadata.ChunkNumber)
		fmt.Printf("     %s\n\n", truncate(sc.Record.Content, 160))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
