package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studybuddy-ai/studybuddy/internal/docstore"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List ingested documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
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

		docs := store.GetAll()
		if len(docs) == 0 {
			fmt.Println("No documents ingested yet. Run `studybuddy ingest` to add some.")
			return nil
		}

		fmt.Printf("%d document(s):\n\n", len(docs))
		for _, d := range docs {
			fmt.Printf("  %s  %s\n", d.ID, d.Filename)
			fmt.Printf("    %d chunks, %d words, %d pages, ingested %s\n",
				len(d.Embeddings), d.Stats.TotalWords, d.Stats.TotalPages,
				d.Timestamp.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(documentsCmd)
}
