package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studybuddy-ai/studybuddy/internal/agents"
	"github.com/studybuddy-ai/studybuddy/internal/docstore"
	mcpserver "github.com/studybuddy-ai/studybuddy/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing document search and study agent tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		provider, err := createProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		runner, err := agents.NewRunner(provider, cfg.Model)
		if err != nil {
			return fmt.Errorf("creating agent runner: %w", err)
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

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "studybuddy MCP server started on stdio (documents=%d)\n", store.Count())

		srv := mcpserver.NewServer(store, embedder, runner)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
