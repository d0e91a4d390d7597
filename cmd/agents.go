package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studybuddy-ai/studybuddy/internal/agents"
)

var agentsCmd = &cobra.Command{
	Use:   "agents [file]",
	Short: "Run study agents over a text file or stdin",
	Long: `Runs each selected study agent over the given text and prints their
JSON results as one map. With no --agents flag, every agent runs:
summarize, translate, explain, qa, flashcard, quiz, practiceProblems.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAgents,
}

func init() {
	agentsCmd.Flags().String("agents", "", "comma-separated agent names (default: all)")
	rootCmd.AddCommand(agentsCmd)
}

func runAgents(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	text, err := readInput(args)
	if err != nil {
		return err
	}

	selectedStr, _ := cmd.Flags().GetString("agents")
	var selected []string
	for _, name := range strings.Split(selectedStr, ",") {
		if name = strings.TrimSpace(name); name != "" {
			selected = append(selected, name)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, err := createProviderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating LLM provider: %w", err)
	}
	runner, err := agents.NewRunner(provider, cfg.Model)
	if err != nil {
		return fmt.Errorf("creating agent runner: %w", err)
	}

	orch := agents.NewOrchestrator(runner)
	results, skipped, err := orch.FanOut(ctx, text, selected)
	if err != nil {
		return err
	}
	for _, name := range skipped {
		fmt.Fprintf(os.Stderr, "Warning: unknown agent %q skipped\n", name)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// readInput returns the study text from the file argument, or stdin when no
// argument is given.
func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no input text; pass a file or pipe text on stdin")
	}
	return string(data), nil
}
