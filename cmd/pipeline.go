package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studybuddy-ai/studybuddy/internal/agents"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline [file]",
	Short: "Plan and run a chained sequence of study agents",
	Long: `Asks the planner to pick an ordered sequence of agents for the given
text, runs them as a chain where each step consumes the previous step's
output, and prints the final result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	text, err := readInput(args)
	if err != nil {
		return err
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
	planner, err := agents.NewPlanner(provider, cfg.Model)
	if err != nil {
		return fmt.Errorf("creating planner: %w", err)
	}

	steps, err := planner.Plan(ctx, text)
	if err != nil {
		return fmt.Errorf("planning pipeline: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Plan (%d steps):\n", len(steps))
	for i, step := range steps {
		fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, step.Name)
	}
	if rationale := planner.Rationale(ctx, steps); rationale != "" {
		fmt.Fprintf(os.Stderr, "\n%s\n\n", rationale)
	}

	orch := agents.NewOrchestrator(runner)
	result, err := orch.RunPipeline(ctx, text, steps)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
