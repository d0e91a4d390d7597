package cmd

import (
	"github.com/spf13/cobra"

	"github.com/studybuddy-ai/studybuddy/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "studybuddy",
	Short: "AI study companion: summaries, quizzes, flashcards, and document chat",
	Long: `StudyBuddy turns study material into summaries, translations,
explanations, Q&A, flashcards, quizzes, and practice problems using a
team of AI agents. Ingested documents are chunked and embedded so you
can chat with them and search them semantically.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
