package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "lugat",
	Short: "Vocabulary flashcards and a timed typing quiz in the terminal",
	Long: `lugat shows word lists grouped by category, lets you search and
favorite words, and runs a one minute typing challenge per category.
Best scores, favorites and the theme are kept between runs.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./lugat.yaml or ~/.config/lugat/lugat.yaml)")
	rootCmd.Flags().Bool("watch", false, "reload the word list when its files change")
}
