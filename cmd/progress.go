package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show best scores and recent quiz runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		a, err := newApp(ctx, configFile)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		best, err := a.progress.All(ctx)
		if err != nil {
			return err
		}
		stats, err := a.history.Summary(ctx)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("recent")
		recent, err := a.history.Recent(ctx, limit)
		if err != nil {
			return err
		}

		if len(best) == 0 && len(stats) == 0 {
			cmd.Println("No quizzes played yet.")
			return nil
		}

		keys := make([]string, 0, len(best))
		for k := range best {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := newTable("Category", "Best")
		for _, k := range keys {
			t.Row(k, fmt.Sprintf("%d%%", best[k]))
		}
		cmd.Println(t.Render())

		if len(stats) > 0 {
			t = newTable("Category", "Plays", "Top run", "Average")
			for _, s := range stats {
				t.Row(s.Category, strconv.Itoa(s.Plays), fmt.Sprintf("%d%%", s.Best), fmt.Sprintf("%.0f%%", s.Average))
			}
			cmd.Println(t.Render())
		}

		if len(recent) > 0 {
			t = newTable("When", "Category", "Correct", "Incorrect", "Score")
			for _, r := range recent {
				t.Row(humanize.Time(r.CompletedAt), r.Category,
					strconv.Itoa(r.Correct), strconv.Itoa(r.Incorrect), fmt.Sprintf("%d%%", r.Percent))
			}
			cmd.Println(t.Render())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().IntP("recent", "n", 10, "number of recent runs to show")
}
