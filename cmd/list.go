package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"lugat-go/internal/words"
)

var errNoSuchCategory = errors.New("no words in category")

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with word counts and best scores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		a, err := newApp(ctx, configFile)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		store := a.loader.Load(ctx)
		best, err := a.progress.All(ctx)
		if err != nil {
			return err
		}
		search, _ := cmd.Flags().GetString("search")

		t := newTable("Category", "Words", "Best")
		for _, c := range words.FilterCategories(store.Categories(), search) {
			t.Row(c.Label, strconv.Itoa(c.Count), fmt.Sprintf("%d%%", best[c.Key]))
		}
		cmd.Println(t.Render())
		cmd.Printf("%d words in %d categories\n", store.Len(), len(store.Categories()))
		return nil
	},
}

var wordsCmd = &cobra.Command{
	Use:   "words <category>",
	Short: "Print the words of a category",
	Long: `Print the words of a category. The category is matched by label or
by its normalized key, so "phrasalverbs" finds "Phrasal Verbs". Use
"Favorites" for the favorite words.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		a, err := newApp(ctx, configFile)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		store := a.loader.Load(ctx)
		favs, err := a.favorites.List(ctx)
		if err != nil {
			return err
		}
		list := store.Resolve(args[0], favs)
		if len(list) == 0 {
			return fmt.Errorf("%w: %q", errNoSuchCategory, args[0])
		}
		search, _ := cmd.Flags().GetString("search")

		t := newTable("Translation", "Word", "Transcription")
		for _, e := range words.Filter(list, search) {
			t.Row(e.Translation, e.Word, e.Transcription)
		}
		cmd.Println(t.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd, wordsCmd)
	categoriesCmd.Flags().StringP("search", "s", "", "only show categories containing this text")
	wordsCmd.Flags().StringP("search", "s", "", "only show words or translations containing this text")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func closeApp(a *app, err *error) {
	if cerr := a.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
