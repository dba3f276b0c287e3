package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lugat-go/internal/ui"
	"lugat-go/internal/words"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the flashcards and quiz (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Bool("watch", false, "reload the word list when its files change")
}

func runPlay(cmd *cobra.Command) (err error) {
	ctx := cmd.Context()
	a, err := newApp(ctx, configFile)
	if err != nil {
		return err
	}
	defer closeApp(a, &err)

	watch := a.cfg.Data.Watch
	if f := cmd.Flags().Lookup("watch"); f != nil && f.Changed {
		watch, _ = cmd.Flags().GetBool("watch")
	}

	store := a.loader.Load(ctx)
	if store.Len() == 0 {
		a.log.WithField("source", a.cfg.Data.Source).Warn("no words loaded")
	}

	model := ui.New(ctx, ui.Deps{
		Store:     store,
		Progress:  a.progress,
		Favorites: a.favorites,
		Themes:    a.themes,
		History:   a.history,
		Quiz:      a.cfg.QuizConfig(),
		Log:       a.log,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if watch {
		if words.IsRemote(a.cfg.Data.Source) {
			a.log.Warn("watch ignored for a remote word list")
		} else {
			w, err := words.NewWatcher(a.loader, 0)
			if err != nil {
				return fmt.Errorf("error creating watcher: %w", err)
			}
			defer w.Stop()
			if err := w.Start(ctx, func(s *words.Store) { p.Send(ui.ReloadedMsg(s)) }); err != nil {
				return fmt.Errorf("error watching %s: %w", a.cfg.Data.Source, err)
			}
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
