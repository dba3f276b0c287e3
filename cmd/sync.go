package cmd

import (
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download the remote word list into the offline cache",
	Long: `Fetch every configured cache asset into the current cache version and
drop entries left by older versions. Afterwards a remote word list loads
without a network connection.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		a, err := newApp(ctx, configFile)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		if len(a.cfg.Cache.Assets) == 0 {
			cmd.Println("Nothing to cache: the word list is local.")
			return nil
		}
		if err := a.cache.Install(ctx); err != nil {
			return err
		}
		purged, err := a.cache.Activate(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("Cached %d asset(s) in %s, removed %d old entries\n", len(a.cfg.Cache.Assets), a.cache.Name(), purged)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
