package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/door43-tools/tanotion/internal/core"
)

func init() {
	rootCmd.AddCommand(linksCmd)
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Rewrite internal links on migrated pages",
	Long: `Revisits every page in the cache and rewrites links that point at the
Gitea source (or at relative article paths) to the migrated Notion
pages. Run it after a full migration, once all link targets exist.`,
	Run: func(cmd *cobra.Command, args []string) {
		config := core.CurrentConfig()
		if !config.DryRun {
			if err := config.RequireNotionCredentials(); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}

		cache := loadCache(config)
		updater := core.NewLinkUpdater(config.NewSink(), cache)
		updated, err := updater.UpdateAllPages(context.Background())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		core.CurrentLogger().Infof("Rewrote %d links", updated)
	},
}
