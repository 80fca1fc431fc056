package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/door43-tools/tanotion/internal/core"
)

var migrateManuals []string

func init() {
	migrateCmd.Flags().StringSliceVarP(&migrateManuals, "manuals", "m", nil,
		"manuals to migrate (default is the configured list)")
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate [manual/article ...]",
	Short: "Migrate articles into the Notion database",
	Long: `Walks the manuals' toc.yaml files and upserts one database row per
article: properties from the article metadata, the converted markdown as
the page body. Unchanged articles (same content hash) are skipped.

Pass manual/article references to migrate specific articles instead:

  tanotion migrate translate/figs-metaphor translate/figs-simile`,
	Run: func(cmd *cobra.Command, args []string) {
		config := core.CurrentConfig()
		if !config.DryRun {
			if err := config.RequireNotionCredentials(); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			if config.NotionDatabaseID == "" {
				fmt.Println("NOTION_DATABASE_ID is not set")
				os.Exit(1)
			}
		}

		ctx := context.Background()
		cache := loadCache(config)
		migrator := core.NewMigrator(config, config.NewSource(), config.NewSink(), cache)

		var refs []core.ArticleRef
		if len(args) > 0 {
			for _, arg := range args {
				ref, err := core.ParseArticleRef(arg)
				if err != nil {
					fmt.Println(err)
					os.Exit(1)
				}
				refs = append(refs, ref)
			}
		} else {
			manuals := migrateManuals
			if len(manuals) == 0 {
				manuals = config.Migration.Manuals
			}
			var err error
			refs, err = migrator.DiscoverArticles(ctx, manuals)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}

		summary, err := migrator.Migrate(ctx, refs)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		color.Green("Migrated: %d", summary.Migrated)
		color.Yellow("Skipped:  %d", summary.Skipped)
		if summary.Failed > 0 {
			color.Red("Failed:   %d", summary.Failed)
			os.Exit(1)
		}
	},
}
