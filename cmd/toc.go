package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/door43-tools/tanotion/internal/core"
)

var tocSections int
var tocStart int
var tocNoContent bool
var tocSkipExisting bool

func init() {
	tocCmd.Flags().IntVar(&tocSections, "sections", 0, "build only the first N top-level sections (0 = all)")
	tocCmd.Flags().IntVar(&tocStart, "start", 0, "start at the Nth top-level section")
	tocCmd.Flags().BoolVar(&tocNoContent, "no-content", false, "build only the visual table of contents, no pages")
	tocCmd.Flags().BoolVar(&tocSkipExisting, "skip-existing", false, "do not recreate pages already in the cache")
	rootCmd.AddCommand(tocCmd)
}

var tocCmd = &cobra.Command{
	Use:   "toc [manual ...]",
	Short: "Build page hierarchies and tables of contents",
	Long: `Mirrors each manual's toc.yaml under the parent page: one child page
per article or section, plus a visual table of contents of toggles and
page links on the parent page itself.`,
	Run: func(cmd *cobra.Command, args []string) {
		config := core.CurrentConfig()
		if !config.DryRun {
			if err := config.RequireNotionCredentials(); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}
		if config.NotionParentPageID == "" && !config.DryRun {
			fmt.Println("NOTION_PARENT_PAGE_ID is not set")
			os.Exit(1)
		}

		manuals := args
		if len(manuals) == 0 {
			manuals = config.Migration.Manuals
		}

		ctx := context.Background()
		cache := loadCache(config)
		source := config.NewSource()
		sink := config.NewSink()
		builder := core.NewTOCBuilder(config, source, sink, cache, core.TOCBuilderOptions{
			Sections:     tocSections,
			Start:        tocStart,
			NoContent:    tocNoContent,
			SkipExisting: tocSkipExisting,
		})

		for _, manual := range manuals {
			toc, err := source.ManualTOC(ctx, manual)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			core.CurrentLogger().Infof("Building %s", core.Describe(toc))
			if err := builder.BuildManual(ctx, manual, config.NotionParentPageID); err != nil {
				saveCache(config, cache)
				fmt.Println(err)
				os.Exit(1)
			}
		}
		saveCache(config, cache)
	},
}
