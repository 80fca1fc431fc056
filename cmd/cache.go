package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/door43-tools/tanotion/internal/core"
)

func init() {
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show page cache statistics",
	Run: func(cmd *cobra.Command, args []string) {
		config := core.CurrentConfig()
		cache := loadCache(config)
		pages, urls := cache.Stats()
		fmt.Printf("Cache file: %s\n", config.Migration.CacheFile)
		fmt.Printf("Pages:      %d\n", pages)
		fmt.Printf("URL map:    %d\n", urls)
	},
}
