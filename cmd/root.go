package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/door43-tools/tanotion/internal/core"
)

var verboseInfo bool
var verboseDebug bool
var verboseTrace bool
var dryRun bool

var rootCmd = &cobra.Command{
	Use:   "tanotion",
	Short: "tanotion migrates unfoldingWord Translation Academy to Notion",
	Long: `Reads Translation Academy markdown from git.door43.org (or a local
checkout), converts it to Notion blocks, and writes pages, databases,
and tables of contents through the Notion API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config := core.CurrentConfig()
		config.DryRun = dryRun

		// The most verbose level wins when multiple flags are passed.
		if verboseInfo {
			core.CurrentLogger().SetVerboseLevel(core.VerboseInfo)
		}
		if verboseDebug {
			core.CurrentLogger().SetVerboseLevel(core.VerboseDebug)
		}
		if verboseTrace {
			core.CurrentLogger().SetVerboseLevel(core.VerboseTrace)
		}
		if config.Migration.LogFile != "" {
			if err := core.CurrentLogger().LogToFile(config.Migration.LogFile); err != nil {
				core.CurrentLogger().Warnf("Unable to log to %s: %v", config.Migration.LogFile, err)
			}
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseInfo, "verbose", "v", false, "enable verbose info output")
	rootCmd.PersistentFlags().BoolVar(&verboseDebug, "verbose-debug", false, "enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&verboseTrace, "verbose-trace", false, "enable verbose trace output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "record Notion writes locally instead of calling the API")
}

func Execute() {
	defer core.CurrentLogger().Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadCache reads the persisted page cache named in the configuration,
// starting empty when no file exists yet.
func loadCache(config *core.Config) *core.Cache {
	cache, err := core.LoadCacheFromFile(config.Migration.CacheFile)
	if err != nil {
		core.CurrentLogger().Warnf("Unable to read cache file %s: %v", config.Migration.CacheFile, err)
		return core.NewCache()
	}
	return cache
}

func saveCache(config *core.Config, cache *core.Cache) {
	if config.Migration.CacheFile == "" {
		return
	}
	if err := cache.SaveToFile(config.Migration.CacheFile); err != nil {
		core.CurrentLogger().Errorf("Unable to save cache file %s: %v", config.Migration.CacheFile, err)
	}
}
