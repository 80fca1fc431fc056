package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/door43-tools/tanotion/internal/core"
	"github.com/door43-tools/tanotion/internal/markdown"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a markdown file to Notion blocks",
	Long: `Converts markdown to the Notion block JSON the migration would send,
without touching the API. Reads from stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := core.CurrentConfig()

		var raw []byte
		var err error
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
		} else {
			raw, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		converter := markdown.NewConverter(markdown.WithMaxBlocks(config.Migration.MaxBlocks))
		blocks := converter.Convert(markdown.Document(string(raw)))

		output, err := json.MarshalIndent(blocks, "", "  ")
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(string(output))
		color.Green("%d blocks", len(blocks))
	},
}
