package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archivio/antenati/pkg/epub"
)

var epubCmd = &cobra.Command{
	Use:   "epub DIR",
	Short: "Bundle a downloaded gallery directory into an EPUB",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title, _ := cmd.Flags().GetString("title")
		maxWidth, _ := cmd.Flags().GetInt("max-width")

		builder := &epub.Builder{Title: title, MaxWidth: maxWidth}
		out, err := builder.BuildFromDir(args[0])
		cobra.CheckErr(err)

		fmt.Printf("EPUB created: %s\n", out)
	},
}

func init() {
	epubCmd.Flags().String("title", "", "EPUB title (defaults to the directory name)")
	epubCmd.Flags().Int("max-width", 1200, "shrink pages wider than this many pixels (0 disables)")
}
