package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archivio/antenati/pkg/iiif"
	"github.com/archivio/antenati/pkg/services"
)

var infoCmd = &cobra.Command{
	Use:   "info URL",
	Short: "Show gallery metadata without downloading",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		first, _ := cmd.Flags().GetInt("first")
		last, _ := cmd.Flags().GetInt("last")
		showPages, _ := cmd.Flags().GetBool("pages")

		client := iiif.NewClient(os.Getenv("ANTENATI_REFERER"), logger)
		gallery, err := services.Open(cmd.Context(), client, args[0], first, last, logger)
		cobra.CheckErr(err)

		for _, md := range gallery.Info() {
			fmt.Printf("%-25s%s\n", md.Label, md.Value)
		}
		fmt.Printf("%d images found.\n", gallery.Len())

		if showPages {
			fmt.Println()
			for _, page := range gallery.Pages() {
				fmt.Printf("%-30s%s\n", page.Slug, page.URL)
			}
		}
	},
}

func init() {
	infoCmd.Flags().IntP("first", "f", 0, "index of the first image to consider")
	infoCmd.Flags().IntP("last", "l", -1, "index of the first image NOT to consider")
	infoCmd.Flags().Bool("pages", false, "also list every page slug and image URL")
}
