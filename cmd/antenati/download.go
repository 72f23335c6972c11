package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/archivio/antenati/pkg/data"
	"github.com/archivio/antenati/pkg/export"
	"github.com/archivio/antenati/pkg/iiif"
	"github.com/archivio/antenati/pkg/services"
	"github.com/archivio/antenati/pkg/tui"
)

var downloadCmd = &cobra.Command{
	Use:   "download URL",
	Short: "Download every page image of a gallery",
	Long:  "Resolve the IIIF manifest of a gallery page and download all of its images into a directory named after the gallery metadata",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		workers, _ := cmd.Flags().GetInt("workers")
		connections, _ := cmd.Flags().GetInt("connections")
		first, _ := cmd.Flags().GetInt("first")
		last, _ := cmd.Flags().GetInt("last")
		baseDir, _ := cmd.Flags().GetString("dir")
		useTUI, _ := cmd.Flags().GetBool("tui")
		assumeYes, _ := cmd.Flags().GetBool("yes")

		ctx := cmd.Context()
		client := iiif.NewClient(os.Getenv("ANTENATI_REFERER"), logger)

		gallery, err := services.Open(ctx, client, args[0], first, last, logger)
		cobra.CheckErr(err)

		for _, md := range gallery.Info() {
			fmt.Printf("%-25s%s\n", md.Label, md.Value)
		}
		fmt.Printf("%d images found.\n", gallery.Len())

		dir, err := gallery.EnsureDir(baseDir)
		var exists *services.DirectoryExistsError
		if errors.As(err, &exists) {
			if !assumeYes && !confirm(fmt.Sprintf("Directory %s already exists. Proceed?", dir)) {
				os.Exit(1)
			}
		} else {
			cobra.CheckErr(err)
		}
		fmt.Printf("Output directory: %s\n", dir)

		header, rows, err := export.GalleryRows(gallery)
		cobra.CheckErr(err)
		cobra.CheckErr(export.WriteCSV(filepath.Join(dir, "info.csv"), header, rows))

		var sink services.ProgressSink
		var tuiSink *tui.Sink
		if useTUI {
			tuiSink = tui.NewSink()
			sink = tuiSink
		} else {
			sink = services.NewBarSink()
		}

		opts := services.Options{
			Workers:     workers,
			Connections: connections,
			Referer:     os.Getenv("ANTENATI_REFERER"),
		}
		total, err := gallery.Download(ctx, dir, opts, sink)
		if tuiSink != nil {
			tuiSink.Wait()
		}
		cobra.CheckErr(err)

		recordDownload(gallery, dir, total)
		fmt.Printf("\nDone. Total size: %s\n", humanize.IBytes(uint64(total)))
	},
}

func init() {
	downloadCmd.Flags().IntP("workers", "n", envInt("ANTENATI_WORKERS", services.DefaultWorkers), "max parallel downloads")
	downloadCmd.Flags().IntP("connections", "c", envInt("ANTENATI_CONNECTIONS", services.DefaultConnections), "max connections to the image server")
	downloadCmd.Flags().IntP("first", "f", 0, "index of the first image to download")
	downloadCmd.Flags().IntP("last", "l", -1, "index of the first image NOT to download")
	downloadCmd.Flags().StringP("dir", "d", "", "base output directory")
	downloadCmd.Flags().Bool("tui", false, "render progress as a TUI")
	downloadCmd.Flags().BoolP("yes", "y", false, "proceed without confirmation")
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// recordDownload appends the run to the local history. History is a
// convenience, so failures only warn.
func recordDownload(gallery *services.Gallery, dir string, total int64) {
	repo, err := data.NewRepository(dbPath())
	if err != nil {
		logger.Warn("history unavailable", zap.Error(err))
		return
	}
	defer repo.Close()

	title, _ := gallery.Manifest.MetadataValue(iiif.LabelTitle)
	typology, _ := gallery.Manifest.MetadataValue(iiif.LabelTypology)
	rec := &data.GalleryRecord{
		ArchiveID:    gallery.ArchiveID,
		URL:          gallery.URL,
		Title:        title,
		Typology:     typology,
		Directory:    dir,
		Pages:        gallery.Len(),
		Bytes:        total,
		DownloadedAt: time.Now(),
	}
	if err := repo.SaveDownload(rec); err != nil {
		logger.Warn("could not record download", zap.Error(err))
	}
}
