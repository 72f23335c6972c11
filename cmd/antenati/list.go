package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/archivio/antenati/pkg/data"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List previously downloaded galleries",
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := data.NewRepository(dbPath())
		cobra.CheckErr(err)
		defer repo.Close()

		records, err := repo.ListDownloads()
		cobra.CheckErr(err)

		if len(records) == 0 {
			fmt.Println("No downloads recorded yet. Use 'antenati download' to fetch a gallery.")
			return
		}

		columns := []table.Column{
			{Title: "Archive", Width: 10},
			{Title: "Title", Width: 28},
			{Title: "Typology", Width: 18},
			{Title: "Pages", Width: 6},
			{Title: "Size", Width: 10},
			{Title: "Date", Width: 10},
		}

		rows := []table.Row{}
		for _, rec := range records {
			rows = append(rows, table.Row{
				rec.ArchiveID,
				truncate(rec.Title, 26),
				truncate(rec.Typology, 16),
				fmt.Sprintf("%d", rec.Pages),
				humanize.IBytes(uint64(rec.Bytes)),
				rec.DownloadedAt.Format("2006-01-02"),
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)
		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n%d galleries downloaded\n\n", len(records))
		fmt.Println(t.View())
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
