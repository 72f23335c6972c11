package cmd

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "antenati",
	Short: "Download image galleries from the Portale Antenati",
	Long:  "A tool to download digitized registry galleries from the Portale Antenati, driven by their IIIF manifests",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger, _ = zap.NewDevelopment()
			return
		}
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, _ = cfg.Build()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(epubCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func envInt(key string, fallback int) int {
	if raw, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

// dbPath locates the download-history database.
func dbPath() string {
	if p := os.Getenv("ANTENATI_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "antenati-history.db"
	}
	return filepath.Join(home, ".antenati", "history.db")
}
