package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scraped job listings from a SQLite database into a catalog file",
	Run: func(cmd *cobra.Command, _ []string) {
		db, _ := cmd.Flags().GetString("db")
		output, _ := cmd.Flags().GetString("output")
		runExport(db, output)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("db", "job_listings.db", "path to the SQLite database")
	exportCmd.Flags().String("output", catalog.DefaultSource, "catalog file to write")
}

func runExport(dbPath, output string) {
	ctx := context.Background()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	s, err := store.Open(ctx, dbPath, logger)
	if err != nil {
		logger.Fatal("opening database", zap.Error(err))
	}
	defer s.Close()

	records, err := s.ExportJobs(ctx)
	if err != nil {
		logger.Fatal("exporting jobs", zap.Error(err))
	}

	// The written file has to load back as a catalog.
	if _, err := catalog.Decode(records, logger); err != nil {
		logger.Fatal("exported jobs do not form a valid catalog", zap.Error(err))
	}

	if err := writeCatalog(output, records); err != nil {
		logger.Fatal("writing catalog", zap.Error(err))
	}

	logger.Info("catalog written", zap.String("filename", output), zap.Int("count", len(records)))
}

func writeCatalog(path string, records []map[string]any) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}
