package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/filtering"
	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/matching"
)

// loadCatalog never returns a nil catalog: on failure it is empty and the
// error tells the caller why.
func loadCatalog(ctx context.Context, config *Config, log *zap.Logger) (*catalog.Jobs, error) {
	loader := catalog.NewLoader(log, config.Catalog.Timeout)
	if ua := strings.TrimSpace(config.Catalog.UserAgent); ua != "" {
		loader.UserAgent = ua
	}

	return loader.LoadOrEmpty(ctx, config.Catalog.Source)
}

func filterCatalog(ctx context.Context, config *Config, jobs *catalog.Jobs, log *zap.Logger) (*catalog.Jobs, error) {
	filters := filtering.New(prepareFilters(config.Filters, log), log)
	for _, status := range filters.Describe() {
		log.Debug("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.Any("details", status.Details),
		)
	}

	filtered, err := filters.RunFilters(ctx, jobs)
	if err != nil {
		return nil, fmt.Errorf("filtering catalog: %w", err)
	}

	if config.Catalog.Dump {
		filename, err := filtered.DumpToTmpFile()
		if err != nil {
			return nil, fmt.Errorf("dump catalog to file: %w", err)
		}
		log.Info("dumping catalog to file", zap.String("filename", filename), zap.Int("count", filtered.Len()))
	}

	return filtered, nil
}

// warnCatalog tells the user that results are empty because the catalog could
// not be loaded, not because nothing matched.
func warnCatalog(w io.Writer, source string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "warning: job catalog %q could not be loaded, results will be empty: %v\n", source, err)
}

func prepareFilters(config *FiltersConfig, log *zap.Logger) []filtering.Filter {
	return []filtering.Filter{
		filtering.NewCompanies(config.Companies, log),
		filtering.NewExcludeFile(config.ExcludeFile, log),
		filtering.NewExpired(config.SkipExpired, log),
	}
}

func logMatches(log *zap.Logger, matches []matching.ScoredJob) {
	for _, m := range matches {
		log.Debug("match", logger.MatchFields(m.ID, m.MatchScore)...)
	}
}
