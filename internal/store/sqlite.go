package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/classify"
)

const (
	listingsTable = "job_listings"

	teamworkLikelihoodColumn = "team_work_likelihood"
	categoryColumn           = "job_category"
	likelihoodScale          = 10
)

// Store reads scraped job listings from a SQLite database.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens an existing SQLite database.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("database path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file %q: %w", path, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ExportJobs returns every listing as a catalog record. Whatever columns the
// table has are exported; NULL values are dropped. Missing teamwork likelihood
// and category are estimated from the listing text, and work_environment is
// derived from the likelihood (0..1) on the 0..10 scale.
func (s *Store) ExportJobs(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+listingsTable)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", listingsTable, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	records := make([]map[string]any, 0)
	var estimated, categorized int
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", listingsTable, err)
		}

		record := make(map[string]any, len(columns))
		for i, column := range columns {
			if value := exportValue(values[i]); value != nil {
				record[column] = value
			}
		}
		if estimateTeamwork(record) {
			estimated++
		}
		if categorize(record) {
			categorized++
		}
		deriveWorkEnvironment(record)

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", listingsTable, err)
	}

	s.logger.Info("jobs exported",
		zap.Int("count", len(records)),
		zap.Int("columns", len(columns)),
		zap.Int("estimated_teamwork", estimated),
		zap.Int("categorized", categorized),
	)
	return records, nil
}

func exportValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return val
	}
}

func deriveWorkEnvironment(record map[string]any) {
	if _, ok := record[string(catalog.WorkEnvironment)]; ok {
		return
	}

	var likelihood float64
	switch v := record[teamworkLikelihoodColumn].(type) {
	case float64:
		likelihood = v
	case int64:
		likelihood = float64(v)
	default:
		return
	}

	record[string(catalog.WorkEnvironment)] = likelihood * likelihoodScale
}

func listing(record map[string]any) classify.Listing {
	text := func(key string) string {
		v, _ := record[key].(string)
		return v
	}
	return classify.Listing{
		Title:            text("title"),
		Description:      text("description"),
		Requirements:     text("requirements"),
		Responsibilities: text("responsibilities"),
		URL:              text("url"),
	}
}

func estimateTeamwork(record map[string]any) bool {
	if _, ok := record[teamworkLikelihoodColumn]; ok {
		return false
	}
	record[teamworkLikelihoodColumn] = classify.TeamLikelihood(listing(record))
	return true
}

func categorize(record map[string]any) bool {
	if current, _ := record[categoryColumn].(string); current != "" && current != classify.Unknown {
		return false
	}
	category := classify.Category(listing(record))
	if category == classify.Unknown {
		return false
	}
	record[categoryColumn] = category
	return true
}
