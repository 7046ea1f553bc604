package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/catalog"
)

func createDatabase(t *testing.T, statements ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "job_listings.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func TestExportJobs(t *testing.T) {
	path := createDatabase(t,
		`CREATE TABLE job_listings (
			id INTEGER PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			company VARCHAR(255),
			salary_min FLOAT,
			team_work_likelihood FLOAT,
			work_environment FLOAT,
			stress_level FLOAT
		)`,
		`INSERT INTO job_listings (id, title, company, salary_min, team_work_likelihood, work_environment, stress_level)
			VALUES (1, 'Gardener', 'Green Ltd', 2100.5, 0.7, NULL, 3)`,
		`INSERT INTO job_listings (id, title, company, team_work_likelihood, work_environment)
			VALUES (2, 'Baker', NULL, 0.2, 9)`,
	)

	s, err := Open(context.Background(), path, zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	records, err := s.ExportJobs(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first["title"] != "Gardener" || first["id"] != int64(1) {
		t.Fatalf("unexpected first record: %v", first)
	}
	if got := first["work_environment"].(float64); got < 6.999 || got > 7.001 {
		t.Fatalf("expected derived work environment 7, got %v", got)
	}

	second := records[1]
	if _, ok := second["company"]; ok {
		t.Fatalf("NULL columns must be dropped: %v", second)
	}
	if second["work_environment"] != float64(9) {
		t.Fatalf("stored work environment must win, got %v", second["work_environment"])
	}

	jobs, err := catalog.Decode(records, zap.NewNop())
	if err != nil {
		t.Fatalf("exported records must decode: %v", err)
	}
	if jobs.Items[0].ID != "1" || jobs.Items[0].SalaryMin != 2100.5 {
		t.Fatalf("unexpected decoded job: %+v", jobs.Items[0])
	}
	if v, ok := jobs.Items[0].Value(catalog.StressLevel); !ok || v != 3 {
		t.Fatalf("unexpected stress level: %v %v", v, ok)
	}
}

func TestExportJobsEstimatesMissingColumns(t *testing.T) {
	path := createDatabase(t,
		`CREATE TABLE job_listings (
			id INTEGER PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			job_category VARCHAR(100)
		)`,
		`INSERT INTO job_listings (id, title, description, job_category)
			VALUES (1, 'Software Developer', 'Join our team and write code.', NULL)`,
		`INSERT INTO job_listings (id, title, description, job_category)
			VALUES (2, 'Chef', 'Works alone.', 'Vadība')`,
	)

	s, err := Open(context.Background(), path, zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	records, err := s.ExportJobs(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	first := records[0]
	if first["team_work_likelihood"] != float64(1) || first["work_environment"] != float64(10) {
		t.Fatalf("expected team work estimated from text, got %v", first)
	}
	if first["job_category"] != "Informāciju tehnoloģijas, Datori" {
		t.Fatalf("unexpected category: %v", first["job_category"])
	}

	second := records[1]
	if second["job_category"] != "Vadība" {
		t.Fatalf("stored category must win, got %v", second["job_category"])
	}
	if got := second["work_environment"].(float64); got < 5.499 || got > 5.501 {
		t.Fatalf("expected neutral work environment 5.5, got %v", got)
	}

	jobs, err := catalog.Decode(records, zap.NewNop())
	if err != nil {
		t.Fatalf("exported records must decode: %v", err)
	}
	if jobs.Items[0].Category != "Informāciju tehnoloģijas, Datori" {
		t.Fatalf("category lost in decode: %+v", jobs.Items[0])
	}
}

func TestOpenMissingDatabase(t *testing.T) {
	if _, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.db"), nil); err == nil {
		t.Fatalf("expected error for missing database")
	}
	if _, err := Open(context.Background(), " ", nil); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestExportJobsWithoutTable(t *testing.T) {
	path := createDatabase(t, `CREATE TABLE other (id INTEGER)`)

	s, err := Open(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	if _, err := s.ExportJobs(context.Background()); err == nil {
		t.Fatalf("expected error when job_listings is missing")
	}
}
