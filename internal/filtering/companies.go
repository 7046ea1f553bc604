package filtering

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/catalog"
)

type companiesFilter struct {
	toggle
	companies []string
	logger    *zap.Logger
}

// NewCompanies creates a filter that removes jobs offered by the given companies.
// Company names are compared case-insensitively.
func NewCompanies(companies []string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &companiesFilter{companies: companies, logger: logger}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Validate() error {
	for _, c := range f.companies {
		if strings.TrimSpace(c) == "" {
			return errors.New("company names must not be empty")
		}
	}
	return nil
}

func (f *companiesFilter) Apply(_ context.Context, v *catalog.Jobs) (*catalog.Jobs, Step, error) {
	initial := v.Len()
	if len(f.companies) == 0 || initial == 0 {
		return v, Step{Initial: initial, Dropped: 0, Left: v.Len()}, nil
	}

	excluded := v.Filter(func(job *catalog.Job) bool {
		company := strings.TrimSpace(job.Company)
		for _, c := range f.companies {
			if strings.EqualFold(company, strings.TrimSpace(c)) {
				return true
			}
		}
		return false
	})

	if len(excluded) > 0 {
		f.logger.Debug("excluding jobs by company",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", v.Len()),
		)
	}

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return f.status(f.Name(), details)
}
