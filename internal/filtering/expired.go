package filtering

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/catalog"
)

var deadlineLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02.01.2006",
}

type expiredFilter struct {
	toggle
	enabled bool
	now     func() time.Time
	logger  *zap.Logger
}

// NewExpired creates a filter that removes jobs whose deadline is before today.
// Jobs without a deadline, or with one that does not parse, are kept.
func NewExpired(enabled bool, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &expiredFilter{enabled: enabled, now: time.Now, logger: logger}
}

func (f *expiredFilter) Name() string { return "expired" }

func (f *expiredFilter) Validate() error { return nil }

func (f *expiredFilter) Apply(_ context.Context, v *catalog.Jobs) (*catalog.Jobs, Step, error) {
	initial := v.Len()
	if !f.enabled {
		return v, Step{Initial: initial, Dropped: 0, Left: v.Len()}, nil
	}

	now := f.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	excluded := v.Filter(func(job *catalog.Job) bool {
		deadline, ok := parseDeadline(job.Deadline, now.Location())
		if !ok {
			if strings.TrimSpace(job.Deadline) != "" {
				f.logger.Debug("keeping job with unparsable deadline",
					zap.String("job_id", job.ID),
					zap.String("deadline", job.Deadline),
				)
			}
			return false
		}
		return deadline.Before(today)
	})

	if len(excluded) > 0 {
		f.logger.Debug("excluding expired jobs", zap.Strings("excluded_jobs", excluded))
	}

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *expiredFilter) Status() Status {
	details := map[string]string{}
	if !f.enabled {
		details["skip_expired"] = "false"
	}
	return f.status(f.Name(), details)
}

// parseDeadline returns the calendar day of the deadline.
func parseDeadline(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}
