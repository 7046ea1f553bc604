package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Decode converts raw catalog records into jobs. Known scoring attributes are
// extracted into Job.Attributes; values that are not finite numbers are
// treated as absent.
func Decode(records []map[string]any, logger *zap.Logger) (*Jobs, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	jobs := &Jobs{Items: make([]*Job, 0, len(records))}

	for idx, record := range records {
		job, err := decodeJob(record)
		if err != nil {
			return nil, fmt.Errorf("decode job at index %d: %w", idx, err)
		}

		if strings.TrimSpace(job.ID) == "" {
			job.ID = uuid.NewString()
			logger.Debug("job without id, generated one",
				zap.Int("index", idx),
				zap.String("job_id", job.ID),
				zap.String("title", job.Title),
			)
		}

		job.SalaryMin, _ = coerceFloat(record["salary_min"])
		job.SalaryMax, _ = coerceFloat(record["salary_max"])

		for _, attr := range knownAttributes {
			raw, ok := record[string(attr)]
			if !ok || raw == nil {
				continue
			}

			value, ok := coerceFloat(raw)
			if !ok {
				logger.Debug("ignoring non-numeric scoring attribute",
					zap.String("job_id", job.ID),
					zap.String("attribute", string(attr)),
					zap.Any("value", raw),
				)
				continue
			}

			if job.Attributes == nil {
				job.Attributes = make(map[Attribute]float64)
			}
			job.Attributes[attr] = value
		}

		jobs.Items = append(jobs.Items, job)
	}

	return jobs, nil
}

func decodeJob(record map[string]any) (*Job, error) {
	job := &Job{}

	cfg := &mapstructure.DecoderConfig{
		Result:           job,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(normalizeRecord(record)); err != nil {
		return nil, err
	}

	return job, nil
}

// normalizeRecord prepares a record for weakly typed decoding: nulls and
// nested objects are dropped, lists are joined and integral ids lose their
// fractional part.
func normalizeRecord(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for key, value := range record {
		switch val := value.(type) {
		case nil, map[string]any:
			continue
		case []any:
			value = joinList(val)
		case json.Number:
			value = val.String()
		case float64:
			if key == "id" && val == math.Trunc(val) {
				value = int64(val)
			}
		}
		out[key] = value
	}
	return out
}

func joinList(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		text := strings.TrimSpace(fmt.Sprintf("%v", item))
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, ", ")
}

func coerceFloat(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
