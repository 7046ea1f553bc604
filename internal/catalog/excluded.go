package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// ExcludedJobs is the on-disk list of jobs the user dismissed.
type ExcludedJobs struct {
	Items []*ExcludedJob `json:"items"`
}

type ExcludedJob struct {
	ID         string    `json:"id"`
	URL        string    `json:"url,omitempty"`
	Company    string    `json:"company,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	ExcludedAt time.Time `json:"excluded_at"`
}

// ToExcluded converts the jobs into exclude file entries stamped with now.
func (v *Jobs) ToExcluded(reason string, now time.Time) *ExcludedJobs {
	excluded := &ExcludedJobs{}
	for _, job := range v.Items {
		excluded.Items = append(excluded.Items, &ExcludedJob{
			ID:         job.ID,
			URL:        job.URL,
			Company:    job.Company,
			Reason:     reason,
			ExcludedAt: now.UTC(),
		})
	}
	return excluded
}

// GetExcludedJobsFromFile reads the exclude file. A missing or empty file
// yields an empty list.
func GetExcludedJobsFromFile(path string) (*ExcludedJobs, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ExcludedJobs{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedJobs{}, nil
	}

	var excluded ExcludedJobs
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (v *ExcludedJobs) Append(s *ExcludedJobs) {
	v.Items = append(v.Items, s.Items...)
}

func (v *ExcludedJobs) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, job := range v.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

func (v *ExcludedJobs) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
