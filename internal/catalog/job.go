package catalog

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
)

const (
	JobIDField      = "ID"
	JobCompanyField = "Company"
)

type Jobs struct {
	Items []*Job `json:"items"`
}

type Job struct {
	ID               string  `json:"id" mapstructure:"id"`
	Title            string  `json:"title" mapstructure:"title"`
	Company          string  `json:"company" mapstructure:"company"`
	Location         string  `json:"location" mapstructure:"location"`
	Salary           string  `json:"salary,omitempty" mapstructure:"salary"`
	SalaryMin        float64 `json:"salary_min,omitempty" mapstructure:"-"`
	SalaryMax        float64 `json:"salary_max,omitempty" mapstructure:"-"`
	URL              string  `json:"url,omitempty" mapstructure:"url"`
	Description      string  `json:"description,omitempty" mapstructure:"description"`
	Requirements     string  `json:"requirements,omitempty" mapstructure:"requirements"`
	Responsibilities string  `json:"responsibilities,omitempty" mapstructure:"responsibilities"`
	Benefits         string  `json:"benefits,omitempty" mapstructure:"benefits"`
	Deadline         string  `json:"deadline,omitempty" mapstructure:"deadline"`
	Category         string  `json:"job_category,omitempty" mapstructure:"job_category"`

	// Attributes holds the numeric scoring attributes found on the record.
	Attributes map[Attribute]float64 `json:"attributes,omitempty" mapstructure:"-"`
}

// Value returns the job's value for the attribute and whether it is defined.
func (j *Job) Value(attr Attribute) (float64, bool) {
	if j == nil || j.Attributes == nil {
		return 0, false
	}
	v, ok := j.Attributes[attr]
	return v, ok
}

// Clone returns a deep copy of the job.
func (j *Job) Clone() Job {
	c := *j
	c.Attributes = maps.Clone(j.Attributes)
	return c
}

// SalaryText renders the salary range the way the results page shows it.
func (j *Job) SalaryText() string {
	switch {
	case j.SalaryMin > 0 && j.SalaryMax > 0:
		return fmt.Sprintf("%s - %s €", formatAmount(j.SalaryMin), formatAmount(j.SalaryMax))
	case j.SalaryMin > 0:
		return fmt.Sprintf("from %s €", formatAmount(j.SalaryMin))
	case j.SalaryMax > 0:
		return fmt.Sprintf("up to %s €", formatAmount(j.SalaryMax))
	default:
		return strings.TrimSpace(j.Salary)
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return j.ID
	case JobCompanyField:
		return j.Company
	default:
		return ""
	}
}

func (v *Jobs) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Items)
}

func (v *Jobs) FindByID(id string) *Job {
	for _, job := range v.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

func (v *Jobs) IDs() []string {
	ids := make([]string, 0, v.Len())
	for _, job := range v.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

// Exclude removes jobs whose field equals one of targets and returns the removed IDs.
// Catalog order is preserved since it is the scorer's tie-break.
func (v *Jobs) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}
	return v.Filter(func(job *Job) bool {
		return slices.Contains(targets, job.GetStringField(name))
	})
}

// Filter removes every job for which drop returns true, keeping order, and
// returns the removed IDs.
func (v *Jobs) Filter(drop func(*Job) bool) []string {
	var removed []string
	kept := v.Items[:0]
	for _, job := range v.Items {
		if drop(job) {
			removed = append(removed, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	clear(v.Items[len(kept):])
	v.Items = kept
	return removed
}

func (v *Jobs) DumpToTmpFile() (string, error) {
	return dumpToTmpFile("jobs_*.json", v)
}

func dumpToTmpFile(pattern string, payload any) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// DumpToTmpFile writes any JSON-encodable results to a temporary file.
func DumpToTmpFile(payload any) (string, error) {
	return dumpToTmpFile("matches_*.json", payload)
}
