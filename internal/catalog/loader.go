package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultSource  = "data/jobs.json"
	defaultTimeout = 10 * time.Second
	userAgent      = "spigell/job-matcher"
)

// Loader fetches a job catalog from a local file or an http(s) URL.
type Loader struct {
	HTTPClient *http.Client
	UserAgent  string
	logger     *zap.Logger
}

func NewLoader(logger *zap.Logger, timeout time.Duration) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Loader{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  userAgent,
		logger:     logger,
	}
}

// Load reads, validates and decodes the catalog found at source.
func (l *Loader) Load(ctx context.Context, source string) (*Jobs, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New("catalog source is not configured")
	}

	var (
		data []byte
		err  error
	)

	if isURL(source) {
		data, err = l.fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", source, err)
	}

	if err := ValidateDocument(data); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("parse catalog %q: %w", source, err)
	}

	jobs, err := Decode(records, l.logger)
	if err != nil {
		return nil, err
	}

	l.logger.Info("catalog loaded", zap.String("source", source), zap.Int("count", jobs.Len()))
	return jobs, nil
}

// LoadOrEmpty never fails: on error it returns an empty catalog alongside the
// error so the caller can notify the user and carry on without matches.
func (l *Loader) LoadOrEmpty(ctx context.Context, source string) (*Jobs, error) {
	jobs, err := l.Load(ctx, source)
	if err != nil {
		l.logger.Error("loading catalog failed, continuing with an empty one",
			zap.String("source", source),
			zap.Error(err),
		)
		return &Jobs{}, err
	}
	return jobs, nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", l.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	l.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}

	return io.ReadAll(reader)
}

func isURL(source string) bool {
	parsed, err := url.Parse(source)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https")
}
