package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/ai"
	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Advisor explains matches with Gemini.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var systemPrompt string

const defaultMaxLogLength = 200

func NewAdvisor(generator contentGenerator, maxLogLength int, base *zap.Logger) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Advisor{
		generator: generator,
		logger:    logger.WithFields(base, logger.AIFields("gemini", generator.Model())...),
		maxLogLen: maxLogLength,
	}
}

type answerPayload struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

type factorPayload struct {
	Attribute string  `json:"attribute"`
	Answer    int     `json:"answer"`
	Value     float64 `json:"job_value"`
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
}

type requestPayload struct {
	Answers    []answerPayload `json:"answers"`
	Job        map[string]any  `json:"job"`
	MatchScore int             `json:"match_score"`
	Factors    []factorPayload `json:"factors"`
}

func (a *Advisor) Explain(ctx context.Context, answers matching.Answers, job matching.ScoredJob) (*ai.Explanation, error) {
	message, err := buildMessage(answers, job)
	if err != nil {
		return nil, err
	}

	log := a.logger.With(logger.MatchFields(job.ID, job.MatchScore)...)

	log.Debug("gemini explain request",
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", utils.Preview(message, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, systemPrompt, message)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini explain response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.Preview(raw, a.maxLogLen)),
	)

	explanation, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	explanation.Raw = raw

	return explanation, nil
}

func buildMessage(answers matching.Answers, job matching.ScoredJob) (string, error) {
	payload := requestPayload{
		Job: map[string]any{
			"id":       job.ID,
			"title":    job.Title,
			"company":  job.Company,
			"location": job.Location,
			"salary":   job.SalaryText(),
		},
		MatchScore: job.MatchScore,
	}
	if job.Description != "" {
		payload.Job["description"] = job.Description
	}
	if job.Requirements != "" {
		payload.Job["requirements"] = job.Requirements
	}

	for _, f := range job.Factors {
		payload.Factors = append(payload.Factors, factorPayload{
			Attribute: string(f.Attribute),
			Answer:    f.Answer,
			Value:     f.Value,
			Score:     f.Score,
			Weight:    f.Weight,
		})
	}

	for _, field := range answers.Fields() {
		payload.Answers = append(payload.Answers, answerPayload{
			Field: string(field),
			Label: field.Label(),
			Value: answers[field],
		})
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal explain payload: %w", err)
	}
	return string(data), nil
}

func parseResponse(raw string) (*ai.Explanation, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	explanation := &ai.Explanation{
		Summary: coerceString(data["summary"]),
		Pros:    coerceStrings(data["pros"]),
		Cons:    coerceStrings(data["cons"]),
	}
	if explanation.Summary == "" {
		return nil, errors.New("gemini response has no summary")
	}

	return explanation, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	}
	return nil
}
