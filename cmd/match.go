package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/console"
	"github.com/spigell/job-matcher/internal/matching"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score the catalog against answers given on the command line",
	Example: `  job-matcher match --answer work_environment=8 --answer experience_required=5
  job-matcher match --answers answers.yaml --top-n 3 --output json`,
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringArrayP("answer", "a", nil, "an answer as field=value, may be repeated")
	matchCmd.Flags().String("answers", "", "a json or yaml file with field: value answers")
	matchCmd.Flags().IntP("top-n", "n", 0, "number of matches to show (overrides match.top-n)")
	matchCmd.Flags().Bool("unweighted", false, "treat every attribute as equally important")
	matchCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

type matchReport struct {
	Answers map[string]int       `json:"answers"`
	Matches []matching.ScoredJob `json:"matches"`
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if cmd.Flags().Changed("top-n") {
		config.Match.TopN, _ = cmd.Flags().GetInt("top-n")
	}
	if cmd.Flags().Changed("unweighted") {
		config.Match.Unweighted, _ = cmd.Flags().GetBool("unweighted")
	}

	format, _ := cmd.Flags().GetString("output")
	if format != outputText && format != outputJSON {
		logger.Fatal("invalid output format", zap.String("output", format))
	}

	answersFile, _ := cmd.Flags().GetString("answers")
	pairs, _ := cmd.Flags().GetStringArray("answer")

	answers, err := collectAnswers(answersFile, pairs)
	if err != nil {
		logger.Fatal("reading answers", zap.Error(err))
	}
	for field, value := range answers {
		if value < catalog.ScaleMin || value > catalog.ScaleMax {
			logger.Warn("answer outside of the 0-10 scale", zap.String("field", string(field)), zap.Int("value", value))
		}
	}

	opts, err := config.matchOptions()
	if err != nil {
		logger.Fatal("reading match options", zap.Error(err))
	}

	jobs, loadErr := loadCatalog(ctx, config, logger)
	warnCatalog(os.Stderr, config.Catalog.Source, loadErr)
	jobs, err = filterCatalog(ctx, config, jobs, logger)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	matches := matching.Compute(answers, jobs.Items, opts)
	logMatches(logger, matches)

	if err := writeMatches(os.Stdout, format, answers, matches); err != nil {
		logger.Fatal("writing matches", zap.Error(err))
	}
}

// collectAnswers merges answers from a file with field=value pairs. Pairs win.
func collectAnswers(file string, pairs []string) (matching.Answers, error) {
	answers := matching.Answers{}

	if file != "" {
		v := viper.New()
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading answers file: %w", err)
		}
		for _, key := range v.AllKeys() {
			value, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return nil, fmt.Errorf("answers file: %s must be an integer", key)
			}
			if err := setAnswer(answers, key, value); err != nil {
				return nil, err
			}
		}
	}

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q must look like field=value", pair)
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("answer %q: value must be an integer", pair)
		}
		if err := setAnswer(answers, key, value); err != nil {
			return nil, err
		}
	}

	if len(answers) == 0 {
		return nil, errors.New("no answers given, use --answer field=value or --answers file")
	}

	return answers, nil
}

func setAnswer(answers matching.Answers, key string, value int) error {
	attr, ok := catalog.ParseAttribute(key)
	if !ok {
		return fmt.Errorf("unknown field %q, known fields: %s", key, knownFields())
	}
	answers[attr] = value
	return nil
}

func knownFields() string {
	fields := make([]string, 0)
	for _, attr := range catalog.KnownAttributes() {
		fields = append(fields, string(attr))
	}
	return strings.Join(fields, ", ")
}

func writeMatches(w io.Writer, format string, answers matching.Answers, matches []matching.ScoredJob) error {
	if format == outputJSON {
		report := matchReport{Answers: map[string]int{}, Matches: matches}
		for field, value := range answers {
			report.Answers[string(field)] = value
		}
		if report.Matches == nil {
			report.Matches = []matching.ScoredJob{}
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(report)
	}

	_, err := io.WriteString(w, console.FormatMatches(answers, matches))
	return err
}
