package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/questionnaire"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questionnaire",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, err := newLogger()
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		questions, err := config.questions()
		if err != nil {
			logger.Fatal("reading questions", zap.Error(err))
		}

		format, _ := cmd.Flags().GetString("output")
		if err := writeQuestions(os.Stdout, format, questions); err != nil {
			logger.Fatal("writing questions", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

func writeQuestions(w io.Writer, format string, questions []questionnaire.Question) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(questions)
	case outputText:
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	var b strings.Builder
	for _, q := range questions {
		fmt.Fprintf(&b, "%2d. %s [%s]\n", q.ID, q.Text, q.Field)
		switch q.Type {
		case questionnaire.TypeMultiple:
			for _, opt := range q.Options {
				fmt.Fprintf(&b, "      %2d  %s\n", opt.Value, opt.Text)
			}
		default:
			fmt.Fprintf(&b, "      %d (%s) .. %d (%s)\n", q.Min, q.MinLabel, q.Max, q.MaxLabel)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
