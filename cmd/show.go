package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/console"
	"github.com/spigell/job-matcher/internal/matching"
)

var showCmd = &cobra.Command{
	Use:   "show JOB_ID",
	Short: "Show a catalog job and, given answers, how it compares to them",
	Example: `  job-matcher show 42
  job-matcher show 42 --answer remote_preference=9`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runShow(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringArrayP("answer", "a", nil, "an answer as field=value, may be repeated")
	showCmd.Flags().String("answers", "", "a json or yaml file with field: value answers")
}

func runShow(cmd *cobra.Command, id string) {
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

	answers := matching.Answers{}
	answersFile, _ := cmd.Flags().GetString("answers")
	pairs, _ := cmd.Flags().GetStringArray("answer")
	if answersFile != "" || len(pairs) > 0 {
		if answers, err = collectAnswers(answersFile, pairs); err != nil {
			logger.Fatal("reading answers", zap.Error(err))
		}
	}

	opts, err := config.matchOptions()
	if err != nil {
		logger.Fatal("reading match options", zap.Error(err))
	}

	jobs, loadErr := loadCatalog(ctx, config, logger)
	warnCatalog(os.Stderr, config.Catalog.Source, loadErr)

	if err := showJob(os.Stdout, jobs, id, answers, opts); err != nil {
		logger.Fatal("showing job", zap.Error(err))
	}
}

func showJob(w io.Writer, jobs *catalog.Jobs, id string, answers matching.Answers, opts matching.Options) error {
	job := jobs.FindByID(id)
	if job == nil {
		return fmt.Errorf("there is no job with id %s", id)
	}

	scored := matching.Compute(answers, []*catalog.Job{job}, opts)
	_, err := fmt.Fprint(w, console.FormatDetails(answers, scored[0]))
	return err
}
