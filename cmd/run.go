package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/console"
	"github.com/spigell/job-matcher/internal/questionnaire"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Answer the questionnaire interactively and browse your matches",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// run is the interactive questionnaire.
func run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the job-matcher", zap.String("version", buildVersion()))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	opts, err := config.matchOptions()
	if err != nil {
		logger.Fatal("reading match options", zap.Error(err))
	}

	questions, err := config.questions()
	if err != nil {
		logger.Fatal("reading questions", zap.Error(err))
	}

	jobs, loadErr := loadCatalog(ctx, config, logger)
	jobs, err = filterCatalog(ctx, config, jobs, logger)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	advisor, err := newAdvisor(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skipping AI explanations", zap.Error(err))
	}

	presenter := console.New(os.Stdout, console.Options{
		Advisor:     advisor,
		ExcludeFile: config.Filters.ExcludeFile,
	}, logger)

	if loadErr != nil {
		presenter.Notify("The job catalog could not be loaded, so there will be no matches: " + loadErr.Error())
	}

	session, err := questionnaire.NewSession(questions, jobs, opts, logger)
	if err != nil {
		logger.Fatal("creating a questionnaire session", zap.Error(err))
	}

	if err := questionnaire.Run(ctx, session, presenter); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	logger.Info("exiting", zap.String("reason", "user quit"))
}
