package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/ai"
	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/questionnaire"
)

const (
	PromptStart    = "Start the questionnaire"
	PromptExit     = "Exit"
	PromptPrevious = "« Previous question"
	PromptSkip     = "Skip this question"
	PromptRestart  = "Start over"
	PromptExplain  = "Explain this match"
	PromptBack     = "back"
	PromptDismiss  = "Dismiss these jobs (append to exclude file)"
	PromptDump     = "Dump results to file"

	dismissReason = "dismissed from results"
	menuSize      = 15
)

type selectFunc func(label string, items []string, cursor int) (int, error)

func promptSelect(label string, items []string, cursor int) (int, error) {
	prompt := promptui.Select{
		Label:        label,
		Items:        items,
		CursorPos:    cursor,
		Size:         min(len(items), menuSize),
		HideSelected: true,
	}
	idx, _, err := prompt.Run()
	return idx, err
}

type Options struct {
	// Advisor enables the explain action when set.
	Advisor ai.Advisor
	// ExcludeFile enables the dismiss action when set.
	ExcludeFile string
}

// Presenter renders the questionnaire in the terminal with promptui menus.
type Presenter struct {
	out         io.Writer
	logger      *zap.Logger
	advisor     ai.Advisor
	excludeFile string

	now        func() time.Time
	selectItem selectFunc
}

func New(out io.Writer, opts Options, log *zap.Logger) *Presenter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Presenter{
		out:         out,
		logger:      log,
		advisor:     opts.Advisor,
		excludeFile: opts.ExcludeFile,
		now:         time.Now,
		selectItem:  promptSelect,
	}
}

func (p *Presenter) RenderWelcome(total int) (questionnaire.Action, error) {
	fmt.Fprintf(p.out, "\nFind your job match\n\nAnswer %d short questions about how you like to work and get the jobs that suit you best.\n\n", total)

	idx, err := p.selectItem("Ready?", []string{PromptStart, PromptExit}, 0)
	if err != nil {
		return quitOn(err)
	}
	if idx == 0 {
		return questionnaire.ActionNext, nil
	}
	return questionnaire.ActionQuit, nil
}

func (p *Presenter) RenderQuestion(step questionnaire.Step) (questionnaire.Input, error) {
	q := step.Question

	var (
		values []int
		items  []string
	)
	switch q.Type {
	case questionnaire.TypeMultiple:
		for _, opt := range q.Options {
			values = append(values, opt.Value)
			items = append(items, opt.Text)
		}
	default:
		values, items = scaleChoices(q.Min, q.Max, q.MinLabel, q.MaxLabel)
	}

	cursor := 0
	if step.HasValue {
		if i := slices.Index(values, step.Value); i >= 0 {
			cursor = i
		}
	}

	if q.Type == questionnaire.TypeMultiple {
		items = append(items, PromptSkip)
	}
	if step.Index > 0 {
		items = append(items, PromptPrevious)
	}
	items = append(items, PromptRestart, PromptExit)

	label := fmt.Sprintf("[%d/%d, %.0f%% done] %s", step.Index+1, step.Total, step.Progress, q.Text)
	idx, err := p.selectItem(label, items, cursor)
	if err != nil {
		action, err := quitOn(err)
		return questionnaire.Input{Action: action}, err
	}

	if idx < len(values) {
		value := values[idx]
		return questionnaire.Input{Action: questionnaire.ActionNext, Value: &value}, nil
	}

	switch items[idx] {
	case PromptSkip:
		return questionnaire.Input{Action: questionnaire.ActionNext, Skip: true}, nil
	case PromptPrevious:
		return questionnaire.Input{Action: questionnaire.ActionPrevious}, nil
	case PromptRestart:
		return questionnaire.Input{Action: questionnaire.ActionRestart}, nil
	default:
		return questionnaire.Input{Action: questionnaire.ActionQuit}, nil
	}
}

func (p *Presenter) RenderResults(ctx context.Context, answers matching.Answers, matches []matching.ScoredJob) (questionnaire.Action, error) {
	if len(matches) == 0 {
		fmt.Fprint(p.out, FormatMatches(answers, matches))
	}

	for {
		items := make([]string, 0, len(matches)+4)
		for _, m := range matches {
			items = append(items, FormatJobLine(m))
		}
		if len(matches) > 0 {
			items = append(items, PromptDump)
			if p.excludeFile != "" {
				items = append(items, PromptDismiss)
			}
		}
		items = append(items, PromptRestart, PromptExit)

		idx, err := p.selectItem(fmt.Sprintf("Your top %d matches", len(matches)), items, 0)
		if err != nil {
			return quitOn(err)
		}

		if idx < len(matches) {
			if err := p.showDetails(ctx, answers, matches[idx]); err != nil {
				return quitOn(err)
			}
			continue
		}

		switch items[idx] {
		case PromptDump:
			filename, err := catalog.DumpToTmpFile(matches)
			if err != nil {
				return questionnaire.ActionQuit, fmt.Errorf("dump results to file: %w", err)
			}
			p.logger.Info("dumping results to file", zap.String("filename", filename))
			p.Notify("Results written to " + filename)
		case PromptDismiss:
			if err := p.dismiss(matches); err != nil {
				return questionnaire.ActionQuit, err
			}
		case PromptRestart:
			return questionnaire.ActionRestart, nil
		default:
			return questionnaire.ActionQuit, nil
		}
	}
}

func (p *Presenter) Notify(message string) {
	fmt.Fprintf(p.out, "\n%s\n\n", message)
}

func (p *Presenter) showDetails(ctx context.Context, answers matching.Answers, m matching.ScoredJob) error {
	fmt.Fprint(p.out, FormatDetails(answers, m))

	if p.advisor == nil {
		return nil
	}

	for {
		idx, err := p.selectItem("What next?", []string{PromptExplain, PromptBack}, 0)
		if err != nil {
			return err
		}
		if idx != 0 {
			return nil
		}

		explanation, err := p.advisor.Explain(ctx, answers, m)
		if err != nil {
			p.logger.Warn("explaining match failed", append(logger.MatchFields(m.ID, m.MatchScore), zap.Error(err))...)
			p.Notify("Could not explain this match: " + err.Error())
			continue
		}
		fmt.Fprint(p.out, FormatExplanation(explanation))
	}
}

func (p *Presenter) dismiss(matches []matching.ScoredJob) error {
	jobs := &catalog.Jobs{Items: make([]*catalog.Job, 0, len(matches))}
	for i := range matches {
		jobs.Items = append(jobs.Items, &matches[i].Job)
	}

	excluded, err := catalog.GetExcludedJobsFromFile(p.excludeFile)
	if err != nil {
		return fmt.Errorf("reading exclude file: %w", err)
	}
	excluded.Append(jobs.ToExcluded(dismissReason, p.now()))

	if err := excluded.ToFile(p.excludeFile); err != nil {
		return fmt.Errorf("writing exclude file: %w", err)
	}

	p.logger.Info("appended to exclude file", zap.String("filename", p.excludeFile), zap.Int("count", jobs.Len()))
	p.Notify(fmt.Sprintf("%d jobs added to %s. They will be skipped next time.", jobs.Len(), p.excludeFile))
	return nil
}

// quitOn turns an interrupted prompt into a quit request.
func quitOn(err error) (questionnaire.Action, error) {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return questionnaire.ActionQuit, nil
	}
	return questionnaire.ActionQuit, err
}
