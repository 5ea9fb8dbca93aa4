// Package generate orchestrates the trial list pipeline: preflight, item
// discovery, trial synthesis, condition assembly, CSV writing, and run
// manifest recording.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"trialgen/internal/conditions"
	"trialgen/internal/config"
	"trialgen/internal/csvout"
	"trialgen/internal/fileutil"
	"trialgen/internal/logging"
	"trialgen/internal/manifest"
	"trialgen/internal/preflight"
	"trialgen/internal/stimuli"
	"trialgen/internal/trials"
)

// ErrLocked indicates another generation run holds the output directory.
var ErrLocked = errors.New("output directory is locked by another trialgen run")

// Runner executes the generation pipeline for one configuration.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRunner returns a Runner. A nil logger discards all output.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Options tunes a single run.
type Options struct {
	// DryRun assembles every condition and reports the summary without
	// writing trial lists or manifest rows.
	DryRun bool
}

// ConditionSummary reports one assembled condition.
type ConditionSummary struct {
	Number     int
	Categories []string
	Total      int
	Same       int
	Different  int
	Path       string
}

// SamePercent returns the "same" share of the condition in percent.
func (s ConditionSummary) SamePercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return 100 * float64(s.Same) / float64(s.Total)
}

// DifferentPercent returns the "different" share of the condition in percent.
func (s ConditionSummary) DifferentPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return 100 * float64(s.Different) / float64(s.Total)
}

// Result reports a completed (or dry) run.
type Result struct {
	RunID             string
	Seed              int64
	Repeats           int
	IdentityItems     []string
	CategoryItems     []string
	DroppedCategories []string
	Conditions        []ConditionSummary
	TotalTrials       int
	OutputDir         string
	ManifestPath      string
	DryRun            bool
}

// Run executes the full pipeline. Failures abort the whole run; trial lists
// are written atomically so an aborted run leaves no torn file.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := r.cfg

	if failed := preflight.Failures(preflight.Run(cfg)); len(failed) > 0 {
		details := make([]string, len(failed))
		for i, check := range failed {
			details[i] = fmt.Sprintf("%s: %s", check.Name, check.Detail)
		}
		return nil, fmt.Errorf("preflight failed: %s", strings.Join(details, "; "))
	}

	discoveryLog := logging.WithComponent(r.logger, "discovery")
	identityItems, err := stimuli.Discover(cfg.Stimuli.IdentityDir, cfg.Stimuli.ImageExt, cfg.Stimuli.ExemplarsPerIdentity)
	if err != nil {
		return nil, fmt.Errorf("discover identity items: %w", err)
	}
	categoryItems, err := stimuli.Discover(cfg.Stimuli.CategoryDir, cfg.Stimuli.ImageExt, cfg.Stimuli.ExemplarsPerCategory)
	if err != nil {
		return nil, fmt.Errorf("discover category items: %w", err)
	}
	discoveryLog.Info("stimuli discovered",
		slog.Int("identity_items", len(identityItems)),
		slog.Int("category_items", len(categoryItems)))

	assignments, dropped := conditions.Assign(stimuli.Names(categoryItems), cfg.Design.CategoriesPerCondition)
	if len(assignments) == 0 {
		return nil, fmt.Errorf("not enough category items for one condition: have %d, need %d",
			len(categoryItems), cfg.Design.CategoriesPerCondition)
	}
	if len(dropped) > 0 {
		discoveryLog.Warn("category items dropped; they do not fill a full condition",
			slog.Any("items", dropped))
	}

	if !opts.DryRun {
		lock := flock.New(filepath.Join(cfg.Output.Dir, ".trialgen.lock"))
		held, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire output lock: %w", err)
		}
		if !held {
			return nil, ErrLocked
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	params := trials.Params{
		IdentityDir:          cfg.Stimuli.IdentityDir,
		CategoryDir:          cfg.Stimuli.CategoryDir,
		ImageExt:             cfg.Stimuli.ImageExt,
		Repeats:              cfg.Design.Repeats,
		ExemplarsPerCategory: cfg.Stimuli.ExemplarsPerCategory,
	}
	identityTrials := trials.Identity(params, stimuli.Names(identityItems))

	result := &Result{
		RunID:             uuid.NewString(),
		Seed:              cfg.Design.Seed,
		Repeats:           cfg.Design.Repeats,
		IdentityItems:     stimuli.Names(identityItems),
		CategoryItems:     stimuli.Names(categoryItems),
		DroppedCategories: dropped,
		OutputDir:         cfg.Output.Dir,
		DryRun:            opts.DryRun,
	}

	writerLog := logging.WithComponent(r.logger, "writer")
	assembler := conditions.NewAssembler(cfg.Design.Seed)
	var files []manifest.File

	// The assembler's RNG state carries across conditions, so iterate the
	// assignments strictly in ascending order.
	for _, assignment := range assignments {
		var categoryTrials []trials.Trial
		for _, category := range assignment.Categories {
			categoryTrials = append(categoryTrials, trials.Category(params, category)...)
		}
		cond := assembler.Build(assignment, identityTrials, categoryTrials)

		summary := summarize(cond)
		if !opts.DryRun {
			path := filepath.Join(cfg.Output.Dir, csvout.Filename(cfg.Output.FilePrefix, cond.Number))
			if err := csvout.Write(path, cond.Trials); err != nil {
				return nil, fmt.Errorf("write condition %d: %w", cond.Number, err)
			}
			digest, err := fileutil.HashFile(path)
			if err != nil {
				return nil, fmt.Errorf("hash condition %d: %w", cond.Number, err)
			}
			summary.Path = path
			files = append(files, manifest.File{
				Condition: cond.Number,
				Path:      path,
				Trials:    summary.Total,
				SHA256:    digest,
			})
			writerLog.Info("trial list written",
				slog.Int("condition", cond.Number),
				slog.Int("trials", summary.Total),
				slog.String("path", path))
		}

		result.Conditions = append(result.Conditions, summary)
		result.TotalTrials += summary.Total
	}

	if !opts.DryRun && cfg.Output.ManifestEnabled {
		if err := r.recordRun(ctx, result, files); err != nil {
			return nil, err
		}
		result.ManifestPath = cfg.Output.ManifestPath
	}

	logging.WithComponent(r.logger, "generate").Info("run complete",
		slog.String("run_id", result.RunID),
		slog.Int("conditions", len(result.Conditions)),
		slog.Int("total_trials", result.TotalTrials),
		slog.Bool("dry_run", opts.DryRun))

	return result, nil
}

func (r *Runner) recordRun(ctx context.Context, result *Result, files []manifest.File) error {
	store, err := manifest.Open(r.cfg.Output.ManifestPath)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer store.Close()

	run := manifest.Run{
		ID:                     result.RunID,
		CreatedAt:              time.Now().UTC(),
		Seed:                   result.Seed,
		Repeats:                result.Repeats,
		CategoriesPerCondition: r.cfg.Design.CategoriesPerCondition,
		IdentityItems:          len(result.IdentityItems),
		CategoryItems:          len(result.CategoryItems),
		Conditions:             len(result.Conditions),
		TotalTrials:            result.TotalTrials,
		OutputDir:              result.OutputDir,
		Files:                  files,
	}
	if err := store.RecordRun(ctx, run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func summarize(cond conditions.Condition) ConditionSummary {
	summary := ConditionSummary{
		Number:     cond.Number,
		Categories: cond.Categories,
		Total:      len(cond.Trials),
	}
	for _, trial := range cond.Trials {
		if trial.CorrectResponse == trials.ResponseSame {
			summary.Same++
		} else {
			summary.Different++
		}
	}
	return summary
}
