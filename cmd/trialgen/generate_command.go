package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"trialgen/internal/config"
	"trialgen/internal/generate"
	"trialgen/internal/logging"
	"trialgen/internal/trials"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var seed int64
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate counterbalanced trial lists",
		Long: "Scans the stimulus directories, builds one shuffled trial list per\n" +
			"condition, and writes them as CSV files. Identity trials are shared by\n" +
			"every condition; category items are split across conditions without overlap.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if target := strings.TrimSpace(outputDir); target != "" {
				if err := redirectOutput(cfg, target); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("seed") {
				cfg.Design.Seed = seed
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			result, err := generate.NewRunner(cfg, logger).Run(cmd.Context(), generate.Options{DryRun: dryRun})
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), cfg, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for trial lists (overrides config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Shuffle RNG seed (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Assemble and report without writing any files")
	return cmd
}

// redirectOutput points the run at a different output directory. A manifest
// left at its default location follows the directory; an explicit manifest
// path stays put.
func redirectOutput(cfg *config.Config, target string) error {
	expanded, err := config.ExpandPath(target)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	defaultManifest := filepath.Join(cfg.Output.Dir, "manifest.db")
	if cfg.Output.ManifestPath == defaultManifest {
		cfg.Output.ManifestPath = filepath.Join(expanded, "manifest.db")
	}
	cfg.Output.Dir = expanded
	return nil
}

var titleCaser = cases.Title(language.Und)

func displayCategories(categories []string) string {
	labels := make([]string, len(categories))
	for i, category := range categories {
		labels[i] = titleCaser.String(category)
	}
	return strings.Join(labels, ", ")
}

func printSummary(out io.Writer, cfg *config.Config, result *generate.Result) {
	identityTrials := len(result.IdentityItems) * result.Repeats
	categoryTrials := cfg.Design.CategoriesPerCondition * trials.PairCount(cfg.Stimuli.ExemplarsPerCategory) * result.Repeats

	fmt.Fprintln(out, "Trial list generation summary")
	fmt.Fprintln(out, renderTable(
		[]string{"Setting", "Value"},
		[][]string{
			{"Identity items", strconv.Itoa(len(result.IdentityItems))},
			{"Category items", strconv.Itoa(len(result.CategoryItems))},
			{"Conditions", strconv.Itoa(len(result.Conditions))},
			{"Repeats/comparison", strconv.Itoa(result.Repeats)},
			{"Seed", strconv.FormatInt(result.Seed, 10)},
			{"Identity trials (all conditions)", fmt.Sprintf("%d items x %d repeats = %d",
				len(result.IdentityItems), result.Repeats, identityTrials)},
			{"Category trials per condition", fmt.Sprintf("%d categories x %d pairs x %d repeats = %d",
				cfg.Design.CategoriesPerCondition, trials.PairCount(cfg.Stimuli.ExemplarsPerCategory),
				result.Repeats, categoryTrials)},
		},
		[]columnAlignment{alignLeft, alignLeft},
	))

	rows := make([][]string, 0, len(result.Conditions))
	for _, summary := range result.Conditions {
		rows = append(rows, []string{
			strconv.Itoa(summary.Number),
			displayCategories(summary.Categories),
			strconv.Itoa(summary.Total),
			fmt.Sprintf("%d (%.1f%%)", summary.Same, summary.SamePercent()),
			fmt.Sprintf("%d (%.1f%%)", summary.Different, summary.DifferentPercent()),
			summary.Path,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Condition", "Categories", "Trials", "Same (yes)", "Different (no)", "File"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))

	if len(result.DroppedCategories) > 0 {
		fmt.Fprintf(out, "Dropped category items (no full condition left): %s\n",
			strings.Join(result.DroppedCategories, ", "))
	}
	switch {
	case result.DryRun:
		fmt.Fprintln(out, "Dry run: no files were written")
	default:
		fmt.Fprintf(out, "Trial lists saved to: %s\n", result.OutputDir)
		if result.ManifestPath != "" {
			fmt.Fprintf(out, "Run %s recorded in %s\n", result.RunID, result.ManifestPath)
		}
	}
}
