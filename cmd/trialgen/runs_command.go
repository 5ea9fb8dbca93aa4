package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"trialgen/internal/manifest"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded generation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Output.ManifestEnabled {
				return fmt.Errorf("run manifest is disabled (output.manifest_enabled = false)")
			}

			store, err := manifest.Open(cfg.Output.ManifestPath)
			if err != nil {
				return fmt.Errorf("open manifest: %w", err)
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.CreatedAt.UTC().Format(time.RFC3339),
					strconv.FormatInt(run.Seed, 10),
					strconv.Itoa(run.Conditions),
					strconv.Itoa(run.TotalTrials),
					run.OutputDir,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Created", "Seed", "Conditions", "Trials", "Output"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum runs to list (0 for all)")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
