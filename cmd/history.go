package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/davidbz/llmbench/internal/history"
	"github.com/davidbz/llmbench/internal/report"
)

var summaryHeaders = []string{"run_id", "started_at", "prompt", "results", "failures", "total_cost_cents"}

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded benchmark runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			container, err := buildContainer(containerOptions{})
			if err != nil {
				return err
			}

			return container.Invoke(func(stores *historyStores) (err error) {
				defer func() { err = multierr.Append(err, stores.Close()) }()

				lister, err := stores.lister()
				if err != nil {
					return err
				}

				runs, err := lister.List(cmd.Context(), limit)
				if err != nil {
					return err
				}

				out, err := renderSummaries(runs, f)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs, 0 for all")
	cmd.Flags().StringVarP(&format, "format", "f", "github", "table format: github, pipe, grid, plain, csv, json")

	cmd.AddCommand(newHistoryShowCmd())

	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the measurements of a recorded run (SQLite only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			container, err := buildContainer(containerOptions{})
			if err != nil {
				return err
			}

			return container.Invoke(func(stores *historyStores) (err error) {
				defer func() { err = multierr.Append(err, stores.Close()) }()

				if stores.sqlite == nil {
					return fmt.Errorf("history show requires HISTORY_SQLITE_PATH")
				}

				measurements, err := stores.sqlite.Measurements(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				out, err := report.RenderMeasurements(measurements, f)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "github", "table format: github, pipe, grid, plain, csv, json")

	return cmd
}

func renderSummaries(runs []history.RunSummary, format report.Format) (string, error) {
	if format == report.FormatJSON {
		if runs == nil {
			runs = []history.RunSummary{}
		}
		data, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return "", fmt.Errorf("render json: %w", err)
		}
		return string(data) + "\n", nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.StartedAt.Format(time.RFC3339),
			r.Prompt,
			strconv.Itoa(r.Results),
			strconv.Itoa(r.Failures),
			r.TotalCost.String(),
		})
	}

	return report.RenderTable(summaryHeaders, []bool{false, false, false, true, true, true}, rows, format)
}
