package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/davidbz/llmbench/internal/config"
	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/observability"
	"github.com/davidbz/llmbench/internal/report"
)

type runOptions struct {
	prompt          string
	models          []string
	apis            []string
	temperature     float64
	tableFormat     string
	continueOnError bool
	showResponses   bool
	pricingFile     string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Invoke every model with every API shape and print a cost table",
		Example: `  llmbench run --prompt "Say hello" --models gpt-4o-mini,gpt-4.1-nano --apis chat,responses
  llmbench run --prompt "ping" --models echo4 --table-format grid --show-responses`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			container, err := buildContainer(containerOptions{pricingFile: opts.pricingFile})
			if err != nil {
				return err
			}

			return container.Invoke(func(
				_ *zap.Logger,
				runner domain.Benchmarker,
				pricing domain.PricingTable,
				bench *config.BenchConfig,
				stores *historyStores,
			) (err error) {
				defer func() { err = multierr.Append(err, stores.Close()) }()

				req, format, err := opts.request(cmd, bench)
				if err != nil {
					return err
				}

				return runBenchmark(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), runner, pricing, req, format, opts.showResponses)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.prompt, "prompt", "p", "", "prompt sent to every model")
	flags.StringSliceVarP(&opts.models, "models", "m", nil, "models to benchmark (default BENCH_DEFAULT_MODELS)")
	flags.StringSliceVarP(&opts.apis, "apis", "a", nil, "API shapes to use: chat, responses (default BENCH_DEFAULT_APIS)")
	flags.Float64VarP(&opts.temperature, "temperature", "t", 0, "sampling temperature, 0 to 2 (default: backend default)")
	flags.StringVarP(&opts.tableFormat, "table-format", "f", "", "table format: github, pipe, grid, plain, csv, json (default BENCH_TABLE_FORMAT)")
	flags.BoolVar(&opts.continueOnError, "continue-on-error", false, "record failed invocations and keep going")
	flags.BoolVar(&opts.showResponses, "show-responses", false, "print each response text before the table")
	flags.StringVar(&opts.pricingFile, "pricing-file", "", "YAML pricing overrides (default PRICING_FILE)")
	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}

// request merges flags over the configured defaults.
func (o *runOptions) request(cmd *cobra.Command, bench *config.BenchConfig) (*domain.BenchmarkRequest, report.Format, error) {
	models := o.models
	if len(models) == 0 {
		models = bench.DefaultModels
	}

	apis := o.apis
	if len(apis) == 0 {
		apis = bench.DefaultAPIs
	}

	shapes := make([]domain.APIShape, 0, len(apis))
	for _, raw := range apis {
		shape, err := domain.ParseAPIShape(raw)
		if err != nil {
			return nil, "", err
		}
		shapes = append(shapes, shape)
	}

	tableFormat := o.tableFormat
	if tableFormat == "" {
		tableFormat = bench.TableFormat
	}
	format, err := report.ParseFormat(tableFormat)
	if err != nil {
		return nil, "", domain.NewConfigurationError("%v", err)
	}

	policy, err := bench.Policy()
	if err != nil {
		return nil, "", err
	}
	if o.continueOnError {
		policy = domain.ContinueOnError
	}

	var temperature *float64
	if cmd.Flags().Changed("temperature") {
		t := o.temperature
		temperature = &t
	}

	return &domain.BenchmarkRequest{
		Prompt:      o.prompt,
		Models:      models,
		Shapes:      shapes,
		Temperature: temperature,
		Policy:      policy,
	}, format, nil
}

// runBenchmark runs the matrix, writes the table to stdout and the failures to stderr.
// Any failed invocation makes the command fail after the table is printed.
func runBenchmark(
	ctx context.Context,
	stdout, stderr io.Writer,
	runner domain.Benchmarker,
	pricing domain.PricingTable,
	req *domain.BenchmarkRequest,
	format report.Format,
	showResponses bool,
) error {
	run, err := runner.Run(ctx, req)
	if err != nil {
		return err
	}

	if showResponses {
		fmt.Fprint(stdout, report.RenderResponses(run.Results))
	}

	table, err := report.Render(ctx, run.Results, pricing, format)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, table)

	if len(run.Failures) == 0 {
		return nil
	}

	failures, err := report.RenderFailures(run.Failures)
	if err != nil {
		return err
	}
	fmt.Fprint(stderr, failures)

	var errs error
	for _, f := range run.Failures {
		errs = multierr.Append(errs, f.Err)
	}

	observability.FromContext(ctx).Warn("benchmark finished with failures",
		observability.Int("failures", len(run.Failures)))

	return fmt.Errorf("%d of %d invocations failed: %w",
		len(run.Failures), len(run.Failures)+len(run.Results), errs)
}
