package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/report"
)

func newPricingCmd() *cobra.Command {
	var (
		pricingFile string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "pricing",
		Short: "Show the per-token price of every known model, in cents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			container, err := buildContainer(containerOptions{pricingFile: pricingFile})
			if err != nil {
				return err
			}

			return container.Invoke(func(table domain.PricingTable) error {
				out, err := report.RenderPricing(table.Entries(cmd.Context()), f)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&pricingFile, "pricing-file", "", "YAML pricing overrides (default PRICING_FILE)")
	cmd.Flags().StringVarP(&format, "format", "f", "github", "table format: github, pipe, grid, plain, csv, json")

	return cmd
}
