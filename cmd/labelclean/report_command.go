package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"yashubustudio/labelclean/labelclean"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var inputPath, outPath, column string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a markdown report grouping input rows by key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if v := strings.TrimSpace(inputPath); v != "" {
				cfg.InputPath = v
			}
			if v := strings.TrimSpace(column); v != "" {
				cfg.TextColumn = v
			}
			logger, logCloser, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			defer logCloser.Close()

			records, err := labelclean.ParseInputRecords(cfg.InputPath, labelclean.InputParseOptions{
				TextColumn: cfg.TextColumn,
				Encoding:   cfg.Encoding,
			})
			if err != nil {
				return fmt.Errorf("read input records: %w", err)
			}
			results, err := labelclean.NewService(nil, cfg, logger).CleanAll(cmd.Context(), records, nil)
			if err != nil {
				return fmt.Errorf("clean: %w", err)
			}

			target := strings.TrimSpace(outPath)
			if target == "" || target == "-" {
				return labelclean.WriteMarkdownReport(cmd.OutOrStdout(), records, results)
			}
			if err := labelclean.EnsureDir(target); err != nil {
				return err
			}
			f, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("create report: %w", err)
			}
			if err := labelclean.WriteMarkdownReport(f, records, results); err != nil {
				f.Close()
				return fmt.Errorf("write report: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote report to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file (txt/csv/tsv)")
	cmd.Flags().StringVar(&outPath, "out", "", "Report destination (default STDOUT)")
	cmd.Flags().StringVar(&column, "column", "", "Text column name or #index")
	return cmd
}
