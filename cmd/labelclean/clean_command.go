package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"yashubustudio/labelclean/labelclean"
)

type cleanOptions struct {
	inputPath   string
	keyOutput   string
	cleanOutput string
	column      string
	encoding    string
	workers     int
	stdout      bool
}

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var opts cleanOptions

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Fingerprint an input file and write the key and cleaned files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts.applyTo(&cfg)

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

			svc := labelclean.NewService(nil, cfg, logger)
			results, err := svc.CleanAll(cmd.Context(), records, nil)
			if err != nil {
				return fmt.Errorf("clean: %w", err)
			}
			if err := labelclean.WriteOutputs(cfg.KeyOutputPath, cfg.CleanedOutputPath, results); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			summary := labelclean.Summarize(results)
			fmt.Fprintf(out, "Wrote %d keys to %s\n", summary.Rows, cfg.KeyOutputPath)
			fmt.Fprintf(out, "Wrote %d cleaned values to %s (%d unresolved)\n", summary.Resolved, cfg.CleanedOutputPath, summary.Unresolved)
			if opts.stdout {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderResults(out, records, results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.inputPath, "input", "i", "", "Input file (txt/csv/tsv)")
	cmd.Flags().StringVar(&opts.keyOutput, "key-output", "", "Destination of the key column")
	cmd.Flags().StringVarP(&opts.cleanOutput, "output", "o", "", "Destination of the cleaned_text column")
	cmd.Flags().StringVar(&opts.column, "column", "", "Text column name or #index")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "Input encoding label (utf-8, shift_jis, windows-1252, ...)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of concurrent workers")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Print every row to STDOUT")
	return cmd
}

func (o cleanOptions) applyTo(cfg *labelclean.Config) {
	if v := strings.TrimSpace(o.inputPath); v != "" {
		cfg.InputPath = v
	}
	if v := strings.TrimSpace(o.keyOutput); v != "" {
		cfg.KeyOutputPath = v
	}
	if v := strings.TrimSpace(o.cleanOutput); v != "" {
		cfg.CleanedOutputPath = v
	}
	if v := strings.TrimSpace(o.column); v != "" {
		cfg.TextColumn = v
	}
	if v := strings.TrimSpace(o.encoding); v != "" {
		cfg.Encoding = v
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
}

func renderResults(w io.Writer, records []labelclean.RawRecord, results []labelclean.ResultRecord) string {
	rows := make([][]string, 0, len(results))
	for i, res := range results {
		raw := ""
		if i < len(records) {
			raw = records[i].Text
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), raw, res.Key, valueOrDash(res.Cleaned)})
	}
	return renderTable(w, []string{"#", labelclean.RawTextColumn, labelclean.KeyColumn, labelclean.CleanedColumn}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft})
}
