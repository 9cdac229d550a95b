package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yashubustudio/labelclean/labelclean"
)

func newKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "key TEXT...",
		Short:       "Print the fingerprint key and canonical value of each argument",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			table := labelclean.DefaultCanonicalTable()
			keys := labelclean.FingerprintAll(args)
			rows := make([][]string, 0, len(args))
			for i, arg := range args {
				value, _ := table.Resolve(keys[i])
				rows = append(rows, []string{arg, keys[i], valueOrDash(value)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"text", labelclean.KeyColumn, labelclean.CleanedColumn}, rows, nil))
			return nil
		},
	}
}
