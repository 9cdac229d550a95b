package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yashubustudio/labelclean/labelclean"
)

func newTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "table",
		Short:       "Print the canonical lookup table",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			table := labelclean.DefaultCanonicalTable()
			suspect := make(map[string]struct{})
			for _, key := range table.Suspect() {
				suspect[key] = struct{}{}
			}

			entries := table.Entries()
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				status := "ok"
				if _, bad := suspect[entry.Key]; bad {
					status = "suspect"
				}
				rows = append(rows, []string{entry.Key, entry.Value, status})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"key", "value", "status"}, rows, nil))
			if len(suspect) > 0 {
				fmt.Fprintf(out, "%d keys are not fingerprint fixed points and may never match\n", len(suspect))
			}
			return nil
		},
	}
}
