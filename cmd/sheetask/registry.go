package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/llm"
)

func newModelsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models that can be queried",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()
			if _, err := a.openKeys(); err != nil {
				return err
			}
			selected := a.modelID(cmd.Context(), "")

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "\tID\tLABEL\tPROVIDER")
			for _, m := range llm.DefaultModels {
				mark := ""
				if m.ID == selected {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", mark, m.ID, m.Label, m.Provider)
			}
			return w.Flush()
		},
	}
}
