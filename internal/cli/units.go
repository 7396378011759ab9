package cli

import (
	"github.com/spf13/cobra"

	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the supported time units",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := newTable(cmd.OutOrStdout(), "Unit", "Name", "Duration")
		for _, u := range tictoc.Units() {
			table.Append([]string{u.String(), u.Name(), u.Duration().String()})
		}
		return table.Render()
	},
}

func init() {
	rootCmd.AddCommand(unitsCmd)
}
