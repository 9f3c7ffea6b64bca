package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/rwmem/bus"
)

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Print the flat signal set of the bus interface.",
	Long: `signals prints the name, width, and direction of every signal ` +
		`of the bus interface for the configured data width. External ` +
		`emitters can serialize this table into their own format.`,
	Run: func(cmd *cobra.Command, _ []string) {
		dataWidth, _ := cmd.Flags().GetInt("data-width")

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SIGNAL\tWIDTH\tDIRECTION")
		for _, s := range bus.PortList(dataWidth) {
			fmt.Fprintf(w, "%s\t%d\t%s\n", s.Name, s.Width, s.Direction)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(signalsCmd)
}
