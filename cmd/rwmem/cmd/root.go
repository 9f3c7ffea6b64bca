// Package cmd provides the command-line interface for rwmem.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sarchlab/rwmem/responder"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "rwmem",
	Short: "rwmem simulates a single-port read/write memory driven by a " +
		"bus initiator.",
	Long: `rwmem simulates a cycle-level single-port read/write memory ` +
		`together with the bus initiator that drives it. It can run the ` +
		`randomized regression suite against the pair and record ` +
		`per-cycle waveform traces.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// A .env file can override any flag default, e.g.
		// RWMEM_MEMORY_SIZE=32.
		_ = godotenv.Load()
		applyEnvOverrides(cmd.Flags())
	},
}

func init() {
	rootCmd.PersistentFlags().Uint64P("memory-size", "s", 10,
		"number of words in the memory")
	rootCmd.PersistentFlags().IntP("data-width", "a", 8,
		"width of the data and address signals in bits")
	rootCmd.PersistentFlags().StringP("init-values", "i", "",
		"comma-separated initialization words, zero-padded to the memory size")
	rootCmd.PersistentFlags().String("write-policy", "guarded",
		"write-commit variant: guarded or legacy")
	rootCmd.PersistentFlags().BoolP("verbose", "V", false,
		"log every event the engine processes")
}

func applyEnvOverrides(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}

		key := "RWMEM_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		value, found := os.LookupEnv(key)
		if !found {
			return
		}

		err := flags.Set(f.Name, value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid %s: %s\n", key, err)
			os.Exit(1)
		}
	})
}

func parseInitValues(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	values := make([]uint64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid initialization value %q", p)
		}
		values = append(values, v)
	}

	return values, nil
}

func parseWritePolicy(s string) (responder.WritePolicy, error) {
	switch s {
	case "guarded":
		return responder.GuardedWrites, nil
	case "legacy":
		return responder.LegacyWrites, nil
	default:
		return 0, fmt.Errorf(
			"unknown write policy %q, expected guarded or legacy", s)
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
