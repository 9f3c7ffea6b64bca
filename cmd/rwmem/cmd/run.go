package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/rwmem/harness"
	"github.com/sarchlab/rwmem/initiator"
	"github.com/sarchlab/rwmem/responder"
	"github.com/sarchlab/rwmem/simulation"
	"github.com/sarchlab/rwmem/sim/timing"
	"github.com/sarchlab/rwmem/wavetrace"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the regression suite against a responder/initiator pair.",
	Run: func(cmd *cobra.Command, _ []string) {
		err := runRegression(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			atexit.Exit(1)
		}
		atexit.Exit(0)
	},
}

func init() {
	runCmd.Flags().StringP("regression-list", "l",
		"read-range,write-range,write-read-range,out-of-range-error",
		"comma-separated regression tests to run")
	runCmd.Flags().IntP("regression-count", "c", 0,
		"number of random writes per sweep, 0 sweeps every address once")
	runCmd.Flags().Int64("seed", 0,
		"seed for the random request generator")
	runCmd.Flags().StringP("trace", "w", "none",
		"waveform trace backend: none, csv, or sqlite")
	runCmd.Flags().String("trace-file", "",
		"file name for the waveform trace, without extension")
	runCmd.Flags().Bool("monitor", false,
		"serve the monitoring HTTP API while running")
	runCmd.Flags().Int("monitor-port", 0,
		"port for the monitoring server, 0 picks a random port")
	runCmd.Flags().Bool("open-browser", false,
		"open the monitoring API in a browser")

	rootCmd.AddCommand(runCmd)
}

func runRegression(cmd *cobra.Command) error {
	memSize, _ := cmd.Flags().GetUint64("memory-size")
	dataWidth, _ := cmd.Flags().GetInt("data-width")
	initValuesStr, _ := cmd.Flags().GetString("init-values")
	writePolicyStr, _ := cmd.Flags().GetString("write-policy")
	verbose, _ := cmd.Flags().GetBool("verbose")
	regressionList, _ := cmd.Flags().GetString("regression-list")
	regressionCount, _ := cmd.Flags().GetInt("regression-count")
	seed, _ := cmd.Flags().GetInt64("seed")
	traceBackend, _ := cmd.Flags().GetString("trace")
	traceFile, _ := cmd.Flags().GetString("trace-file")
	monitorOn, _ := cmd.Flags().GetBool("monitor")
	monitorPort, _ := cmd.Flags().GetInt("monitor-port")
	openBrowser, _ := cmd.Flags().GetBool("open-browser")

	initValues, err := parseInitValues(initValuesStr)
	if err != nil {
		return err
	}

	writePolicy, err := parseWritePolicy(writePolicyStr)
	if err != nil {
		return err
	}

	tests, err := parseRegressionList(regressionList)
	if err != nil {
		return err
	}

	simBuilder := simulation.MakeBuilder().WithOutputFileName(traceFile)
	if monitorOn {
		simBuilder = simBuilder.WithMonitorPort(monitorPort)
		if openBrowser {
			simBuilder = simBuilder.WithBrowserOpen()
		}
	} else {
		simBuilder = simBuilder.WithoutMonitoring()
	}

	s := simBuilder.Build()
	defer s.Terminate()

	engine := s.GetEngine()

	memory := responder.MakeBuilder().
		WithMemSize(memSize).
		WithDataWidth(dataWidth).
		WithWritePolicy(writePolicy).
		WithInitValues(initValues).
		Build("Memory")
	s.RegisterComponent(memory)

	driver := initiator.MakeBuilder().
		WithEngine(engine).
		WithDevice(memory).
		Build("Driver")
	s.RegisterComponent(driver)

	err = attachTracer(engine, memory, s, traceBackend, traceFile)
	if err != nil {
		return err
	}

	if verbose {
		logger := log.New(os.Stderr, "", 0)
		engine.AcceptHook(timing.NewEventLogger(logger))
	}

	runner := harness.MakeBuilder().
		WithDriver(driver).
		WithMemSize(memSize).
		WithDataWidth(dataWidth).
		WithInitValues(initValues).
		WithIterations(regressionCount).
		WithSeed(seed).
		WithLogger(log.New(os.Stdout, "", 0)).
		Build()

	return runner.Run(tests)
}

func parseRegressionList(s string) ([]harness.TestID, error) {
	var tests []harness.TestID

	for _, name := range strings.Split(s, ",") {
		t, err := harness.ParseTestID(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}

	return tests, nil
}

func attachTracer(
	engine timing.Engine,
	memory *responder.Comp,
	s *simulation.Simulation,
	backend string,
	traceFile string,
) error {
	switch backend {
	case "none":
		return nil
	case "csv":
		writer := wavetrace.NewCSVWriter(traceFile)
		writer.Init()
		engine.AcceptHook(wavetrace.NewTracer(memory, writer))
		return nil
	case "sqlite":
		writer := wavetrace.NewDBWriter(s.GetDataRecorder())
		engine.AcceptHook(wavetrace.NewTracer(memory, writer))
		return nil
	default:
		return fmt.Errorf(
			"unknown trace backend %q, expected none, csv, or sqlite", backend)
	}
}
