package simulation

import (
	"github.com/rs/xid"

	"github.com/sarchlab/rwmem/datarecording"
	"github.com/sarchlab/rwmem/monitoring"
	"github.com/sarchlab/rwmem/sim/timing"
)

// Builder can be used to build a simulation.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	openBrowser    bool
	outputFileName string
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		monitorOn: true,
	}
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowserOpen makes the monitor open a browser when its server starts.
func (b Builder) WithBrowserOpen() Builder {
	b.openBrowser = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.openBrowser {
		panic("browser cannot be opened when monitoring is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		compNameIndex: make(map[string]int),
	}

	s.id = xid.New().String()

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "rwmem_sim_" + s.id
	}
	s.dataRecorder = datarecording.NewDataRecorder(outputPath)

	s.engine = timing.NewSerialEngine()

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		if b.openBrowser {
			s.monitor.WithBrowserOpen()
		}
		s.monitor.RegisterEngine(s.engine)
		s.monitor.StartServer()
	}

	return s
}
