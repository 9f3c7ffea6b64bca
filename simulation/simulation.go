// Package simulation assembles the services a rwmem simulation needs: the
// event engine, the data recorder, and the optional monitoring server.
package simulation

import (
	"github.com/sarchlab/rwmem/datarecording"
	"github.com/sarchlab/rwmem/monitoring"
	"github.com/sarchlab/rwmem/sim/timing"
)

// A Simulation provides the services required to define a simulation.
type Simulation struct {
	id string

	engine       timing.Engine
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor

	components    []monitoring.Named
	compNameIndex map[string]int
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() timing.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder used in the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterComponent registers a component with the simulation.
func (s *Simulation) RegisterComponent(c monitoring.Named) {
	compName := c.Name()
	if _, found := s.compNameIndex[compName]; found {
		panic("component " + compName + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

// GetComponentByName returns the component with the given name.
func (s *Simulation) GetComponentByName(name string) monitoring.Named {
	return s.components[s.compNameIndex[name]]
}

// Terminate terminates the simulation.
func (s *Simulation) Terminate() {
	s.dataRecorder.Close()
}
