// Package simulation wires the services of one simulated run together:
// the event engine, the recording database, the trace sink, and the
// monitor.
package simulation

import (
	"sync"

	"github.com/karshPrime/uni-traffic-light/datarecording"
	"github.com/karshPrime/uni-traffic-light/monitoring"
	"github.com/karshPrime/uni-traffic-light/sim"
	"github.com/karshPrime/uni-traffic-light/tracing"
)

// A Simulation provides the services required to define a simulated run.
type Simulation struct {
	id     string
	engine sim.Engine

	dataRecorder datarecording.DataRecorder
	execRecorder *datarecording.ExecRecorder
	monitor      *monitoring.Monitor
	visTracer    *tracing.DBTracer

	initOnce sync.Once

	components    []sim.Component
	compNameIndex map[string]int
	ports         []sim.Port
	portNameIndex map[string]int
}

// ID returns the unique identifier of the run.
func (s *Simulation) ID() string {
	return s.id
}

// Init starts the run-scoped services: the execution recorder and, when
// monitoring is enabled, the monitoring server. Calling Init more than
// once has no effect.
func (s *Simulation) Init() {
	s.initOnce.Do(func() {
		s.execRecorder.Start()

		if s.monitor != nil {
			s.monitor.StartServer()
		}
	})
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder used in the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// the simulation is built without monitoring.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetVisTracer returns the tracer that records tasks for later
// visualization.
func (s *Simulation) GetVisTracer() *tracing.DBTracer {
	return s.visTracer
}

// RegisterComponent registers a component with the simulation.
func (s *Simulation) RegisterComponent(c sim.Component) {
	compName := c.Name()
	if _, ok := s.compNameIndex[compName]; ok {
		panic("component " + compName + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}

	for _, p := range c.Ports() {
		s.registerPort(p)
	}
}

func (s *Simulation) registerPort(p sim.Port) {
	portName := p.Name()
	if _, ok := s.portNameIndex[portName]; ok {
		panic("port " + portName + " already registered")
	}

	s.ports = append(s.ports, p)
	s.portNameIndex[portName] = len(s.ports) - 1
}

// Components returns all the registered components.
func (s *Simulation) Components() []sim.Component {
	return s.components
}

// GetComponentByName returns the component with the given name, or nil
// if no such component is registered.
func (s *Simulation) GetComponentByName(name string) sim.Component {
	index, ok := s.compNameIndex[name]
	if !ok {
		return nil
	}

	return s.components[index]
}

// GetPortByName returns the port with the given name, or nil if no such
// port is registered.
func (s *Simulation) GetPortByName(name string) sim.Port {
	index, ok := s.portNameIndex[name]
	if !ok {
		return nil
	}

	return s.ports[index]
}

// Terminate ends the run. In-flight trace tasks are closed and all
// buffered records are flushed to the database.
func (s *Simulation) Terminate() {
	s.visTracer.Terminate()
	s.execRecorder.End()
}
