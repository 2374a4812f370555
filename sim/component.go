package sim

import (
	"fmt"
	"os"
	"sync"
)

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is an element that is being simulated. It updates its state
// when an event (usually a tick) is triggered and exchanges messages with
// other components through ports.
type Component interface {
	Named
	Handler
	Hookable

	Ports() []Port
	GetPortByName(name string) Port
	NotifyRecv(port Port)
	NotifyPortFree(port Port)
}

// ComponentBase provides some functions that other components can use.
type ComponentBase struct {
	HookableBase
	sync.Mutex
	name  string
	ports map[string]Port
}

// NewComponentBase creates a new ComponentBase
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)

	c := new(ComponentBase)
	c.name = name
	c.ports = make(map[string]Port)
	return c
}

// Name returns the name of the component
func (c *ComponentBase) Name() string {
	return c.name
}

// AddPort registers a port under a name local to the component.
func (c *ComponentBase) AddPort(name string, port Port) {
	if _, found := c.ports[name]; found {
		panic("port " + name + " already added")
	}

	c.ports[name] = port
}

// Ports returns the ports of the component.
func (c *ComponentBase) Ports() []Port {
	ports := make([]Port, 0, len(c.ports))
	for _, p := range c.ports {
		ports = append(ports, p)
	}
	return ports
}

// GetPortByName returns the port by the name of the port.
func (c *ComponentBase) GetPortByName(name string) Port {
	port, found := c.ports[name]
	if !found {
		errMsg := fmt.Sprintf(
			"Port %s is not available on component %s.\n", name, c.name)
		errMsg += "Available ports include:\n"
		for n := range c.ports {
			errMsg += fmt.Sprintf("\t%s\n", n)
		}
		fmt.Fprint(os.Stderr, errMsg)

		panic("port not found")
	}

	return port
}
