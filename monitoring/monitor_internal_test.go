package monitoring

import (
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/karshPrime/uni-traffic-light/sim"
)

type sampleComponent struct {
	*sim.ComponentBase

	buffer sim.Buffer
}

func (c *sampleComponent) Handle(_ sim.Event) error {
	return nil
}

func (c *sampleComponent) NotifyRecv(_ sim.Port) {
	// Do nothing
}

func (c *sampleComponent) NotifyPortFree(_ sim.Port) {
	// Do nothing
}

func newSampleComponent(name string) *sampleComponent {
	c := &sampleComponent{
		ComponentBase: sim.NewComponentBase(name),
		buffer:        sim.NewBuffer(name+".Buf", 10),
	}

	c.AddPort("Port1", sim.NewPort(c, 2, 2, name+".Port1"))

	return c
}

var _ = Describe("Monitor", func() {
	var m *Monitor

	BeforeEach(func() {
		m = NewMonitor()
	})

	It("should register components and their buffers", func() {
		c := newSampleComponent("Comp")

		m.RegisterComponent(c)

		Expect(m.components).To(HaveLen(1))

		// One buffer on the component, two inside the port.
		Expect(m.buffers).To(HaveLen(3))
	})

	It("should select the fullest buffers first", func() {
		nearlyFull := sim.NewBuffer("Full", 4)
		nearlyFull.Push(1)
		nearlyFull.Push(2)
		nearlyFull.Push(3)

		empty := sim.NewBuffer("Empty", 4)

		m.buffers = []sim.Buffer{empty, nearlyFull}

		selected := m.sortAndSelectBuffers("percent", 1, 0)

		Expect(selected).To(HaveLen(1))
		Expect(selected[0].Name()).To(Equal("Full"))
	})

	It("should clamp the buffer window to the known buffers", func() {
		m.buffers = []sim.Buffer{sim.NewBuffer("Buf", 2)}

		Expect(m.sortAndSelectBuffers("level", 10, 0)).To(HaveLen(1))
		Expect(m.sortAndSelectBuffers("level", 10, 5)).To(BeEmpty())
	})

	It("should default to sorting buffers by percent", func() {
		r := httptest.NewRequest("GET", "/api/buffers", nil)

		sortMethod, limit, offset, err := buffersParseParams(r)

		Expect(err).To(BeNil())
		Expect(sortMethod).To(Equal("percent"))
		Expect(limit).To(Equal(0))
		Expect(offset).To(Equal(0))
	})

	It("should parse the buffer window parameters", func() {
		r := httptest.NewRequest(
			"GET", "/api/buffers?sort=level&limit=5&offset=2", nil)

		sortMethod, limit, offset, err := buffersParseParams(r)

		Expect(err).To(BeNil())
		Expect(sortMethod).To(Equal("level"))
		Expect(limit).To(Equal(5))
		Expect(offset).To(Equal(2))
	})

	It("should reject an unknown sort method", func() {
		r := httptest.NewRequest("GET", "/api/buffers?sort=age", nil)

		_, _, _, err := buffersParseParams(r)

		Expect(err).To(HaveOccurred())
	})
})
