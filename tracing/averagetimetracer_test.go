package tracing

import (
	gomock "go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/karshPrime/uni-traffic-light/sim"
)

var _ = Describe("AverageTimeTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		t          *AverageTimeTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)

		t = NewAverageTimeTracer(timeTeller, nil)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should average the task durations", func() {
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(1))
		t.StartTask(Task{ID: "1"})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(2))
		t.EndTask(Task{ID: "1"})

		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(4))
		t.StartTask(Task{ID: "2"})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(7))
		t.EndTask(Task{ID: "2"})

		Expect(t.AverageTime()).To(Equal(sim.VTimeInSec(2.0)))
		Expect(t.TotalCount()).To(Equal(uint64(2)))
	})

	It("should see no tasks initially", func() {
		Expect(t.AverageTime()).To(Equal(sim.VTimeInSec(0.0)))
		Expect(t.TotalCount()).To(Equal(uint64(0)))
	})

	It("should ignore the end of an unseen task", func() {
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(1))
		t.EndTask(Task{ID: "1"})

		Expect(t.TotalCount()).To(Equal(uint64(0)))
	})

	It("should skip the tasks that the filter rejects", func() {
		t = NewAverageTimeTracer(timeTeller, func(task Task) bool {
			return task.Kind == "wait"
		})

		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(1))
		t.StartTask(Task{ID: "1", Kind: "phase"})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(2))
		t.StartTask(Task{ID: "2", Kind: "wait"})

		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(5))
		t.EndTask(Task{ID: "1"})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(6))
		t.EndTask(Task{ID: "2"})

		Expect(t.AverageTime()).To(Equal(sim.VTimeInSec(4.0)))
		Expect(t.TotalCount()).To(Equal(uint64(1)))
	})
})
