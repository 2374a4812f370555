package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/karshPrime/uni-traffic-light/sim"
)

type sampleMsg struct {
	sim.MsgMeta
}

func (m *sampleMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

func (m *sampleMsg) Clone() sim.Msg {
	return m
}

var _ = Describe("Api", func() {
	var (
		mockCtrl *gomock.Controller
		domain   *MockNamedHookable
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		domain = NewMockNamedHookable(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should panic if ID is not given", func() {
		domain.EXPECT().Name().Return("Intersection.Controller").AnyTimes()
		domain.EXPECT().NumHooks().Return(1).AnyTimes()

		Expect(func() {
			StartTask("", "123", domain, "phase", "GreenEW", nil)
		}).Should(Panic())
	})

	It("should panic if domain is nil", func() {
		Expect(func() {
			StartTask("id", "123", nil, "phase", "GreenEW", nil)
		}).Should(Panic())
	})

	It("should panic if domain has no name", func() {
		domain.EXPECT().Name().Return("").AnyTimes()
		domain.EXPECT().NumHooks().Return(1).AnyTimes()

		Expect(func() {
			StartTask("id", "123", domain, "phase", "GreenEW", nil)
		}).Should(Panic())
	})

	It("should panic if kind is empty", func() {
		domain.EXPECT().Name().Return("Intersection.Controller").AnyTimes()
		domain.EXPECT().NumHooks().Return(1).AnyTimes()

		Expect(func() {
			StartTask("id", "123", domain, "", "GreenEW", nil)
		}).Should(Panic())
	})

	It("should panic if what is empty", func() {
		domain.EXPECT().Name().Return("Intersection.Controller").AnyTimes()
		domain.EXPECT().NumHooks().Return(1).AnyTimes()

		Expect(func() {
			StartTask("id", "123", domain, "phase", "", nil)
		}).Should(Panic())
	})

	It("should do nothing when the domain has no hooks", func() {
		domain.EXPECT().Name().Return("Intersection.Controller").AnyTimes()
		domain.EXPECT().NumHooks().Return(0).AnyTimes()

		StartTask("id", "123", domain, "phase", "GreenEW", nil)
		EndTask("id", domain)
	})

	It("should deliver the started task to the hooks", func() {
		domain.EXPECT().Name().Return("Intersection.Controller").AnyTimes()
		domain.EXPECT().NumHooks().Return(1).AnyTimes()
		domain.EXPECT().
			InvokeHook(gomock.Any()).
			Do(func(ctx sim.HookCtx) {
				Expect(ctx.Pos).To(BeIdenticalTo(HookPosTaskStart))

				task := ctx.Item.(Task)
				Expect(task.ID).To(Equal("id"))
				Expect(task.ParentID).To(Equal("123"))
				Expect(task.Kind).To(Equal("phase"))
				Expect(task.What).To(Equal("GreenEW"))
				Expect(task.Where).To(Equal("Intersection.Controller"))
			})

		StartTask("id", "123", domain, "phase", "GreenEW", nil)
	})

	It("should deliver the ended task to the hooks", func() {
		domain.EXPECT().NumHooks().Return(1).AnyTimes()
		domain.EXPECT().
			InvokeHook(gomock.Any()).
			Do(func(ctx sim.HookCtx) {
				Expect(ctx.Pos).To(BeIdenticalTo(HookPosTaskEnd))
				Expect(ctx.Item.(Task).ID).To(Equal("id"))
			})

		EndTask("id", domain)
	})

	It("should name the message task after the receiver", func() {
		domain.EXPECT().Name().Return("Intersection.Panel").AnyTimes()

		msg := &sampleMsg{}
		msg.ID = "update1"

		Expect(MsgIDAtReceiver(msg, domain)).
			To(Equal("update1@Intersection.Panel"))
	})

	It("should trace a received message as a req_in task", func() {
		domain.EXPECT().Name().Return("Intersection.Panel").AnyTimes()
		domain.EXPECT().NumHooks().Return(1).AnyTimes()
		domain.EXPECT().
			InvokeHook(gomock.Any()).
			Do(func(ctx sim.HookCtx) {
				task := ctx.Item.(Task)
				Expect(task.ID).To(Equal("update1@Intersection.Panel"))
				Expect(task.ParentID).To(Equal("update1_req_out"))
				Expect(task.Kind).To(Equal("req_in"))
			})

		msg := &sampleMsg{}
		msg.ID = "update1"

		TraceReqReceive(msg, domain)
	})
})
