package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Freq", func() {
	It("should get period", func() {
		var f = 1 * Hz
		Expect(f.Period()).To(BeNumerically("==", 1))
	})

	It("should get this tick", func() {
		var f = 1 * Hz
		Expect(f.ThisTick(1)).To(BeNumerically("~", 1, 1e-12))
	})

	It("should get this tick, off tick", func() {
		var f = 1 * Hz
		Expect(f.ThisTick(41.2)).To(BeNumerically("~", 42, 1e-12))
	})

	It("should get the next tick", func() {
		var f = 1 * Hz
		Expect(f.NextTick(102)).To(BeNumerically("~", 103, 1e-12))
	})

	It("should get the next tick, if current time is not on a tick", func() {
		var f = 1 * Hz
		Expect(f.NextTick(102.1)).To(BeNumerically("~", 103, 1e-12))
	})

	It("should get the next tick at high freq", func() {
		var f = 1 * GHz
		Expect(f.NextTick(0.000000031)).
			To(BeNumerically("~", 0.000000032, 1e-12))
	})

	It("should get the n cycles later", func() {
		var f = 1 * Hz
		Expect(f.NCyclesLater(12, 102)).To(BeNumerically("~", 114, 1e-12))
	})

	It("should get the n cycles later, if current time is not on a tick",
		func() {
			var f = 1 * Hz
			Expect(f.NCyclesLater(12, 102.1)).
				To(BeNumerically("~", 115, 1e-12))
		})

	It("should get the no-earlier-than time, on tick", func() {
		var f = 1 * Hz
		Expect(f.NoEarlierThan(102)).To(BeNumerically("~", 102, 1e-12))
	})

	It("should get the no-earlier-than time, off tick", func() {
		var f = 1 * Hz
		Expect(f.NoEarlierThan(102.25)).To(BeNumerically("~", 103, 1e-12))
	})
})
