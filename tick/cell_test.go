package tick

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/osksim/engine/model"
)

// driveConstant advances a cell with xdot held at 1 for n primary steps of
// dtp, writing Xdot once per pass exactly as a block's Update would.
func driveConstant(tk *Tick, cell *Cell, steps int) {
	for i := 0; i < steps; i++ {
		for {
			cell.Xdot = 1
			cell.Propagate(tk)
			last := tk.Ready
			tk.Advance()
			if last {
				break
			}
		}
	}
}

var _ = Describe("Cell", func() {
	DescribeTable("linearity: xdot=1 advances x by N*h",
		func(method model.Method, tol float64) {
			const h = 0.125 // exactly representable, so Euler's sum is exact
			const n = 10
			tk := New(method, 0, h)
			var cell Cell
			cell.Reset(0)

			driveConstant(tk, &cell, n)

			Expect(cell.X).To(BeNumerically("~", n*h, tol))
		},
		Entry("Euler is exact", model.Euler, 0.0),
		Entry("RK2", model.RK2, 1e-9),
		Entry("RK4", model.RK4, 1e-9),
		Entry("Merson", model.Merson, 1e-9),
	)

	DescribeTable("pass counts per primary step",
		func(method model.Method, wantPasses int) {
			tk := New(method, 0, 0.1)
			Expect(tk.Method.Passes()).To(Equal(wantPasses))

			passes := 0
			for {
				passes++
				last := tk.Ready
				tk.Advance()
				if last {
					break
				}
			}
			Expect(passes).To(Equal(wantPasses))
		},
		Entry("Euler: 1 pass", model.Euler, 1),
		Entry("RK2: 2 passes", model.RK2, 2),
		Entry("RK4: 4 passes", model.RK4, 4),
		Entry("Merson: 5 passes", model.Merson, 5),
	)

	It("wraps kpass to 0 and advances T only on the last pass", func() {
		tk := New(model.RK4, 0, 0.1)
		Expect(tk.Kpass).To(Equal(0))
		Expect(tk.Ready).To(BeFalse())

		tk.Advance() // pass 1
		Expect(tk.Kpass).To(Equal(1))
		tk.Advance() // pass 2
		Expect(tk.Kpass).To(Equal(2))
		tk.Advance() // pass 3 (last)
		Expect(tk.Kpass).To(Equal(3))
		Expect(tk.Ready).To(BeTrue())
		Expect(tk.T).To(BeNumerically("~", 0, 1e-12))

		tk.Advance() // wraps, T advances
		Expect(tk.Kpass).To(Equal(0))
		Expect(tk.T).To(BeNumerically("~", 0.1, 1e-12))
	})

	It("sets dt per the RK2/RK4 method table", func() {
		tk := New(model.RK2, 0, 0.2)
		Expect(tk.Dt).To(BeNumerically("~", 0.1)) // pass 0: dtp/2
		tk.Advance()
		Expect(tk.Dt).To(BeNumerically("~", 0.2)) // pass 1: dtp

		tk4 := New(model.RK4, 0, 0.2)
		Expect(tk4.Dt).To(BeNumerically("~", 0.1)) // pass 0
		tk4.Advance()
		Expect(tk4.Dt).To(BeNumerically("~", 0.1)) // pass 1
		tk4.Advance()
		Expect(tk4.Dt).To(BeNumerically("~", 0.2)) // pass 2
		tk4.Advance()
		Expect(tk4.Dt).To(BeNumerically("~", 0.2)) // pass 3
	})

	It("reports Done once T reaches stop within EPS", func() {
		tk := New(model.Euler, 0, 0.1)
		Expect(tk.Done(1)).To(BeFalse())
		tk.T = 1 - EPS/2
		Expect(tk.Done(1)).To(BeTrue())
	})
})
