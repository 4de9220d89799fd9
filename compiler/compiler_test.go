package compiler

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/osksim/engine/model"
	"github.com/osksim/engine/oskerr"
)

func indexOf(plan Plan, id string) int {
	for _, cb := range plan.Blocks {
		if cb.Params.ID == id {
			return cb.Index
		}
	}
	return -1
}

var _ = Describe("Compile", func() {
	It("rejects an empty model", func() {
		_, err := Compile(model.Model{})
		var kerr *oskerr.Error
		Expect(errors.As(err, &kerr)).To(BeTrue())
		Expect(kerr.Kind).To(Equal(oskerr.EmptyModel))
	})

	It("orders non-state-breaking edges so A precedes B", func() {
		m := model.Model{
			Blocks: []model.Block{
				{ID: "c", Variant: model.VariantConstant},
				{ID: "g1", Variant: model.VariantGain},
				{ID: "g2", Variant: model.VariantGain},
			},
			Connections: []model.Connection{
				{SrcBlockID: "c", SrcPortID: "out", DstBlockID: "g1", DstPortID: "in"},
				{SrcBlockID: "g1", SrcPortID: "out", DstBlockID: "g2", DstPortID: "in"},
			},
		}
		plan, err := Compile(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(indexOf(plan, "c")).To(BeNumerically("<", indexOf(plan, "g1")))
		Expect(indexOf(plan, "g1")).To(BeNumerically("<", indexOf(plan, "g2")))
	})

	It("rejects a pure algebraic loop with no state-holding block", func() {
		m := model.Model{
			Blocks: []model.Block{
				{ID: "g1", Variant: model.VariantGain, Params: map[string]float64{"gain": 2}},
				{ID: "g2", Variant: model.VariantGain, Params: map[string]float64{"gain": 0.5}},
				{ID: "g3", Variant: model.VariantGain, Params: map[string]float64{"gain": 2}},
			},
			Connections: []model.Connection{
				{SrcBlockID: "g1", SrcPortID: "out", DstBlockID: "g2", DstPortID: "in"},
				{SrcBlockID: "g2", SrcPortID: "out", DstBlockID: "g3", DstPortID: "in"},
				{SrcBlockID: "g3", SrcPortID: "out", DstBlockID: "g1", DstPortID: "in"},
			},
		}
		_, err := Compile(m)
		var kerr *oskerr.Error
		Expect(errors.As(err, &kerr)).To(BeTrue())
		Expect(kerr.Kind).To(Equal(oskerr.AlgebraicLoop))
		Expect(kerr.BlockIDs).To(ContainElements("g1", "g2", "g3"))
	})

	It("accepts the same feedback loop once a state-holding block breaks it", func() {
		m := model.Model{
			Blocks: []model.Block{
				{ID: "g1", Variant: model.VariantGain, Params: map[string]float64{"gain": 2}},
				{ID: "integ", Variant: model.VariantIntegrator},
			},
			Connections: []model.Connection{
				{SrcBlockID: "g1", SrcPortID: "out", DstBlockID: "integ", DstPortID: "in"},
				{SrcBlockID: "integ", SrcPortID: "out", DstBlockID: "g1", DstPortID: "in"},
			},
		}
		_, err := Compile(m)
		Expect(err).NotTo(HaveOccurred())
	})

	It("flattens a subsystem so an external edge reaches straight through to the child", func() {
		sub := model.Block{
			ID:      "sub",
			Variant: model.VariantSubsystem,
			Inputs:  []model.Port{{ID: "in0", BlockID: "sub"}},
			Outputs: []model.Port{{ID: "out0", BlockID: "sub"}},
			Children: []model.Block{
				{ID: "inport", Variant: model.VariantInport, Params: map[string]float64{"portNumber": 1}},
				{ID: "gain", Variant: model.VariantGain, Params: map[string]float64{"gain": 2}},
				{ID: "outport", Variant: model.VariantOutport, Params: map[string]float64{"portNumber": 1}},
			},
			ChildConns: []model.Connection{
				{SrcBlockID: "inport", SrcPortID: "out", DstBlockID: "gain", DstPortID: "in"},
				{SrcBlockID: "gain", SrcPortID: "out", DstBlockID: "outport", DstPortID: "in"},
			},
		}
		m := model.Model{
			Blocks: []model.Block{
				{ID: "c", Variant: model.VariantConstant, Params: map[string]float64{"value": 3}},
				sub,
				{ID: "scope", Variant: model.VariantScope},
			},
			Connections: []model.Connection{
				{SrcBlockID: "c", SrcPortID: "out", DstBlockID: "sub", DstPortID: "in0"},
				{SrcBlockID: "sub", SrcPortID: "out0", DstBlockID: "scope", DstPortID: "in0"},
			},
		}
		plan, err := Compile(m)
		Expect(err).NotTo(HaveOccurred())

		var ids []string
		for _, cb := range plan.Blocks {
			ids = append(ids, cb.Params.ID)
		}
		Expect(ids).To(ContainElements("c", "sub.inport", "sub.gain", "sub.outport", "scope"))
		Expect(ids).NotTo(ContainElement("sub"))

		var inportBindings, gainBindings []Binding
		for _, cb := range plan.Blocks {
			switch cb.Params.ID {
			case "sub.inport":
				inportBindings = cb.Bindings
			case "sub.gain":
				gainBindings = cb.Bindings
			}
		}
		Expect(inportBindings).To(ConsistOf(Binding{SrcBlockID: "c", SrcPortID: "out", DstPortID: "in"}))
		Expect(gainBindings).To(ConsistOf(Binding{SrcBlockID: "sub.inport", SrcPortID: "out", DstPortID: "in"}))
	})
})
