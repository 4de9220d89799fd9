package modelio

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/osksim/engine/model"
)

var _ = Describe("Load/Save", func() {
	It("round-trips a model through YAML, including nested subsystems", func() {
		m := model.Model{
			ID:     "m1",
			Name:   "demo",
			Author: "tester",
			Blocks: []model.Block{
				{ID: "c", Variant: model.VariantConstant, Params: map[string]float64{"value": 5}},
				{
					ID:      "sub",
					Variant: model.VariantSubsystem,
					Children: []model.Block{
						{ID: "gain", Variant: model.VariantGain, Params: map[string]float64{"gain": 2}, StrParams: map[string]string{"note": "x2"}},
					},
				},
				{ID: "scope", Variant: model.VariantScope},
			},
			Connections: []model.Connection{
				{SrcBlockID: "c", SrcPortID: "out", DstBlockID: "scope", DstPortID: "in0"},
			},
			Config: model.SimConfig{Solver: model.RK4, StartTime: 0, StopTime: 1, StepSize: 0.1},
		}

		path := filepath.Join(GinkgoT().TempDir(), "model.yaml")
		Expect(Save(path, m)).To(Succeed())

		got, err := Load(path)
		Expect(err).NotTo(HaveOccurred())

		Expect(got.ID).To(Equal(m.ID))
		Expect(got.Config).To(Equal(m.Config))
		Expect(got.Blocks).To(HaveLen(3))
		Expect(got.Blocks[0].Params["value"]).To(Equal(5.0))
		Expect(got.Blocks[1].Children).To(HaveLen(1))
		Expect(got.Blocks[1].Children[0].StrParams["note"]).To(Equal("x2"))
		Expect(got.Connections).To(Equal(m.Connections))
	})

	It("fails with a wrapped error when the file does not exist", func() {
		_, err := Load(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
		Expect(err).To(HaveOccurred())
	})
})
