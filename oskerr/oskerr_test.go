package oskerr

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Error", func() {
	It("matches via errors.Is on Kind alone, ignoring message and block ids", func() {
		a := New(AlgebraicLoop, []string{"g1", "g2"}, "loop through %v", []string{"g1", "g2"})
		b := New(AlgebraicLoop, nil, "a different message")
		Expect(errors.Is(a, b)).To(BeTrue())

		c := New(EmptyModel, nil, "")
		Expect(errors.Is(a, c)).To(BeFalse())
	})

	It("formats block ids and message into Error()", func() {
		err := New(BadParameters, []string{"blk1"}, "missing %s", "gain")
		Expect(err.Error()).To(ContainSubstring("BadParameters"))
		Expect(err.Error()).To(ContainSubstring("missing gain"))
		Expect(err.Error()).To(ContainSubstring("blk1"))
	})

	It("lets a caller errors.As into the concrete type", func() {
		var err error = New(RuntimeFailure, nil, "panic: %v", "boom")
		var kerr *Error
		Expect(errors.As(err, &kerr)).To(BeTrue())
		Expect(kerr.Kind).To(Equal(RuntimeFailure))
	})
})
