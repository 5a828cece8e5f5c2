package fingerprint

import (
	"errors"
	"math"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/cuid/basen"
	"github.com/sarchlab/cuid/entropy"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("NameScore", func() {
	It("should add length, radix, and code points", func() {
		// "ab": 2 + 36 + 97 + 98
		Expect(NameScore("ab")).To(Equal(uint64(233)))
	})

	It("should count code points rather than bytes", func() {
		// "é" is one code point, U+00E9.
		Expect(NameScore("é")).To(Equal(uint64(1 + 36 + 0xe9)))
	})

	It("should score an empty name as the radix", func() {
		Expect(NameScore("")).To(Equal(uint64(36)))
	})
})

var _ = Describe("Compute", func() {
	It("should split the block between pid and name score", func() {
		id := Identity{PID: 1295, Name: "ab"}

		Expect(Compute(id, 4)).To(Equal(basen.Pad(1295, 2) + basen.Pad(233, 2)))
		Expect(Compute(id, 4)).To(Equal("zz6h"))
	})

	It("should use one character per half for width 2", func() {
		id := Identity{PID: 37, Name: "ab"}

		Expect(Compute(id, 2)).To(Equal("1h"))
	})

	It("should keep only the low-order digits of a large pid", func() {
		id := Identity{PID: math.MaxInt32, Name: "x"}

		fp := Compute(id, 4)
		Expect(fp).To(HaveLen(4))
		Expect(fp[:2]).To(Equal(basen.Pad(math.MaxInt32, 2)))
	})

	It("should be deterministic", func() {
		id := Identity{PID: 4242, Name: "worker@host"}

		Expect(Compute(id, 4)).To(Equal(Compute(id, 4)))
	})

	It("should panic on a non-positive width", func() {
		Expect(func() { Compute(Identity{}, 0) }).To(Panic())
	})
})

var _ = Describe("Override", func() {
	It("should keep an override of the right width", func() {
		Expect(Override("lolz", 4)).To(Equal("lolz"))
	})

	It("should pad a short override", func() {
		Expect(Override("a", 4)).To(Equal("000a"))
	})

	It("should keep the rightmost characters of a long override", func() {
		Expect(Override("abcdef", 4)).To(Equal("cdef"))
		Expect(Override("abcdef", 2)).To(Equal("ef"))
	})

	It("should not validate the character set", func() {
		Expect(Override("A!_?", 4)).To(Equal("A!_?"))
	})
})

var _ = Describe("Resolve", func() {
	var (
		mockCtrl *gomock.Controller
		provider *MockIdentityProvider
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		provider = NewMockIdentityProvider(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should use the provider identity", func() {
		provider.EXPECT().
			CurrentIdentity().
			Return(Identity{PID: 12, Name: "svc"}, nil)

		id := Resolve(provider, entropy.NewSeededSource(1))

		Expect(id).To(Equal(Identity{PID: 12, Name: "svc"}))
	})

	It("should fall back when the provider fails", func() {
		provider.EXPECT().
			CurrentIdentity().
			Return(Identity{}, errors.New("no procfs"))

		id := Resolve(provider, entropy.NewSeededSource(1))

		Expect(id.Name).To(Equal(FallbackName))
		Expect(id.PID).To(BeNumerically(">=", 0))
		Expect(id.PID).To(BeNumerically("<=", math.MaxInt32))
	})

	It("should fall back without a provider", func() {
		id := Resolve(nil, entropy.NewSeededSource(1))

		Expect(id.Name).To(Equal(FallbackName))
	})

	It("should give reproducible fallbacks for the same seed", func() {
		a := Fallback(entropy.NewSeededSource(99))
		b := Fallback(entropy.NewSeededSource(99))

		Expect(a).To(Equal(b))
	})
})

var _ = Describe("ProcessIdentityProvider", func() {
	It("should report the current pid", func() {
		id, err := NewProcessIdentityProvider().CurrentIdentity()

		Expect(err).NotTo(HaveOccurred())
		Expect(id.PID).To(Equal(os.Getpid()))
		Expect(id.Name).NotTo(BeEmpty())
	})

	It("should report an error for a process that does not exist", func() {
		p := &ProcessIdentityProvider{pid: func() int { return math.MaxInt32 }}

		_, err := p.CurrentIdentity()

		Expect(err).To(HaveOccurred())
	})
})
