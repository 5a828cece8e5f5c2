package cuid

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/cuid/basen"
	"github.com/sarchlab/cuid/clock"
	"github.com/sarchlab/cuid/fingerprint"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("SlugGenerator", func() {
	var (
		mockCtrl *gomock.Controller
		random   *MockSource
		identity *MockIdentityProvider
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		random = NewMockSource(mockCtrl)
		identity = NewMockIdentityProvider(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should lay out the blocks in order", func() {
		identity.EXPECT().
			CurrentIdentity().
			Return(fingerprint.Identity{PID: 12, Name: "svc"}, nil)
		random.EXPECT().Float64().Return(0.25)

		g := MakeBuilder().
			WithIdentityProvider(identity).
			WithClock(clock.Fixed(nov2023)).
			WithRandomSource(random).
			BuildSlug()

		Expect(g.Generate()).To(Equal("28" + "0" + "cb" + "6y"))
	})

	It("should grow the counter block without padding", func() {
		random.EXPECT().Float64().Return(0.0).AnyTimes()

		g := MakeBuilder().
			WithFingerprint("ab").
			WithClock(clock.Fixed(nov2023)).
			WithRandomSource(random).
			BuildSlug()

		Expect(g.Generate()).To(HaveLen(SlugMinLength))

		for i := 0; i < 35; i++ {
			g.counter.Next()
		}
		Expect(g.Generate()).To(Equal("28" + "10" + "ab" + "00"))

		for g.counter.Peek() != CounterCeiling-1 {
			g.counter.Next()
		}
		Expect(g.Generate()).To(Equal("28" + "zzzz" + "ab" + "00"))
		Expect(g.Generate()).To(Equal("28" + "0" + "ab" + "00"))
	})

	It("should keep the random block within two characters", func() {
		random.EXPECT().Float64().Return(0.9999999)

		g := MakeBuilder().
			WithFingerprint("ab").
			WithClock(clock.Fixed(nov2023)).
			WithRandomSource(random).
			BuildSlug()

		Expect(g.Generate()).To(HaveSuffix(basen.Pad(999, 2)))
	})

	It("should fit a custom fingerprint to two characters", func() {
		g := NewSlugWithFingerprint("lolz")

		Expect(g.Fingerprint()).To(Equal("lz"))
		Expect(g.Generate()[3:5]).To(Equal("lz"))
	})

	It("should generate slugs of bounded length with the defaults", func() {
		g := NewSlug()

		Expect(g.Fingerprint()).To(HaveLen(2))
		for i := 0; i < 5000; i++ {
			slug := g.Generate()
			Expect(len(slug)).To(BeNumerically(">=", SlugMinLength))
			Expect(len(slug)).To(BeNumerically("<=", SlugMaxLength))
			Expect(basen.IsEncoded(slug)).To(BeTrue(), slug)
		}
	})

	It("should stay within bounds under concurrent use", func() {
		g := NewSlug()

		var wg sync.WaitGroup
		for t := 0; t < 8; t++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()

				for i := 0; i < 5000; i++ {
					slug := g.Generate()
					Expect(len(slug)).To(BeNumerically(">=", SlugMinLength))
					Expect(len(slug)).To(BeNumerically("<=", SlugMaxLength))
				}
			}()
		}
		wg.Wait()

		Expect(g.State().Counter).To(Equal(uint64(40000)))
	})
})
