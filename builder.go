package cuid

import (
	"github.com/sarchlab/cuid/clock"
	"github.com/sarchlab/cuid/counter"
	"github.com/sarchlab/cuid/entropy"
	"github.com/sarchlab/cuid/fingerprint"
)

// Builder can build Generators and SlugGenerators.
type Builder struct {
	fingerprint    string
	hasFingerprint bool
	identity       fingerprint.IdentityProvider
	clock          clock.Clock
	random         entropy.Source
}

// MakeBuilder creates a Builder with the default process identity, wall
// clock, and system random source.
func MakeBuilder() Builder {
	return Builder{}
}

// WithFingerprint uses fp instead of a fingerprint derived from the process.
// fp is fitted to the variant's width by keeping its rightmost characters or
// padding it with '0'. Its characters are used as given.
func (b Builder) WithFingerprint(fp string) Builder {
	b.fingerprint = fp
	b.hasFingerprint = true
	return b
}

// WithIdentityProvider sets where the process identity is read from. It has
// no effect when a fingerprint is given explicitly.
func (b Builder) WithIdentityProvider(p fingerprint.IdentityProvider) Builder {
	b.identity = p
	return b
}

// WithClock sets the time source of the timestamp block.
func (b Builder) WithClock(c clock.Clock) Builder {
	b.clock = c
	return b
}

// WithRandomSource sets the source of the random block. It also seeds the
// synthetic identity used when the process cannot be inspected.
func (b Builder) WithRandomSource(r entropy.Source) Builder {
	b.random = r
	return b
}

// Build creates a long-form Generator.
func (b Builder) Build() *Generator {
	b = b.withDefaults()

	return &Generator{
		clock:       b.clock,
		counter:     counter.New(CounterCeiling),
		random:      b.random,
		fingerprint: b.resolveFingerprint(BlockWidth),
	}
}

// BuildSlug creates a short-form SlugGenerator.
func (b Builder) BuildSlug() *SlugGenerator {
	b = b.withDefaults()

	return &SlugGenerator{
		clock:       b.clock,
		counter:     counter.New(CounterCeiling),
		random:      b.random,
		fingerprint: b.resolveFingerprint(slugFingerprintWidth),
	}
}

func (b Builder) withDefaults() Builder {
	if b.clock == nil {
		b.clock = clock.NewMonotonic()
	}

	if b.random == nil {
		b.random = entropy.NewSystemSource()
	}

	if b.identity == nil && !b.hasFingerprint {
		b.identity = fingerprint.NewProcessIdentityProvider()
	}

	return b
}

func (b Builder) resolveFingerprint(width int) string {
	if b.hasFingerprint {
		return fingerprint.Override(b.fingerprint, width)
	}

	id := fingerprint.Resolve(b.identity, b.random)

	return fingerprint.Compute(id, width)
}
