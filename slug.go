package cuid

import (
	"strings"

	"github.com/sarchlab/cuid/basen"
	"github.com/sarchlab/cuid/clock"
	"github.com/sarchlab/cuid/counter"
	"github.com/sarchlab/cuid/entropy"
)

// Bounds of the length of a slug.
const (
	SlugMinLength = 7
	SlugMaxLength = 10
)

const (
	slugTimestampWidth   = 2
	slugFingerprintWidth = 2
	slugRandomWidth      = 2
	slugRandomScale      = 1000
)

// SlugGenerator generates short-form tokens.
type SlugGenerator struct {
	clock       clock.Clock
	counter     *counter.Counter
	random      entropy.Source
	fingerprint string
}

// NewSlug creates a SlugGenerator fingerprinted from the current process.
func NewSlug() *SlugGenerator {
	return MakeBuilder().BuildSlug()
}

// NewSlugWithFingerprint creates a SlugGenerator that embeds fp, fitted to
// two characters.
func NewSlugWithFingerprint(fp string) *SlugGenerator {
	return MakeBuilder().WithFingerprint(fp).BuildSlug()
}

// Generate returns a new slug of 7 to 10 characters. The counter block is
// not padded, so the slug grows as the counter grows and shrinks again when
// the counter wraps.
func (g *SlugGenerator) Generate() string {
	var b strings.Builder
	b.Grow(SlugMaxLength)

	b.WriteString(timestampBlock(g.clock, slugTimestampWidth))
	b.WriteString(basen.Encode(g.counter.Next()))
	b.WriteString(g.fingerprint)
	b.WriteString(basen.Pad(
		entropy.Scale(g.random, slugRandomScale), slugRandomWidth))

	return b.String()
}

// Fingerprint returns the fingerprint block embedded in every slug.
func (g *SlugGenerator) Fingerprint() string {
	return g.fingerprint
}

// State returns the current fingerprint and counter position.
func (g *SlugGenerator) State() State {
	return State{
		Fingerprint: g.fingerprint,
		Counter:     g.counter.Peek(),
		Ceiling:     g.counter.Ceiling(),
	}
}
