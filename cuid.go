package cuid

import (
	"strings"

	"github.com/sarchlab/cuid/basen"
	"github.com/sarchlab/cuid/clock"
	"github.com/sarchlab/cuid/counter"
	"github.com/sarchlab/cuid/entropy"
)

// Prefix starts every long-form token.
const Prefix = "c"

// Length is the length of a long-form token.
const Length = 25

// BlockWidth is the width of the counter, fingerprint, and random
// sub-blocks of a long-form token.
const BlockWidth = 4

const timestampWidth = 8

// CounterCeiling is the value at which generator counters wrap to zero.
var CounterCeiling = basen.Ceiling(BlockWidth)

// IDGenerator can generate IDs.
type IDGenerator interface {
	// Generate an ID
	Generate() string
}

// State is a point-in-time view of a generator, used for diagnostics.
type State struct {
	Fingerprint string `json:"fingerprint"`
	Counter     uint64 `json:"counter"`
	Ceiling     uint64 `json:"ceiling"`
}

// Generator generates long-form tokens.
type Generator struct {
	clock       clock.Clock
	counter     *counter.Counter
	random      entropy.Source
	fingerprint string
}

// New creates a Generator fingerprinted from the current process.
func New() *Generator {
	return MakeBuilder().Build()
}

// NewWithFingerprint creates a Generator that embeds fp, fitted to four
// characters, instead of a fingerprint derived from the process.
func NewWithFingerprint(fp string) *Generator {
	return MakeBuilder().WithFingerprint(fp).Build()
}

// Generate returns a new 25-character token. It advances the counter exactly
// once.
func (g *Generator) Generate() string {
	var b strings.Builder
	b.Grow(Length)

	b.WriteString(Prefix)
	b.WriteString(timestampBlock(g.clock, timestampWidth))
	b.WriteString(basen.Pad(g.counter.Next(), BlockWidth))
	b.WriteString(g.fingerprint)
	b.WriteString(basen.Pad(entropy.Scale(g.random, CounterCeiling), BlockWidth))
	b.WriteString(basen.Pad(entropy.Scale(g.random, CounterCeiling), BlockWidth))

	return b.String()
}

// Fingerprint returns the fingerprint block embedded in every token.
func (g *Generator) Fingerprint() string {
	return g.fingerprint
}

// State returns the current fingerprint and counter position.
func (g *Generator) State() State {
	return State{
		Fingerprint: g.fingerprint,
		Counter:     g.counter.Peek(),
		Ceiling:     g.counter.Ceiling(),
	}
}

func timestampBlock(c clock.Clock, width int) string {
	ms := c.NowMs()
	if ms < 0 {
		ms = 0
	}

	return basen.Pad(uint64(ms), width)
}
