// Package fingerprint derives the short host block that distinguishes tokens
// issued by different processes.
//
// A fingerprint is computed once, when a generator is built, from the
// identity of the current process: its PID and a name. Half of the block
// encodes the PID, the other half a score derived from the name. If the
// process cannot be inspected, a synthetic identity with a random PID is
// used instead so that the two halves still look independent.
package fingerprint

import (
	"fmt"
	"log"
	"math"
	"os"
	"unicode/utf8"

	"github.com/sarchlab/cuid/basen"
	"github.com/sarchlab/cuid/entropy"
	"github.com/shirou/gopsutil/process"
)

// FallbackName is the process name used by the synthetic identity.
const FallbackName = "anonymous"

// Identity is what a fingerprint is computed from.
type Identity struct {
	PID  int
	Name string
}

// IdentityProvider looks up the identity of the current process.
type IdentityProvider interface {
	CurrentIdentity() (Identity, error)
}

// ProcessIdentityProvider inspects the running process with gopsutil.
type ProcessIdentityProvider struct {
	pid func() int
}

// NewProcessIdentityProvider creates a provider for the current process.
func NewProcessIdentityProvider() *ProcessIdentityProvider {
	return &ProcessIdentityProvider{pid: os.Getpid}
}

// CurrentIdentity returns the PID and "<process name>@<hostname>". The
// hostname part is dropped when the host name is not available.
func (p *ProcessIdentityProvider) CurrentIdentity() (Identity, error) {
	pid := p.pid() & math.MaxInt32

	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return Identity{}, fmt.Errorf("inspecting process %d: %w", pid, err)
	}

	name, err := proc.Name()
	if err != nil {
		return Identity{}, fmt.Errorf("reading name of process %d: %w", pid, err)
	}

	if host, err := os.Hostname(); err == nil && host != "" {
		name = name + "@" + host
	}

	return Identity{PID: pid, Name: name}, nil
}

// Fallback builds a synthetic identity with a random PID in [0, 2^31).
func Fallback(r entropy.Source) Identity {
	return Identity{
		PID:  int(entropy.Scale(r, math.MaxInt32+1)),
		Name: FallbackName,
	}
}

// Resolve asks p for the process identity. A nil provider or a failed lookup
// yields Fallback(r).
func Resolve(p IdentityProvider, r entropy.Source) Identity {
	if p == nil {
		return Fallback(r)
	}

	id, err := p.CurrentIdentity()
	if err != nil {
		log.Printf("fingerprint: %v; using a synthetic identity", err)
		return Fallback(r)
	}

	return id
}

// NameScore sums the name length, the radix, and the code points of name.
func NameScore(name string) uint64 {
	score := uint64(utf8.RuneCountInString(name)) + basen.Radix
	for _, c := range name {
		score += uint64(c)
	}

	return score
}

// Compute encodes id into a block of the given width. The PID fills the left
// half and the name score the right half.
func Compute(id Identity, width int) string {
	if width <= 0 {
		log.Panicf("fingerprint: width must be positive, got %d", width)
	}

	pidWidth := width / 2
	pid := uint64(id.PID) & math.MaxInt32

	return basen.Pad(pid, pidWidth) +
		basen.Pad(NameScore(id.Name), width-pidWidth)
}

// Override fits a caller-supplied fingerprint into width characters with the
// same right-anchored rule used for every block. The characters of s are
// not checked against the token alphabet.
func Override(s string, width int) string {
	return basen.Normalize(s, width)
}
