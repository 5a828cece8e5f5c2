// Package stress hammers a shared generator from many goroutines and checks
// the tokens it hands out for duplicates and malformed values.
package stress

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sarchlab/cuid"
	"github.com/sarchlab/cuid/basen"
)

// Variant tells the harness which token shape to expect.
type Variant int

// Token variants.
const (
	LongForm Variant = iota
	ShortForm
)

func (v Variant) String() string {
	switch v {
	case LongForm:
		return "long"
	case ShortForm:
		return "short"
	default:
		return "unknown"
	}
}

// Options configures a run.
type Options struct {
	Threads   int
	PerThread int
	Variant   Variant
}

// Progress tracks a run. Each worker reports its whole share as in progress
// when it starts and moves tokens to finished as it generates them.
type Progress interface {
	IncrementInProgress(amount uint64)
	MoveInProgressToFinished(amount uint64)
}

// Report summarizes a run.
type Report struct {
	ID         string
	Variant    string
	Threads    int
	PerThread  int
	Total      int
	Unique     int
	Duplicates int
	Malformed  int
	Duration   time.Duration
}

// OK reports whether the run produced neither duplicates nor malformed
// tokens.
func (r Report) OK() bool {
	return r.Duplicates == 0 && r.Malformed == 0
}

func (r Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "run %s (%s form)\n", r.ID, r.Variant)
	fmt.Fprintf(&b, "  threads:    %d x %d\n", r.Threads, r.PerThread)
	fmt.Fprintf(&b, "  total:      %d\n", r.Total)
	fmt.Fprintf(&b, "  unique:     %d\n", r.Unique)
	fmt.Fprintf(&b, "  duplicates: %d\n", r.Duplicates)
	fmt.Fprintf(&b, "  malformed:  %d\n", r.Malformed)
	fmt.Fprintf(&b, "  duration:   %s\n", r.Duration)

	return b.String()
}

// progressStep is how many tokens a worker generates between progress
// updates.
const progressStep = 1000

// Run starts opts.Threads goroutines that each call g.Generate
// opts.PerThread times, then checks every token. progress may be nil.
func Run(g cuid.IDGenerator, opts Options, progress Progress) Report {
	results := make([][]string, opts.Threads)

	start := time.Now()

	var wg sync.WaitGroup
	for t := 0; t < opts.Threads; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			results[t] = generate(g, opts.PerThread, progress)
		}(t)
	}
	wg.Wait()

	report := Report{
		ID:        xid.New().String(),
		Variant:   opts.Variant.String(),
		Threads:   opts.Threads,
		PerThread: opts.PerThread,
		Duration:  time.Since(start),
	}

	seen := make(map[string]struct{}, opts.Threads*opts.PerThread)
	for _, tokens := range results {
		for _, token := range tokens {
			report.Total++

			if !Validate(token, opts.Variant) {
				report.Malformed++
			}

			if _, dup := seen[token]; dup {
				report.Duplicates++
				continue
			}
			seen[token] = struct{}{}
		}
	}
	report.Unique = len(seen)

	return report
}

func generate(g cuid.IDGenerator, n int, progress Progress) []string {
	tokens := make([]string, 0, n)

	if progress != nil {
		progress.IncrementInProgress(uint64(n))
	}

	pending := uint64(0)
	for i := 0; i < n; i++ {
		tokens = append(tokens, g.Generate())

		pending++
		if progress != nil && pending == progressStep {
			progress.MoveInProgressToFinished(pending)
			pending = 0
		}
	}

	if progress != nil && pending > 0 {
		progress.MoveInProgressToFinished(pending)
	}

	return tokens
}

// Validate reports whether token has the shape of the given variant.
func Validate(token string, v Variant) bool {
	if !basen.IsEncoded(token) {
		return false
	}

	switch v {
	case LongForm:
		return len(token) == cuid.Length && strings.HasPrefix(token, cuid.Prefix)
	case ShortForm:
		return len(token) >= cuid.SlugMinLength && len(token) <= cuid.SlugMaxLength
	default:
		return false
	}
}
