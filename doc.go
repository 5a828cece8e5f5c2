// Package cuid generates short, collision-resistant identifiers that sort
// roughly by creation time.
//
// # Format
//
// A Generator produces 25-character tokens:
//
//	c loyw3v28 0000 0cab 9000r000
//	| |        |    |    |
//	| |        |    |    random, two 4-character samples
//	| |        |    fingerprint of the issuing process
//	| |        counter, wraps at 36^4
//	| milliseconds since the Unix epoch
//	literal prefix
//
// A SlugGenerator produces 7 to 10 character tokens made of the two
// low-order timestamp digits, the unpadded counter, a 2-character
// fingerprint, and two random digits. Slugs are meant to tell things apart,
// not to be hard to guess.
//
// All blocks use the lowercase base-36 alphabet. Blocks that overflow their
// width keep only their rightmost digits. The 8-character timestamp block
// overflows in 2059.
//
// # Concurrency
//
// Generators are safe for concurrent use. The counter is advanced with a
// lock-free compare-and-swap loop and the fingerprint never changes after
// Build. Each generator owns its own counter; two generators never interact.
//
// Uniqueness is statistical. Nothing checks a token against earlier ones.
//
// # Usage
//
//	g := cuid.New()
//	id := g.Generate()
//
//	slugs := cuid.MakeBuilder().
//		WithFingerprint("ab").
//		BuildSlug()
//	tag := slugs.Generate()
package cuid
