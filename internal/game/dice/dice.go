// Package dice provides the seeded randomness primitives for the card forge:
// seed normalisation, a forkable deterministic stream, and the generic
// pick/shuffle/weighted-pick helpers every generation stage draws through.
package dice

// Source is the minimal integer randomness provider.
//
// Both the deterministic Stream and the crypto-backed source satisfy it.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
