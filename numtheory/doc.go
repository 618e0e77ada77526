// Package numtheory provides the modular arithmetic used by elliptic-curve
// point validation, key derivation and signature verification: primality
// testing, prime search, modular inverse, the Jacobi symbol and square roots
// modulo a prime.
//
// All functions operate on math/big integers, never modify their arguments
// and are safe for concurrent use. None of them run in constant time.
package numtheory
