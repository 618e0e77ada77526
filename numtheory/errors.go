package numtheory

import "errors"

// ErrDomain indicates that an argument is outside the domain of the routine,
// e.g. an even modulus passed to Jacobi or an empty GCD argument list.
var ErrDomain = errors.New("argument out of domain")

// ErrNoSquareRoot is returned when asking for the square root of a strict
// quadratic non-residue.
var ErrNoSquareRoot = errors.New("no square root")

// ErrNotPrime is returned when the square root computation detects that the
// modulus it was given is not prime.
var ErrNotPrime = errors.New("modulus is not prime")

// ErrNegativeExponent indicates a negative exponent passed to a modular
// exponentiation routine.
var ErrNegativeExponent = errors.New("negative exponent not allowed")

// ErrExponentRange indicates an exponent not smaller than the field
// characteristic in PolyExpMod.
var ErrExponentRange = errors.New("exponent must be smaller than the modulus")
