package numtheory

import (
	"fmt"
	"math/big"
)

// SquareRootModPrime returns r in [0, p) with r^2 = a (mod p).
//
// p must be prime; this is not verified, although some composite moduli are
// detected and reported with ErrNotPrime. a must satisfy 0 <= a < p.
// ErrNoSquareRoot is returned when a is a quadratic non-residue modulo p.
//
// Based on the Handbook of Applied Cryptography, algorithms 3.34 to 3.39.
func SquareRootModPrime(a, p *big.Int) (*big.Int, error) {
	if p.Cmp(one) <= 0 {
		return nil, fmt.Errorf("%w: modulus %s must be larger than 1", ErrDomain, p)
	}
	if a.Sign() < 0 || a.Cmp(p) >= 0 {
		return nil, fmt.Errorf("%w: %s is not in [0, %s)", ErrDomain, a, p)
	}

	if a.Sign() == 0 {
		return new(big.Int), nil
	}
	if p.Cmp(two) == 0 {
		return new(big.Int).Set(a), nil
	}

	jac, err := Jacobi(a, p)
	if err != nil {
		return nil, err
	}
	if jac == -1 {
		return nil, fmt.Errorf("%w: %s has no square root modulo %s", ErrNoSquareRoot, a, p)
	}

	switch {
	case p.Bits()[0]&3 == 3:
		return sqrtThreeModFour(a, p), nil
	case p.Bits()[0]&7 == 5:
		return sqrtFiveModEight(a, p)
	default:
		return sqrtExtensionField(a, p)
	}
}

// sqrtThreeModFour handles p = 3 (mod 4): r = a^((p+1)/4).
func sqrtThreeModFour(a, p *big.Int) *big.Int {
	e := new(big.Int).Add(p, one)
	e.Rsh(e, 2)
	return e.Exp(a, e, p)
}

// sqrtFiveModEight handles p = 5 (mod 8) with Atkin's formulas.
func sqrtFiveModEight(a, p *big.Int) (*big.Int, error) {
	e := new(big.Int).Sub(p, one)
	e.Rsh(e, 2)
	d := new(big.Int).Exp(a, e, p)

	if d.Cmp(one) == 0 {
		e.Add(p, three)
		e.Rsh(e, 3)
		return e.Exp(a, e, p), nil
	}

	pm1 := new(big.Int).Sub(p, one)
	if d.Cmp(pm1) != 0 {
		return nil, fmt.Errorf("%w: a^((p-1)/4) = %s modulo %s", ErrNotPrime, d, p)
	}

	// r = 2a * (4a)^((p-5)/8)
	e.Sub(p, five)
	e.Rsh(e, 3)
	r := new(big.Int).Mul(four, a)
	r.Exp(r, e, p)
	r.Mul(r, a)
	r.Mul(r, two)
	return r.Mod(r, p), nil
}

// sqrtExtensionField handles p = 1 (mod 8). It picks the first b >= 2 for
// which b^2 - 4a is a non-residue, so that f(x) = x^2 - bx + a is
// irreducible, and computes x^((p+1)/2) in GF(p)[x]/(f).
//
// At least half of all b qualify when p is prime, so the search ends early;
// running out of candidates below p means p is composite.
func sqrtExtensionField(a, p *big.Int) (*big.Int, error) {
	fourA := new(big.Int).Mul(four, a)
	e := new(big.Int).Add(p, one)
	e.Rsh(e, 1)
	x := NewPoly(0, 1)

	d := new(big.Int)
	for b := big.NewInt(2); b.Cmp(p) < 0; b.Add(b, one) {
		d.Mul(b, b)
		d.Sub(d, fourA)
		jac, err := Jacobi(d, p)
		if err != nil {
			return nil, err
		}
		if jac != -1 {
			continue
		}

		f := Poly{new(big.Int).Set(a), new(big.Int).Neg(b), big.NewInt(1)}
		ff := polyExpMod(x, e, f, p)
		if len(ff) > 1 && ff[1].Sign() != 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotPrime, p)
		}
		if len(ff) == 0 {
			return new(big.Int), nil
		}
		return new(big.Int).Mod(ff[0], p), nil
	}
	return nil, fmt.Errorf("%w: no quadratic non-residue of the form b^2-4a modulo %s", ErrNotPrime, p)
}
