// Package legacy keeps number theory helpers that the signature code no
// longer uses: factorization, Euler's totient, the Carmichael function and
// multiplicative orders.
//
// They are kept for backward compatibility only. They are not optimised and
// some of them take time linear in their modulus.
package legacy

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/drand/numtheory/numtheory"
)

// ErrNotCoprime is returned by OrderMod when x is not invertible modulo m.
var ErrNotCoprime = errors.New("arguments are not coprime")

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// ModularExp returns base^exponent mod modulus.
//
// Deprecated: use big.Int.Exp.
func ModularExp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if exponent.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", numtheory.ErrNegativeExponent, exponent)
	}
	if modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus %s must be positive", numtheory.ErrDomain, modulus)
	}
	return new(big.Int).Exp(base, exponent, modulus), nil
}

// Phi returns Euler's totient of n. Phi returns 1 for every n < 3.
//
// Deprecated: unused by the signature code.
func Phi(n *big.Int) *big.Int {
	res := big.NewInt(1)
	if n.Cmp(big.NewInt(3)) < 0 {
		return res
	}
	t := new(big.Int)
	for _, f := range Factorization(n) {
		// p^(e-1) * (p-1)
		t.Exp(f.Prime, big.NewInt(int64(f.Exponent-1)), nil)
		res.Mul(res, t)
		t.Sub(f.Prime, one)
		res.Mul(res, t)
	}
	return res
}

// Carmichael returns the Carmichael function of n: the smallest x such that
// m^x = 1 (mod n) for every m coprime to n.
//
// Deprecated: unused by the signature code.
func Carmichael(n *big.Int) *big.Int {
	return CarmichaelOfFactorized(Factorization(n))
}

// CarmichaelOfFactorized returns the Carmichael function of the number whose
// factorization is fs.
//
// Deprecated: unused by the signature code.
func CarmichaelOfFactorized(fs []Factor) *big.Int {
	if len(fs) == 0 {
		return big.NewInt(1)
	}
	parts := make([]*big.Int, len(fs))
	for i, f := range fs {
		parts[i] = CarmichaelOfPPower(f)
	}
	res, err := numtheory.LCM(parts...)
	if err != nil {
		// parts is never empty
		panic(err)
	}
	return res
}

// CarmichaelOfPPower returns the Carmichael function of f.Prime^f.Exponent.
//
// Deprecated: unused by the signature code.
func CarmichaelOfPPower(f Factor) *big.Int {
	if f.Prime.Cmp(two) == 0 && f.Exponent > 2 {
		return new(big.Int).Lsh(one, uint(f.Exponent-2))
	}
	res := new(big.Int).Exp(f.Prime, big.NewInt(int64(f.Exponent-1)), nil)
	return res.Mul(res, new(big.Int).Sub(f.Prime, one))
}

// OrderMod returns the order of x in the multiplicative group modulo m, or 0
// when m <= 1. x and m must be coprime.
//
// The order is found by repeated multiplication, which takes time linear in
// m.
//
// Deprecated: unused by the signature code.
func OrderMod(x, m *big.Int) (*big.Int, error) {
	if m.Cmp(one) <= 0 {
		return new(big.Int), nil
	}
	if g, _ := numtheory.GCD(x, m); g.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd(%s, %s) = %s", ErrNotCoprime, x, m, g)
	}

	xm := new(big.Int).Mod(x, m)
	z := new(big.Int).Set(xm)
	res := big.NewInt(1)
	for z.Cmp(one) != 0 {
		z.Mul(z, xm)
		z.Mod(z, m)
		res.Add(res, one)
	}
	return res, nil
}

// LargestFactorRelativelyPrime returns the largest divisor of a that is
// coprime to b. a must be positive.
//
// Deprecated: unused by the signature code.
func LargestFactorRelativelyPrime(a, b *big.Int) (*big.Int, error) {
	if a.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive", numtheory.ErrDomain, a)
	}
	a = new(big.Int).Set(a)
	b = new(big.Int).Set(b)
	q, r := new(big.Int), new(big.Int)
	for {
		d, _ := numtheory.GCD(a, b)
		if d.Cmp(one) <= 0 {
			return a, nil
		}
		b.Set(d)
		for {
			q.QuoRem(a, d, r)
			if r.Sign() != 0 {
				break
			}
			a.Set(q)
		}
	}
}

// KindaOrderMod returns the order of x in the multiplicative group modulo m',
// where m' is the largest divisor of m coprime to x. m must be positive.
//
// Deprecated: unused by the signature code.
func KindaOrderMod(x, m *big.Int) (*big.Int, error) {
	mm, err := LargestFactorRelativelyPrime(m, x)
	if err != nil {
		return nil, err
	}
	return OrderMod(x, mm)
}
