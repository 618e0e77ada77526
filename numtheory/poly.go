package numtheory

import (
	"fmt"
	"math/big"
)

// Poly is a polynomial over GF(p). Coefficient i is the coefficient of x^i,
// lowest degree first.
type Poly []*big.Int

// NewPoly builds a polynomial from small coefficients, lowest degree first.
func NewPoly(coeffs ...int64) Poly {
	p := make(Poly, len(coeffs))
	for i, c := range coeffs {
		p[i] = big.NewInt(c)
	}
	return p
}

// Clone returns a deep copy of p.
func (p Poly) Clone() Poly {
	c := make(Poly, len(p))
	for i, v := range p {
		c[i] = new(big.Int).Set(v)
	}
	return c
}

func (p Poly) String() string {
	return fmt.Sprint([]*big.Int(p))
}

func checkPolyMod(polymod Poly) error {
	if len(polymod) < 2 {
		return fmt.Errorf("%w: modulus polynomial must have degree at least 1", ErrDomain)
	}
	if polymod[len(polymod)-1].Cmp(one) != 0 {
		return fmt.Errorf("%w: modulus polynomial %s is not monic", ErrDomain, polymod)
	}
	return nil
}

// PolyReduceMod reduces poly modulo the monic polynomial polymod, with
// coefficient arithmetic modulo p. poly is left untouched.
func PolyReduceMod(poly, polymod Poly, p *big.Int) (Poly, error) {
	if err := checkPolyMod(polymod); err != nil {
		return nil, err
	}
	return polyReduceMod(poly.Clone(), polymod, p), nil
}

// polyReduceMod reduces poly in place and returns the truncated remainder.
func polyReduceMod(poly, polymod Poly, p *big.Int) Poly {
	t := new(big.Int)
	for len(poly) >= len(polymod) {
		lead := poly[len(poly)-1]
		if lead.Sign() != 0 {
			// cancel the leading term with lead * x^k * polymod
			for i := 2; i <= len(polymod); i++ {
				c := poly[len(poly)-i]
				t.Mul(lead, polymod[len(polymod)-i])
				c.Sub(c, t)
				c.Mod(c, p)
			}
		}
		poly = poly[:len(poly)-1]
	}
	return poly
}

// PolyMulMod returns m1*m2 reduced modulo polymod, with coefficient
// arithmetic modulo p.
func PolyMulMod(m1, m2, polymod Poly, p *big.Int) (Poly, error) {
	if err := checkPolyMod(polymod); err != nil {
		return nil, err
	}
	return polyMulMod(m1, m2, polymod, p), nil
}

func polyMulMod(m1, m2, polymod Poly, p *big.Int) Poly {
	if len(m1) == 0 || len(m2) == 0 {
		return Poly{}
	}
	prod := make(Poly, len(m1)+len(m2)-1)
	for i := range prod {
		prod[i] = new(big.Int)
	}
	t := new(big.Int)
	for i := range m1 {
		for j := range m2 {
			t.Mul(m1[i], m2[j])
			prod[i+j].Add(prod[i+j], t)
			prod[i+j].Mod(prod[i+j], p)
		}
	}
	return polyReduceMod(prod, polymod, p)
}

// PolyExpMod raises base to exponent in GF(p)[x]/(polymod) by square and
// multiply. The exponent must satisfy 0 <= exponent < p; exponent 0 yields
// the constant polynomial 1.
func PolyExpMod(base Poly, exponent *big.Int, polymod Poly, p *big.Int) (Poly, error) {
	if err := checkPolyMod(polymod); err != nil {
		return nil, err
	}
	if exponent.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeExponent, exponent)
	}
	if exponent.Cmp(p) >= 0 {
		return nil, fmt.Errorf("%w: exponent %s, modulus %s", ErrExponentRange, exponent, p)
	}
	return polyExpMod(base, exponent, polymod, p), nil
}

func polyExpMod(base Poly, exponent *big.Int, polymod Poly, p *big.Int) Poly {
	if exponent.Sign() == 0 {
		return NewPoly(1)
	}

	g := base.Clone()
	var s Poly
	if exponent.Bit(0) == 1 {
		s = g
	} else {
		s = NewPoly(1)
	}
	for i := 1; i < exponent.BitLen(); i++ {
		g = polyMulMod(g, g, polymod, p)
		if exponent.Bit(i) == 1 {
			s = polyMulMod(g, s, polymod, p)
		}
	}
	return s
}
