package numtheory

import "math/big"

// InverseMod returns the inverse of a modulo m, in [0, m). It returns 0 when
// a is a multiple of m.
//
// gcd(a, m) must be 1 and m must be positive; this is not checked and the
// result is meaningless otherwise.
func InverseMod(a, m *big.Int) *big.Int {
	low := new(big.Int).Mod(a, m)
	if low.Sign() == 0 {
		return new(big.Int)
	}

	// Extended Euclid keeping only the coefficient of a.
	lm, hm := big.NewInt(1), big.NewInt(0)
	high := new(big.Int).Set(m)
	r, t := new(big.Int), new(big.Int)
	for low.Cmp(one) > 0 {
		r.Quo(high, low)

		t.Mul(lm, r)
		nlm := new(big.Int).Sub(hm, t)
		t.Mul(low, r)
		nlow := new(big.Int).Sub(high, t)

		lm, low, hm, high = nlm, nlow, lm, low
	}
	return lm.Mod(lm, m)
}
