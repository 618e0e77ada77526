package numtheory

import (
	"fmt"
	"math/big"
)

// Jacobi returns the Jacobi symbol (a/n), one of -1, 0 or 1.
// n must be odd and at least 3, otherwise an ErrDomain error is returned.
func Jacobi(a, n *big.Int) (int, error) {
	if n.Cmp(three) < 0 {
		return 0, fmt.Errorf("%w: jacobi modulus %s must be larger than 2", ErrDomain, n)
	}
	if n.Bit(0) == 0 {
		return 0, fmt.Errorf("%w: jacobi modulus %s must be odd", ErrDomain, n)
	}
	return jacobi(new(big.Int).Mod(a, n), new(big.Int).Set(n)), nil
}

// jacobi expects 0 <= a < n with n odd and at least 3. Both values are
// overwritten.
func jacobi(a, n *big.Int) int {
	s := 1
	a1 := new(big.Int)
	for {
		if a.Sign() == 0 {
			return 0
		}
		if a.Cmp(one) == 0 {
			return s
		}

		e := a.TrailingZeroBits()
		a1.Rsh(a, e)
		if e%2 == 1 {
			if nm8 := n.Bits()[0] & 7; nm8 == 3 || nm8 == 5 {
				s = -s
			}
		}
		if a1.Cmp(one) == 0 {
			return s
		}
		if n.Bits()[0]&3 == 3 && a1.Bits()[0]&3 == 3 {
			s = -s
		}

		// (a/n) -> (n mod a1 / a1)
		a.Mod(n, a1)
		n.Set(a1)
	}
}
