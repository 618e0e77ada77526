package legacy

import (
	"fmt"
	"math/big"

	"github.com/drand/numtheory/numtheory"
)

// Factor is a prime power in a factorization.
type Factor struct {
	Prime    *big.Int
	Exponent int
}

func (f Factor) String() string {
	return fmt.Sprintf("%s^%d", f.Prime, f.Exponent)
}

// Factorization decomposes n into prime powers in ascending order of primes.
// It returns nil for n < 2.
//
// Trial division by the small prime table is followed by a primality test
// of the cofactor and, if that fails, by a search through odd divisors, which
// is exponential in the size of n.
//
// Deprecated: unused by the signature code.
func Factorization(n *big.Int) []Factor {
	if n.Cmp(two) < 0 {
		return nil
	}
	n = new(big.Int).Set(n)

	var res []Factor
	d := new(big.Int)
	for _, sp := range numtheory.SmallPrimes() {
		d.SetInt64(sp)
		if d.Cmp(n) > 0 {
			break
		}
		if count := divideOut(n, d); count > 0 {
			res = append(res, Factor{Prime: big.NewInt(sp), Exponent: count})
		}
	}

	if n.Cmp(big.NewInt(numtheory.SmallPrimeLimit)) <= 0 {
		return res
	}
	if numtheory.IsPrime(n) {
		return append(res, Factor{Prime: n, Exponent: 1})
	}

	q, r := new(big.Int), new(big.Int)
	d.SetInt64(numtheory.SmallPrimeLimit)
	for {
		d.Add(d, two)
		q.QuoRem(n, d, r)
		// d^2 > n: what is left is 1 or a prime
		if q.Cmp(d) < 0 {
			break
		}
		if r.Sign() == 0 {
			count := divideOut(n, d)
			res = append(res, Factor{Prime: new(big.Int).Set(d), Exponent: count})
		}
	}
	if n.Cmp(one) > 0 {
		res = append(res, Factor{Prime: n, Exponent: 1})
	}
	return res
}

// divideOut divides n by d as many times as possible and returns how many
// times it did.
func divideOut(n, d *big.Int) int {
	q, r := new(big.Int), new(big.Int)
	count := 0
	for {
		q.QuoRem(n, d, r)
		if r.Sign() != 0 {
			return count
		}
		n.Set(q)
		count++
	}
}
