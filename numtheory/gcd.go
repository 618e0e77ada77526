package numtheory

import (
	"fmt"
	"math/big"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
	five  = big.NewInt(5)
)

// GCD returns the greatest common divisor of all its arguments, folding
// left to right. The result is never negative and GCD(0, 0) is 0.
func GCD(xs ...*big.Int) (*big.Int, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: gcd of an empty list", ErrDomain)
	}
	res := new(big.Int).Abs(xs[0])
	for _, x := range xs[1:] {
		res = gcd2(res, x)
	}
	return res, nil
}

// LCM returns the least common multiple of all its arguments, folding left
// to right. The result is never negative; any zero argument yields 0.
func LCM(xs ...*big.Int) (*big.Int, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: lcm of an empty list", ErrDomain)
	}
	res := new(big.Int).Abs(xs[0])
	for _, x := range xs[1:] {
		res = lcm2(res, x)
	}
	return res, nil
}

func gcd2(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, a, b)
}

func lcm2(a, b *big.Int) *big.Int {
	d := gcd2(a, b)
	if d.Sign() == 0 {
		return new(big.Int)
	}
	res := new(big.Int).Mul(a, b)
	res.Abs(res)
	return res.Quo(res, d)
}
