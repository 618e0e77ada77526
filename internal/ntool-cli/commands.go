package ntool

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/drand/numtheory/numtheory"
	"github.com/drand/numtheory/numtheory/legacy"
)

// factorWarnBits is the size above which factor warns that it may take very
// long.
const factorWarnBits = 96

// Result is the JSON form of a single integer result. Hex holds the big
// endian bytes of the absolute value.
type Result struct {
	Value string `json:"value"`
	Hex   []byte `json:"hex"`
}

func newResult(v *big.Int) *Result {
	return &Result{Value: v.String(), Hex: v.Bytes()}
}

// PrimalityPacket is the JSON form of is-prime.
type PrimalityPacket struct {
	N             string `json:"n"`
	Prime         bool   `json:"prime"`
	WitnessRounds int    `json:"witness_rounds"`
}

// JacobiPacket is the JSON form of jacobi.
type JacobiPacket struct {
	A      string `json:"a"`
	N      string `json:"n"`
	Symbol int    `json:"symbol"`
}

// FactorPacket is the JSON form of one prime power of factor.
type FactorPacket struct {
	Prime    string `json:"prime"`
	Exponent int    `json:"exponent"`
}

func isPrimeCmd(c *cli.Context) error {
	args, err := intArgs(c, 1)
	if err != nil {
		return err
	}
	l := newLogger(c).Named("isPrimeCmd")
	res := numtheory.TestPrimality(args[0])
	l.Debugw("primality tested", "n", args[0], "prime", res.Prime, "rounds", res.WitnessRounds)
	return printResult(c, &PrimalityPacket{
		N:             args[0].String(),
		Prime:         res.Prime,
		WitnessRounds: res.WitnessRounds,
	}, fmt.Sprintf("%v", res.Prime))
}

func nextPrimeCmd(c *cli.Context) error {
	args, err := intArgs(c, 1)
	if err != nil {
		return err
	}
	p := numtheory.NextPrime(args[0])
	return printResult(c, newResult(p), p.String())
}

func inverseCmd(c *cli.Context) error {
	args, err := intArgs(c, 2)
	if err != nil {
		return err
	}
	a, m := args[0], args[1]
	if m.Cmp(big.NewInt(2)) < 0 {
		return fmt.Errorf("inverse: modulus must be at least 2: %w", numtheory.ErrDomain)
	}
	// InverseMod is only meaningful for coprime inputs
	g, err := numtheory.GCD(a, m)
	if err != nil {
		return err
	}
	if g.Cmp(big.NewInt(1)) != 0 {
		return fmt.Errorf("inverse: %s is not invertible modulo %s (gcd %s): %w", a, m, g, numtheory.ErrDomain)
	}
	inv := numtheory.InverseMod(a, m)
	return printResult(c, newResult(inv), inv.String())
}

func jacobiCmd(c *cli.Context) error {
	args, err := intArgs(c, 2)
	if err != nil {
		return err
	}
	sym, err := numtheory.Jacobi(args[0], args[1])
	if err != nil {
		return fmt.Errorf("jacobi: %w", err)
	}
	return printResult(c, &JacobiPacket{
		A:      args[0].String(),
		N:      args[1].String(),
		Symbol: sym,
	}, fmt.Sprintf("%d", sym))
}

func sqrtCmd(c *cli.Context) error {
	args, err := intArgs(c, 2)
	if err != nil {
		return err
	}
	l := newLogger(c).Named("sqrtCmd")
	r, err := numtheory.SquareRootModPrime(args[0], args[1])
	switch {
	case errors.Is(err, numtheory.ErrNotPrime):
		l.Warnw("modulus is not prime", "p", args[1])
		return fmt.Errorf("sqrt: %w", err)
	case err != nil:
		return fmt.Errorf("sqrt: %w", err)
	}
	return printResult(c, newResult(r), r.String())
}

func gcdCmd(c *cli.Context) error {
	args, err := intArgs(c, 0)
	if err != nil {
		return err
	}
	g, err := numtheory.GCD(args...)
	if err != nil {
		return fmt.Errorf("gcd: %w", err)
	}
	return printResult(c, newResult(g), g.String())
}

func lcmCmd(c *cli.Context) error {
	args, err := intArgs(c, 0)
	if err != nil {
		return err
	}
	m, err := numtheory.LCM(args...)
	if err != nil {
		return fmt.Errorf("lcm: %w", err)
	}
	return printResult(c, newResult(m), m.String())
}

func factorCmd(c *cli.Context) error {
	args, err := intArgs(c, 1)
	if err != nil {
		return err
	}
	n := args[0]
	l := newLogger(c).Named("factorCmd")
	if n.BitLen() > factorWarnBits {
		l.Warnw("factoring a large integer, this may not terminate in reasonable time", "bits", n.BitLen())
	}

	//nolint:staticcheck // the legacy factorization is what this command exposes
	factors := legacy.Factorization(n)
	packets := make([]FactorPacket, 0, len(factors))
	parts := make([]string, 0, len(factors))
	for _, f := range factors {
		packets = append(packets, FactorPacket{Prime: f.Prime.String(), Exponent: f.Exponent})
		parts = append(parts, f.String())
	}
	return printResult(c, packets, strings.Join(parts, " * "))
}
