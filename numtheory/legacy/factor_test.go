package legacy

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drand/numtheory/numtheory"
)

func factors(t *testing.T, n *big.Int) string {
	t.Helper()
	return fmtFactors(Factorization(n))
}

func fmtFactors(fs []Factor) string {
	s := ""
	for i, f := range fs {
		if i > 0 {
			s += " "
		}
		s += f.String()
	}
	return s
}

func TestFactorization(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		n    string
		want string
	}{
		"negative":            {n: "-12", want: ""},
		"zero":                {n: "0", want: ""},
		"one":                 {n: "1", want: ""},
		"two":                 {n: "2", want: "2^1"},
		"smooth":              {n: "360", want: "2^3 3^2 5^1"},
		"table prime":         {n: "1229", want: "1229^1"},
		"prime cofactor":      {n: "1512899", want: "1229^1 1231^1"},
		"square above table":  {n: "1515361", want: "1231^2"},
		"three large primes":  {n: "1945171367", want: "1237^1 1249^1 1259^1"},
		"mixed":               {n: "21800888", want: "2^3 1237^1 2203^1"},
		"mersenne 61":         {n: "2305843009213693951", want: "2305843009213693951^1"},
		"smooth times prime":  {n: "4611686018427387902", want: "2^1 2305843009213693951^1"},
		"large prime squared": {n: "1560001", want: "1249^2"},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			n, ok := new(big.Int).SetString(tt.n, 10)
			require.True(t, ok)
			require.Equal(t, tt.want, factors(t, n))
		})
	}
}

func TestFactorizationRebuildsN(t *testing.T) {
	for n := int64(2); n < 5000; n++ {
		bn := big.NewInt(n)
		prod := big.NewInt(1)
		prev := big.NewInt(1)
		for _, f := range Factorization(bn) {
			require.True(t, numtheory.IsPrime(f.Prime), "n=%d factor %s", n, f)
			require.True(t, f.Prime.Cmp(prev) > 0, "n=%d factors not ascending", n)
			prev = f.Prime
			prod.Mul(prod, new(big.Int).Exp(f.Prime, big.NewInt(int64(f.Exponent)), nil))
		}
		require.Equal(t, 0, prod.Cmp(bn), "n=%d", n)
	}
}

func TestFactorizationDoesNotModifyArgument(t *testing.T) {
	n := big.NewInt(1512899)
	Factorization(n)
	require.Equal(t, int64(1512899), n.Int64())
}
