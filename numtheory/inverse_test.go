package numtheory

import (
	"math/big"
	"testing"

	"github.com/drand/kyber/util/random"
	"github.com/stretchr/testify/require"
)

func TestInverseMod(t *testing.T) {
	require.Equal(t, int64(4), InverseMod(big.NewInt(3), big.NewInt(11)).Int64())
	require.Equal(t, int64(1), InverseMod(big.NewInt(1), big.NewInt(11)).Int64())
	require.Equal(t, int64(10), InverseMod(big.NewInt(-1), big.NewInt(11)).Int64())
	require.Equal(t, int64(4), InverseMod(big.NewInt(14), big.NewInt(11)).Int64())
}

func TestInverseModOfZero(t *testing.T) {
	require.Equal(t, 0, InverseMod(big.NewInt(0), big.NewInt(11)).Sign())
	require.Equal(t, 0, InverseMod(big.NewInt(22), big.NewInt(11)).Sign())
}

func TestInverseModSmallModuli(t *testing.T) {
	for m := int64(2); m < 300; m++ {
		bm := big.NewInt(m)
		for a := int64(1); a < m; a++ {
			ba := big.NewInt(a)
			if gcd2(ba, bm).Cmp(one) != 0 {
				continue
			}
			inv := InverseMod(ba, bm)
			require.True(t, inv.Sign() >= 0 && inv.Cmp(bm) < 0)
			prod := new(big.Int).Mul(ba, inv)
			require.Equal(t, int64(1), prod.Mod(prod, bm).Int64(), "a=%d m=%d", a, m)
		}
	}
}

func TestInverseModMatchesModInverse(t *testing.T) {
	// secp256k1 group order
	n, ok := new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	require.True(t, ok)
	stream := random.New()
	for i := 0; i < 100; i++ {
		a := random.Int(n, stream)
		require.Equal(t, 0, new(big.Int).ModInverse(a, n).Cmp(InverseMod(a, n)), "a=%s", a)
	}
}
