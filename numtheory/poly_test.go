package numtheory

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func requirePolyEqual(t *testing.T, want, got Poly) {
	t.Helper()
	require.Len(t, got, len(want), "got %s, want %s", got, want)
	for i := range want {
		require.Equal(t, 0, want[i].Cmp(got[i]), "coefficient %d: got %s, want %s", i, got, want)
	}
}

func TestPolyReduceMod(t *testing.T) {
	p := big.NewInt(7)
	xSquare := NewPoly(0, 0, 1)

	got, err := PolyReduceMod(xSquare, NewPoly(1, 0, 1), p)
	require.NoError(t, err)
	requirePolyEqual(t, NewPoly(6, 0), got)
	// input left untouched
	requirePolyEqual(t, NewPoly(0, 0, 1), xSquare)

	got, err = PolyReduceMod(NewPoly(3, 4), NewPoly(1, 0, 1), p)
	require.NoError(t, err)
	requirePolyEqual(t, NewPoly(3, 4), got)

	// x^3 + 2x^2 + 3x + 4 mod (x - 1) = 10 = 3 mod 7
	got, err = PolyReduceMod(NewPoly(4, 3, 2, 1), NewPoly(-1, 1), p)
	require.NoError(t, err)
	requirePolyEqual(t, NewPoly(3), got)
}

func TestPolyModulusChecks(t *testing.T) {
	p := big.NewInt(7)
	_, err := PolyReduceMod(NewPoly(1, 1, 1), NewPoly(1, 0, 2), p)
	require.ErrorIs(t, err, ErrDomain)
	_, err = PolyReduceMod(NewPoly(1, 1, 1), NewPoly(1), p)
	require.ErrorIs(t, err, ErrDomain)
	_, err = PolyMulMod(NewPoly(1), NewPoly(1), Poly{}, p)
	require.ErrorIs(t, err, ErrDomain)
	_, err = PolyExpMod(NewPoly(0, 1), big.NewInt(2), NewPoly(1, 0, 3), p)
	require.ErrorIs(t, err, ErrDomain)
}

func TestPolyMulMod(t *testing.T) {
	p := big.NewInt(7)
	got, err := PolyMulMod(NewPoly(1, 1), NewPoly(1, 1), NewPoly(1, 0, 1), p)
	require.NoError(t, err)
	requirePolyEqual(t, NewPoly(0, 2), got)

	got, err = PolyMulMod(NewPoly(3), NewPoly(5), NewPoly(1, 0, 1), p)
	require.NoError(t, err)
	requirePolyEqual(t, NewPoly(1), got)
}

func TestPolyExpMod(t *testing.T) {
	p := big.NewInt(7)
	polymod := NewPoly(1, 0, 1)

	got, err := PolyExpMod(NewPoly(0, 1), big.NewInt(4), polymod, p)
	require.NoError(t, err)
	requirePolyEqual(t, NewPoly(1, 0), got)

	got, err = PolyExpMod(NewPoly(0, 1), big.NewInt(0), polymod, p)
	require.NoError(t, err)
	requirePolyEqual(t, NewPoly(1), got)

	_, err = PolyExpMod(NewPoly(0, 1), big.NewInt(7), polymod, p)
	require.ErrorIs(t, err, ErrExponentRange)
	_, err = PolyExpMod(NewPoly(0, 1), big.NewInt(-1), polymod, p)
	require.ErrorIs(t, err, ErrNegativeExponent)
}

func TestPolyExpModMatchesRepeatedMultiplication(t *testing.T) {
	p := big.NewInt(1009)
	polymod := NewPoly(5, 1000, 3, 1)
	base := NewPoly(2, 7, 11)

	acc := NewPoly(1)
	for e := int64(0); e < 200; e++ {
		got, err := PolyExpMod(base, big.NewInt(e), polymod, p)
		require.NoError(t, err)
		// exponent 0 and 1 come back unreduced, normalise both sides
		want, err := PolyReduceMod(acc, polymod, p)
		require.NoError(t, err)
		gotPadded := normalize(got, p)
		require.Equal(t, normalize(want, p).String(), gotPadded.String(), "exponent %d", e)

		acc, err = PolyMulMod(acc, base, polymod, p)
		require.NoError(t, err)
	}
}

// normalize reduces every coefficient and drops leading zeros.
func normalize(poly Poly, p *big.Int) Poly {
	res := make(Poly, 0, len(poly))
	for _, c := range poly {
		res = append(res, new(big.Int).Mod(c, p))
	}
	for len(res) > 0 && res[len(res)-1].Sign() == 0 {
		res = res[:len(res)-1]
	}
	return res
}
