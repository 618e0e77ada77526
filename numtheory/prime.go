package numtheory

import "math/big"

// smallPrimes holds every prime up to SmallPrimeLimit, in ascending order.
// They serve both as trial divisors and as Miller-Rabin witnesses.
var smallPrimes = [...]int64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151, 157, 163, 167, 173,
	179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233, 239, 241, 251, 257, 263, 269, 271, 277, 281,
	283, 293, 307, 311, 313, 317, 331, 337, 347, 349, 353, 359, 367, 373, 379, 383, 389, 397, 401, 409,
	419, 421, 431, 433, 439, 443, 449, 457, 461, 463, 467, 479, 487, 491, 499, 503, 509, 521, 523, 541,
	547, 557, 563, 569, 571, 577, 587, 593, 599, 601, 607, 613, 617, 619, 631, 641, 643, 647, 653, 659,
	661, 673, 677, 683, 691, 701, 709, 719, 727, 733, 739, 743, 751, 757, 761, 769, 773, 787, 797, 809,
	811, 821, 823, 827, 829, 839, 853, 857, 859, 863, 877, 881, 883, 887, 907, 911, 919, 929, 937, 941,
	947, 953, 967, 971, 977, 983, 991, 997, 1009, 1013, 1019, 1021, 1031, 1033, 1039, 1049, 1051, 1061, 1063, 1069,
	1087, 1091, 1093, 1097, 1103, 1109, 1117, 1123, 1129, 1151, 1153, 1163, 1171, 1181, 1187, 1193, 1201, 1213, 1217, 1223,
	1229,
}

// SmallPrimeLimit is the largest entry of the small prime table. Primality
// of any n <= SmallPrimeLimit is decided by table lookup.
const SmallPrimeLimit = 1229

var (
	smallPrimeSet = func() map[int64]struct{} {
		m := make(map[int64]struct{}, len(smallPrimes))
		for _, p := range smallPrimes {
			m[p] = struct{}{}
		}
		return m
	}()
	smallPrimeLimit = big.NewInt(SmallPrimeLimit)

	// 2310 = 2 * 3 * 5 * 7 * 11
	primorial11 = big.NewInt(2310)
)

// SmallPrimes returns a copy of the small prime table.
func SmallPrimes() []int64 {
	res := make([]int64, len(smallPrimes))
	copy(res, smallPrimes[:])
	return res
}

// millerRabinRounds maps a bit length threshold to the number of witnesses
// needed to keep the false positive probability below 2^-80, from Menezes et
// al., Handbook of Applied Cryptography, table 4.4.
var millerRabinRounds = []struct {
	bits   int
	rounds int
}{
	{100, 27},
	{150, 18},
	{200, 15},
	{250, 12},
	{300, 9},
	{350, 8},
	{400, 7},
	{450, 6},
	{550, 5},
	{650, 4},
	{850, 3},
	{1300, 2},
}

const defaultMillerRabinRounds = 40

// witnessCount returns the number of Miller-Rabin rounds to run for n.
func witnessCount(n *big.Int) int {
	t := defaultMillerRabinRounds
	nBits := 1 + n.BitLen()
	for _, r := range millerRabinRounds {
		if nBits < r.bits {
			break
		}
		t = r.rounds
	}
	return t
}

// PrimalityResult is the outcome of TestPrimality.
type PrimalityResult struct {
	// Prime is the primality verdict.
	Prime bool
	// WitnessRounds is the 1-based index of the Miller-Rabin witness that
	// proved n composite. It is 0 when n was reported prime or when the
	// verdict came from the table lookup or the small factor screening.
	WitnessRounds int
}

// IsPrime reports whether n is prime. The answer is exact for
// n <= SmallPrimeLimit and probabilistic above it, with a false positive
// probability below 2^-80.
func IsPrime(n *big.Int) bool {
	return TestPrimality(n).Prime
}

// TestPrimality runs the Miller-Rabin test as given in Menezes et al.,
// p. 138, using the first small primes as witnesses, and reports how many
// witnesses were needed to reject n.
func TestPrimality(n *big.Int) PrimalityResult {
	if n.Cmp(smallPrimeLimit) <= 0 {
		if !n.IsInt64() {
			return PrimalityResult{}
		}
		_, ok := smallPrimeSet[n.Int64()]
		return PrimalityResult{Prime: ok}
	}
	if gcd2(n, primorial11).Cmp(one) != 0 {
		return PrimalityResult{}
	}

	t := witnessCount(n)

	// n - 1 = 2^s * r with r odd
	nm1 := new(big.Int).Sub(n, one)
	s := nm1.TrailingZeroBits()
	r := new(big.Int).Rsh(nm1, s)

	a, y := new(big.Int), new(big.Int)
	for i := 0; i < t; i++ {
		a.SetInt64(smallPrimes[i])
		y.Exp(a, r, n)
		if y.Cmp(one) == 0 || y.Cmp(nm1) == 0 {
			continue
		}
		for j := uint(1); j < s && y.Cmp(nm1) != 0; j++ {
			y.Exp(y, two, n)
			if y.Cmp(one) == 0 {
				return PrimalityResult{WitnessRounds: i + 1}
			}
		}
		if y.Cmp(nm1) != 0 {
			return PrimalityResult{WitnessRounds: i + 1}
		}
	}
	return PrimalityResult{Prime: true}
}

// NextPrime returns the smallest prime strictly greater than x.
func NextPrime(x *big.Int) *big.Int {
	if x.Cmp(two) < 0 {
		return big.NewInt(2)
	}
	res := new(big.Int).Add(x, one)
	res.Or(res, one)
	for !IsPrime(res) {
		res.Add(res, two)
	}
	return res
}
