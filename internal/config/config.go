// Package config holds the configuration of verification sweeps, read from
// a TOML file and overridable from the command line.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/drand/numtheory/numtheory"
)

const (
	// DefaultMaxPrime covers every prime of the small prime table.
	DefaultMaxPrime         = numtheory.SmallPrimeLimit
	DefaultCompositeSamples = 2000
	DefaultCompositeBits    = 64

	// MaxPrimeLimit bounds the exhaustive square root check, whose cost
	// grows with the square of MaxPrime.
	MaxPrimeLimit    = 100_000
	MinCompositeBits = 8
	MaxCompositeBits = 4096
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid sweep configuration")

// Sweep configures a verification sweep.
type Sweep struct {
	// MaxPrime is the largest modulus of the exhaustive square root check.
	MaxPrime int64 `toml:"max_prime"`
	// Workers is the number of primes checked concurrently.
	Workers int `toml:"workers"`
	// CompositeSamples is the number of random odd integers fed to the
	// primality test.
	CompositeSamples int `toml:"composite_samples"`
	// CompositeBits is the bit length of the sampled integers.
	CompositeBits int `toml:"composite_bits"`
}

// Default returns the default sweep configuration.
func Default() *Sweep {
	return &Sweep{
		MaxPrime:         DefaultMaxPrime,
		Workers:          runtime.NumCPU(),
		CompositeSamples: DefaultCompositeSamples,
		CompositeBits:    DefaultCompositeBits,
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are an error.
func Load(path string) (*Sweep, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("reading sweep config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return c, c.Validate()
}

// Validate checks that every field is within range.
func (s *Sweep) Validate() error {
	switch {
	case s.MaxPrime < 3 || s.MaxPrime > MaxPrimeLimit:
		return fmt.Errorf("%w: max_prime %d not in [3, %d]", ErrInvalidConfig, s.MaxPrime, MaxPrimeLimit)
	case s.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, s.Workers)
	case s.CompositeSamples < 0:
		return fmt.Errorf("%w: composite_samples must not be negative, got %d", ErrInvalidConfig, s.CompositeSamples)
	case s.CompositeBits < MinCompositeBits || s.CompositeBits > MaxCompositeBits:
		return fmt.Errorf("%w: composite_bits %d not in [%d, %d]",
			ErrInvalidConfig, s.CompositeBits, MinCompositeBits, MaxCompositeBits)
	}
	return nil
}
