package ntool

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v2"

	"github.com/drand/numtheory/common/log"
	"github.com/drand/numtheory/internal/config"
	"github.com/drand/numtheory/internal/metrics"
	"github.com/drand/numtheory/internal/metrics/pprof"
	"github.com/drand/numtheory/internal/sweep"
)

const refreshRate = 500 * time.Millisecond

// sweepConfig loads the configuration file, if any, and applies the flags
// set on the command line on top of it.
func sweepConfig(c *cli.Context) (*config.Sweep, error) {
	cfg := config.Default()
	if c.IsSet(configFlag.Name) {
		var err error
		if cfg, err = config.Load(c.String(configFlag.Name)); err != nil {
			return nil, err
		}
	}
	if c.IsSet(maxPrimeFlag.Name) {
		cfg.MaxPrime = c.Int64(maxPrimeFlag.Name)
	}
	if c.IsSet(workersFlag.Name) {
		cfg.Workers = c.Int(workersFlag.Name)
	}
	if c.IsSet(samplesFlag.Name) {
		cfg.CompositeSamples = c.Int(samplesFlag.Name)
	}
	if c.IsSet(bitsFlag.Name) {
		cfg.CompositeBits = c.Int(bitsFlag.Name)
	}
	return cfg, cfg.Validate()
}

func sweepCmd(c *cli.Context, l log.Logger) error {
	cfg, err := sweepConfig(c)
	if err != nil {
		return err
	}

	if c.IsSet(metricsFlag.Name) {
		if lis := metrics.Start(l, c.String(metricsFlag.Name), pprof.WithProfile()); lis != nil {
			defer lis.Close()
		}
	}

	s, err := sweep.New(cfg)
	if err != nil {
		return err
	}

	if c.Bool(progressFlag.Name) {
		spin := spinner.New(spinner.CharSets[9], refreshRate, spinner.WithWriter(c.App.ErrWriter))
		spin.PreUpdate = func(sp *spinner.Spinner) {
			done, total := s.Progress()
			if total == 0 {
				sp.Suffix = "  preparing sweep"
				return
			}
			sp.Suffix = fmt.Sprintf("  checked square roots modulo %d of %d primes\t--> %.3f %%",
				done, total, 100*float64(done)/float64(total))
		}
		spin.Start()
		defer spin.Stop()
	}

	report, err := s.Run(log.ToContext(c.Context, l))
	if report == nil {
		return fmt.Errorf("sweep interrupted: %w", err)
	}
	if perr := printResult(c, report, fmt.Sprintf("sweep %s: %d primes up to %d, %d square roots, %d primality checks, %d composites (max %d witnesses) in %s",
		report.RunID, report.Primes, report.MaxPrime, report.SquareRootChecks, report.PrimalityChecks,
		report.CompositeSamples, report.MaxWitnessRounds, report.Elapsed)); perr != nil {
		return perr
	}
	if err != nil {
		return fmt.Errorf("sweep %s failed: %w", report.RunID, err)
	}
	return nil
}
