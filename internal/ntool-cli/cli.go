// Package ntool is the command line front end of the numtheory module. It
// exposes the primality, inverse, Jacobi and square root routines, the
// legacy factorization, and the verification sweep.
package ntool

import (
	"fmt"
	"io"
	"math/big"
	"sync"

	json "github.com/nikkolasg/hexjson"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/drand/numtheory/common"
	"github.com/drand/numtheory/common/log"
)

var setVersionPrinter sync.Once

var verboseFlag = &cli.BoolFlag{
	Name:    "verbose",
	Usage:   "If set, verbosity is at the debug level",
	EnvVars: []string{"NUMTHEORY_VERBOSE"},
}

var jsonFlag = &cli.BoolFlag{
	Name:  "json",
	Usage: "Print results, and logs, as JSON.",
}

var configFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "TOML file holding the sweep configuration. Flags given on the command line take precedence.",
	EnvVars: []string{"NUMTHEORY_SWEEP_CONFIG"},
}

var maxPrimeFlag = &cli.Int64Flag{
	Name:  "max-prime",
	Usage: "Check every square root modulo every prime up to this bound.",
}

var workersFlag = &cli.IntFlag{
	Name:  "workers",
	Usage: "Number of primes checked concurrently.",
}

var samplesFlag = &cli.IntFlag{
	Name:  "samples",
	Usage: "Number of random odd integers fed to the primality test.",
}

var bitsFlag = &cli.IntFlag{
	Name:  "bits",
	Usage: "Bit length of the random odd integers.",
}

var progressFlag = &cli.BoolFlag{
	Name:  "progress",
	Usage: "Show a progress spinner while the sweep runs.",
}

var metricsFlag = &cli.StringFlag{
	Name:    "metrics",
	Usage:   "Launch a metrics and profiling server at the specified (host:)port while the sweep runs.",
	EnvVars: []string{"NUMTHEORY_METRICS"},
}

var appCommands = []*cli.Command{
	{
		Name:      "is-prime",
		Usage:     "Test N for primality.",
		ArgsUsage: "N",
		Action:    isPrimeCmd,
	},
	{
		Name:      "next-prime",
		Usage:     "Print the smallest prime larger than N.",
		ArgsUsage: "N",
		Action:    nextPrimeCmd,
	},
	{
		Name:      "inverse",
		Usage:     "Print the inverse of A modulo M.",
		ArgsUsage: "A M",
		Action:    inverseCmd,
	},
	{
		Name:      "jacobi",
		Usage:     "Print the Jacobi symbol (A/N) for an odd N > 2.",
		ArgsUsage: "A N",
		Action:    jacobiCmd,
	},
	{
		Name:      "sqrt",
		Usage:     "Print a square root of A modulo the prime P.",
		ArgsUsage: "A P",
		Action:    sqrtCmd,
	},
	{
		Name:      "gcd",
		Usage:     "Print the greatest common divisor of all arguments.",
		ArgsUsage: "X [X...]",
		Action:    gcdCmd,
	},
	{
		Name:      "lcm",
		Usage:     "Print the least common multiple of all arguments.",
		ArgsUsage: "X [X...]",
		Action:    lcmCmd,
	},
	{
		Name:      "factor",
		Usage:     "Factor N into prime powers. Slow when N has two or more large prime factors.",
		ArgsUsage: "N",
		Action:    factorCmd,
	},
	{
		Name:  "sweep",
		Usage: "Run the exhaustive self-check of the square root and primality routines.",
		Flags: toArray(configFlag, maxPrimeFlag, workersFlag, samplesFlag, bitsFlag, progressFlag, metricsFlag),
		Action: func(c *cli.Context) error {
			l := newLogger(c).Named("sweepCmd")
			return sweepCmd(c, l)
		},
	},
}

func banner(w io.Writer) {
	version := common.GetAppVersion()
	commit, date := common.COMMIT, common.BUILDDATE
	if commit == "" {
		commit = "none"
	}
	if date == "" {
		date = "unknown"
	}
	_, _ = fmt.Fprintf(w, "ntool %s (date %v, commit %v)\n", version.String(), date, commit)
}

// CLI returns the ntool app
func CLI() *cli.App {
	version := common.GetAppVersion()

	app := cli.NewApp()
	app.Name = "ntool"
	app.Usage = "number theory toolbox for elliptic curve cryptography"
	app.Version = version.String()

	setVersionPrinter.Do(func() {
		cli.VersionPrinter = func(c *cli.Context) {
			banner(c.App.Writer)
		}
	})

	app.ExitErrHandler = func(context *cli.Context, err error) {
		// override to prevent default behavior of calling OS.exit(1),
		// when tests expect to be able to run multiple commands.
	}

	// we need to copy the underlying commands to avoid races, cli sadly doesn't support concurrent executions well
	appComm := make([]*cli.Command, len(appCommands))
	for i, p := range appCommands {
		v := *p
		appComm[i] = &v
	}
	app.Commands = appComm

	// we need to copy the underlying flags to avoid races
	verbFlag := *verboseFlag
	jFlag := *jsonFlag
	app.Flags = toArray(&verbFlag, &jFlag)
	return app
}

func toArray(flags ...cli.Flag) []cli.Flag {
	return flags
}

func isVerbose(c *cli.Context) bool {
	return c.Bool(verboseFlag.Name)
}

func logLevel(c *cli.Context) int {
	if isVerbose(c) {
		return log.DebugLevel
	}
	return log.ErrorLevel
}

func logJSON(c *cli.Context) bool {
	return c.Bool(jsonFlag.Name)
}

// newLogger logs to the error writer so that results on the writer stay
// parsable.
func newLogger(c *cli.Context) log.Logger {
	return log.New(zapcore.AddSync(c.App.ErrWriter), logLevel(c), logJSON(c))
}

// intArgs parses exactly n integer arguments, or at least one when n is 0.
// Integers are decimal, or hexadecimal with a 0x prefix.
func intArgs(c *cli.Context, n int) ([]*big.Int, error) {
	args := c.Args().Slice()
	switch {
	case n == 0 && len(args) == 0:
		return nil, fmt.Errorf("%s: at least one argument required", c.Command.Name)
	case n > 0 && len(args) != n:
		return nil, fmt.Errorf("%s: expected %d arguments (%s), got %d", c.Command.Name, n, c.Command.ArgsUsage, len(args))
	}
	res := make([]*big.Int, len(args))
	for i, arg := range args {
		v, ok := new(big.Int).SetString(arg, 0)
		if !ok {
			return nil, fmt.Errorf("%s: invalid integer %q", c.Command.Name, arg)
		}
		res[i] = v
	}
	return res, nil
}

// printResult prints v as JSON when --json is set, or text otherwise.
func printResult(c *cli.Context, v interface{}, text string) error {
	if !logJSON(c) {
		_, err := fmt.Fprintln(c.App.Writer, text)
		return err
	}
	buff, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not JSON marshal result: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(buff))
	return err
}
