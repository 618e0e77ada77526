package metrics

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/drand/numtheory/common/log"
)

var (
	// PrivateMetrics holds the go process metrics and the sweep metrics
	PrivateMetrics = prometheus.NewRegistry()

	// SweepChecks counts the individual checks performed by verification sweeps
	SweepChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "numtheory_sweep_checks_total",
		Help: "Number of individual checks performed by verification sweeps",
	}, []string{"kind"})

	// SweepFailures counts the checks that did not hold
	SweepFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "numtheory_sweep_failures_total",
		Help: "Number of checks that failed during verification sweeps",
	}, []string{"kind"})

	// MillerRabinRounds records how many witnesses were needed to reject a
	// sampled composite
	MillerRabinRounds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "numtheory_miller_rabin_rounds",
		Help:    "Number of Miller-Rabin witnesses tried before a composite was rejected",
		Buckets: prometheus.LinearBuckets(0, 1, 8),
	})

	// SweepDuration is the wall clock duration of the last sweep
	SweepDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "numtheory_sweep_duration_seconds",
		Help: "Duration of the last verification sweep",
	})

	metricsBound sync.Once
)

// Check kinds used as the "kind" label.
const (
	KindJacobi     = "jacobi"
	KindSquareRoot = "sqrt"
	KindPrimality  = "primality"
	KindComposite  = "composite"
)

func bindMetrics(l log.Logger) {
	if err := PrivateMetrics.Register(collectors.NewGoCollector()); err != nil {
		l.Errorw("error in bindMetrics", "metrics", "goCollector", "err", err)
		return
	}
	if err := PrivateMetrics.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		l.Errorw("error in bindMetrics", "metrics", "processCollector", "err", err)
		return
	}

	sweep := []prometheus.Collector{
		SweepChecks,
		SweepFailures,
		MillerRabinRounds,
		SweepDuration,
	}
	for _, c := range sweep {
		if err := PrivateMetrics.Register(c); err != nil {
			l.Errorw("error in bindMetrics", "metrics", "bindMetrics", "err", err)
			return
		}
	}
}

// Start starts a prometheus metrics server on metricsBind, which may be a
// bare port. A non nil pprof handler is mounted at /debug/pprof/. It returns
// nil if the listener could not be opened.
func Start(logger log.Logger, metricsBind string, pprof http.Handler) net.Listener {
	logger.Infow("metrics starting", "desired_port", metricsBind)

	metricsBound.Do(func() {
		bindMetrics(logger)
	})

	// handle metricsBind being just a port value
	if !strings.Contains(metricsBind, ":") {
		metricsBind = "127.0.0.1:" + metricsBind
	}
	//nolint:noctx
	l, err := net.Listen("tcp", metricsBind)
	if err != nil {
		logger.Warnw("", "metrics", "listen failed", "err", err)
		return nil
	}
	logger.Infow("metric listener started", "addr", l.Addr())

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(PrivateMetrics, promhttp.HandlerOpts{Registry: PrivateMetrics}))
	if pprof != nil {
		mux.Handle("/debug/pprof/", pprof)
	}

	s := http.Server{Addr: l.Addr().String(), ReadHeaderTimeout: 3 * time.Second, Handler: mux}
	go func() {
		logger.Warnw("", "metrics", "listen finished", "err", s.Serve(l))
	}()
	return l
}
