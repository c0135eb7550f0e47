package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/use-agent/tokensaver/cleaner"
)

const namespace = "tokensaver"

// Recorder exports cleaning telemetry to Prometheus. A nil *Recorder is a
// valid no-op, so hosts can run without metrics.
type Recorder struct {
	requests     *prometheus.CounterVec
	savedChars   *prometheus.CounterVec
	savedTokens  *prometheus.CounterVec
	cleaningTime *prometheus.HistogramVec
}

// NewRecorder registers the cleaning metrics on reg. A nil reg means the
// default registerer. Collectors that are already registered are reused.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Cleaning and estimation calls by operation and intensity.",
		}, []string{"operation", "intensity"}),
		savedChars: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saved_chars_total",
			Help:      "UTF-16 characters removed by cleaning.",
		}, []string{"intensity"}),
		savedTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saved_tokens_total",
			Help:      "Estimated tokens removed by cleaning (positive savings only).",
		}, []string{"intensity"}),
		cleaningTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "clean_duration_seconds",
			Help:      "Time spent in the cleaning pipeline.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"intensity"}),
	}

	if err := register(reg, &r.requests); err != nil {
		return nil, err
	}
	if err := register(reg, &r.savedChars); err != nil {
		return nil, err
	}
	if err := register(reg, &r.savedTokens); err != nil {
		return nil, err
	}
	if err := register(reg, &r.cleaningTime); err != nil {
		return nil, err
	}
	return r, nil
}

// register registers *c, swapping in the existing collector when an
// identical one is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				*c = existing
				return nil
			}
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}

// ObserveClean records one Clean call.
func (r *Recorder) ObserveClean(operation string, res cleaner.Result, d time.Duration) {
	if r == nil {
		return
	}
	in := res.Intensity.String()
	r.requests.WithLabelValues(operation, in).Inc()
	r.savedChars.WithLabelValues(in).Add(float64(res.SavedChars))
	if res.EstimatedTokenSavings > 0 {
		r.savedTokens.WithLabelValues(in).Add(float64(res.EstimatedTokenSavings))
	}
	r.cleaningTime.WithLabelValues(in).Observe(d.Seconds())
}

// ObserveEstimate records one token estimation call.
func (r *Recorder) ObserveEstimate(operation string) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(operation, "none").Inc()
}
