package metrics

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	// ErrLabelCountMismatch is returned when WithLabels receives a
	// different number of values than the metric declares.
	ErrLabelCountMismatch = errors.New("metrics: label count mismatch")

	// ErrNegativeCounterValue is returned when a counter is asked to
	// decrease. Counters only go up.
	ErrNegativeCounterValue = errors.New("metrics: counter cannot decrease")

	// ErrLabelsRequired is returned when an unlabeled operation is used
	// on a metric that declares labels.
	ErrLabelsRequired = errors.New("metrics: metric has labels, use WithLabels")
)

// Sample is a single exported measurement: a metric name, its label set,
// and the current value.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// atomicFloat64 is a float64 updated with atomic compare-and-swap on its
// bit pattern. Loads and stores never tear; Add retries until it wins.
type atomicFloat64 struct {
	bits uint64
}

func (f *atomicFloat64) Load() float64 {
	return math.Float64frombits(atomic.LoadUint64(&f.bits))
}

func (f *atomicFloat64) Store(v float64) {
	atomic.StoreUint64(&f.bits, math.Float64bits(v))
}

func (f *atomicFloat64) Add(delta float64) {
	for {
		old := atomic.LoadUint64(&f.bits)
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if atomic.CompareAndSwapUint64(&f.bits, old, next) {
			return
		}
	}
}

// labelsKey builds the map key for a label value combination. Values are
// joined with a byte that cannot appear in UTF-8 text.
func labelsKey(values []string) string {
	return strings.Join(values, "\xff")
}

// labelsFor pairs declared label names with a set of values.
func labelsFor(names, values []string) map[string]string {
	labels := make(map[string]string, len(names))
	for i, name := range names {
		labels[name] = values[i]
	}
	return labels
}

// sortedKeys returns the series keys of a map in stable order so that
// Collect output does not shuffle between scrapes.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Counter is a monotonically increasing metric. A counter declared with
// label names holds one series per label value combination, created on
// first use through WithLabels.
type Counter struct {
	name       string
	help       string
	labelNames []string

	value atomicFloat64 // used when the counter has no labels

	mu     sync.RWMutex
	series map[string]*CounterVec
}

func newCounter(name, help string, labelNames []string) *Counter {
	return &Counter{
		name:       name,
		help:       help,
		labelNames: labelNames,
		series:     make(map[string]*CounterVec),
	}
}

// Inc adds one to an unlabeled counter.
func (c *Counter) Inc() error {
	return c.Add(1)
}

// Add increases an unlabeled counter by v. Negative v is rejected.
func (c *Counter) Add(v float64) error {
	if v < 0 {
		return ErrNegativeCounterValue
	}
	if len(c.labelNames) > 0 {
		return ErrLabelsRequired
	}
	c.value.Add(v)
	return nil
}

// WithLabels returns the series for the given label values, creating it
// on first use. The number of values must match the declared label names.
func (c *Counter) WithLabels(values ...string) (*CounterVec, error) {
	if len(values) != len(c.labelNames) {
		return nil, ErrLabelCountMismatch
	}
	key := labelsKey(values)

	c.mu.RLock()
	vec, ok := c.series[key]
	c.mu.RUnlock()
	if ok {
		return vec, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if vec, ok := c.series[key]; ok {
		return vec, nil
	}
	vec = &CounterVec{labels: labelsFor(c.labelNames, values)}
	c.series[key] = vec
	return vec, nil
}

// Collect returns the current value of every series.
func (c *Counter) Collect() []Sample {
	if len(c.labelNames) == 0 {
		return []Sample{{Name: c.name, Value: c.value.Load()}}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	samples := make([]Sample, 0, len(c.series))
	for _, key := range sortedKeys(c.series) {
		vec := c.series[key]
		samples = append(samples, Sample{Name: c.name, Labels: vec.labels, Value: vec.value.Load()})
	}
	return samples
}

func (c *Counter) metricName() string { return c.name }
func (c *Counter) metricHelp() string { return c.help }
func (c *Counter) metricType() string { return "counter" }

// CounterVec is one labeled series of a Counter.
type CounterVec struct {
	labels map[string]string
	value  atomicFloat64
}

// Inc adds one to the series.
func (v *CounterVec) Inc() error {
	return v.Add(1)
}

// Add increases the series by delta. Negative delta is rejected.
func (v *CounterVec) Add(delta float64) error {
	if delta < 0 {
		return ErrNegativeCounterValue
	}
	v.value.Add(delta)
	return nil
}

// Value returns the current value of the series.
func (v *CounterVec) Value() float64 {
	return v.value.Load()
}

// Gauge is a metric that can go up and down. Like Counter, a gauge with
// label names holds one series per label value combination.
type Gauge struct {
	name       string
	help       string
	labelNames []string

	value atomicFloat64

	mu     sync.RWMutex
	series map[string]*GaugeVec
}

func newGauge(name, help string, labelNames []string) *Gauge {
	return &Gauge{
		name:       name,
		help:       help,
		labelNames: labelNames,
		series:     make(map[string]*GaugeVec),
	}
}

// Set stores v in an unlabeled gauge.
func (g *Gauge) Set(v float64) error {
	if len(g.labelNames) > 0 {
		return ErrLabelsRequired
	}
	g.value.Store(v)
	return nil
}

// Inc adds one to an unlabeled gauge.
func (g *Gauge) Inc() error { return g.Add(1) }

// Dec subtracts one from an unlabeled gauge.
func (g *Gauge) Dec() error { return g.Add(-1) }

// Add adjusts an unlabeled gauge by delta, which may be negative.
func (g *Gauge) Add(delta float64) error {
	if len(g.labelNames) > 0 {
		return ErrLabelsRequired
	}
	g.value.Add(delta)
	return nil
}

// WithLabels returns the series for the given label values, creating it
// on first use.
func (g *Gauge) WithLabels(values ...string) (*GaugeVec, error) {
	if len(values) != len(g.labelNames) {
		return nil, ErrLabelCountMismatch
	}
	key := labelsKey(values)

	g.mu.RLock()
	vec, ok := g.series[key]
	g.mu.RUnlock()
	if ok {
		return vec, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if vec, ok := g.series[key]; ok {
		return vec, nil
	}
	vec = &GaugeVec{labels: labelsFor(g.labelNames, values)}
	g.series[key] = vec
	return vec, nil
}

// Collect returns the current value of every series.
func (g *Gauge) Collect() []Sample {
	if len(g.labelNames) == 0 {
		return []Sample{{Name: g.name, Value: g.value.Load()}}
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	samples := make([]Sample, 0, len(g.series))
	for _, key := range sortedKeys(g.series) {
		vec := g.series[key]
		samples = append(samples, Sample{Name: g.name, Labels: vec.labels, Value: vec.value.Load()})
	}
	return samples
}

func (g *Gauge) metricName() string { return g.name }
func (g *Gauge) metricHelp() string { return g.help }
func (g *Gauge) metricType() string { return "gauge" }

// GaugeVec is one labeled series of a Gauge.
type GaugeVec struct {
	labels map[string]string
	value  atomicFloat64
}

// Set stores v in the series.
func (v *GaugeVec) Set(val float64) { v.value.Store(val) }

// Inc adds one to the series.
func (v *GaugeVec) Inc() { v.value.Add(1) }

// Dec subtracts one from the series.
func (v *GaugeVec) Dec() { v.value.Add(-1) }

// Add adjusts the series by delta.
func (v *GaugeVec) Add(delta float64) { v.value.Add(delta) }

// Value returns the current value of the series.
func (v *GaugeVec) Value() float64 { return v.value.Load() }
