package metrics

import (
	"math"
	"sort"
	"sync"
)

// DefaultBuckets covers request latencies from one millisecond to ten
// seconds, the useful range for an HTTP API.
var DefaultBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Histogram samples observations into configurable buckets and tracks
// their sum and count. The +Inf bucket is implicit; Collect appends it.
type Histogram struct {
	name       string
	help       string
	labelNames []string
	buckets    []float64 // sorted ascending, finite bounds only

	base histogramData // used when the histogram has no labels

	mu     sync.RWMutex
	series map[string]*HistogramVec
}

func newHistogram(name, help string, buckets []float64, labelNames []string) *Histogram {
	bounds := make([]float64, 0, len(buckets))
	for _, b := range buckets {
		if !math.IsInf(b, 0) && !math.IsNaN(b) {
			bounds = append(bounds, b)
		}
	}
	sort.Float64s(bounds)

	h := &Histogram{
		name:       name,
		help:       help,
		labelNames: labelNames,
		buckets:    bounds,
		series:     make(map[string]*HistogramVec),
	}
	h.base.counts = make([]uint64, len(bounds))
	return h
}

// Observe records v in an unlabeled histogram.
func (h *Histogram) Observe(v float64) error {
	if len(h.labelNames) > 0 {
		return ErrLabelsRequired
	}
	h.base.observe(h.buckets, v)
	return nil
}

// WithLabels returns the series for the given label values, creating it
// on first use.
func (h *Histogram) WithLabels(values ...string) (*HistogramVec, error) {
	if len(values) != len(h.labelNames) {
		return nil, ErrLabelCountMismatch
	}
	key := labelsKey(values)

	h.mu.RLock()
	vec, ok := h.series[key]
	h.mu.RUnlock()
	if ok {
		return vec, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if vec, ok := h.series[key]; ok {
		return vec, nil
	}
	vec = &HistogramVec{
		parent: h,
		labels: labelsFor(h.labelNames, values),
	}
	vec.data.counts = make([]uint64, len(h.buckets))
	h.series[key] = vec
	return vec, nil
}

// Collect returns cumulative bucket counts, the sum, and the count for
// every series, in the order the Prometheus text format expects.
func (h *Histogram) Collect() []Sample {
	if len(h.labelNames) == 0 {
		return h.base.samples(h.name, h.buckets, nil)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	samples := make([]Sample, 0, len(h.series)*(len(h.buckets)+3))
	for _, key := range sortedKeys(h.series) {
		vec := h.series[key]
		samples = append(samples, vec.data.samples(h.name, h.buckets, vec.labels)...)
	}
	return samples
}

func (h *Histogram) metricName() string { return h.name }
func (h *Histogram) metricHelp() string { return h.help }
func (h *Histogram) metricType() string { return "histogram" }

// HistogramVec is one labeled series of a Histogram.
type HistogramVec struct {
	parent *Histogram
	labels map[string]string
	data   histogramData
}

// Observe records v in the series.
func (v *HistogramVec) Observe(val float64) {
	v.data.observe(v.parent.buckets, val)
}

// histogramData holds the mutable state of one histogram series. A plain
// mutex keeps counts, count, and sum consistent with each other; atomics
// cannot update all three together.
type histogramData struct {
	mu     sync.Mutex
	counts []uint64 // per-bucket, not cumulative
	count  uint64
	sum    float64
}

func (d *histogramData) observe(buckets []float64, v float64) {
	d.mu.Lock()
	for i, bound := range buckets {
		if v <= bound {
			d.counts[i]++
			break
		}
	}
	d.count++
	d.sum += v
	d.mu.Unlock()
}

func (d *histogramData) samples(name string, buckets []float64, labels map[string]string) []Sample {
	d.mu.Lock()
	counts := make([]uint64, len(d.counts))
	copy(counts, d.counts)
	count := d.count
	sum := d.sum
	d.mu.Unlock()

	samples := make([]Sample, 0, len(buckets)+3)
	var cumulative uint64
	for i, bound := range buckets {
		cumulative += counts[i]
		samples = append(samples, Sample{
			Name:   name + "_bucket",
			Labels: withLE(labels, formatFloat(bound)),
			Value:  float64(cumulative),
		})
	}
	samples = append(samples, Sample{
		Name:   name + "_bucket",
		Labels: withLE(labels, "+Inf"),
		Value:  float64(count),
	})
	samples = append(samples,
		Sample{Name: name + "_sum", Labels: labels, Value: sum},
		Sample{Name: name + "_count", Labels: labels, Value: float64(count)},
	)
	return samples
}

// withLE copies a label set and adds the bucket bound.
func withLE(labels map[string]string, le string) map[string]string {
	merged := make(map[string]string, len(labels)+1)
	for k, v := range labels {
		merged[k] = v
	}
	merged["le"] = le
	return merged
}
