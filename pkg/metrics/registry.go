package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// metric is what the registry collects: identity for the HELP and TYPE
// lines plus the current samples.
type metric interface {
	metricName() string
	metricHelp() string
	metricType() string
	Collect() []Sample
}

// Registry holds a set of metrics and renders them in the Prometheus
// text exposition format. Metrics appear in registration order.
type Registry struct {
	mu      sync.RWMutex
	metrics []metric
	names   map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// register panics on a duplicate name. Metric registration happens at
// startup, so a collision is a programming error, not a runtime one.
func (r *Registry) register(m metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := m.metricName()
	if _, dup := r.names[name]; dup {
		panic(fmt.Sprintf("metrics: duplicate metric name %q", name))
	}
	r.names[name] = struct{}{}
	r.metrics = append(r.metrics, m)
}

// NewCounter creates and registers a counter.
func (r *Registry) NewCounter(name, help string, labelNames ...string) *Counter {
	c := newCounter(name, help, labelNames)
	r.register(c)
	return c
}

// NewGauge creates and registers a gauge.
func (r *Registry) NewGauge(name, help string, labelNames ...string) *Gauge {
	g := newGauge(name, help, labelNames)
	r.register(g)
	return g
}

// NewHistogram creates and registers a histogram with the given bucket
// bounds. Use DefaultBuckets for request latencies.
func (r *Registry) NewHistogram(name, help string, buckets []float64, labelNames ...string) *Histogram {
	h := newHistogram(name, help, buckets, labelNames)
	r.register(h)
	return h
}

// Handler returns an http.Handler that writes every registered metric in
// the text exposition format.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		r.mu.RLock()
		metrics := make([]metric, len(r.metrics))
		copy(metrics, r.metrics)
		r.mu.RUnlock()

		var buf bytes.Buffer
		for _, m := range metrics {
			writeMetric(&buf, m)
		}

		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	})
}

func writeMetric(buf *bytes.Buffer, m metric) {
	name := m.metricName()
	fmt.Fprintf(buf, "# HELP %s %s\n", name, escapeHelp(m.metricHelp()))
	fmt.Fprintf(buf, "# TYPE %s %s\n", name, m.metricType())
	for _, s := range m.Collect() {
		buf.WriteString(s.Name)
		if len(s.Labels) > 0 {
			buf.WriteString(formatLabels(s.Labels))
		}
		buf.WriteByte(' ')
		buf.WriteString(formatFloat(s.Value))
		buf.WriteByte('\n')
	}
}

func formatLabels(labels map[string]string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range sortedKeys(labels) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(escapeLabelValue(labels[k]))
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

var (
	helpEscaper  = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
)

func escapeHelp(s string) string {
	return helpEscaper.Replace(s)
}

func escapeLabelValue(s string) string {
	return labelEscaper.Replace(s)
}
