// Package status is the lock-free metrics registry shared between the tick
// goroutine, the status bar and the headless summary.
package status

import (
	"fmt"
	"io"
	"sync/atomic"
)

// Registry groups metrics by value type.
// Publishers cache pointers once; per-tick writes go straight to the atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of registered metrics of every type
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// WriteTo writes one "key=value" line per metric, grouped by type and sorted by key
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	var (
		total int64
		err   error
	)
	emit := func(key string, val any) {
		if err != nil {
			return
		}
		var n int
		n, err = fmt.Fprintf(w, "%s=%v\n", key, val)
		total += int64(n)
	}

	r.Bools.Range(func(k string, p *atomic.Bool) { emit(k, p.Load()) })
	r.Ints.Range(func(k string, p *atomic.Int64) { emit(k, p.Load()) })
	r.Floats.Range(func(k string, p *AtomicFloat) { emit(k, fmt.Sprintf("%.3f", p.Get())) })
	r.Strings.Range(func(k string, p *AtomicString) { emit(k, p.Load()) })

	return total, err
}
