package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lightweight stage timer for mesh builds. Totals accumulate until Reset and every
// sample is also observed by a prometheus histogram once Register has been called.

var (
	mu     sync.Mutex
	totals = make(map[string]time.Duration)

	stageSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "voxelmesh",
		Name:      "stage_duration_seconds",
		Help:      "Time spent per tracked stage.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 10),
	}, []string{"stage"})
)

// Register exposes the stage histogram on reg.
func Register(reg prometheus.Registerer) error {
	return reg.Register(stageSeconds)
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("meshing.Greedy.Build")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		stageSeconds.WithLabelValues(name).Observe(d.Seconds())
		mu.Lock()
		totals[name] += d
		mu.Unlock()
	}
}

// Reset clears the accumulated totals.
func Reset() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot returns a copy of the accumulated totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// TopN formats the n largest totals.
// Example: "meshing.Greedy.Build:4.2ms, meshing.Culled.Build:2.1ms"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = max(min(n, len(list)), 0)
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		ms := float64(p.dur.Microseconds()) / 1000.0
		parts = append(parts, p.name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms")
	}
	return strings.Join(parts, ", ")
}
