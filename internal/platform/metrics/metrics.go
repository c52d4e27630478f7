// Package metrics provides observability for the hosts.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// latency aggregates durations without locking.
type latency struct {
	count atomic.Int64
	sum   atomic.Int64
	max   atomic.Int64
}

func (l *latency) observe(d time.Duration) {
	l.count.Add(1)
	l.sum.Add(int64(d))
	for {
		cur := l.max.Load()
		if int64(d) <= cur || l.max.CompareAndSwap(cur, int64(d)) {
			return
		}
	}
}

// LatencyStats is the exported view of a latency aggregate, in milliseconds.
type LatencyStats struct {
	Count int64   `json:"count"`
	AvgMs float64 `json:"avg_ms"`
	MaxMs float64 `json:"max_ms"`
}

func (l *latency) stats() LatencyStats {
	n := l.count.Load()
	s := LatencyStats{Count: n, MaxMs: float64(l.max.Load()) / 1e6}
	if n > 0 {
		s.AvgMs = float64(l.sum.Load()) / float64(n) / 1e6
	}
	return s
}

// Collector gathers host metrics.
type Collector struct {
	ticks    latency
	lastTick atomic.Int64 // unix nanos

	saves      latency
	saveBytes  atomic.Int64
	saveErrors atomic.Int64
	loads      atomic.Int64
	loadErrors atomic.Int64

	events atomic.Int64

	wsActive atomic.Int64
	wsIn     atomic.Int64
	wsOut    atomic.Int64
	wsErrors atomic.Int64

	started time.Time
}

// New returns an empty collector. Hosts share the one from Get.
func New() *Collector {
	return &Collector{started: time.Now()}
}

var collector = New()

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordTick records one engine step of the host loop.
func (c *Collector) RecordTick(d time.Duration) {
	c.ticks.observe(d)
	c.lastTick.Store(time.Now().UnixNano())
}

// RecordSave records a save image written to a device. Failed writes only
// count as errors.
func (c *Collector) RecordSave(d time.Duration, bytes int, err error) {
	if err != nil {
		c.saveErrors.Add(1)
		return
	}
	c.saves.observe(d)
	c.saveBytes.Add(int64(bytes))
}

// RecordLoad records a boot-time load attempt.
func (c *Collector) RecordLoad(err error) {
	c.loads.Add(1)
	if err != nil {
		c.loadErrors.Add(1)
	}
}

// RecordEvents records game events drained from an engine.
func (c *Collector) RecordEvents(n int) {
	c.events.Add(int64(n))
}

// RecordWSConnection moves the active connection gauge by delta.
func (c *Collector) RecordWSConnection(delta int64) {
	c.wsActive.Add(delta)
}

// RecordWSMessage counts one message in the given direction.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		c.wsIn.Add(1)
		return
	}
	c.wsOut.Add(1)
}

func (c *Collector) RecordWSError() {
	c.wsErrors.Add(1)
}

// Snapshot is a point-in-time copy of the collector.
type Snapshot struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	Tick          struct {
		LatencyStats
		Last string `json:"last,omitempty"`
	} `json:"tick"`
	Save struct {
		LatencyStats
		Bytes      int64 `json:"bytes"`
		Errors     int64 `json:"errors"`
		Loads      int64 `json:"loads"`
		LoadErrors int64 `json:"load_errors"`
	} `json:"save"`
	Events    int64 `json:"events"`
	WebSocket struct {
		Active int64 `json:"active_connections"`
		In     int64 `json:"messages_in"`
		Out    int64 `json:"messages_out"`
		Errors int64 `json:"errors"`
	} `json:"websocket"`
}

// Snapshot returns the current values.
func (c *Collector) Snapshot() Snapshot {
	var s Snapshot
	s.UptimeSeconds = time.Since(c.started).Seconds()

	s.Tick.LatencyStats = c.ticks.stats()
	if ns := c.lastTick.Load(); ns != 0 {
		s.Tick.Last = time.Unix(0, ns).UTC().Format(time.RFC3339)
	}

	s.Save.LatencyStats = c.saves.stats()
	s.Save.Bytes = c.saveBytes.Load()
	s.Save.Errors = c.saveErrors.Load()
	s.Save.Loads = c.loads.Load()
	s.Save.LoadErrors = c.loadErrors.Load()

	s.Events = c.events.Load()

	s.WebSocket.Active = c.wsActive.Load()
	s.WebSocket.In = c.wsIn.Load()
	s.WebSocket.Out = c.wsOut.Load()
	s.WebSocket.Errors = c.wsErrors.Load()
	return s
}

// Handler serves the global collector as JSON.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		json.NewEncoder(w).Encode(collector.Snapshot())
	}
}

type family struct {
	name, kind, help string
	samples          []sample
}

type sample struct {
	labels string
	value  any
}

func one(v any) []sample { return []sample{{value: v}} }

func (c *Collector) families() []family {
	s := c.Snapshot()
	return []family{
		{"tick_count", "counter", "Total engine steps", one(s.Tick.Count)},
		{"tick_latency_max_ms", "gauge", "Slowest engine step", one(fmt.Sprintf("%.2f", s.Tick.MaxMs))},
		{"saves_written", "counter", "Save images written", one(s.Save.Count)},
		{"save_errors", "counter", "Failed save writes", one(s.Save.Errors)},
		{"load_errors", "counter", "Failed save loads", one(s.Save.LoadErrors)},
		{"events_emitted", "counter", "Game events drained from engines", one(s.Events)},
		{"ws_connections", "gauge", "Active WebSocket connections", one(s.WebSocket.Active)},
		{"ws_messages_total", "counter", "WebSocket messages by direction", []sample{
			{`direction="in"`, s.WebSocket.In},
			{`direction="out"`, s.WebSocket.Out},
		}},
	}
}

// PrometheusHandler serves the global collector in the Prometheus text format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		for _, f := range collector.families() {
			fmt.Fprintf(w, "# HELP sdop_%s %s\n# TYPE sdop_%s %s\n", f.name, f.help, f.name, f.kind)
			for _, s := range f.samples {
				if s.labels != "" {
					fmt.Fprintf(w, "sdop_%s{%s} %v\n", f.name, s.labels, s.value)
				} else {
					fmt.Fprintf(w, "sdop_%s %v\n", f.name, s.value)
				}
			}
		}
	}
}
