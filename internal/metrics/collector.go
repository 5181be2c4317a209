package metrics

import (
	"sync"
	"time"
)

// Recorder はハンドラから呼ぶ計測の窓口
type Recorder interface {
	RecordDuration(ms int64, route string)
	IncrementClass(class string)
}

type TimerStats struct {
	Count   int64   `json:"count"`
	TotalMs int64   `json:"total_ms"`
	AvgMs   float64 `json:"avg_ms"`
	MinMs   int64   `json:"min_ms"`
	MaxMs   int64   `json:"max_ms"`
}

type Snapshot struct {
	UptimeSeconds int64                 `json:"uptime_seconds"`
	StatusClasses map[string]int64      `json:"status_classes"`
	Routes        map[string]TimerStats `json:"routes"`
}

// プロセス内で集計する
type Collector struct {
	mu      sync.Mutex
	classes map[string]int64
	timers  map[string]*TimerStats
	started time.Time
}

func NewCollector() *Collector {
	return &Collector{
		classes: map[string]int64{},
		timers:  map[string]*TimerStats{},
		started: time.Now(),
	}
}

func (c *Collector) RecordDuration(ms int64, route string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.timers[route]
	if !ok {
		t = &TimerStats{MinMs: ms, MaxMs: ms}
		c.timers[route] = t
	}
	t.Count++
	t.TotalMs += ms
	if ms < t.MinMs {
		t.MinMs = ms
	}
	if ms > t.MaxMs {
		t.MaxMs = ms
	}
	t.AvgMs = float64(t.TotalMs) / float64(t.Count)
}

func (c *Collector) IncrementClass(class string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.classes[class]++
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		UptimeSeconds: int64(time.Since(c.started).Seconds()),
		StatusClasses: make(map[string]int64, len(c.classes)),
		Routes:        make(map[string]TimerStats, len(c.timers)),
	}
	for k, v := range c.classes {
		s.StatusClasses[k] = v
	}
	for k, v := range c.timers {
		s.Routes[k] = *v
	}
	return s
}

// 2xx/4xx/5xx（1xx,3xxもそのまま）
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
