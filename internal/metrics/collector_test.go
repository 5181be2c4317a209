package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollector_RecordDuration(t *testing.T) {
	c := NewCollector()
	c.RecordDuration(10, "POST /orders")
	c.RecordDuration(30, "POST /orders")
	c.RecordDuration(5, "GET /orders")

	s := c.Snapshot()

	assert.Len(t, s.Routes, 2)
	assert.Equal(t, TimerStats{Count: 2, TotalMs: 40, AvgMs: 20, MinMs: 10, MaxMs: 30}, s.Routes["POST /orders"])
	assert.Equal(t, int64(1), s.Routes["GET /orders"].Count)
}

func TestCollector_IncrementClassConcurrently(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.IncrementClass("2xx")
		}()
	}
	wg.Wait()
	c.IncrementClass("5xx")

	s := c.Snapshot()
	assert.Equal(t, int64(50), s.StatusClasses["2xx"])
	assert.Equal(t, int64(1), s.StatusClasses["5xx"])
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", StatusClass(201))
	assert.Equal(t, "4xx", StatusClass(404))
	assert.Equal(t, "5xx", StatusClass(500))
	assert.Equal(t, "3xx", StatusClass(302))
}
