// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"math"
	"sync"
	"time"
)

// Operation names recorded by the summarizer pipeline.
const (
	OpTranscriptFetch = "transcript_fetch"
	OpSummarize       = "llm_summarize"
	OpChatPost        = "chat_post"
)

// OperationMetrics holds aggregated metrics for a single operation type.
type OperationMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration

	// Prompt/response sizes in characters (only for the LLM operation)
	TotalPromptChars int64
	TotalOutputChars int64
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64
	TotalTimeMs int64
	AvgTimeMs   float64
	MinTimeMs   int64
	MaxTimeMs   int64

	TotalPromptChars int64
	TotalOutputChars int64
}

// Snapshot represents the full process statistics at a point in time.
type Snapshot struct {
	UptimeSeconds   float64
	EventsHandled   int64
	EventsFailed    int64
	TranscriptFetch *OperationSnapshot
	Summarize       *OperationSnapshot
	ChatPost        *OperationSnapshot
}

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	handled   int64
	failed    int64
	ops       map[string]*OperationMetrics
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
	}
}

// getOrCreate returns existing metrics or creates new ones for an operation.
// Caller must hold the write lock.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{
			MinTime: time.Duration(math.MaxInt64),
		}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records timing for an operation.
func (c *Collector) RecordTiming(op string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(op, duration)
}

// RecordLLMUsage records timing and prompt/output sizes for an LLM call.
func (c *Collector) RecordLLMUsage(duration time.Duration, promptChars, outputChars int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.record(OpSummarize, duration)
	m.TotalPromptChars += int64(promptChars)
	m.TotalOutputChars += int64(outputChars)
}

// RecordEvent counts one handled mention event.
func (c *Collector) RecordEvent(failed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handled++
	if failed {
		c.failed++
	}
}

func (c *Collector) record(op string, duration time.Duration) *OperationMetrics {
	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
	return m
}

// snapshotOp creates a snapshot for an operation, returning nil if no data.
func snapshotOp(m *OperationMetrics) *OperationSnapshot {
	if m == nil || m.Count == 0 {
		return nil
	}
	return &OperationSnapshot{
		Count:            m.Count,
		TotalTimeMs:      m.TotalTime.Milliseconds(),
		AvgTimeMs:        float64(m.TotalTime.Milliseconds()) / float64(m.Count),
		MinTimeMs:        m.MinTime.Milliseconds(),
		MaxTimeMs:        m.MaxTime.Milliseconds(),
		TotalPromptChars: m.TotalPromptChars,
		TotalOutputChars: m.TotalOutputChars,
	}
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		UptimeSeconds:   time.Since(c.startTime).Seconds(),
		EventsHandled:   c.handled,
		EventsFailed:    c.failed,
		TranscriptFetch: snapshotOp(c.ops[OpTranscriptFetch]),
		Summarize:       snapshotOp(c.ops[OpSummarize]),
		ChatPost:        snapshotOp(c.ops[OpChatPost]),
	}
}
