package metrics

import (
	"strconv"
	"sync"
	"time"
)

// maxRecentEvents caps the ring buffer of recorded error events.
const maxRecentEvents = 50

const (
	TypeError   = "error"
	TypeWarning = "warning"
	TypeInfo    = "info"
)

// ErrorEvent is one recorded error occurrence.
type ErrorEvent struct {
	Type       string    `json:"type"`
	StatusCode int       `json:"statusCode"`
	Context    string    `json:"context"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// Snapshot is a point-in-time view of the accumulated counters.
type Snapshot struct {
	Total     int64            `json:"total"`
	ByType    map[string]int64 `json:"byType"`
	ByStatus  map[string]int64 `json:"byStatus"`
	ByContext map[string]int64 `json:"byContext"`
	Recent    []ErrorEvent     `json:"recent"`
}

// ErrorReporter accumulates error counters and a capped buffer of recent
// events for diagnostics. It is an injected instance, not a package global,
// so tests get a fresh reporter without cross-test state leakage.
type ErrorReporter struct {
	mu        sync.Mutex
	total     int64
	byType    map[string]int64
	byStatus  map[string]int64
	byContext map[string]int64
	recent    []ErrorEvent
}

func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{
		byType:    make(map[string]int64),
		byStatus:  make(map[string]int64),
		byContext: make(map[string]int64),
	}
}

// Classify buckets a status code: 5xx and above are errors, 4xx warnings,
// everything else informational.
func Classify(statusCode int) string {
	switch {
	case statusCode >= 500:
		return TypeError
	case statusCode >= 400:
		return TypeWarning
	default:
		return TypeInfo
	}
}

// Report records one error occurrence under the given context label.
func (r *ErrorReporter) Report(context string, statusCode int, message string) {
	eventType := Classify(statusCode)
	apiErrors.WithLabelValues(eventType).Inc()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.total++
	r.byType[eventType]++
	r.byStatus[strconv.Itoa(statusCode)]++
	r.byContext[context]++

	r.recent = append(r.recent, ErrorEvent{
		Type:       eventType,
		StatusCode: statusCode,
		Context:    context,
		Message:    message,
		Timestamp:  time.Now(),
	})
	if len(r.recent) > maxRecentEvents {
		r.recent = r.recent[len(r.recent)-maxRecentEvents:]
	}
}

// Metrics returns a copy of the current counters and recent events.
func (r *ErrorReporter) Metrics() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		Total:     r.total,
		ByType:    make(map[string]int64, len(r.byType)),
		ByStatus:  make(map[string]int64, len(r.byStatus)),
		ByContext: make(map[string]int64, len(r.byContext)),
		Recent:    make([]ErrorEvent, len(r.recent)),
	}
	for k, v := range r.byType {
		snap.ByType[k] = v
	}
	for k, v := range r.byStatus {
		snap.ByStatus[k] = v
	}
	for k, v := range r.byContext {
		snap.ByContext[k] = v
	}
	copy(snap.Recent, r.recent)
	return snap
}

// Reset clears all counters and events.
func (r *ErrorReporter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total = 0
	r.byType = make(map[string]int64)
	r.byStatus = make(map[string]int64)
	r.byContext = make(map[string]int64)
	r.recent = nil
}
