package logging

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cecil-earth/cecil-go/pkg/humanfmt"
	"github.com/rs/zerolog"
)

// ProgressTracker tracks fragment downloads for a batch with ETA calculation.
// It is safe for concurrent use.
type ProgressTracker struct {
	total     int64
	completed atomic.Int64
	bytes     atomic.Int64
	startTime time.Time

	// Moving average of recent fragment durations for the ETA.
	mu              sync.Mutex
	recentDurations []time.Duration
	maxRecent       int
}

// NewProgressTracker creates a tracker for a batch of total fragments.
func NewProgressTracker(total int64) *ProgressTracker {
	return &ProgressTracker{
		total:           total,
		startTime:       time.Now(),
		recentDurations: make([]time.Duration, 0, 10),
		maxRecent:       10,
	}
}

// RecordFragment records that a fragment of size bytes finished downloading
// after the given duration.
func (pt *ProgressTracker) RecordFragment(size int64, d time.Duration) {
	pt.completed.Add(1)
	pt.bytes.Add(size)

	pt.mu.Lock()
	if len(pt.recentDurations) >= pt.maxRecent {
		pt.recentDurations = pt.recentDurations[1:]
	}
	pt.recentDurations = append(pt.recentDurations, d)
	pt.mu.Unlock()
}

// Completed returns the number of fragments finished so far.
func (pt *ProgressTracker) Completed() int64 {
	return pt.completed.Load()
}

// Bytes returns the total bytes downloaded so far.
func (pt *ProgressTracker) Bytes() int64 {
	return pt.bytes.Load()
}

// Total returns the number of fragments in the batch.
func (pt *ProgressTracker) Total() int64 {
	return pt.total
}

// Remaining returns how many fragments are still outstanding.
func (pt *ProgressTracker) Remaining() int64 {
	return pt.total - pt.completed.Load()
}

// ProgressPct returns the progress percentage (0-100).
func (pt *ProgressTracker) ProgressPct() float64 {
	if pt.total == 0 {
		return 100.0
	}
	return float64(pt.completed.Load()) * 100.0 / float64(pt.total)
}

// ETA returns the estimated time remaining based on the moving average of
// recent fragment durations, falling back to the overall average.
func (pt *ProgressTracker) ETA() time.Duration {
	completed := pt.completed.Load()
	if completed == 0 {
		return 0
	}

	remaining := pt.total - completed
	if remaining <= 0 {
		return 0
	}

	pt.mu.Lock()
	var avg time.Duration
	if len(pt.recentDurations) > 0 {
		var sum time.Duration
		for _, d := range pt.recentDurations {
			sum += d
		}
		avg = sum / time.Duration(len(pt.recentDurations))
	} else {
		avg = time.Since(pt.startTime) / time.Duration(completed)
	}
	pt.mu.Unlock()

	return avg * time.Duration(remaining)
}

// Elapsed returns time since tracking started.
func (pt *ProgressTracker) Elapsed() time.Duration {
	return time.Since(pt.startTime)
}

// Event builds a structured completion event. When pretty mode is on, byte
// and count fields gain a human-readable companion with an _h suffix.
type Event struct {
	log     zerolog.Logger
	event   string
	elapsed time.Duration
	fields  map[string]interface{}
}

// NewEvent creates an event builder for the named event.
func NewEvent(log zerolog.Logger, event string, elapsed time.Duration) *Event {
	return &Event{
		log:     log,
		event:   event,
		elapsed: elapsed,
		fields:  make(map[string]interface{}),
	}
}

// Str adds a string field.
func (e *Event) Str(key, val string) *Event {
	e.fields[key] = val
	return e
}

// Int64 adds an int64 field.
func (e *Event) Int64(key string, val int64) *Event {
	e.fields[key] = val
	return e
}

// Bytes adds a byte count with a human-readable companion in pretty mode.
func (e *Event) Bytes(key string, n int64) *Event {
	e.fields[key] = n
	if IsPrettyMode() {
		e.fields[key+"_h"] = humanfmt.Bytes(n)
	}
	return e
}

// Count adds a count with a human-readable companion in pretty mode.
func (e *Event) Count(key string, n int64) *Event {
	e.fields[key] = n
	if IsPrettyMode() {
		e.fields[key+"_h"] = humanfmt.Count(n)
	}
	return e
}

// Progress adds fragment progress fields from a tracker.
func (e *Event) Progress(pt *ProgressTracker) *Event {
	completed, total := pt.Completed(), pt.Total()
	e.fields["completed"] = completed
	e.fields["total"] = total
	if total > 0 {
		e.fields["progress_pct"] = float64(completed) * 100.0 / float64(total)
	}
	if eta := pt.ETA(); eta > 0 {
		e.fields["eta_ms"] = eta.Milliseconds()
		if IsPrettyMode() {
			e.fields["eta_h"] = humanfmt.Duration(eta)
		}
	}
	return e
}

// Throughput adds transfer rate fields for n bytes over the event's elapsed time.
func (e *Event) Throughput(n int64) *Event {
	if e.elapsed > 0 {
		e.fields["throughput_bps"] = float64(n) / e.elapsed.Seconds()
		if IsPrettyMode() {
			e.fields["throughput_h"] = humanfmt.Throughput(n, e.elapsed)
		}
	}
	return e
}

// Log emits the event at info level.
func (e *Event) Log(msg string) {
	e.emit(e.log.Info(), msg)
}

// LogDebug emits the event at debug level.
func (e *Event) LogDebug(msg string) {
	e.emit(e.log.Debug(), msg)
}

func (e *Event) emit(ev *zerolog.Event, msg string) {
	ev = ev.
		Str("event", e.event).
		Int64("duration_ms", e.elapsed.Milliseconds())

	if IsPrettyMode() {
		ev = ev.Str("duration_h", humanfmt.Duration(e.elapsed))
	}

	for k, v := range e.fields {
		ev = ev.Interface(k, v)
	}

	ev.Msg(msg)
}

// FragmentComplete starts a fragment completion event.
func FragmentComplete(log zerolog.Logger, elapsed time.Duration) *Event {
	return NewEvent(log, "fragment_completed", elapsed)
}

// BatchComplete starts a batch completion event.
func BatchComplete(log zerolog.Logger, elapsed time.Duration) *Event {
	return NewEvent(log, "batch_completed", elapsed)
}
