package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestProgressTracker_BasicOperations(t *testing.T) {
	pt := NewProgressTracker(10)

	pt.RecordFragment(1024, 100*time.Millisecond)
	pt.RecordFragment(2048, 150*time.Millisecond)

	if got := pt.Completed(); got != 2 {
		t.Errorf("expected completed=2, got %d", got)
	}
	if got := pt.Bytes(); got != 3072 {
		t.Errorf("expected bytes=3072, got %d", got)
	}
	if got := pt.Total(); got != 10 {
		t.Errorf("expected total=10, got %d", got)
	}
	if got := pt.Remaining(); got != 8 {
		t.Errorf("expected remaining=8, got %d", got)
	}
	if pct := pt.ProgressPct(); pct != 20.0 {
		t.Errorf("expected progress 20%%, got %.1f%%", pct)
	}
}

func TestProgressTracker_ETA(t *testing.T) {
	pt := NewProgressTracker(10)

	pt.RecordFragment(100, 100*time.Millisecond)
	pt.RecordFragment(100, 100*time.Millisecond)

	eta := pt.ETA()
	// With 2 completed at 100ms each, 8 remaining should be ~800ms
	if eta < 700*time.Millisecond || eta > 900*time.Millisecond {
		t.Errorf("expected ETA ~800ms, got %v", eta)
	}
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	pt := NewProgressTracker(0)

	if pct := pt.ProgressPct(); pct != 100.0 {
		t.Errorf("expected 100%% for zero total, got %.1f%%", pct)
	}
	if eta := pt.ETA(); eta != 0 {
		t.Errorf("expected 0 ETA for zero total, got %v", eta)
	}
}

func TestEvent_BasicFields(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(false)

	NewEvent(log, "test_event", 500*time.Millisecond).
		Str("key", "value").
		Int64("big_count", 1000000).
		Log("test message")

	output := buf.String()

	if !strings.Contains(output, `"event":"test_event"`) {
		t.Errorf("expected event field, got: %s", output)
	}
	if !strings.Contains(output, `"duration_ms":500`) {
		t.Errorf("expected duration_ms field, got: %s", output)
	}
	if !strings.Contains(output, `"key":"value"`) {
		t.Errorf("expected key field, got: %s", output)
	}
	if !strings.Contains(output, `"big_count":1000000`) {
		t.Errorf("expected big_count field, got: %s", output)
	}
}

func TestEvent_BytesAndCounts(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(true)

	NewEvent(log, "test_event", time.Second).
		Bytes("size", 1<<30).
		Count("rows", 1500000).
		Log("test message")

	output := buf.String()

	if !strings.Contains(output, `"size":1073741824`) {
		t.Errorf("expected raw size field, got: %s", output)
	}
	if !strings.Contains(output, `"rows":1500000`) {
		t.Errorf("expected raw rows field, got: %s", output)
	}
	if !strings.Contains(output, `"size_h":"1.00 GiB"`) {
		t.Errorf("expected human size field, got: %s", output)
	}
	if !strings.Contains(output, `"rows_h":"1.50M"`) {
		t.Errorf("expected human rows field, got: %s", output)
	}

	SetPrettyMode(false)
}

func TestEvent_Progress(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(false)

	pt := NewProgressTracker(100)
	pt.RecordFragment(100, 100*time.Millisecond)
	pt.RecordFragment(100, 100*time.Millisecond)

	NewEvent(log, "test_event", time.Second).
		Progress(pt).
		Log("test message")

	output := buf.String()

	if !strings.Contains(output, `"completed":2`) {
		t.Errorf("expected completed field, got: %s", output)
	}
	if !strings.Contains(output, `"total":100`) {
		t.Errorf("expected total field, got: %s", output)
	}
	if !strings.Contains(output, `"progress_pct":2`) {
		t.Errorf("expected progress_pct field, got: %s", output)
	}
	if !strings.Contains(output, `"eta_ms":`) {
		t.Errorf("expected eta_ms field, got: %s", output)
	}
}

func TestEvent_Throughput(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(true)

	NewEvent(log, "test_event", time.Second).
		Throughput(100 << 20).
		Log("test message")

	output := buf.String()

	if !strings.Contains(output, `"throughput_bps":`) {
		t.Errorf("expected throughput_bps field, got: %s", output)
	}
	if !strings.Contains(output, `"throughput_h":"100.00 MiB/s"`) {
		t.Errorf("expected throughput_h field, got: %s", output)
	}

	SetPrettyMode(false)
}

func TestEvent_LogDebug(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	SetPrettyMode(false)

	oldLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(oldLevel)

	NewEvent(log, "test_event", time.Second).LogDebug("debug message")

	if !strings.Contains(buf.String(), `"level":"debug"`) {
		t.Errorf("expected debug level, got: %s", buf.String())
	}
}

func TestHelperFunctions(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(false)

	FragmentComplete(log, 500*time.Millisecond).
		Str("key", "fragments/0.parquet").
		Log("fragment done")

	if !strings.Contains(buf.String(), `"event":"fragment_completed"`) {
		t.Errorf("expected fragment_completed event, got: %s", buf.String())
	}

	buf.Reset()
	BatchComplete(log, 200*time.Millisecond).
		Int64("fragments", 12).
		Log("batch done")

	if !strings.Contains(buf.String(), `"event":"batch_completed"`) {
		t.Errorf("expected batch_completed event, got: %s", buf.String())
	}
}
