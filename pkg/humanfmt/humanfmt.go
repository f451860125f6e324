// Package humanfmt renders byte counts, durations, transfer rates, and row
// counts in a compact human-readable form for log and CLI output.
package humanfmt

import (
	"fmt"
	"strconv"
	"time"
)

var byteUnits = []struct {
	scale float64
	name  string
}{
	{1 << 40, "TiB"},
	{1 << 30, "GiB"},
	{1 << 20, "MiB"},
	{1 << 10, "KiB"},
}

// Bytes formats a byte count using IEC binary units, e.g. "1.50 MiB".
func Bytes(n int64) string {
	f := float64(n)
	for _, u := range byteUnits {
		if f >= u.scale {
			return fmt.Sprintf("%.2f %s", f/u.scale, u.name)
		}
	}
	return fmt.Sprintf("%d B", n)
}

// Duration renders a duration at a precision suited to its magnitude.
// Examples: "789µs", "45.6ms", "1.23s", "1m30s", "2h15m".
func Duration(d time.Duration) string {
	if d < 0 {
		return d.String()
	}

	switch {
	case d >= time.Hour:
		h := d / time.Hour
		m := (d % time.Hour) / time.Minute
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	case d >= time.Minute:
		m := d / time.Minute
		s := (d % time.Minute) / time.Second
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

// Throughput formats bytes transferred over the elapsed wall time as a rate,
// e.g. "12.34 MiB/s".
func Throughput(n int64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "∞"
	}

	perSec := float64(n) / elapsed.Seconds()
	for _, u := range byteUnits {
		if perSec >= u.scale {
			return fmt.Sprintf("%.2f %s/s", perSec/u.scale, u.name)
		}
	}
	return fmt.Sprintf("%.0f B/s", perSec)
}

var countUnits = []struct {
	scale float64
	name  string
}{
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// Count abbreviates large counts with decimal suffixes, e.g. "1.50M".
func Count(n int64) string {
	f := float64(n)
	for _, u := range countUnits {
		if f >= u.scale {
			return fmt.Sprintf("%.2f%s", f/u.scale, u.name)
		}
	}
	return strconv.FormatInt(n, 10)
}
