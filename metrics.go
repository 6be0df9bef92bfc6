package dictcol

import (
	"sync/atomic"
	"time"
)

// MetricsCollector is the hook a monitoring system attaches to; it is
// the count/duration callback surface a benchmarking harness would
// drive, not a harness itself (see DESIGN.md).
type MetricsCollector interface {
	// RecordEncode is called after Encode, whether or not it succeeded.
	RecordEncode(rowCount int, duration time.Duration, err error)

	// RecordSave is called after Save.
	RecordSave(bytesWritten int64, duration time.Duration, err error)

	// RecordLoad is called after Load.
	RecordLoad(rowCount int, duration time.Duration, err error)

	// RecordQuery is called after FindExact (kind "exact") and
	// FindPrefix (kind "prefix"). The baseline and batch variants do
	// not call it.
	RecordQuery(kind string, matches int, duration time.Duration)
}

// NoopMetricsCollector discards everything; it is the default.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEncode(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordSave(int64, time.Duration, error)   {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordQuery(string, int, time.Duration)   {}

// BasicMetricsCollector accumulates counters in memory, useful for a
// quick /debug endpoint without wiring an external system.
type BasicMetricsCollector struct {
	EncodeCount      atomic.Int64
	EncodeErrors     atomic.Int64
	EncodeTotalNanos atomic.Int64
	SaveCount        atomic.Int64
	SaveErrors       atomic.Int64
	LoadCount        atomic.Int64
	LoadErrors       atomic.Int64
	QueryCount       atomic.Int64
	QueryTotalNanos  atomic.Int64
}

func (b *BasicMetricsCollector) RecordEncode(_ int, duration time.Duration, err error) {
	b.EncodeCount.Add(1)
	b.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EncodeErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordSave(_ int64, _ time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordLoad(_ int, _ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordQuery(_ string, _ int, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	EncodeCount   int64
	EncodeErrors  int64
	SaveCount     int64
	SaveErrors    int64
	LoadCount     int64
	LoadErrors    int64
	QueryCount    int64
	QueryAvgNanos int64
}

func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EncodeCount:   b.EncodeCount.Load(),
		EncodeErrors:  b.EncodeErrors.Load(),
		SaveCount:     b.SaveCount.Load(),
		SaveErrors:    b.SaveErrors.Load(),
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		QueryCount:    b.QueryCount.Load(),
		QueryAvgNanos: b.avgQueryNanos(),
	}
}

func (b *BasicMetricsCollector) avgQueryNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}

	return b.QueryTotalNanos.Load() / count
}
