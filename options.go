package dictcol

import (
	"fmt"

	"github.com/dictcol/dictcol/format"
	"github.com/dictcol/dictcol/internal/encode"
	"github.com/dictcol/dictcol/internal/options"
)

// config holds every knob a Codec can be constructed with. Defaults
// mirror internal/encode's own defaults so a Codec built with no
// options at all still behaves sensibly.
type config struct {
	threads            int
	blockSize          int
	batchSize          int
	dictionaryCapacity int
	compression        format.CompressionType
	logger             *Logger
	metrics            MetricsCollector
}

func newConfig() *config {
	return &config{
		threads:            1,
		blockSize:          encode.DefaultBlockSize,
		batchSize:          encode.DefaultBatchSize,
		dictionaryCapacity: encode.DefaultDictionaryCapacity,
		compression:        format.CompressionZstd,
		logger:             NoopLogger(),
		metrics:            NoopMetricsCollector{},
	}
}

// Option configures a Codec at construction time.
type Option = options.Option[*config]

// WithThreads sets the number of concurrent encoder workers per
// block. Values below 1 are rejected; Encode treats the effective
// thread count as min(threads, lines-in-block).
func WithThreads(threads int) Option {
	return options.New(func(c *config) error {
		if threads < 1 {
			return fmt.Errorf("dictcol: threads must be >= 1, got %d", threads)
		}
		c.threads = threads
		return nil
	})
}

// WithBlockSize sets the target size, in bytes, of each streamed
// input block during Encode.
func WithBlockSize(bytes int) Option {
	return options.New(func(c *config) error {
		if bytes < 1 {
			return fmt.Errorf("dictcol: block size must be >= 1, got %d", bytes)
		}
		c.blockSize = bytes
		return nil
	})
}

// WithBatchSize sets how many dictionary misses an encoder worker
// accumulates before flushing them under the writer lock.
func WithBatchSize(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("dictcol: batch size must be >= 1, got %d", n)
		}
		c.batchSize = n
		return nil
	})
}

// WithDictionaryCapacity pre-reserves capacity in the dictionary's
// forward map, avoiding rehashing for inputs whose cardinality is
// known ahead of time.
func WithDictionaryCapacity(n int) Option {
	return options.NoError(func(c *config) {
		if n < 0 {
			n = 0
		}
		c.dictionaryCapacity = n
	})
}

// WithCompression selects the codec Save uses for the persisted code
// column. Zstandard is the default.
func WithCompression(t format.CompressionType) Option {
	return options.New(func(c *config) error {
		switch t {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = t
			return nil
		default:
			return fmt.Errorf("dictcol: invalid compression type: %v", t)
		}
	})
}

// WithLogger attaches a Logger. A nil logger is treated as NoopLogger.
func WithLogger(l *Logger) Option {
	return options.NoError(func(c *config) {
		if l == nil {
			l = NoopLogger()
		}
		c.logger = l
	})
}

// WithMetrics attaches a MetricsCollector. A nil collector is treated
// as NoopMetricsCollector.
func WithMetrics(m MetricsCollector) Option {
	return options.NoError(func(c *config) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		c.metrics = m
	})
}
