package core

import "runtime"

// AnalysisSampleRate is the rate every clip is conditioned to by default.
const AnalysisSampleRate = 48000.0

// ProcessorConfig holds settings shared across analysis stages.
type ProcessorConfig struct {
	// SampleRate in Hz.
	SampleRate float64
	// Workers bounds concurrent work; <= 0 means GOMAXPROCS.
	Workers int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig runs at AnalysisSampleRate on every CPU.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{SampleRate: AnalysisSampleRate}
}

// WithSampleRate sets the sample rate. Non-positive rates are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithWorkers bounds concurrent work to n goroutines.
func WithWorkers(n int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.Workers = n
	}
}

// ApplyProcessorOptions applies opts to the default config. Nil options are
// skipped.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Parallelism returns Workers, or GOMAXPROCS when Workers is not positive.
func (c ProcessorConfig) Parallelism() int {
	return Parallelism(c.Workers)
}

// Parallelism resolves a worker bound: n itself when positive, GOMAXPROCS
// otherwise.
func Parallelism(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}
