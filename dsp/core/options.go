package core

// ProcessorConfig defines common engine settings.
type ProcessorConfig struct {
	SampleRate  float64
	DurationSec float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns defaults suited to on-screen visualization.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:  1000,
		DurationSec: 1,
	}
}

// WithSampleRate sets the engine sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithDuration sets the covered time span in seconds.
func WithDuration(durationSec float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if durationSec > 0 {
			cfg.DurationSec = durationSec
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Grid builds the TimeGrid described by the config.
func (cfg ProcessorConfig) Grid() (TimeGrid, error) {
	return NewTimeGrid(cfg.DurationSec, cfg.SampleRate)
}
