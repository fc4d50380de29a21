// Package process wires the smoothing and baseline-estimation stages into a
// single configurable pipeline: raw spectrum -> optional smoothing ->
// background estimation -> subtraction -> cleaned spectrum.
package process

import (
	"fmt"

	"github.com/spectrakit/ramanbg/algorithms/baseline"
	"github.com/spectrakit/ramanbg/algorithms/smoothing"
	"github.com/spectrakit/ramanbg/logging"
	"github.com/spectrakit/ramanbg/spectrum"
)

// Config holds the parameters of one processing pipeline. The zero value is
// not useful; start from DefaultConfig.
type Config struct {
	// WindowWidth is the full background-estimation window in samples.
	// Must be an even integer >= 2.
	WindowWidth int `json:"window_width"`

	// Smooth enables Savitzky-Golay pre-smoothing of the intensity column.
	Smooth bool `json:"smooth"`

	// SmootherSpan and SmootherDegree parameterize the pre-smoother.
	// Ignored when Smooth is false.
	SmootherSpan   int `json:"smoother_span"`
	SmootherDegree int `json:"smoother_degree"`

	// Workers splits the estimator's interior loop across goroutines.
	// Zero or one keeps the sequential scan.
	Workers int `json:"workers"`
}

// DefaultConfig returns the parameters the original method was published
// with: a 30-sample window and span-5, degree-1 pre-smoothing.
func DefaultConfig() Config {
	return Config{
		WindowWidth:    30,
		Smooth:         true,
		SmootherSpan:   5,
		SmootherDegree: 1,
	}
}

// Processor runs the configured pipeline. Construction validates every
// parameter; a built Processor cannot fail on valid spectra and is safe for
// concurrent use on independent spectra.
type Processor struct {
	config    Config
	estimator *baseline.Estimator
	smoother  baseline.Smoother
	logger    logging.Logger
}

// NewProcessor builds a pipeline from the configuration, failing fast on any
// invalid parameter.
func NewProcessor(cfg Config) (*Processor, error) {
	est, err := baseline.NewEstimator(cfg.WindowWidth)
	if err != nil {
		return nil, err
	}
	if cfg.Workers > 1 {
		est.SetWorkers(cfg.Workers)
	}

	var smoother baseline.Smoother
	if cfg.Smooth {
		sg, err := smoothing.NewSavitzkyGolay(cfg.SmootherSpan, cfg.SmootherDegree)
		if err != nil {
			return nil, err
		}
		smoother = sg
	}

	return &Processor{
		config:    cfg,
		estimator: est,
		smoother:  smoother,
		logger: logging.WithFields(logging.Fields{
			"component": "processor",
		}),
	}, nil
}

// Config returns the configuration the processor was built with.
func (p *Processor) Config() Config {
	return p.config
}

// Clean removes the fluorescence background from a spectrum and returns the
// cleaned spectrum: same wavenumber column, background-subtracted intensity
// column, same length and order.
func (p *Processor) Clean(s spectrum.Spectrum) (spectrum.Spectrum, error) {
	p.logger.Debug("cleaning spectrum", logging.Fields{
		"samples":      s.Len(),
		"window_width": p.config.WindowWidth,
		"smooth":       p.config.Smooth,
	})

	clean, err := p.estimator.Process(s, p.smoother)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}

	stats := clean.Stats()
	p.logger.Debug("spectrum cleaned", logging.Fields{
		"min":  stats.Min,
		"max":  stats.Max,
		"mean": stats.Mean,
	})

	return clean, nil
}
