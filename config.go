package eprcalc

import (
	"fmt"

	"github.com/arloliu/eprcalc/internal/options"
	"github.com/arloliu/eprcalc/interp"
	"github.com/arloliu/eprcalc/plateau"
	"github.com/arloliu/eprcalc/remote"
)

// Defaults applied by NewConfig before any option.
const (
	DefaultPlateauWindow = 5
	DefaultTailMin       = 5
)

// Config holds the analysis settings of one evaluation.
type Config struct {
	strategy          remote.Strategy
	plateauWindow     int
	tailMin           int
	samplesPerSegment int
}

// Option configures an evaluation.
type Option = options.Option[*Config]

// NewConfig returns the default configuration with opts applied in order.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		strategy:          remote.Extrapolate,
		plateauWindow:     DefaultPlateauWindow,
		tailMin:           DefaultTailMin,
		samplesPerSegment: interp.DefaultSamplesPerSegment,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Strategy returns the remote-voltage estimation strategy.
func (c *Config) Strategy() remote.Strategy { return c.strategy }

// PlateauWindow returns nLast, the plateau window and the AverageLastN count.
func (c *Config) PlateauWindow() int { return c.plateauWindow }

// TailMin returns the minimum extrapolation tail size.
func (c *Config) TailMin() int { return c.tailMin }

// SamplesPerSegment returns the display curve density.
func (c *Config) SamplesPerSegment() int { return c.samplesPerSegment }

func (c *Config) setStrategy(s remote.Strategy) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", remote.ErrUnknownStrategy, int(s))
	}
	c.strategy = s

	return nil
}

// WithStrategy selects how V∞ is estimated. The default is remote.Extrapolate.
func WithStrategy(s remote.Strategy) Option {
	return options.New(func(c *Config) error {
		return c.setStrategy(s)
	})
}

// WithPlateauWindow sets nLast, the number of trailing readings used by the plateau
// classifier and by AverageLastN. Values below 3 are raised to 3.
func WithPlateauWindow(n int) Option {
	return options.NoError(func(c *Config) {
		c.plateauWindow = max(n, plateau.MinWindow)
	})
}

// WithTailMin sets the minimum number of readings in the extrapolation tail.
// Values below 3 are raised to 3.
func WithTailMin(n int) Option {
	return options.NoError(func(c *Config) {
		c.tailMin = max(n, remote.MinTail)
	})
}

// WithSamplesPerSegment sets how many samples Curve draws per knot interval.
// Values below 1 are raised to 1.
func WithSamplesPerSegment(n int) Option {
	return options.NoError(func(c *Config) {
		c.samplesPerSegment = max(n, 1)
	})
}
