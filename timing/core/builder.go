package core

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/timing/cache"
	"github.com/sarchlab/tiny86/timing/latency"
)

// Builder can create new cores.
type Builder struct {
	engine sim.Engine
	config *latency.TimingConfig
}

// NewBuilder creates a builder with a serial engine and the default 8086
// timing.
func NewBuilder() Builder {
	return Builder{
		config: latency.DefaultTimingConfig(),
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithTimingConfig sets the instruction costs and clock frequency.
func (b Builder) WithTimingConfig(config *latency.TimingConfig) Builder {
	b.config = config
	return b
}

// Build creates a core that drives emulator.
func (b Builder) Build(name string, emulator *emu.Emulator) *Core {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	c := &Core{
		emulator: emulator,
		latency:  latency.NewTableWithConfig(b.config),
		clockHz:  b.config.ClockMHz * 1e6,
	}

	if b.config.CacheEnabled {
		cacheConfig := cache.DefaultConfig()
		cacheConfig.HitLatency = b.config.CacheHitCycles
		cacheConfig.MissLatency = b.config.CacheMissCycles
		c.cache = cache.New(cacheConfig)
	}

	freq := sim.Freq(b.config.ClockMHz) * sim.MHz
	c.TickingComponent = sim.NewTickingComponent(name, engine, freq, c)

	return c
}
