// Package core provides the cycle-approximate 8086 core model.
// It drives the functional emulator from an Akita ticking component and
// charges each instruction its cost from the latency table.
package core

import (
	"time"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/timing/cache"
	"github.com/sarchlab/tiny86/timing/latency"
)

// HookPosInstRetired marks the cycle an instruction retires. The hook item
// is the instruction's emu.StepResult.
var HookPosInstRetired = &sim.HookPos{Name: "Inst Retired"}

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// Stalls is the number of cycles spent waiting on multi-cycle
	// instructions.
	Stalls uint64
	// CacheCycles is the part of Cycles added by the bus cache.
	CacheCycles uint64
	// SimulatedTime is Cycles at the core clock.
	SimulatedTime time.Duration
}

// CPI returns cycles per instruction, or 0 before any instruction retires.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Core represents a cycle-approximate 8086.
// Each instruction executes functionally on its first cycle. The core then
// stalls for the rest of the instruction's cost.
type Core struct {
	*sim.TickingComponent

	emulator *emu.Emulator
	latency  *latency.Table
	cache    *cache.Cache
	clockHz  float64

	stall  uint64
	halted bool
	err    error
	stats  Stats
}

// Tick runs the core for one cycle.
func (c *Core) Tick() (madeProgress bool) {
	if c.halted {
		return false
	}

	if c.stall > 0 {
		c.stall--
		c.stats.Cycles++
		c.stats.Stalls++
		return true
	}

	if c.emulator.Halted() {
		c.halted = true
		return false
	}

	result := c.emulator.Step()
	if result.Err != nil {
		c.err = result.Err
		c.halted = true
		return false
	}

	cost := max(c.latency.Cycles(result)+c.cacheCycles(result), 1)
	c.stats.Cycles++
	c.stats.Instructions++
	c.stall = cost - 1

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosInstRetired,
		Item:   result,
	})

	return true
}

// cacheCycles charges the code fetch and memory operand through the bus
// cache.
func (c *Core) cacheCycles(r emu.StepResult) uint64 {
	if c.cache == nil {
		return 0
	}

	n := c.cache.Read(r.FetchAddr).Latency
	if r.MemOperand {
		n += c.cache.Read(r.MemAddr).Latency
	}

	c.stats.CacheCycles += n
	return n
}

// Run ticks the core until the emulator halts or fails and returns the
// statistics. The error is the emulator's, if it stopped on one.
func (c *Core) Run() (Stats, error) {
	c.TickNow()
	if err := c.Engine.Run(); err != nil {
		return c.Stats(), err
	}

	return c.Stats(), c.err
}

// RunCycles ticks the core directly for at most the given number of
// cycles, bypassing the engine. Returns true if still running.
func (c *Core) RunCycles(cycles uint64) bool {
	for i := uint64(0); i < cycles; i++ {
		if !c.Tick() {
			return false
		}
	}
	return !c.halted
}

// Halted returns true once the core has stopped ticking.
func (c *Core) Halted() bool {
	return c.halted
}

// Err returns the emulator error that stopped the core, if any.
func (c *Core) Err() error {
	return c.err
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	s := c.stats
	s.SimulatedTime = time.Duration(float64(s.Cycles) / c.clockHz * float64(time.Second))
	return s
}

// CacheStats returns the bus cache statistics, or false when the cache is
// disabled.
func (c *Core) CacheStats() (cache.Statistics, bool) {
	if c.cache == nil {
		return cache.Statistics{}, false
	}
	return c.cache.Stats(), true
}

// Reset clears the core's counters and cache. The emulator is left as is.
func (c *Core) Reset() {
	c.stall = 0
	c.halted = false
	c.err = nil
	c.stats = Stats{}
	if c.cache != nil {
		c.cache.Reset()
	}
}
