package core_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/insts"
	"github.com/sarchlab/tiny86/timing/core"
	"github.com/sarchlab/tiny86/timing/latency"
)

// MOV AX,5 / MOV CX,3 / JMP FAR 0000:0000 costs 4 + 4 + 15 cycles.
var haltProgram = []byte{
	0xB8, 0x05, 0x00,
	0xB9, 0x03, 0x00,
	0xEA, 0x00, 0x00, 0x00, 0x00,
}

type retireRecorder struct {
	ops []insts.Op
}

func (h *retireRecorder) Func(ctx sim.HookCtx) {
	if ctx.Pos == core.HookPosInstRetired {
		h.ops = append(h.ops, ctx.Item.(emu.StepResult).Op)
	}
}

var _ = Describe("Core", func() {
	var (
		emulator *emu.Emulator
		config   *latency.TimingConfig
	)

	load := func(code []byte) {
		emulator.Memory().Load(emu.Linear(0x1000, 0), code)
		emulator.RegFile().Write16(insts.RegCS, 0x1000)
		emulator.RegFile().IP = 0
	}

	build := func() *core.Core {
		return core.NewBuilder().
			WithEngine(sim.NewSerialEngine()).
			WithTimingConfig(config).
			Build("CPU", emulator)
	}

	BeforeEach(func() {
		emulator = emu.NewEmulator()
		config = latency.DefaultTimingConfig()
	})

	It("should run until halt and charge each instruction", func() {
		load(haltProgram)
		c := build()

		stats, err := c.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Halted()).To(BeTrue())
		Expect(emulator.RegFile().Read16(insts.RegAX)).To(Equal(uint16(5)))

		Expect(stats.Instructions).To(Equal(uint64(3)))
		Expect(stats.Cycles).To(Equal(uint64(23)))
		Expect(stats.Stalls).To(Equal(uint64(20)))
		Expect(stats.CPI()).To(BeNumerically("~", 23.0/3.0, 1e-9))
	})

	It("should convert cycles to time at the configured clock", func() {
		load(haltProgram)
		stats, _ := build().Run()

		cycles := float64(stats.Cycles)
		Expect(cycles).To(Equal(23.0))
		expected := time.Duration(cycles / 4.77e6 * float64(time.Second))
		Expect(stats.SimulatedTime).To(BeNumerically("~", expected, time.Nanosecond))
	})

	It("should report retired instructions to hooks", func() {
		load(haltProgram)
		c := build()
		recorder := &retireRecorder{}
		c.AcceptHook(recorder)

		_, err := c.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(recorder.ops).To(Equal([]insts.Op{
			insts.OpMovRegImm, insts.OpMovRegImm, insts.OpJmpCall,
		}))
	})

	It("should run for specified cycles and return running status", func() {
		load(haltProgram)
		c := build()

		Expect(c.RunCycles(5)).To(BeTrue())
		Expect(c.Halted()).To(BeFalse())

		stats := c.Stats()
		Expect(stats.Cycles).To(Equal(uint64(5)))
		Expect(stats.Instructions).To(Equal(uint64(2)))
		Expect(emulator.RegFile().Read16(insts.RegCX)).To(Equal(uint16(3)))
	})

	It("should stop running cycles when halted", func() {
		load(haltProgram)
		c := build()

		Expect(c.RunCycles(100)).To(BeFalse())
		Expect(c.Halted()).To(BeTrue())
		Expect(c.Stats().Cycles).To(Equal(uint64(23)))
	})

	It("should stop with the emulator's error", func() {
		emulator = emu.NewEmulator(emu.WithMaxInstructions(2))
		load([]byte{0xEB, 0xFE}) // JMP $
		c := build()

		stats, err := c.Run()
		Expect(err).To(MatchError(emu.ErrMaxInstructions))
		Expect(c.Err()).To(MatchError(emu.ErrMaxInstructions))
		Expect(stats.Instructions).To(Equal(uint64(2)))
	})

	It("should charge the bus cache when enabled", func() {
		config.CacheEnabled = true
		load(haltProgram)
		c := build()

		stats, err := c.Run()
		Expect(err).NotTo(HaveOccurred())

		// All three fetches fall in one 16-byte line.
		Expect(stats.CacheCycles).To(Equal(uint64(4)))
		Expect(stats.Cycles).To(Equal(uint64(27)))

		cacheStats, ok := c.CacheStats()
		Expect(ok).To(BeTrue())
		Expect(cacheStats.Reads).To(Equal(uint64(3)))
		Expect(cacheStats.Hits).To(Equal(uint64(2)))
		Expect(cacheStats.Misses).To(Equal(uint64(1)))
	})

	It("should charge the bus cache for memory operands", func() {
		config.CacheEnabled = true
		load([]byte{
			0x89, 0x07, // MOV [BX],AX
			0xEA, 0x00, 0x00, 0x00, 0x00,
		})
		emulator.RegFile().Write16(insts.RegDS, 0x2000)
		c := build()

		stats, err := c.Run()
		Expect(err).NotTo(HaveOccurred())

		// Fetch miss, operand miss, then a fetch hit in the first line.
		Expect(stats.CacheCycles).To(Equal(uint64(8)))
		Expect(stats.Cycles).To(Equal(uint64(12 + 8 + 15)))

		cacheStats, _ := c.CacheStats()
		Expect(cacheStats.Reads).To(Equal(uint64(3)))
		Expect(cacheStats.Hits).To(Equal(uint64(1)))
		Expect(cacheStats.Misses).To(Equal(uint64(2)))
	})

	It("should have no cache by default", func() {
		_, ok := build().CacheStats()
		Expect(ok).To(BeFalse())
	})

	It("should reset core state", func() {
		load(haltProgram)
		c := build()
		c.RunCycles(100)

		c.Reset()

		stats := c.Stats()
		Expect(stats.Cycles).To(BeZero())
		Expect(stats.Instructions).To(BeZero())
		Expect(c.Halted()).To(BeFalse())
	})
})
