// Package benchmarks provides timing benchmark infrastructure for tiny86
// calibration.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/insts"
	"github.com/sarchlab/tiny86/timing/core"
	"github.com/sarchlab/tiny86/timing/latency"
)

// Programs load at CodeSegment:0000 with the stack at StackSegment:StackTop.
const (
	CodeSegment  = 0x1000
	StackSegment = 0x3000
	StackTop     = 0x0100
)

// BenchmarkResult holds the timing results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// SimulatedCycles is the total cycle count from the timing model
	SimulatedCycles uint64 `json:"simulated_cycles"`

	// InstructionsRetired is the number of completed instructions
	InstructionsRetired uint64 `json:"instructions_retired"`

	// CPI is cycles per instruction
	CPI float64 `json:"cpi"`

	// StallCycles is the number of cycles spent in multi-cycle instructions
	StallCycles uint64 `json:"stall_cycles"`

	// CacheHits/Misses (if cache enabled)
	CacheHits   uint64 `json:"cache_hits,omitempty"`
	CacheMisses uint64 `json:"cache_misses,omitempty"`

	// SimulatedTime is the cycle count at the configured clock
	SimulatedTime time.Duration `json:"simulated_time_ns"`

	// AX is the accumulator when the program halted
	AX uint16 `json:"ax"`

	// Passed is true if AX matched the benchmark's expected value and the
	// program halted cleanly
	Passed bool `json:"passed"`

	// Error is set if the emulator stopped on an error
	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup prepares the emulator state (e.g., segment registers, memory)
	Setup func(e *emu.Emulator)

	// Program is the 8086 machine code to execute. It must end by jumping
	// to 0000:0000.
	Program []byte

	// ExpectedAX is the accumulator value on halt (for validation)
	ExpectedAX uint16
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Timing holds the cycle costs. Nil means the 8086 defaults.
	Timing *latency.TimingConfig

	// EnableCache enables the bus cache model
	EnableCache bool

	// MaxInstructions bounds each benchmark (0 means no limit)
	MaxInstructions uint64

	// Output is where to write results (default: os.Stdout)
	Output io.Writer
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Timing:          latency.DefaultTimingConfig(),
		MaxInstructions: 1_000_000,
		Output:          os.Stdout,
	}
}

// Harness runs timing benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Timing == nil {
		config.Timing = latency.DefaultTimingConfig()
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		results = append(results, h.runBenchmark(bench))
	}

	return results
}

// runBenchmark executes a single benchmark on a fresh machine.
func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	emulator := emu.NewEmulator(
		emu.WithStdout(io.Discard),
		emu.WithMaxInstructions(h.config.MaxInstructions),
	)

	rf := emulator.RegFile()
	rf.Write16(insts.RegCS, CodeSegment)
	rf.IP = 0
	rf.Write16(insts.RegSS, StackSegment)
	rf.Write16(insts.RegSP, StackTop)

	if bench.Setup != nil {
		bench.Setup(emulator)
	}

	emulator.Memory().Load(emu.Linear(CodeSegment, 0), bench.Program)

	timingConfig := h.config.Timing.Clone()
	timingConfig.CacheEnabled = timingConfig.CacheEnabled || h.config.EnableCache

	c := core.NewBuilder().
		WithTimingConfig(timingConfig).
		Build("CPU", emulator)

	start := time.Now()
	stats, err := c.Run()
	wallTime := time.Since(start)

	result := BenchmarkResult{
		Name:                bench.Name,
		Description:         bench.Description,
		SimulatedCycles:     stats.Cycles,
		InstructionsRetired: stats.Instructions,
		CPI:                 stats.CPI(),
		StallCycles:         stats.Stalls,
		SimulatedTime:       stats.SimulatedTime,
		AX:                  rf.Read16(insts.RegAX),
		WallTime:            wallTime,
	}

	if err != nil {
		result.Error = err.Error()
	}
	result.Passed = err == nil && emulator.Halted() && result.AX == bench.ExpectedAX

	if cacheStats, ok := c.CacheStats(); ok {
		result.CacheHits = cacheStats.Hits
		result.CacheMisses = cacheStats.Misses
	}

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	out := h.config.Output

	_, _ = fmt.Fprintln(out, "=== tiny86 Timing Benchmark Results ===")
	_, _ = fmt.Fprintln(out, "")

	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}

		_, _ = fmt.Fprintf(out, "Benchmark: %s [%s]\n", r.Name, status)
		_, _ = fmt.Fprintf(out, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(out, "  AX: %04x\n", r.AX)
		if r.Error != "" {
			_, _ = fmt.Fprintf(out, "  Error: %s\n", r.Error)
		}
		_, _ = fmt.Fprintln(out, "  --- Timing ---")
		_, _ = fmt.Fprintf(out, "  Simulated Cycles:     %d\n", r.SimulatedCycles)
		_, _ = fmt.Fprintf(out, "  Instructions Retired: %d\n", r.InstructionsRetired)
		_, _ = fmt.Fprintf(out, "  CPI:                  %.3f\n", r.CPI)
		_, _ = fmt.Fprintf(out, "  Stall Cycles:         %d\n", r.StallCycles)
		_, _ = fmt.Fprintf(out, "  Simulated Time:       %v\n", r.SimulatedTime)

		if r.CacheHits > 0 || r.CacheMisses > 0 {
			_, _ = fmt.Fprintln(out, "  --- Bus Cache ---")
			_, _ = fmt.Fprintf(out, "  Hits:   %d\n", r.CacheHits)
			_, _ = fmt.Fprintf(out, "  Misses: %d\n", r.CacheMisses)
		}

		_, _ = fmt.Fprintf(out, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(out, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,cycles,instructions,cpi,stalls,cache_hits,cache_misses,ax,passed")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%d,%d,%d,%04x,%t\n",
			r.Name,
			r.SimulatedCycles,
			r.InstructionsRetired,
			r.CPI,
			r.StallCycles,
			r.CacheHits,
			r.CacheMisses,
			r.AX,
			r.Passed,
		)
	}
}

// PrintTable outputs benchmark results as a table.
func (h *Harness) PrintTable(results []BenchmarkResult) {
	t := table.NewWriter()
	t.SetOutputMirror(h.config.Output)
	t.SetTitle("tiny86 benchmarks")
	t.AppendHeader(table.Row{"Benchmark", "Cycles", "Insts", "CPI", "Time", "AX", "Result"})

	var totalCycles, totalInstructions uint64
	for _, r := range results {
		status := "pass"
		if !r.Passed {
			status = "FAIL"
		}

		t.AppendRow(table.Row{
			r.Name,
			r.SimulatedCycles,
			r.InstructionsRetired,
			fmt.Sprintf("%.2f", r.CPI),
			r.SimulatedTime,
			fmt.Sprintf("%04x", r.AX),
			status,
		})

		totalCycles += r.SimulatedCycles
		totalInstructions += r.InstructionsRetired
	}

	t.AppendFooter(table.Row{"Total", totalCycles, totalInstructions})
	t.Render()
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	// Timestamp when the benchmark was run
	Timestamp string `json:"timestamp"`

	// Timing is the timing configuration used
	Timing *latency.TimingConfig `json:"timing"`

	// CacheEnabled is true if the bus cache model was on
	CacheEnabled bool `json:"cache_enabled"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	// TotalBenchmarks is the number of benchmarks run
	TotalBenchmarks int `json:"total_benchmarks"`

	// Passed is the number of benchmarks whose result matched
	Passed int `json:"passed"`

	// TotalCycles is the sum of all simulated cycles
	TotalCycles uint64 `json:"total_cycles"`

	// TotalInstructions is the sum of all instructions retired
	TotalInstructions uint64 `json:"total_instructions"`

	// AverageCPI is the average cycles per instruction
	AverageCPI float64 `json:"average_cpi"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	summary := ReportSummary{TotalBenchmarks: len(results)}
	for _, r := range results {
		summary.TotalCycles += r.SimulatedCycles
		summary.TotalInstructions += r.InstructionsRetired
		summary.TotalWallTime += r.WallTime
		if r.Passed {
			summary.Passed++
		}
	}

	if summary.TotalInstructions > 0 {
		summary.AverageCPI = float64(summary.TotalCycles) / float64(summary.TotalInstructions)
	}

	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
			Timing:       h.config.Timing,
			CacheEnabled: h.config.EnableCache || h.config.Timing.CacheEnabled,
		},
		Results: results,
		Summary: summary,
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
