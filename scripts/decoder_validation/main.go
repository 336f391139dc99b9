// Validate decoder allocations - measures DecodeInto and emulator step cost
package main

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/insts"
)

func main() {
	streams := [][]byte{
		{0x01, 0xD8},                   // ADD AX,BX
		{0x8B, 0x47, 0x04},             // MOV AX,[BX+4]
		{0x81, 0x86, 0x34, 0x12, 0x01}, // ADD WORD [BP+1234],imm
		{0xF3, 0xA4},                   // REP MOVSB
	}

	decoder := insts.NewDecoder()
	var inst insts.Instruction

	// Warm up
	for i := 0; i < 1000; i++ {
		decoder.DecodeInto(&inst, streams[i%len(streams)])
	}

	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	iterations := 100000

	for i := 0; i < iterations; i++ {
		for _, s := range streams {
			decoder.DecodeInto(&inst, s)
		}
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	totalDecodes := iterations * len(streams)
	allocations := m2.Mallocs - m1.Mallocs

	fmt.Printf("Decoder Allocation Validation Results:\n")
	fmt.Printf("======================================\n")
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))

	// Step throughput on a tight loop: INC AX / JMP -3.
	e := emu.NewEmulator(emu.WithStdout(io.Discard))
	e.Memory().Load(emu.Linear(0x1000, 0), []byte{0x40, 0xEB, 0xFD})
	e.RegFile().Write16(insts.RegCS, 0x1000)

	steps := 1_000_000
	runtime.ReadMemStats(&m1)
	start = time.Now()
	for i := 0; i < steps; i++ {
		e.Step()
	}
	elapsed = time.Since(start)
	runtime.ReadMemStats(&m2)

	stepAllocs := float64(m2.Mallocs-m1.Mallocs) / float64(steps)
	fmt.Printf("\nSteps per second: %.0f\n", float64(steps)/elapsed.Seconds())
	fmt.Printf("Allocations per step: %.3f\n", stepAllocs)

	if allocations == 0 && stepAllocs < 0.01 {
		fmt.Printf("\n✅ SUCCESS: Decode and step loop are allocation-free.\n")
	} else {
		fmt.Printf("\n⚠️  WARNING: Allocations detected on the hot path\n")
	}
}
