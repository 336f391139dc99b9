// Package main provides accuracy validation for the timing model.
// Ensures that timing-mode execution produces the same architectural
// results as functional execution.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/tiny86/benchmarks"
	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/insts"
)

// testInstructionDecoding validates that Decode and DecodeInto agree.
func testInstructionDecoding() bool {
	decoder := insts.NewDecoder()

	testCases := [][]byte{
		{0x01, 0xD8},                         // ADD AX,BX
		{0x8B, 0x87, 0x34, 0x12},             // MOV AX,[BX+1234]
		{0xC7, 0x06, 0x00, 0x01, 0xCD, 0xAB}, // MOV WORD [0100],ABCD
		{0xF6, 0xF3},                         // DIV BL
		{0x0F, 0x01},                         // emulator service
	}

	fmt.Println("Testing instruction decoder accuracy...")

	for i, stream := range testCases {
		inst1 := decoder.Decode(stream)

		var inst2 insts.Instruction
		decoder.DecodeInto(&inst2, stream)

		if *inst1 != inst2 {
			fmt.Printf("❌ Test case %d failed: Decode mismatch\n", i)
			fmt.Printf("  Decode():     %+v\n", *inst1)
			fmt.Printf("  DecodeInto(): %+v\n", inst2)
			return false
		}

		fmt.Printf("✅ Test case %d: % x decoded as %v\n", i, stream, inst1.Op)
	}

	return true
}

// runFunctional runs a benchmark program on the functional emulator only.
func runFunctional(b benchmarks.Benchmark) (uint16, error) {
	e := emu.NewEmulator(
		emu.WithStdout(io.Discard),
		emu.WithMaxInstructions(1_000_000),
	)

	rf := e.RegFile()
	rf.Write16(insts.RegCS, benchmarks.CodeSegment)
	rf.Write16(insts.RegSS, benchmarks.StackSegment)
	rf.Write16(insts.RegSP, benchmarks.StackTop)
	if b.Setup != nil {
		b.Setup(e)
	}
	e.Memory().Load(emu.Linear(benchmarks.CodeSegment, 0), b.Program)

	if code := e.Run(); code != emu.ExitHalt {
		return 0, fmt.Errorf("exit code %d", code)
	}
	return rf.Read16(insts.RegAX), nil
}

// testTimingExecution validates that every microbenchmark leaves the same
// AX under the timing core as under the functional emulator.
func testTimingExecution() bool {
	fmt.Println("\nTesting timing-mode execution accuracy...")

	config := benchmarks.DefaultConfig()
	config.Output = io.Discard
	harness := benchmarks.NewHarness(config)

	list := benchmarks.GetMicrobenchmarks()
	harness.AddBenchmarks(list)
	results := harness.RunAll()

	passed := true
	for i, b := range list {
		want, err := runFunctional(b)
		if err != nil {
			fmt.Printf("❌ %s: functional run failed: %v\n", b.Name, err)
			passed = false
			continue
		}

		got := results[i]
		if got.AX != want || !got.Passed {
			fmt.Printf("❌ %s: functional AX=%04x, timing AX=%04x (%s)\n",
				b.Name, want, got.AX, got.Error)
			passed = false
			continue
		}

		fmt.Printf("✅ %s: AX=%04x in %d cycles\n", b.Name, got.AX, got.SimulatedCycles)
	}

	return passed
}

func main() {
	fmt.Println("tiny86 Accuracy Validation - Timing Model")
	fmt.Println("==========================================")

	allPassed := true

	if !testInstructionDecoding() {
		allPassed = false
	}

	if !testTimingExecution() {
		allPassed = false
	}

	fmt.Println("\n==========================================")
	if allPassed {
		fmt.Println("🎉 ALL ACCURACY TESTS PASSED")
		os.Exit(0)
	} else {
		fmt.Println("❌ ACCURACY TESTS FAILED")
		os.Exit(1)
	}
}
