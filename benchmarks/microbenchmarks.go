package benchmarks

import (
	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/insts"
)

// GetMicrobenchmarks returns the standard set of 8086 microbenchmarks.
// Each benchmark targets one instruction class of the timing model.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		loopCountdown(),
		memoryRoundTrip(),
		functionCalls(),
		branchTaken(),
		stringCopy(),
		multiplyDivide(),
		stackTraffic(),
	}
}

// GetCoreBenchmarks returns a minimal set of 3 core benchmarks for quick
// validation: a loop, calls and a string copy.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		loopCountdown(),
		functionCalls(),
		stringCopy(),
	}
}

// 1. Arithmetic Sequential - register ALU throughput
func arithmeticSequential() Benchmark {
	parts := make([][]byte, 0, 21)
	for i := 0; i < 20; i++ {
		parts = append(parts, EncodeINC(insts.RegAX))
	}
	parts = append(parts, EncodeHalt())

	return Benchmark{
		Name:        "arithmetic_sequential",
		Description: "20 INC AX - register ALU cost",
		Program:     BuildProgram(parts...),
		ExpectedAX:  20,
	}
}

// 2. Loop Countdown - LOOP taken 99 times, then falls through
func loopCountdown() Benchmark {
	return Benchmark{
		Name:        "loop_countdown",
		Description: "100 iterations of INC AX / LOOP",
		Program: BuildProgram(
			EncodeMOVImm(insts.RegCX, 100),
			EncodeINC(insts.RegAX),
			EncodeLOOP(-3),
			EncodeHalt(),
		),
		ExpectedAX: 100,
	}
}

// 3. Memory Round Trip - store, load and combine through [BX]
func memoryRoundTrip() Benchmark {
	return Benchmark{
		Name:        "memory_round_trip",
		Description: "MOV [BX],AX / MOV CX,[BX] / ADD AX,CX",
		Setup: func(e *emu.Emulator) {
			e.RegFile().Write16(insts.RegDS, 0x2000)
		},
		Program: BuildProgram(
			EncodeMOVImm(insts.RegBX, 0x0100),
			EncodeMOVImm(insts.RegAX, 0x1234),
			EncodeStore(insts.RegAX),
			EncodeLoad(insts.RegCX),
			EncodeALUReg(OpADD, insts.RegAX, insts.RegCX),
			EncodeHalt(),
		),
		ExpectedAX: 0x2468,
	}
}

// 4. Function Calls - CALL/RET pairs
func functionCalls() Benchmark {
	const calls = 5
	// The subroutine follows the calls and the halt.
	sub := int16(calls*3 + 5)

	parts := make([][]byte, 0, calls+3)
	for i := int16(0); i < calls; i++ {
		parts = append(parts, EncodeCALL(sub-(i*3+3)))
	}
	parts = append(parts,
		EncodeHalt(),
		EncodeINC(insts.RegAX),
		EncodeRET(),
	)

	return Benchmark{
		Name:        "function_calls",
		Description: "5 CALLs to INC AX / RET",
		Program:     BuildProgram(parts...),
		ExpectedAX:  calls,
	}
}

// 5. Branch Taken - Jcc taken 49 times, then falls through
func branchTaken() Benchmark {
	return Benchmark{
		Name:        "branch_taken",
		Description: "50 iterations of INC AX / DEC CX / JNZ",
		Program: BuildProgram(
			EncodeMOVImm(insts.RegCX, 50),
			EncodeINC(insts.RegAX),
			EncodeDEC(insts.RegCX),
			EncodeJcc(CondNZ, -4),
			EncodeHalt(),
		),
		ExpectedAX: 50,
	}
}

// 6. String Copy - REP MOVSB of 64 bytes
func stringCopy() Benchmark {
	return Benchmark{
		Name:        "string_copy",
		Description: "REP MOVSB of 64 bytes, AX = final DI",
		Setup: func(e *emu.Emulator) {
			rf := e.RegFile()
			rf.Write16(insts.RegDS, 0x2000)
			rf.Write16(insts.RegES, 0x2000)
		},
		Program: BuildProgram(
			EncodeMOVImm(insts.RegCX, 64),
			EncodeMOVImm(insts.RegSI, 0x0000),
			EncodeMOVImm(insts.RegDI, 0x0100),
			EncodeREPMOVSB(),
			EncodeMOVReg(insts.RegAX, insts.RegDI),
			EncodeHalt(),
		),
		ExpectedAX: 0x0140,
	}
}

// 7. Multiply Divide - MUL then DIV by the same register
func multiplyDivide() Benchmark {
	return Benchmark{
		Name:        "multiply_divide",
		Description: "MUL BX / DIV BX - the slowest ALU operations",
		Program: BuildProgram(
			EncodeMOVImm(insts.RegAX, 1000),
			EncodeMOVImm(insts.RegBX, 7),
			EncodeMUL(insts.RegBX),
			EncodeDIV(insts.RegBX),
			EncodeHalt(),
		),
		ExpectedAX: 1000,
	}
}

// 8. Stack Traffic - PUSH/POP round trips that double AX
func stackTraffic() Benchmark {
	parts := [][]byte{EncodeMOVImm(insts.RegAX, 1)}
	for i := 0; i < 3; i++ {
		parts = append(parts,
			EncodePUSH(insts.RegAX),
			EncodePOP(insts.RegBX),
			EncodeALUReg(OpADD, insts.RegAX, insts.RegBX),
		)
	}
	parts = append(parts, EncodeHalt())

	return Benchmark{
		Name:        "stack_traffic",
		Description: "3 rounds of PUSH AX / POP BX / ADD AX,BX",
		Program:     BuildProgram(parts...),
		ExpectedAX:  8,
	}
}
