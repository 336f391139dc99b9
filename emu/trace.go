package emu

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sarchlab/tiny86/insts"
)

// LevelTrace is the log level of per-instruction trace records.
const LevelTrace slog.Level = slog.LevelDebug - 4

// traceStep logs the instruction about to execute.
func (e *Emulator) traceStep(cs, ip uint16) {
	ctx := context.Background()
	if !e.logger.Enabled(ctx, LevelTrace) {
		return
	}

	text, _ := insts.Disassemble(e.fetchBuf[:], ip)
	rf := e.regFile

	e.logger.Log(ctx, LevelTrace, "step",
		"n", e.instructionCount,
		"at", fmt.Sprintf("%04x:%04x", cs, ip),
		"inst", text,
		"op", e.inst.Op,
		"ax", fmt.Sprintf("%04x", rf.Read16(insts.RegAX)),
		"bx", fmt.Sprintf("%04x", rf.Read16(insts.RegBX)),
		"cx", fmt.Sprintf("%04x", rf.Read16(insts.RegCX)),
		"dx", fmt.Sprintf("%04x", rf.Read16(insts.RegDX)),
		"sp", fmt.Sprintf("%04x", rf.Read16(insts.RegSP)),
		"flags", FlagString(rf.Flags()),
	)
}

// FlagString renders a FLAGS word as the set flags' names, for example
// "ZF|IF".
func FlagString(word uint16) string {
	var set []string
	for i, pos := range insts.FlagBitPositions {
		if word&(1<<pos) != 0 {
			set = append(set, (insts.FlagCF + insts.Flag(i)).String())
		}
	}

	if len(set) == 0 {
		return "-"
	}
	return strings.Join(set, "|")
}
