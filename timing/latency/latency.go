// Package latency provides instruction timing models for cycle-approximate
// simulation.
//
// The cycle costs approximate the Intel 8086 and can be configured via
// TimingConfig.
package latency

import (
	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/insts"
)

// Table provides instruction cycle lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default 8086 timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// Cycles returns the cost in cycles of an executed instruction. Memory
// operands add the effective address cost and string instructions add a
// per-element cost. Bus cache effects are not included.
func (t *Table) Cycles(r emu.StepResult) uint64 {
	c := t.config
	cycles := t.baseCycles(r)

	if r.MemOperand {
		cycles += c.EffectiveAddressCycles
	}

	if t.IsStringOp(r.Op) {
		cycles += uint64(r.Iterations) * c.StringElementCycles
	}

	return cycles
}

func (t *Table) baseCycles(r emu.StepResult) uint64 {
	c := t.config

	switch r.Op {
	case insts.OpCondJump, insts.OpLoop:
		if r.Taken {
			return c.BranchTakenCycles
		}
		return c.BranchNotTakenCycles

	case insts.OpJmpCall:
		// E8 is CALL rel16. E9, EA and EB are jumps.
		if r.Opcode == 0xE8 {
			return c.CallCycles
		}
		return c.JumpCycles

	case insts.OpCallFar:
		return c.CallCycles

	case insts.OpReturn:
		return c.ReturnCycles

	case insts.OpGroupIncDec:
		switch r.Ext {
		case 2, 3:
			return c.CallCycles
		case 4, 5:
			return c.JumpCycles
		case 6:
			return c.StackCycles
		}
		return c.RegisterCycles

	case insts.OpGroupMulDiv:
		switch r.Ext {
		case 0, 1:
			return c.ImmediateCycles
		case 4, 5:
			return c.MultiplyCycles
		case 6, 7:
			return c.DivideCycles
		}
		return c.RegisterCycles

	case insts.OpMovRegImm, insts.OpALUAccImm, insts.OpALURMImm,
		insts.OpMovRMImm, insts.OpTestAccImm:
		return c.ImmediateCycles

	case insts.OpMovAccMem, insts.OpXlat, insts.OpLoadFarPtr:
		return c.MemoryCycles

	case insts.OpPushReg, insts.OpPopReg, insts.OpPushSeg, insts.OpPopSeg,
		insts.OpPushf, insts.OpPopf:
		return c.StackCycles

	case insts.OpShiftRotate:
		return c.ShiftCycles

	case insts.OpStringMove, insts.OpStringCompare:
		return c.StringBaseCycles

	case insts.OpInt, insts.OpInt3, insts.OpInto:
		return c.InterruptCycles

	case insts.OpAAM, insts.OpAAD:
		return c.ASCIIMulDivCycles

	case insts.OpDecimalAdjust, insts.OpASCIIAdjust:
		return c.DecimalCycles

	case insts.OpCBW, insts.OpCWD, insts.OpSahf, insts.OpLahf,
		insts.OpSalc, insts.OpCmc, insts.OpFlagSet:
		return c.FlagCycles

	case insts.OpIn, insts.OpOut:
		return c.IOCycles

	case insts.OpRep, insts.OpSegOverride:
		return c.PrefixCycles

	case insts.OpEscape:
		return c.ServiceCycles

	default:
		return c.RegisterCycles
	}
}

// IsMemoryOp returns true if the instruction touches memory other than
// through its r/m operand.
func (t *Table) IsMemoryOp(op insts.Op) bool {
	switch op {
	case insts.OpMovAccMem, insts.OpXlat, insts.OpLoadFarPtr,
		insts.OpStringMove, insts.OpStringCompare,
		insts.OpPushReg, insts.OpPopReg, insts.OpPushSeg, insts.OpPopSeg,
		insts.OpPushf, insts.OpPopf:
		return true
	default:
		return false
	}
}

// IsStringOp returns true if the instruction is a string primitive.
func (t *Table) IsStringOp(op insts.Op) bool {
	return op == insts.OpStringMove || op == insts.OpStringCompare
}

// IsBranchOp returns true if the instruction transfers control.
func (t *Table) IsBranchOp(op insts.Op) bool {
	switch op {
	case insts.OpCondJump, insts.OpLoop, insts.OpJmpCall, insts.OpCallFar,
		insts.OpReturn, insts.OpInt, insts.OpInt3, insts.OpInto:
		return true
	default:
		return false
	}
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
