package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds cycle costs for the 8086 instruction classes.
// Values approximate the Intel 8086 datasheet figures at 4.77 MHz.
type TimingConfig struct {
	// ClockMHz is the CPU clock frequency. Default: 4.77 MHz (IBM PC).
	ClockMHz float64 `json:"clock_mhz"`

	// RegisterCycles is the cost of a register-to-register operation
	// (ALU, MOV, XCHG, INC/DEC). Default: 3 cycles.
	RegisterCycles uint64 `json:"register_cycles"`

	// ImmediateCycles is the cost of an operation with an immediate
	// operand. Default: 4 cycles.
	ImmediateCycles uint64 `json:"immediate_cycles"`

	// EffectiveAddressCycles is added whenever the r/m operand is in
	// memory. Covers address calculation and the bus transfer.
	// Default: 9 cycles.
	EffectiveAddressCycles uint64 `json:"effective_address_cycles"`

	// MemoryCycles is the cost of a direct memory move such as
	// MOV AL,[moffs], XLAT or LES/LDS. Default: 10 cycles.
	MemoryCycles uint64 `json:"memory_cycles"`

	// StackCycles is the cost of PUSH, POP, PUSHF and POPF.
	// Default: 11 cycles.
	StackCycles uint64 `json:"stack_cycles"`

	// BranchTakenCycles is the cost of a taken Jcc or LOOP.
	// Default: 16 cycles.
	BranchTakenCycles uint64 `json:"branch_taken_cycles"`

	// BranchNotTakenCycles is the cost of a Jcc or LOOP that falls
	// through. Default: 4 cycles.
	BranchNotTakenCycles uint64 `json:"branch_not_taken_cycles"`

	// JumpCycles is the cost of an unconditional JMP. Default: 15 cycles.
	JumpCycles uint64 `json:"jump_cycles"`

	// CallCycles is the cost of CALL, near or far. Default: 19 cycles.
	CallCycles uint64 `json:"call_cycles"`

	// ReturnCycles is the cost of RET, RETF and IRET. Default: 20 cycles.
	ReturnCycles uint64 `json:"return_cycles"`

	// InterruptCycles is the cost of INT, INT 3 and INTO.
	// Default: 51 cycles.
	InterruptCycles uint64 `json:"interrupt_cycles"`

	// MultiplyCycles is the cost of MUL and IMUL. Default: 118 cycles.
	MultiplyCycles uint64 `json:"multiply_cycles"`

	// DivideCycles is the cost of DIV and IDIV. Default: 144 cycles.
	DivideCycles uint64 `json:"divide_cycles"`

	// ASCIIMulDivCycles is the cost of AAM and AAD. Default: 70 cycles.
	ASCIIMulDivCycles uint64 `json:"ascii_mul_div_cycles"`

	// ShiftCycles is the cost of a shift or rotate. Default: 8 cycles.
	ShiftCycles uint64 `json:"shift_cycles"`

	// StringBaseCycles is the setup cost of a string instruction.
	// Default: 9 cycles.
	StringBaseCycles uint64 `json:"string_base_cycles"`

	// StringElementCycles is the cost of each element a string
	// instruction processes. Default: 17 cycles.
	StringElementCycles uint64 `json:"string_element_cycles"`

	// IOCycles is the cost of IN and OUT. Default: 10 cycles.
	IOCycles uint64 `json:"io_cycles"`

	// FlagCycles is the cost of flag and accumulator one-byte operations
	// (CLC, STC, CMC, LAHF, SAHF, CBW, CWD, SALC). Default: 2 cycles.
	FlagCycles uint64 `json:"flag_cycles"`

	// DecimalCycles is the cost of DAA, DAS, AAA and AAS.
	// Default: 4 cycles.
	DecimalCycles uint64 `json:"decimal_cycles"`

	// PrefixCycles is the cost of a segment override or REP prefix.
	// Default: 2 cycles.
	PrefixCycles uint64 `json:"prefix_cycles"`

	// ServiceCycles is the cost of an emulator service escape (0F xx).
	// Default: 1 cycle (handling is external).
	ServiceCycles uint64 `json:"service_cycles"`

	// CacheEnabled puts a bus cache in front of memory operands and
	// code fetches. Default: false (the PC/XT had none).
	CacheEnabled bool `json:"cache_enabled"`

	// CacheHitCycles is added for a memory access that hits the bus
	// cache. Default: 0 cycles.
	CacheHitCycles uint64 `json:"cache_hit_cycles"`

	// CacheMissCycles is added for a memory access that misses the bus
	// cache. Default: 4 cycles (one bus cycle).
	CacheMissCycles uint64 `json:"cache_miss_cycles"`
}

// DefaultTimingConfig returns a TimingConfig with 8086 default values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		ClockMHz:               4.77,
		RegisterCycles:         3,
		ImmediateCycles:        4,
		EffectiveAddressCycles: 9,
		MemoryCycles:           10,
		StackCycles:            11,
		BranchTakenCycles:      16,
		BranchNotTakenCycles:   4,
		JumpCycles:             15,
		CallCycles:             19,
		ReturnCycles:           20,
		InterruptCycles:        51,
		MultiplyCycles:         118,
		DivideCycles:           144,
		ASCIIMulDivCycles:      70,
		ShiftCycles:            8,
		StringBaseCycles:       9,
		StringElementCycles:    17,
		IOCycles:               10,
		FlagCycles:             2,
		DecimalCycles:          4,
		PrefixCycles:           2,
		ServiceCycles:          1,
		CacheEnabled:           false,
		CacheHitCycles:         0,
		CacheMissCycles:        4,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from
// the file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that the clock is positive, that every instruction
// class costs at least one cycle and that taken branches cost no less
// than fall-through ones.
func (c *TimingConfig) Validate() error {
	if c.ClockMHz <= 0 {
		return fmt.Errorf("clock_mhz must be > 0")
	}

	for name, v := range map[string]uint64{
		"register_cycles":         c.RegisterCycles,
		"immediate_cycles":        c.ImmediateCycles,
		"memory_cycles":           c.MemoryCycles,
		"stack_cycles":            c.StackCycles,
		"branch_not_taken_cycles": c.BranchNotTakenCycles,
		"jump_cycles":             c.JumpCycles,
		"call_cycles":             c.CallCycles,
		"return_cycles":           c.ReturnCycles,
		"interrupt_cycles":        c.InterruptCycles,
		"multiply_cycles":         c.MultiplyCycles,
		"divide_cycles":           c.DivideCycles,
		"ascii_mul_div_cycles":    c.ASCIIMulDivCycles,
		"shift_cycles":            c.ShiftCycles,
		"string_base_cycles":      c.StringBaseCycles,
		"io_cycles":               c.IOCycles,
		"flag_cycles":             c.FlagCycles,
		"decimal_cycles":          c.DecimalCycles,
		"prefix_cycles":           c.PrefixCycles,
		"service_cycles":          c.ServiceCycles,
	} {
		if v == 0 {
			return fmt.Errorf("%s must be > 0", name)
		}
	}

	if c.BranchTakenCycles < c.BranchNotTakenCycles {
		return fmt.Errorf("branch_taken_cycles must be >= branch_not_taken_cycles")
	}
	if c.CacheEnabled && c.CacheMissCycles < c.CacheHitCycles {
		return fmt.Errorf("cache_miss_cycles must be >= cache_hit_cycles")
	}

	return nil
}

// Clone returns a copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
