package insts

import (
	"fmt"
	"strings"

	"golang.org/x/arch/x86/x86asm"
)

// Disassemble renders the 16-bit instruction at the start of code in Intel
// syntax and returns its length. pc is the offset of code within its
// segment and is used to resolve relative branch targets. Undecodable bytes
// render as a single "db" byte.
func Disassemble(code []byte, pc uint16) (string, int) {
	if len(code) == 0 {
		return "", 0
	}

	if code[0] == 0x0F && len(code) > 1 {
		return fmt.Sprintf("escape 0x%02x", code[1]), 2
	}

	inst, err := x86asm.Decode(code, 16)
	if err != nil || inst.Len == 0 {
		return fmt.Sprintf("db 0x%02x", code[0]), 1
	}

	return strings.ToLower(x86asm.IntelSyntax(inst, uint64(pc), nil)), inst.Len
}

// DisassembleAll disassembles up to count instructions starting at pc.
func DisassembleAll(code []byte, pc uint16, count int) []string {
	lines := make([]string, 0, count)
	offset := 0
	for i := 0; i < count && offset < len(code); i++ {
		text, n := Disassemble(code[offset:], pc+uint16(offset))
		lines = append(lines, fmt.Sprintf("%04x  % -14x  %s", pc+uint16(offset), code[offset:offset+n], text))
		offset += n
	}
	return lines
}
