// Package insts provides 8086 instruction definitions and decoding.
//
// Every raw opcode byte maps, through a fixed table, to a semantic opcode
// (Op) shared by related encodings, a sub-function id, a flags-update policy
// and the sizes needed to compute the instruction length:
//   - all eight ALU r/m,imm forms route to OpALURMImm
//   - the sixteen Jcc forms route to OpCondJump, selected by condition class
//   - MOVS/STOS/LODS route to OpStringMove, told apart by Sub
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode([]byte{0xB8, 0x34, 0x12}) // MOV AX, 0x1234
//	fmt.Printf("Op: %v, W: %v, Data0: %#x\n", inst.Op, inst.W, inst.Data0)
package insts
