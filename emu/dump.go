package emu

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/tiny86/insts"
)

// DumpState writes the registers, flags and execution counters as tables.
func (e *Emulator) DumpState(w io.Writer) {
	rf := e.regFile

	regTable := table.NewWriter()
	regTable.SetOutputMirror(w)
	regTable.SetTitle(fmt.Sprintf("Registers @ %04x:%04x",
		rf.Read16(insts.RegCS), rf.IP))
	regTable.AppendHeader(table.Row{"AX", "BX", "CX", "DX", "SP", "BP", "SI", "DI"})

	row := make(table.Row, 0, 8)
	for _, r := range []insts.Reg{
		insts.RegAX, insts.RegBX, insts.RegCX, insts.RegDX,
		insts.RegSP, insts.RegBP, insts.RegSI, insts.RegDI,
	} {
		row = append(row, fmt.Sprintf("%04x", rf.Read16(r)))
	}
	regTable.AppendRow(row)
	regTable.AppendSeparator()
	regTable.AppendRow(table.Row{
		"ES", fmt.Sprintf("%04x", rf.Read16(insts.RegES)),
		"CS", fmt.Sprintf("%04x", rf.Read16(insts.RegCS)),
		"SS", fmt.Sprintf("%04x", rf.Read16(insts.RegSS)),
		"DS", fmt.Sprintf("%04x", rf.Read16(insts.RegDS)),
	})
	regTable.Render()

	flagTable := table.NewWriter()
	flagTable.SetOutputMirror(w)
	flagTable.SetTitle(fmt.Sprintf("Flags %04x", rf.Flags()))

	header := make(table.Row, 0, insts.FlagCount)
	values := make(table.Row, 0, insts.FlagCount)
	for i := 0; i < insts.FlagCount; i++ {
		f := insts.FlagCF + insts.Flag(i)
		header = append(header, f.String())
		values = append(values, rf.Flag(f))
	}
	flagTable.AppendHeader(header)
	flagTable.AppendRow(values)
	flagTable.Render()

	countTable := table.NewWriter()
	countTable.SetOutputMirror(w)
	countTable.AppendRows([]table.Row{
		{"Instructions", e.instructionCount},
		{"Segment override", e.segOverrideEn},
		{"REP", e.repOverrideEn},
		{"Timer pending", e.timerPending},
	})
	countTable.Render()
}
