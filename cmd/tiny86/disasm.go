package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/tiny86/insts"
)

func newDisasmCmd() *cobra.Command {
	var offset uint16
	var count int

	cmd := &cobra.Command{
		Use:   "disasm file",
		Short: "Disassemble 16-bit code from a binary file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return disassemble(cmd.OutOrStdout(), code, offset, count)
		},
	}

	cmd.Flags().Uint16Var(&offset, "offset", 0, "File offset to start at")
	cmd.Flags().IntVar(&count, "count", 32, "Number of instructions")

	return cmd
}

// disassemble lists count instructions of code starting at offset. The
// offset doubles as the IP of the first instruction.
func disassemble(w io.Writer, code []byte, offset uint16, count int) error {
	if int(offset) >= len(code) {
		return fmt.Errorf("offset %#x is past the end of the %d-byte file", offset, len(code))
	}

	for _, line := range insts.DisassembleAll(code[offset:], offset, count) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
