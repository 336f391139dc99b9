// Package main provides the entry point for tiny86.
// tiny86 is a PC/XT-class 8086 emulator with an optional Akita timing model.
//
// For the full CLI, use: go run ./cmd/tiny86
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("tiny86 - 8086 PC Emulator")
	fmt.Println("Timing model built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: tiny86 run [options] <bios.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  --fd       Floppy disk image")
	fmt.Println("  --hd       Hard disk image")
	fmt.Println("  --timing   Enable timing simulation mode")
	fmt.Println("  --config   Path to timing configuration JSON file")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/tiny86' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/tiny86' instead.")
	}
}
