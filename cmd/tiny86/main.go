// Command tiny86 boots an 8086 BIOS image, optionally with floppy and hard
// disk images, and runs it functionally or under the timing model.
//
// Usage:
//
//	tiny86 run bios.bin [--fd floppy.img] [--hd hd.img] [--raw]
//	tiny86 run bios.bin --timing [--config timing.json]
//	tiny86 disasm file.bin [--offset n] [--count n]
//	tiny86 config default > timing.json
//	tiny86 bench [--csv | --json | --table]
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/tiny86/emu"
)

func main() {
	var logLevel string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "tiny86",
		Short:         "A tiny 8086 PC emulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logLevel = "debug"
			}

			level, err := parseLevel(logLevel)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
				&slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Log level: trace, debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Shorthand for --log-level debug")

	rootCmd.AddCommand(
		newRunCmd(),
		newDisasmCmd(),
		newConfigCmd(),
		newBenchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// parseLevel maps a level name to a slog level. "trace" enables the
// per-instruction records.
func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "trace":
		return emu.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}
