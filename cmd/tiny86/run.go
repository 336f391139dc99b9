package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/tiny86/emu"
	"github.com/sarchlab/tiny86/loader"
	"github.com/sarchlab/tiny86/timing/core"
	"github.com/sarchlab/tiny86/timing/latency"
)

// runOptions are the flags of the run command.
type runOptions struct {
	biosPath        string
	floppyPath      string
	hardDiskPath    string
	timing          bool
	configPath      string
	maxInstructions uint64
	timerInterval   uint64
	trace           bool
	raw             bool
	dump            bool
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run bios.bin",
		Short: "Boot a BIOS image",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opts.biosPath = args[0]

			var keys <-chan byte
			if opts.raw {
				console, err := startConsole(os.Stdin)
				if err != nil {
					slog.Warn("raw console unavailable", "err", err)
				} else {
					atexit.Register(console.Stop)
					keys = console.Keys()
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			code, _ := runMachine(ctx, opts, keys, os.Stdout, os.Stderr)
			atexit.Exit(code)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.floppyPath, "fd", "", "Floppy disk image")
	flags.StringVar(&opts.hardDiskPath, "hd", "", "Hard disk image")
	flags.BoolVar(&opts.timing, "timing", false, "Run under the cycle-approximate timing model")
	flags.StringVar(&opts.configPath, "config", "", "Timing configuration JSON file")
	flags.Uint64Var(&opts.maxInstructions, "max-instructions", 0, "Stop after this many instructions (0 = no limit)")
	flags.Uint64Var(&opts.timerInterval, "timer-interval", 0, "Instructions between timer interrupts (0 = default)")
	flags.BoolVar(&opts.trace, "trace", false, "Log every instruction at trace level")
	flags.BoolVar(&opts.raw, "raw", false, "Put the terminal in raw mode and feed keystrokes to the guest")
	flags.BoolVar(&opts.dump, "dump", false, "Print the machine state on exit")

	return cmd
}

// runMachine boots the BIOS described by opts and runs it to completion.
// Guest output goes to stdout and status to stderr. It returns the process
// exit code and the error that stopped the machine, if any.
func runMachine(
	ctx context.Context,
	opts runOptions,
	keys <-chan byte,
	stdout, stderr io.Writer,
) (int, error) {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	img, err := loader.LoadBIOS(opts.biosPath)
	if err != nil {
		_, _ = red.Fprintf(stderr, "Error loading BIOS: %v\n", err)
		return emu.ExitImageLoad, err
	}
	if img.Truncated {
		slog.Warn("BIOS image truncated", "path", img.Path, "kept", len(img.Data))
	}

	disks := emu.NewDiskTable()
	defer func() { _ = disks.Close() }()

	for _, d := range []struct {
		drive byte
		path  string
	}{
		{emu.DriveHardDisk, opts.hardDiskPath},
		{emu.DriveFloppy, opts.floppyPath},
	} {
		if d.path == "" {
			continue
		}

		disk, err := loader.AttachDisk(disks, d.drive, d.path)
		if err != nil {
			_, _ = red.Fprintf(stderr, "Error loading disk: %v\n", err)
			return emu.ExitImageLoad, err
		}
		slog.Info("disk attached",
			"drive", d.drive, "path", disk.Path,
			"sectors", disk.Sectors(), "read_only", disk.ReadOnly)
	}

	hooks := emu.NewDefaultHooks(stdout)
	hooks.SetDisks(disks)
	if keys != nil {
		hooks.SetKeyboard(keys)
	}

	emuOpts := []emu.EmulatorOption{
		emu.WithHooks(hooks),
		emu.WithStdout(stdout),
		emu.WithMaxInstructions(opts.maxInstructions),
		emu.WithTimerInterval(opts.timerInterval),
	}
	if opts.trace {
		emuOpts = append(emuOpts, emu.WithTracer(slog.Default()))
	}

	emulator := emu.NewEmulator(emuOpts...)
	emulator.LoadBIOS(img.Data)

	var code int
	if opts.timing {
		code, err = runTimed(emulator, opts.configPath, stderr)
	} else {
		code, err = emulator.RunContext(ctx)
	}

	if opts.dump {
		emulator.DumpState(stderr)
	}

	if err != nil {
		_, _ = red.Fprintf(stderr, "Stopped after %d instructions: %v\n",
			emulator.InstructionCount(), err)
	} else {
		_, _ = green.Fprintf(stderr, "Halted after %d instructions\n",
			emulator.InstructionCount())
	}

	return code, err
}

// runTimed drives the emulator from the timing core and prints its
// statistics.
func runTimed(emulator *emu.Emulator, configPath string, w io.Writer) (int, error) {
	config := latency.DefaultTimingConfig()
	if configPath != "" {
		var err error
		config, err = latency.LoadConfig(configPath)
		if err != nil {
			return emu.ExitImageLoad, err
		}
	}
	if err := config.Validate(); err != nil {
		return emu.ExitImageLoad, fmt.Errorf("invalid timing config: %w", err)
	}

	c := core.NewBuilder().
		WithTimingConfig(config).
		Build("CPU", emulator)

	stats, err := c.Run()
	printStats(w, stats, c)

	return exitCode(err), err
}

// exitCode maps the error that stopped the machine to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return emu.ExitHalt
	case errors.Is(err, emu.ErrMaxInstructions):
		return emu.ExitMaxInstructions
	case errors.Is(err, context.Canceled):
		return emu.ExitCanceled
	default:
		return emu.ExitRunaway
	}
}

func printStats(w io.Writer, stats core.Stats, c *core.Core) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Timing")
	t.AppendRows([]table.Row{
		{"Cycles", stats.Cycles},
		{"Instructions", stats.Instructions},
		{"CPI", fmt.Sprintf("%.2f", stats.CPI())},
		{"Stall cycles", stats.Stalls},
		{"Simulated time", stats.SimulatedTime},
	})

	if cacheStats, ok := c.CacheStats(); ok {
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"Cache hits", cacheStats.Hits},
			{"Cache misses", cacheStats.Misses},
			{"Cache hit rate", fmt.Sprintf("%.1f%%", 100*cacheStats.HitRate())},
		})
	}

	t.Render()
}
