// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aibor/vzrun/internal/console"
	"github.com/aibor/vzrun/internal/vmm"
)

const localConfigFile = ".vzrun-args"

// IO provides input and output details for the command.
//
// Stdin and Stdout are real files since they are handed to the hypervisor
// as the machine's serial console transport.
type IO struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr io.Writer
}

func newParsedFlags(args []string, cfg IO) (*flags, error) {
	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, err
	}

	flags := newFlags(cfg.Stderr)

	err = flags.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	return flags, nil
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	spec, err := flags.Spec()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if !vmm.Supported() {
		fmt.Fprintln(cfg.Stdout, "not supported")
		return nil
	}

	err = spec.Validate()
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	cons, err := console.Open(cfg.Stdin, cfg.Stdout)
	if err != nil {
		return fmt.Errorf("prepare console: %w", err)
	}
	defer restoreConsole(cons)

	machine, err := vmm.NewMachine(spec, cons)
	if err != nil {
		return fmt.Errorf("create machine: %w", err)
	}

	slog.Debug("Created machine",
		slog.String("machine", machine.ID()),
		slog.String("kernel", spec.Boot.Kernel),
		slog.Int("disks", len(spec.Disks)))

	err = machine.Run(ctx)
	if err != nil {
		return fmt.Errorf("machine: %w", err)
	}

	return nil
}

func restoreConsole(cons *console.Console) {
	err := cons.Restore()
	if err != nil {
		slog.Error("Failed to restore terminal", slog.Any("error", err))
	}
}

func handleParseArgsError(err error) int {
	// [flag.ErrHelp] is returned when help or version is requested. So exit
	// without error in this case.
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error) int {
	// A cancelled context is the regular shutdown path triggered by
	// termination signals.
	if errors.Is(err, context.Canceled) {
		slog.Info("Interrupted, shutting down")
		return 0
	}

	var deviceErr *vmm.DeviceError
	if errors.As(err, &deviceErr) {
		slog.Error("Storage device setup failed",
			slog.String("path", deviceErr.Path),
			slog.Any("error", deviceErr.Err))

		return -1
	}

	slog.Error(err.Error())

	return -1
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	flags, err := newParsedFlags(args, cfg)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.debug)

	err = run(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return 0
}
