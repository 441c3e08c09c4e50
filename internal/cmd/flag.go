// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/aibor/vzrun/internal/vzrun"
)

const (
	name = "vzrun"

	usageMessage = `Usage of 'vzrun':
    vzrun -kernel=/path/to/kernel -initrd=/path/to/initrd [flags...]
    vzrun [-config=]/path/to/config.json

Machine flags and the config file are mutually exclusive.

All vzrun flags can also be provided via environment variable VZRUN_ARGS:
	VZRUN_ARGS="-kernel=/boot/vmlinux -debug" vzrun -initrd=/boot/initrd

All vzrun flags can also be provided via file ./.vzrun-args, with one
argument per line.
`
)

// machineFlags are the flags that describe the machine directly and so
// cannot be combined with a config file.
var machineFlags = []string{
	"kernel", "initrd", "command-line", "disk", "cpu", "memory-size",
}

type flags struct {
	spec    vzrun.Spec
	flagSet *flag.FlagSet

	configPath string
	version    bool
	debug      bool
}

func newFlags(output io.Writer) *flags {
	flags := &flags{
		spec: vzrun.Spec{
			Boot: vzrun.Boot{
				CommandLine: vzrun.CommandLineDefault,
			},
			CPUs:   vzrun.CPUDefault,
			Memory: vzrun.MemoryDefault,
		},
	}

	flags.initFlagset(output)

	return flags
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.Var(
		(*FilePath)(&f.configPath),
		"config",
		"path to a JSON machine configuration file",
	)

	flagSet.Var(
		(*FilePath)(&f.spec.Boot.Kernel),
		"kernel",
		"path to the kernel to boot",
	)

	flagSet.Var(
		(*FilePath)(&f.spec.Boot.Initrd),
		"initrd",
		"path to the initrd to boot with",
	)

	flagSet.StringVar(
		&f.spec.Boot.CommandLine,
		"command-line",
		f.spec.Boot.CommandLine,
		"kernel command line",
	)

	flagSet.Var(
		(*FilePathList)(&f.spec.Disks),
		"disk",
		"writable disk image to attach. Flag may be used more than once.",
	)

	flagSet.Var(
		&limitedUintValue{
			Value: &f.spec.CPUs,
			min:   1,
		},
		"cpu",
		"number of virtual CPUs",
	)

	flagSet.Var(
		&limitedUintValue{
			Value: &f.spec.Memory,
			min:   1,
		},
		"memory-size",
		"memory size in bytes",
	)

	flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

func (f *flags) ParseArgs(args []string) error {
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using
	// [flag.ErrHelp] the main binary is supposed to return with a non error
	// exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	positionalArgs := f.flagSet.Args()

	// A single positional argument is an alternative way to name the config
	// file.
	switch {
	case len(positionalArgs) > 1:
		return f.fail("unexpected arguments: "+
			fmt.Sprint(positionalArgs[1:]), nil)
	case len(positionalArgs) == 1:
		if f.configPath != "" {
			return f.fail("config file given twice", nil)
		}

		path, err := vzrun.AbsoluteFilePath(positionalArgs[0])
		if err != nil {
			return f.fail("config file path", err)
		}

		f.configPath = path
	}

	if f.configPath != "" {
		if set := f.setMachineFlags(); len(set) > 0 {
			return f.fail(
				fmt.Sprintf("flags %v cannot be combined with a config file",
					set),
				nil,
			)
		}

		return nil
	}

	if f.spec.Boot.Kernel == "" {
		return f.fail("no kernel given (use -kernel)", nil)
	}

	if f.spec.Boot.Initrd == "" {
		return f.fail("no initrd given (use -initrd)", nil)
	}

	return nil
}

// Spec resolves the configuration source into the machine spec. With a
// config file given, the file is the single source. Otherwise the machine
// flags and their defaults are used.
func (f *flags) Spec() (vzrun.Spec, error) {
	if f.configPath != "" {
		return vzrun.LoadConfigFile(f.configPath) //nolint:wrapcheck
	}

	return f.spec, nil
}

// setMachineFlags returns the names of all machine describing flags that
// were set on the command line.
func (f *flags) setMachineFlags() []string {
	var set []string

	f.flagSet.Visit(func(fl *flag.Flag) {
		for _, name := range machineFlags {
			if fl.Name == name {
				set = append(set, fl.Name)
			}
		}
	})

	return set
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return flag.ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
