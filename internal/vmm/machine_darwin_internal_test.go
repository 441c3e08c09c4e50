// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build darwin

package vmm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/vzrun/internal/vzrun"
)

func requireSupported(tb testing.TB) {
	tb.Helper()

	if !Supported() {
		tb.Skip("virtualization not supported on this host")
	}
}

func diskImage(tb testing.TB, dir, name string) string {
	tb.Helper()

	path := filepath.Join(dir, name)

	err := os.WriteFile(path, []byte("image"), 0o600)
	require.NoError(tb, err)

	return path
}

func pipeFiles(tb testing.TB) (*os.File, *os.File) {
	tb.Helper()

	read, write, err := os.Pipe()
	require.NoError(tb, err)

	tb.Cleanup(func() {
		_ = read.Close()
		_ = write.Close()
	})

	return read, write
}

func TestNewBlockDevices(t *testing.T) {
	requireSupported(t)

	dir := t.TempDir()

	paths := []string{
		diskImage(t, dir, "root.img"),
		diskImage(t, dir, "data.img"),
		diskImage(t, dir, "scratch.img"),
	}

	devices, err := newBlockDevices(paths)
	require.NoError(t, err)

	// One storage device per disk image, in declaration order.
	assert.Len(t, devices, len(paths))
}

func TestNewBlockDevicesEmpty(t *testing.T) {
	requireSupported(t)

	devices, err := newBlockDevices(nil)
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestNewBlockDevicesFirstBadPath(t *testing.T) {
	requireSupported(t)

	dir := t.TempDir()

	good := diskImage(t, dir, "root.img")
	missingFirst := filepath.Join(dir, "missing-first.img")
	missingSecond := filepath.Join(dir, "missing-second.img")

	_, err := newBlockDevices([]string{good, missingFirst, missingSecond})

	var deviceErr *DeviceError

	require.ErrorAs(t, err, &deviceErr)
	assert.Equal(t, missingFirst, deviceErr.Path)
}

func TestNewConsoleDevice(t *testing.T) {
	requireSupported(t)

	input, output := pipeFiles(t)

	_, err := newConsoleDevice(input, output)
	require.NoError(t, err)
}

// A bad disk aborts configuration assembly, so no machine is ever created
// from it.
func TestNewConfigurationBadDisk(t *testing.T) {
	requireSupported(t)

	dir := t.TempDir()

	spec := vzrun.Spec{
		Boot: vzrun.Boot{
			Kernel:      diskImage(t, dir, "vmlinux"),
			Initrd:      diskImage(t, dir, "initrd"),
			CommandLine: vzrun.CommandLineDefault,
		},
		CPUs:   vzrun.CPUDefault,
		Memory: vzrun.MemoryDefault,
		Disks:  []string{filepath.Join(dir, "missing.img")},
	}

	input, output := pipeFiles(t)

	_, err := newConfiguration(spec, input, output)

	var deviceErr *DeviceError

	require.ErrorAs(t, err, &deviceErr)
	assert.Equal(t, spec.Disks[0], deviceErr.Path)
}
