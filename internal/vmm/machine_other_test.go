// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !darwin

package vmm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/vzrun/internal/vmm"
	"github.com/aibor/vzrun/internal/vzrun"
)

func TestSupported(t *testing.T) {
	assert.False(t, vmm.Supported())
}

func TestMachineIDZeroValue(t *testing.T) {
	machine := &vmm.Machine{}
	assert.Empty(t, machine.ID())
}

func TestNewMachine(t *testing.T) {
	spec := vzrun.Spec{
		Boot: vzrun.Boot{
			Kernel: "/boot/vmlinux",
			Initrd: "/boot/initrd",
		},
		CPUs:   vzrun.CPUDefault,
		Memory: vzrun.MemoryDefault,
	}

	_, err := vmm.NewMachine(spec, nil)
	require.ErrorIs(t, err, vmm.ErrNotSupported)
}
