// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !darwin

package vmm

import (
	"context"

	"github.com/aibor/vzrun/internal/console"
	"github.com/aibor/vzrun/internal/vzrun"
)

// Supported reports whether the host provides the virtualization capability.
// It is always false on non-mac hosts.
func Supported() bool {
	return false
}

// Machine is a single virtual machine instance. It cannot be created on this
// platform.
type Machine struct{}

// NewMachine always fails with [ErrNotSupported] on this platform.
func NewMachine(_ vzrun.Spec, _ *console.Console) (*Machine, error) {
	return nil, ErrNotSupported
}

// ID returns the per-launch machine identifier. Since [NewMachine] never
// succeeds on this platform, no instance with an ID can exist and the
// zero value reports an empty identifier.
func (m *Machine) ID() string {
	return ""
}

// Run always fails with [ErrNotSupported] on this platform.
func (m *Machine) Run(_ context.Context) error {
	return ErrNotSupported
}
