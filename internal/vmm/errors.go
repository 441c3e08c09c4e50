// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vmm

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSupported is returned if the host lacks the virtualization
	// capability.
	ErrNotSupported = errors.New("virtualization not supported on this host")

	// ErrConfigInvalid is returned if the assembled machine configuration is
	// rejected by the framework without a more specific cause.
	ErrConfigInvalid = errors.New("invalid machine configuration")

	// ErrMachineFailed is returned if a running machine transitions into the
	// error state.
	ErrMachineFailed = errors.New("machine entered error state")
)

// DeviceError wraps the first failure while building a storage device. No
// further device is attempted once it occurred.
type DeviceError struct {
	Path string
	Err  error
}

// Error implements the [error] interface.
func (e *DeviceError) Error() string {
	return fmt.Sprintf("storage device %s: %v", e.Path, e.Err)
}

// Is implements the [errors.Is] interface.
func (*DeviceError) Is(other error) bool {
	_, ok := other.(*DeviceError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *DeviceError) Unwrap() error {
	return e.Err
}
