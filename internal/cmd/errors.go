// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
)

// ErrReadBuildInfo is returned if the build info of the binary is not
// readable.
var ErrReadBuildInfo = errors.New("build info not available")

// ParseArgsError wraps errors that occur during argument parsing.
type ParseArgsError struct {
	err error
	msg string
}

// Error implements the [error] interface.
func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return e.msg
	}

	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

// Is implements the [errors.Is] interface.
func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ParseArgsError) Unwrap() error {
	return e.err
}
