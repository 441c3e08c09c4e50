// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package vmm converts a [vzrun.Spec] into a native Virtualization.framework
// machine and supervises its lifecycle.
//
// The interaction with the framework is done using the Code-Hex/vz bindings.
// This requires cgo and macOS. On other platforms the package compiles into
// stubs that report the capability as unsupported.
package vmm
