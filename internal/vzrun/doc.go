// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package vzrun defines the resolved description of a single virtual machine
// and the ways to obtain it: a structured JSON configuration file or command
// line flags. Both sources resolve into the same [Spec] before any device is
// built from it.
package vzrun
