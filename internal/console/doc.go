// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package console prepares the process's standard input and output for use
// as a virtual machine serial console. The controlling terminal is switched
// to raw character delivery: canonical input, local echo and CR to NL
// translation are disabled. The previous terminal state is captured once and
// can be restored on exit.
package console
