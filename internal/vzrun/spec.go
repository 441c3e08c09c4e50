// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vzrun

const (
	// CPUDefault is the number of virtual CPUs used if not configured.
	CPUDefault = 2

	// MemoryDefault is the memory size in bytes used if not configured.
	MemoryDefault = 2147483648

	// CommandLineDefault is the kernel command line used for flag based
	// invocations if not configured.
	CommandLineDefault = "console=hvc0"
)

// Boot describes the Linux boot loader input.
//
// Kernel and Initrd are absolute file paths. The command line is passed to
// the boot loader verbatim. An invalid kernel command line is a guest
// problem, not caught on the host.
type Boot struct {
	Kernel      string
	Initrd      string
	CommandLine string
}

// Spec is the fully resolved description of one machine.
//
// All path fields hold absolute paths. Disks is the effective, ordered list
// of writable disk images: boot declared disks first, additionally declared
// disks after. The spec is treated as immutable once it passed [Validate].
type Spec struct {
	Boot   Boot
	CPUs   uint64
	Memory uint64
	Disks  []string
}
