// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vmm

import (
	"fmt"

	"github.com/Code-Hex/vz/v3"

	"github.com/aibor/vzrun/internal/vzrun"
)

// newBootLoader builds the Linux boot loader descriptor. The paths are
// expected to be absolute already. The command line is passed through
// verbatim.
func newBootLoader(boot vzrun.Boot) (*vz.LinuxBootLoader, error) {
	bootLoader, err := vz.NewLinuxBootLoader(
		boot.Kernel,
		vz.WithCommandLine(boot.CommandLine),
		vz.WithInitrd(boot.Initrd),
	)
	if err != nil {
		return nil, fmt.Errorf("linux boot loader: %w", err)
	}

	return bootLoader, nil
}
