// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vzrun

import (
	"fmt"
)

// Validate checks the file parameters of the given [Spec].
//
// Checks run in declaration order and stop at the first failure, so the
// returned error always carries a single cause.
func (s *Spec) Validate() error {
	err := ValidateFilePath(s.Boot.Kernel)
	if err != nil {
		return fmt.Errorf("kernel file: %w", err)
	}

	err = ValidateFilePath(s.Boot.Initrd)
	if err != nil {
		return fmt.Errorf("initrd file: %w", err)
	}

	// Do some deeper validation for the initrd file.
	err = validateInitrdArchive(s.Boot.Initrd)
	if err != nil {
		return fmt.Errorf("initrd file: %w", err)
	}

	for _, disk := range s.Disks {
		err := ValidateFilePath(disk)
		if err != nil {
			return fmt.Errorf("disk file %s: %w", disk, err)
		}
	}

	return nil
}
