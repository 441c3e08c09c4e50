// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vmm

import (
	"github.com/Code-Hex/vz/v3"
)

// newBlockDevices builds one writable virtio block device per disk image
// path, preserving input order. The first failing path aborts the whole
// build so no partial device list ever escapes.
func newBlockDevices(paths []string) ([]vz.StorageDeviceConfiguration, error) {
	devices := make([]vz.StorageDeviceConfiguration, 0, len(paths))

	for _, path := range paths {
		attachment, err := vz.NewDiskImageStorageDeviceAttachment(path, false)
		if err != nil {
			return nil, &DeviceError{Path: path, Err: err}
		}

		device, err := vz.NewVirtioBlockDeviceConfiguration(attachment)
		if err != nil {
			return nil, &DeviceError{Path: path, Err: err}
		}

		devices = append(devices, device)
	}

	return devices, nil
}
