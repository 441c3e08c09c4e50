// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vzrun

import (
	"encoding/json"
	"fmt"
	"os"
)

// configFileBoot is the "boot" object of a configuration file.
type configFileBoot struct {
	Kernel      string   `json:"kernel"`
	Initrd      string   `json:"initrd"`
	CommandLine string   `json:"command_line"`
	Disks       []string `json:"disks"`
}

// configFile is the JSON shape of a configuration file. Unknown fields are
// rejected.
type configFile struct {
	Boot            configFileBoot `json:"boot"`
	CPUCount        *uint64        `json:"cpu_count"`
	AdditionalDisks []string       `json:"additional_disks"`
	MemorySize      *uint64        `json:"memory_size"`
}

// LoadConfigFile reads the configuration file at the given path and resolves
// it into a [Spec].
//
// Kernel and initrd are required. CPU count and memory size fall back to
// [CPUDefault] and [MemoryDefault]. The kernel command line defaults to the
// empty string. The effective disk list is boot.disks followed by
// additional_disks, all made absolute, preserving declaration order.
func LoadConfigFile(path string) (Spec, error) {
	file, err := os.Open(path)
	if err != nil {
		return Spec{}, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()

	var config configFile

	err = decoder.Decode(&config)
	if err != nil {
		return Spec{}, fmt.Errorf("decode config file: %w", err)
	}

	return config.resolve()
}

func (c *configFile) resolve() (Spec, error) {
	if c.Boot.Kernel == "" {
		return Spec{}, ErrNoKernel
	}

	if c.Boot.Initrd == "" {
		return Spec{}, ErrNoInitrd
	}

	kernel, err := AbsoluteFilePath(c.Boot.Kernel)
	if err != nil {
		return Spec{}, fmt.Errorf("kernel path: %w", err)
	}

	initrd, err := AbsoluteFilePath(c.Boot.Initrd)
	if err != nil {
		return Spec{}, fmt.Errorf("initrd path: %w", err)
	}

	spec := Spec{
		Boot: Boot{
			Kernel:      kernel,
			Initrd:      initrd,
			CommandLine: c.Boot.CommandLine,
		},
		CPUs:   CPUDefault,
		Memory: MemoryDefault,
	}

	if c.CPUCount != nil {
		spec.CPUs = *c.CPUCount
	}

	if c.MemorySize != nil {
		spec.Memory = *c.MemorySize
	}

	// Boot declared disks first, additionally declared disks after.
	for _, disk := range c.Boot.Disks {
		path, err := AbsoluteFilePath(disk)
		if err != nil {
			return Spec{}, fmt.Errorf("boot disk path: %w", err)
		}

		spec.Disks = append(spec.Disks, path)
	}

	for _, disk := range c.AdditionalDisks {
		path, err := AbsoluteFilePath(disk)
		if err != nil {
			return Spec{}, fmt.Errorf("additional disk path: %w", err)
		}

		spec.Disks = append(spec.Disks, path)
	}

	return spec, nil
}
