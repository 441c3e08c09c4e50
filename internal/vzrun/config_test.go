// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vzrun_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/vzrun/internal/vzrun"
)

func writeConfigFile(tb testing.TB, content string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "config.json")

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(tb, err)

	return path
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expected    vzrun.Spec
		expectedErr error
	}{
		{
			name: "all fields",
			content: `{
				"boot": {
					"kernel": "/boot/vmlinux",
					"initrd": "/boot/initrd",
					"command_line": "console=hvc0 root=/dev/vda",
					"disks": ["/images/root.img", "/images/data.img"]
				},
				"cpu_count": 4,
				"additional_disks": ["/images/scratch.img"],
				"memory_size": 1073741824
			}`,
			expected: vzrun.Spec{
				Boot: vzrun.Boot{
					Kernel:      "/boot/vmlinux",
					Initrd:      "/boot/initrd",
					CommandLine: "console=hvc0 root=/dev/vda",
				},
				CPUs:   4,
				Memory: 1073741824,
				Disks: []string{
					"/images/root.img",
					"/images/data.img",
					"/images/scratch.img",
				},
			},
		},
		{
			name: "defaults",
			content: `{
				"boot": {
					"kernel": "/boot/vmlinux",
					"initrd": "/boot/initrd"
				}
			}`,
			expected: vzrun.Spec{
				Boot: vzrun.Boot{
					Kernel: "/boot/vmlinux",
					Initrd: "/boot/initrd",
				},
				CPUs:   2,
				Memory: 2147483648,
			},
		},
		{
			name: "missing kernel",
			content: `{
				"boot": {
					"initrd": "/boot/initrd"
				}
			}`,
			expectedErr: vzrun.ErrNoKernel,
		},
		{
			name: "missing initrd",
			content: `{
				"boot": {
					"kernel": "/boot/vmlinux"
				}
			}`,
			expectedErr: vzrun.ErrNoInitrd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			spec, err := vzrun.LoadConfigFile(path)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedErr != nil {
				return
			}

			assert.Equal(t, tt.expected, spec)
		})
	}
}

func TestLoadConfigFileStrictSchema(t *testing.T) {
	path := writeConfigFile(t, `{
		"boot": {
			"kernel": "/boot/vmlinux",
			"initrd": "/boot/initrd"
		},
		"cpus": 4
	}`)

	_, err := vzrun.LoadConfigFile(path)
	require.ErrorContains(t, err, "unknown field")
}

func TestLoadConfigFileMalformed(t *testing.T) {
	path := writeConfigFile(t, `{"boot": `)

	_, err := vzrun.LoadConfigFile(path)
	require.ErrorContains(t, err, "decode config file")
}

func TestLoadConfigFileNotExists(t *testing.T) {
	_, err := vzrun.LoadConfigFile(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigFileRelativePaths(t *testing.T) {
	path := writeConfigFile(t, `{
		"boot": {
			"kernel": "vmlinux",
			"initrd": "initrd",
			"disks": ["root.img"]
		}
	}`)

	spec, err := vzrun.LoadConfigFile(path)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(spec.Boot.Kernel))
	assert.True(t, filepath.IsAbs(spec.Boot.Initrd))

	require.Len(t, spec.Disks, 1)
	assert.True(t, filepath.IsAbs(spec.Disks[0]))
}
