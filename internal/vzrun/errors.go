// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vzrun

import "errors"

var (
	// ErrEmptyFilePath is returned if a file path is empty.
	ErrEmptyFilePath = errors.New("file path must not be empty")

	// ErrNotRegularFile is returned if a file is not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrNoKernel is returned if a configuration does not name a kernel.
	ErrNoKernel = errors.New("no kernel given")

	// ErrNoInitrd is returned if a configuration does not name an initrd.
	ErrNoInitrd = errors.New("no initrd given")

	// ErrInitrdFormat is returned if an initrd file is recognized as a cpio
	// archive but its first header does not parse.
	ErrInitrdFormat = errors.New("initrd is not a valid cpio archive")
)
