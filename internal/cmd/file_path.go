// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"strings"

	"github.com/aibor/vzrun/internal/vzrun"
)

// FilePath is a flag value that canonicalizes its input to an absolute path.
type FilePath string

func (f *FilePath) String() string {
	return string(*f)
}

func (f *FilePath) Set(s string) error {
	path, err := vzrun.AbsoluteFilePath(s)

	*f = FilePath(path)

	return err //nolint:wrapcheck
}

// FilePathList is a flag value collecting absolute paths in the order they
// are given.
type FilePathList []string

func (f *FilePathList) String() string {
	return strings.Join(*f, ",")
}

func (f *FilePathList) Set(s string) error {
	path, err := vzrun.AbsoluteFilePath(s)
	if err != nil {
		return err //nolint:wrapcheck
	}

	*f = append(*f, path)

	return nil
}
