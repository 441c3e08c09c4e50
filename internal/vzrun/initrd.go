// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vzrun

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cavaliergopher/cpio"
)

const cpioNewcMagic = "070701"

// validateInitrdArchive checks that the initrd file looks like a cpio
// archive the kernel can unpack. Plain and gzip compressed newc archives are
// verified by parsing the first header. Other compression formats are not
// inspected and pass without a check.
func validateInitrdArchive(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	magic, err := reader.Peek(len(cpioNewcMagic))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitrdFormat, err)
	}

	var archive io.Reader = reader

	switch {
	case string(magic) == cpioNewcMagic:
	case magic[0] == 0x1f && magic[1] == 0x8b:
		gzReader, err := gzip.NewReader(reader)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInitrdFormat, err)
		}
		defer gzReader.Close()

		archive = gzReader
	default:
		slog.Debug("Unknown initrd compression, skipping archive check",
			slog.String("path", path))

		return nil
	}

	err = readCpioHeader(archive)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitrdFormat, err)
	}

	return nil
}

func readCpioHeader(r io.Reader) error {
	_, err := cpio.NewReader(r).Next()

	return err //nolint:wrapcheck
}
