// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Console binds a pair of files as a virtual machine serial console
// transport.
type Console struct {
	input  *os.File
	output *os.File
	saved  *unix.Termios
}

// Open prepares the given files as console transport.
//
// The input file must be a terminal. Its line discipline is switched to raw
// delivery immediately; reading the current terminal attributes must succeed
// since the terminal state would be unknown otherwise. The prior attributes
// are kept for [Console.Restore].
func Open(input, output *os.File) (*Console, error) {
	fd := int(input.Fd())

	attr, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("get terminal attributes: %w", err)
	}

	raw := rawAttributes(*attr)

	err = unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw)
	if err != nil {
		return nil, fmt.Errorf("set terminal attributes: %w", err)
	}

	console := &Console{
		input:  input,
		output: output,
		saved:  attr,
	}

	return console, nil
}

// rawAttributes returns a copy of the given terminal attributes with
// canonical input, local echo and CR to NL input translation disabled.
// Applying it to already raw attributes is a no-op on the flag bits.
func rawAttributes(attr unix.Termios) unix.Termios {
	attr.Iflag &^= unix.ICRNL
	attr.Lflag &^= unix.ICANON | unix.ECHO

	return attr
}

// Input returns the file the guest reads console input from.
func (c *Console) Input() *os.File {
	return c.input
}

// Output returns the file the guest writes console output to.
func (c *Console) Output() *os.File {
	return c.output
}

// Restore puts the terminal back into the state captured by [Open].
func (c *Console) Restore() error {
	err := unix.IoctlSetTermios(int(c.input.Fd()), ioctlWriteTermios, c.saved)
	if err != nil {
		return fmt.Errorf("restore terminal attributes: %w", err)
	}

	return nil
}
