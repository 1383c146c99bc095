// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

import (
	"fmt"
	"os"
)

// WriteToFile stores the Msg as file on disk. It will try to create the
// given filename; already existing files will be overwritten.
func (m *Msg) WriteToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	if _, err = m.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write to output file: %w", err)
	}
	return file.Close()
}

// WriteToTempFile will create a temporary file and write the Msg to this
// file. It will return the filename of the temporary file.
func (m *Msg) WriteToTempFile() (string, error) {
	file, err := os.CreateTemp("", "mailbuilder_*.eml")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	if _, err = m.WriteTo(file); err != nil {
		return "", fmt.Errorf("failed to write to output file: %w", err)
	}
	return file.Name(), file.Close()
}
