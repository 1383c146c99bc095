// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

import (
	"io"
)

const upperhex = "0123456789ABCDEF"

// encodeQByte writes a single byte using the "Q" encoding from RFC 2047
// §4.2 and returns the number of bytes written. '=', '?', '_', TAB, CR, LF
// and bytes >= 127 are escaped as =XX, a literal space becomes '_', and
// everything else passes through unmodified.
func encodeQByte(w io.Writer, ch byte) (int, error) {
	switch {
	case ch == '=' || ch == '?' || ch == '_' || ch == '\t' || ch == '\r' || ch == '\n' || ch >= 127:
		_, err := w.Write([]byte{'=', upperhex[ch>>4], upperhex[ch&0x0f]})
		return 3, err
	case ch == ' ':
		_, err := w.Write([]byte{'_'})
		return 1, err
	default:
		_, err := w.Write([]byte{ch})
		return 1, err
	}
}

// encodeQ writes input using the RFC 2047 "Q" encoding and returns the
// number of bytes written. No line folding happens at this level; callers
// fold between whole encoded-words only.
func encodeQ(w io.Writer, input []byte) (int, error) {
	written := 0
	for _, ch := range input {
		n, err := encodeQByte(w, ch)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
