// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

import (
	"fmt"
	"io"
)

// MaxHeaderLength defines the maximum line length for a mail header.
// RFC 2047 suggests 76 characters.
const MaxHeaderLength = 76

// msgWriter handles the I/O to the output sink of a Msg. It counts the
// bytes written and latches the first write error, so a sink failure aborts
// the pass and every later write becomes a no-op.
type msgWriter struct {
	writer io.Writer
	err    error
	n      int64
}

// Write implements the io.Writer interface for msgWriter.
func (mw *msgWriter) Write(p []byte) (int, error) {
	if mw.err != nil {
		return 0, fmt.Errorf("failed to write due to previous error: %w", mw.err)
	}

	var n int
	n, mw.err = mw.writer.Write(p)
	mw.n += int64(n)
	return n, mw.err
}

// writeMsg formats the message and sends it to its io.Writer. Date,
// Message-ID and MIME-Version headers are guaranteed to be present before
// the header block is emitted, then the body tree is serialized.
func (mw *msgWriter) writeMsg(m *Msg) {
	m.addDefaultHeader()
	for _, f := range m.headers {
		mw.writeString(f.name)
		mw.writeString(": ")
		mw.writeValue(f.value, len(f.name)+2)
	}
	mw.writePart(m.assembleBody())
}

// write writes a byte slice into the msgWriter's io.Writer.
func (mw *msgWriter) write(p []byte) {
	if mw.err != nil {
		return
	}
	var n int
	n, mw.err = mw.writer.Write(p)
	mw.n += int64(n)
}

// writeString writes a string into the msgWriter's io.Writer.
func (mw *msgWriter) writeString(s string) {
	if mw.err != nil {
		return
	}
	var n int
	n, mw.err = io.WriteString(mw.writer, s)
	mw.n += int64(n)
}

// writeValue writes a header value into the msgWriter's io.Writer, with col
// bytes already consumed on the current line.
func (mw *msgWriter) writeValue(v Value, col int) {
	if mw.err != nil {
		return
	}
	mw.err = v.writeTo(mw, col)
}

// randomBoundary returns a fresh boundary token, latching a potential
// generator error into the writer.
func (mw *msgWriter) randomBoundary() string {
	boundary, err := randomBoundary()
	if err != nil && mw.err == nil {
		mw.err = fmt.Errorf("failed to generate multipart boundary: %w", err)
	}
	return boundary
}
