// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

import (
	"io"
	"strings"
	"time"
)

// Value represents a single header field value that knows how to write itself
// as a folded header line. The set of implementations is closed: a value is
// one of EmailAddress, AddressGroup, AddressList, Text, Raw, Date,
// MessageIDList, URLList or ContentTypeValue.
//
// The writeTo contract: emit the value starting at column col (the number of
// bytes already written on the current line, usually the header name plus
// ": "), folding onto "\r\n\t" continuation lines before a line would reach
// MaxHeaderLength columns, and terminate the output with CRLF.
type Value interface {
	writeTo(w io.Writer, col int) error
}

// errWriter wraps an io.Writer and latches the first write error. Once a
// write fails, every subsequent write is a no-op, so the value writers can
// emit unconditionally and surface the first error at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(p []byte) {
	if ew.err != nil {
		return
	}
	_, ew.err = ew.w.Write(p)
}

func (ew *errWriter) writeString(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

// Text is an unstructured text header value as used for Subject,
// Content-Description, Comments and the like. When the text contains
// non-ASCII bytes or otherwise unsafe content, it is emitted as RFC 2047
// encoded-words; plain ASCII text is folded at whitespace only.
type Text struct {
	Text string
}

// NewText returns a new unstructured Text header value.
func NewText(text string) Text {
	return Text{Text: text}
}

func (t Text) writeTo(w io.Writer, col int) error {
	ew := &errWriter{w: w}
	input := []byte(t.Text)
	enc, asciiSafe := selectEncoding(input, true, false)
	switch enc {
	case encodingBase64:
		writeEncodedWords(ew, input, col, "=?utf-8?B?", func(chunk []byte) {
			ew.writeString(base64Inline(chunk))
		})
	case encodingQuotedPrintable:
		prefix := "=?utf-8?Q?"
		if asciiSafe {
			prefix = "=?us-ascii?Q?"
		}
		writeEncodedWords(ew, input, col, prefix, func(chunk []byte) {
			if ew.err == nil {
				_, ew.err = encodeQ(ew.w, chunk)
			}
		})
	default:
		writeFolded(ew, t.Text, col)
	}
	return ew.err
}

// writeEncodedWords splits input into chunks that fit the remaining line
// budget, never breaking inside a multi-byte UTF-8 sequence, and emits each
// chunk as one encoded-word. Continuation lines are indented with a tab.
func writeEncodedWords(ew *errWriter, input []byte, col int, prefix string, encode func([]byte)) {
	budget := MaxHeaderLength - col
	if budget < 8 {
		budget = 8
	}
	for pos := 0; ; pos++ {
		chunk := utf8Chunk(input, budget)
		input = input[len(chunk):]
		if pos > 0 {
			ew.writeString("\t")
		}
		ew.writeString(prefix)
		encode(chunk)
		ew.writeString("?=\r\n")
		if len(input) == 0 {
			return
		}
		budget = MaxHeaderLength - 1
	}
}

// utf8Chunk returns the longest prefix of input of at most max bytes that
// does not end in the middle of a multi-byte UTF-8 sequence. A break point
// is only valid before a lead byte; continuation bytes (high bits 10) are
// skipped backwards.
func utf8Chunk(input []byte, max int) []byte {
	if len(input) <= max {
		return input
	}
	end := max
	for end > 0 && input[end]&0xc0 == 0x80 {
		end--
	}
	if end == 0 {
		end = max
	}
	return input[:end]
}

// writeFolded emits s unmodified, folding onto a tab-indented continuation
// line at the first whitespace byte after the line has filled up. The output
// is CRLF terminated.
func writeFolded(ew *errWriter, s string, col int) {
	for pos := 0; pos < len(s); pos++ {
		ch := s[pos]
		if col >= MaxHeaderLength && isASCIIWhitespace(ch) && pos < len(s)-1 {
			// The fold replaces the whitespace byte, so unfolding yields a
			// single tab where the break happened.
			ew.writeString("\r\n\t")
			col = 1
			continue
		}
		ew.write([]byte{ch})
		col++
	}
	ew.writeString("\r\n")
}

func isASCIIWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

// Raw is a pre-formatted header value. Raw values are never content-encoded,
// only line-wrapped at whitespace.
type Raw struct {
	Raw string
}

// NewRaw returns a new pre-formatted Raw header value.
func NewRaw(raw string) Raw {
	return Raw{Raw: raw}
}

func (r Raw) writeTo(w io.Writer, col int) error {
	ew := &errWriter{w: w}
	writeFolded(ew, r.Raw, col)
	return ew.err
}

// Date is an RFC 5322 date header value.
type Date struct {
	Time time.Time
}

// NewDate returns a new Date header value for the given time.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d Date) writeTo(w io.Writer, _ int) error {
	ew := &errWriter{w: w}
	ew.writeString(d.Time.Format(time.RFC1123Z))
	ew.writeString("\r\n")
	return ew.err
}

// MessageIDList is a Message-ID, In-Reply-To, References or Content-ID
// header value. Each identifier is emitted wrapped in angle brackets.
type MessageIDList struct {
	IDs []string
}

// NewMessageID returns a MessageIDList holding a single identifier.
func NewMessageID(id string) MessageIDList {
	return MessageIDList{IDs: []string{id}}
}

// NewMessageIDList returns a MessageIDList holding the given identifiers.
func NewMessageIDList(ids ...string) MessageIDList {
	return MessageIDList{IDs: ids}
}

func (m MessageIDList) writeTo(w io.Writer, col int) error {
	ew := &errWriter{w: w}
	writeBracketedList(ew, m.IDs, col, " ")
	return ew.err
}

// URLList is a List-* header value. Each URL is emitted wrapped in angle
// brackets, comma-joined.
type URLList struct {
	URLs []string
}

// NewURL returns a URLList holding a single URL.
func NewURL(url string) URLList {
	return URLList{URLs: []string{url}}
}

// NewURLList returns a URLList holding the given URLs.
func NewURLList(urls ...string) URLList {
	return URLList{URLs: urls}
}

func (u URLList) writeTo(w io.Writer, col int) error {
	ew := &errWriter{w: w}
	writeBracketedList(ew, u.URLs, col, ", ")
	return ew.err
}

// writeBracketedList emits each token wrapped in angle brackets, folding
// between tokens once the line has filled up. A trailing token never emits
// a trailing separator.
func writeBracketedList(ew *errWriter, tokens []string, col int, sep string) {
	for pos, token := range tokens {
		ew.writeString("<")
		ew.writeString(token)
		ew.writeString(">")
		col += len(token) + 2
		if pos < len(tokens)-1 {
			if col >= MaxHeaderLength {
				ew.writeString(strings.TrimRight(sep, " "))
				ew.writeString("\r\n\t")
				col = 1
			} else {
				ew.writeString(sep)
				col += len(sep)
			}
		}
	}
	ew.writeString("\r\n")
}

// writeRFC2047 writes s as a single RFC 2047 encoded-word if it needs
// encoding, or unmodified otherwise, and returns the number of bytes
// emitted. No folding happens at this level.
func writeRFC2047(ew *errWriter, s string) int {
	input := []byte(s)
	enc, asciiSafe := selectEncoding(input, true, false)
	switch enc {
	case encodingBase64:
		encoded := base64Inline(input)
		ew.writeString("=?utf-8?B?")
		ew.writeString(encoded)
		ew.writeString("?=")
		return len(encoded) + 12
	case encodingQuotedPrintable:
		prefix := "=?utf-8?Q?"
		if asciiSafe {
			prefix = "=?us-ascii?Q?"
		}
		ew.writeString(prefix)
		n := 0
		if ew.err == nil {
			n, ew.err = encodeQ(ew.w, input)
		}
		ew.writeString("?=")
		return len(prefix) + n + 2
	default:
		ew.writeString(s)
		return len(s)
	}
}

// tspecials per RFC 2045, plus SP. A parameter value containing any of these
// must be emitted as a quoted-string when it is not RFC 2047 encoded.
const tspecials = "()<>@,;:\\\"/[]?= "

func needsQuoting(s string) bool {
	return strings.ContainsAny(s, tspecials)
}
