// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

import (
	"io"
	"strings"
)

// ContentTypeValue is a structured Content-Type or Content-Disposition
// header value: a type token plus an ordered list of key/value parameters.
// Parameter values are RFC 2047 encoded when needed; plain values containing
// tspecials or whitespace are emitted as quoted-strings.
type ContentTypeValue struct {
	Type   string
	params []ctParam
}

type ctParam struct {
	key   string
	value string
}

// NewContentTypeValue returns a new structured header value for the given
// type token, e.g. "text/plain" or "attachment".
func NewContentTypeValue(ctype string) *ContentTypeValue {
	return &ContentTypeValue{Type: ctype}
}

// Param appends a key/value parameter and returns the value for chaining.
func (c *ContentTypeValue) Param(key, value string) *ContentTypeValue {
	c.params = append(c.params, ctParam{key: key, value: value})
	return c
}

// ParamValue returns the value of the first parameter with the given key,
// compared case-insensitively, or an empty string.
func (c *ContentTypeValue) ParamValue(key string) string {
	for _, p := range c.params {
		if strings.EqualFold(p.key, key) {
			return p.value
		}
	}
	return ""
}

// IsAttachment reports whether the value describes an attachment
// Content-Disposition.
func (c *ContentTypeValue) IsAttachment() bool {
	return strings.EqualFold(c.Type, "attachment")
}

// IsText reports whether the value describes a textual media type.
func (c *ContentTypeValue) IsText() bool {
	return strings.HasPrefix(strings.ToLower(c.Type), "text/")
}

// clone returns a shallow copy with its own parameter list, so the writer
// can add a boundary parameter without mutating the caller's value.
func (c *ContentTypeValue) clone() *ContentTypeValue {
	clone := &ContentTypeValue{Type: c.Type}
	clone.params = append(clone.params, c.params...)
	return clone
}

func (c *ContentTypeValue) writeTo(w io.Writer, col int) error {
	ew := &errWriter{w: w}
	ew.writeString(c.Type)
	col += len(c.Type)
	if len(c.params) > 0 {
		ew.writeString("; ")
		col += 2
		for pos, p := range c.params {
			if col+len(p.key)+len(p.value)+3 >= MaxHeaderLength {
				ew.writeString("\r\n\t")
				col = 1
			}
			ew.writeString(p.key)
			ew.writeString("=")
			col += len(p.key) + 1
			col += writeParamValue(ew, p.value)
			if pos < len(c.params)-1 {
				ew.writeString("; ")
				col += 2
			}
		}
	}
	ew.writeString("\r\n")
	return ew.err
}

// writeParamValue emits a parameter value, choosing between bare tokens,
// quoted-strings and RFC 2047 encoded-words, and returns the number of
// bytes written.
func writeParamValue(ew *errWriter, value string) int {
	enc, _ := selectEncoding([]byte(value), true, false)
	if enc == encoding7Bit && needsQuoting(value) {
		quoted := strings.ReplaceAll(value, `\`, `\\`)
		quoted = strings.ReplaceAll(quoted, `"`, `\"`)
		ew.writeString(`"`)
		ew.writeString(quoted)
		ew.writeString(`"`)
		return len(quoted) + 2
	}
	return writeRFC2047(ew, value)
}
