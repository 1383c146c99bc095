// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

import (
	"bytes"
	"mime/quotedprintable"
	"strings"
)

// bodyKind discriminates the three body variants of a MimePart.
type bodyKind int

const (
	bodyText bodyKind = iota
	bodyBinary
	bodyMultipart
)

// headerField is a single (name, value) header pair. Insertion order is
// preserved and duplicate names are allowed, matching header semantics.
type headerField struct {
	name  string
	value Value
}

// MimePart is a node of a MIME body tree: leaf text, leaf binary content or
// a multipart node holding an ordered list of child parts.
type MimePart struct {
	headers  []headerField
	kind     bodyKind
	text     string
	binary   []byte
	children []*MimePart
}

// NewTextPart returns a new text/plain part with a utf-8 charset parameter.
func NewTextPart(content string) *MimePart {
	return NewTextPartWithType(TypeTextPlain, content)
}

// NewHTMLPart returns a new text/html part with a utf-8 charset parameter.
func NewHTMLPart(content string) *MimePart {
	return NewTextPartWithType(TypeTextHTML, content)
}

// NewTextPartWithType returns a new textual part of the given content type
// with a utf-8 charset parameter.
func NewTextPartWithType(ctype ContentType, content string) *MimePart {
	return &MimePart{
		kind: bodyText,
		text: content,
		headers: []headerField{{
			name:  HeaderContentType.String(),
			value: NewContentTypeValue(ctype.String()).Param("charset", CharsetUTF8.String()),
		}},
	}
}

// NewBinaryPart returns a new part holding raw binary content of the given
// content type.
func NewBinaryPart(ctype ContentType, content []byte) *MimePart {
	return &MimePart{
		kind:   bodyBinary,
		binary: content,
		headers: []headerField{{
			name:  HeaderContentType.String(),
			value: NewContentTypeValue(ctype.String()),
		}},
	}
}

// NewMultipart returns a new multipart/* node holding the given child
// parts. A boundary parameter is resolved when the part is written.
func NewMultipart(ctype ContentType, parts ...*MimePart) *MimePart {
	return &MimePart{
		kind:     bodyMultipart,
		children: parts,
		headers: []headerField{{
			name:  HeaderContentType.String(),
			value: NewContentTypeValue(ctype.String()),
		}},
	}
}

// NewPart returns a new part with a caller-supplied Content-Type value and
// the given body content.
func NewPart(ctype *ContentTypeValue, content []byte) *MimePart {
	return &MimePart{
		kind:    bodyBinary,
		binary:  content,
		headers: []headerField{{name: HeaderContentType.String(), value: ctype}},
	}
}

// Attachment marks the part as an attachment with the given filename and
// returns the part for chaining.
func (p *MimePart) Attachment(filename string) *MimePart {
	p.headers = append(p.headers, headerField{
		name:  HeaderContentDisposition.String(),
		value: NewContentTypeValue("attachment").Param("filename", filename),
	})
	return p
}

// Inline marks the part as inline content and returns the part for chaining.
func (p *MimePart) Inline() *MimePart {
	p.headers = append(p.headers, headerField{
		name:  HeaderContentDisposition.String(),
		value: NewContentTypeValue("inline"),
	})
	return p
}

// Language sets the Content-Language header of the part.
func (p *MimePart) Language(langs ...string) *MimePart {
	p.headers = append(p.headers, headerField{
		name:  HeaderContentLang.String(),
		value: NewText(strings.Join(langs, ", ")),
	})
	return p
}

// CID sets the Content-ID header of the part. The identifier is emitted
// wrapped in angle brackets.
func (p *MimePart) CID(id string) *MimePart {
	p.headers = append(p.headers, headerField{
		name:  HeaderContentID.String(),
		value: NewMessageID(id),
	})
	return p
}

// Location sets the Content-Location header of the part.
func (p *MimePart) Location(location string) *MimePart {
	p.headers = append(p.headers, headerField{
		name:  HeaderContentLocation.String(),
		value: NewRaw(location),
	})
	return p
}

// Description sets the Content-Description header of the part.
func (p *MimePart) Description(description string) *MimePart {
	p.headers = append(p.headers, headerField{
		name:  HeaderContentDescription.String(),
		value: NewText(description),
	})
	return p
}

// AddHeader appends a custom header to the part.
func (p *MimePart) AddHeader(name Header, value Value) *MimePart {
	p.headers = append(p.headers, headerField{name: name.String(), value: value})
	return p
}

// AddPart appends a child part to a multipart node. Adding to a non-multipart
// part is a no-op.
func (p *MimePart) AddPart(part *MimePart) {
	if p.kind == bodyMultipart {
		p.children = append(p.children, part)
	}
}

// partFrame is one suspended level of the part tree walk: the sibling list
// being written, the position of the next sibling and the boundary active
// for this level.
type partFrame struct {
	parts    []*MimePart
	next     int
	boundary string
}

// writePart linearizes the part tree into the output stream. The walk is
// depth-first pre-order with an explicit stack of (sibling list, boundary)
// frames instead of call-stack recursion, so the enclosing boundary is
// restored as an auditable invariant once a nested multipart's children are
// exhausted, and arbitrarily deep trees cannot grow the call stack.
func (mw *msgWriter) writePart(part *MimePart) {
	var stack []partFrame
	current := partFrame{parts: []*MimePart{part}}

	for {
		for current.next < len(current.parts) {
			p := current.parts[current.next]
			current.next++

			// The delimiter is emitted when advancing to a part, never
			// before the first part of a list, which keeps the preamble
			// clean and the closing delimiter unambiguous.
			if current.boundary != "" {
				mw.writeString("\r\n--" + current.boundary + "\r\n")
			}

			switch p.kind {
			case bodyText:
				_, isAttachment := mw.writePartHeaders(p)
				mw.writeEncodedBody([]byte(p.text), !isAttachment)
			case bodyBinary:
				isText, isAttachment := mw.writePartHeaders(p)
				if !isText {
					mw.writeTransferEncoding(EncodingB64)
					if mw.err == nil {
						mw.err = writeBase64(mw, p.binary)
					}
					continue
				}
				mw.writeEncodedBody(p.binary, !isAttachment)
			case bodyMultipart:
				if current.boundary != "" {
					stack = append(stack, current)
				}
				boundary := mw.writeMultipartHeaders(p)
				mw.writeString("\r\n")
				current = partFrame{parts: p.children, boundary: boundary}
			}
		}

		if current.boundary != "" {
			mw.writeString("\r\n--" + current.boundary + "--\r\n")
		}
		if len(stack) == 0 {
			return
		}
		current = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}
}

// writePartHeaders emits all headers of a leaf part and reports whether the
// part content is textual and whether it is a discrete attachment.
func (mw *msgWriter) writePartHeaders(p *MimePart) (isText, isAttachment bool) {
	for _, f := range p.headers {
		mw.writeString(f.name)
		mw.writeString(": ")
		if ct, ok := f.value.(*ContentTypeValue); ok {
			switch {
			case !isText && strings.EqualFold(f.name, HeaderContentType.String()):
				isText = ct.IsText()
			case !isAttachment && strings.EqualFold(f.name, HeaderContentDisposition.String()):
				isAttachment = ct.IsAttachment()
			}
		}
		mw.writeValue(f.value, len(f.name)+2)
	}
	return isText, isAttachment
}

// writeMultipartHeaders emits the headers of a multipart node, resolving the
// boundary token that delimits its children: an existing boundary parameter
// is reused, a raw Content-Type is scanned for an embedded boundary="..."
// (or extended with a fresh one), and a missing Content-Type header is
// synthesized as multipart/mixed. A Content-Type value of any other kind on
// a multipart node is a contract violation and panics.
func (mw *msgWriter) writeMultipartHeaders(p *MimePart) string {
	boundary := ""
	foundContentType := false
	for _, f := range p.headers {
		mw.writeString(f.name)
		mw.writeString(": ")
		if !foundContentType && strings.EqualFold(f.name, HeaderContentType.String()) {
			foundContentType = true
			switch v := f.value.(type) {
			case *ContentTypeValue:
				boundary = v.ParamValue("boundary")
				if boundary == "" {
					boundary = mw.randomBoundary()
					v = v.clone().Param("boundary", boundary)
				}
				mw.writeValue(v, len(f.name)+2)
			case Raw:
				if boundary = rawBoundary(v.Raw); boundary != "" {
					mw.writeValue(v, len(f.name)+2)
				} else {
					boundary = mw.randomBoundary()
					mw.writeString(v.Raw + `; boundary="` + boundary + `"` + SingleNewLine)
				}
			default:
				panic("mail: Content-Type header of a multipart part must be a ContentTypeValue or Raw value")
			}
			continue
		}
		mw.writeValue(f.value, len(f.name)+2)
	}
	if !foundContentType {
		boundary = mw.randomBoundary()
		mw.writeString("Content-Type: ")
		mw.writeValue(NewContentTypeValue(TypeMultipartMixed.String()).Param("boundary", boundary),
			len(HeaderContentType.String())+2)
	}
	return boundary
}

// rawBoundary extracts the boundary token from a raw Content-Type line. It
// returns the empty string when the attribute is missing or its closing
// quote is, so the caller appends a fresh boundary instead of declaring one
// that never delimits a part.
func rawBoundary(raw string) string {
	pos := strings.Index(raw, `boundary="`)
	if pos == -1 {
		return ""
	}
	rest := raw[pos+len(`boundary="`):]
	end := strings.IndexByte(rest, '"')
	if end == -1 {
		return ""
	}
	return rest[:end]
}

// writeTransferEncoding emits the Content-Transfer-Encoding header followed
// by the blank line separating headers from content.
func (mw *msgWriter) writeTransferEncoding(enc Encoding) {
	mw.writeString(HeaderContentTransferEnc.String() + ": " + enc.String() + DoubleNewLine)
}

// writeEncodedBody selects the cheapest safe transfer encoding for the
// content, emits the matching Content-Transfer-Encoding header, a blank
// line and the encoded content. body selects body semantics (line endings
// normalized to CRLF) over attachment semantics (raw CR/LF escaped).
func (mw *msgWriter) writeEncodedBody(content []byte, body bool) {
	enc, _ := selectEncoding(content, false, body)
	switch enc {
	case encodingBase64:
		mw.writeTransferEncoding(EncodingB64)
		if mw.err == nil {
			mw.err = writeBase64(mw, content)
		}
	case encodingQuotedPrintable:
		mw.writeTransferEncoding(EncodingQP)
		if mw.err == nil {
			qp := quotedprintable.NewWriter(mw)
			qp.Binary = !body
			if _, err := qp.Write(content); err != nil {
				mw.err = err
				return
			}
			mw.err = qp.Close()
		}
	default:
		mw.writeTransferEncoding(EncodingUSASCII)
		if body {
			content = normalizeNewlines(content)
		}
		mw.write(content)
	}
}

// normalizeNewlines converts bare LF line endings to CRLF without doubling
// the CR of an existing CRLF pair.
func normalizeNewlines(content []byte) []byte {
	if !bytes.Contains(content, []byte{'\n'}) {
		return content
	}
	out := make([]byte, 0, len(content)+bytes.Count(content, []byte{'\n'}))
	var prev byte
	for _, ch := range content {
		if ch == '\n' && prev != '\r' {
			out = append(out, '\r')
		}
		out = append(out, ch)
		prev = ch
	}
	return out
}
