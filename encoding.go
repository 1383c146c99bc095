// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

// Encoding represents a MIME transfer encoding scheme like quoted-printable or base64.
type Encoding string

// ContentType represents a MIME media type of a Msg body part.
type ContentType string

// Charset represents the character set used for the Msg.
type Charset string

// MIMEVersion represents the MIME version for the Msg.
type MIMEVersion string

const (
	// EncodingB64 represents the base64 encoding as specified in RFC 2045.
	EncodingB64 Encoding = "base64"

	// EncodingQP represents the "quoted-printable" encoding as specified in RFC 2045.
	EncodingQP Encoding = "quoted-printable"

	// EncodingUSASCII represents the "7bit" encoding for plain ASCII-safe content.
	EncodingUSASCII Encoding = "7bit"
)

const (
	// CharsetUTF8 represents the "UTF-8" charset.
	CharsetUTF8 Charset = "utf-8"

	// CharsetASCII represents the "US-ASCII" charset.
	CharsetASCII Charset = "us-ascii"
)

const (
	// TypeAppOctetStream represents the "application/octet-stream" content type.
	TypeAppOctetStream ContentType = "application/octet-stream"

	// TypeMultipartAlternative represents the "multipart/alternative" content type.
	TypeMultipartAlternative ContentType = "multipart/alternative"

	// TypeMultipartMixed represents the "multipart/mixed" content type.
	TypeMultipartMixed ContentType = "multipart/mixed"

	// TypeMultipartRelated represents the "multipart/related" content type.
	TypeMultipartRelated ContentType = "multipart/related"

	// TypeTextHTML represents the "text/html" content type.
	TypeTextHTML ContentType = "text/html"

	// TypeTextPlain represents the "text/plain" content type.
	TypeTextPlain ContentType = "text/plain"
)

// Mime10 is the MIME Version 1.0
const Mime10 MIMEVersion = "1.0"

// String satisfies the fmt.Stringer interface for the Encoding type.
func (e Encoding) String() string {
	return string(e)
}

// String satisfies the fmt.Stringer interface for the ContentType type.
func (c ContentType) String() string {
	return string(c)
}

// String satisfies the fmt.Stringer interface for the Charset type.
func (c Charset) String() string {
	return string(c)
}
