// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

// transferEncoding is the outcome of scanning raw content for the cheapest
// transfer encoding that is still safe for mail transport.
type transferEncoding int

const (
	// encoding7Bit passes content through unencoded.
	encoding7Bit transferEncoding = iota

	// encodingQuotedPrintable escapes unsafe bytes as =XX sequences.
	encodingQuotedPrintable

	// encodingBase64 encodes the full content as base64.
	encodingBase64
)

// selectEncoding scans input once and decides which transfer encoding to
// use. It returns encoding7Bit when the content is safe to pass through
// unencoded; otherwise it picks whichever of quoted-printable and base64
// produces the smaller output. The second return value reports whether the
// input is pure ASCII, in which case an encoded-word may carry a us-ascii
// charset label instead of utf-8.
//
// inline marks content used inside a folded header field (encoded-word
// syntax additionally reserves TAB and '?'); body marks message body
// content as opposed to a discrete attachment.
func selectEncoding(input []byte, inline, body bool) (transferEncoding, bool) {
	base64Len := (len(input)*4/3 + 3) &^ 3
	qpLen := 0
	if !inline {
		// One soft line break per 76 output bytes.
		qpLen = len(input) / 76
	}
	asciiSafe := true
	needsEncoding := false
	lineLen := 0

	for pos := 0; pos < len(input); pos++ {
		ch := input[pos]
		lineLen++
		switch {
		case ch >= 127 || ((ch == ' ' || ch == '\t') && whitespaceIsTrailing(input, pos)):
			qpLen += 3
			needsEncoding = true
			if ch >= 127 {
				asciiSafe = false
			}
		case ch == '=' || (inline && (ch == '\t' || ch == '?')):
			qpLen += 3
		default:
			if ch == '\n' {
				if (!inline || body) && !needsEncoding && lineLen > 997 {
					needsEncoding = true
				}
				lineLen = 0
			}
			qpLen++
		}
	}

	switch {
	case !needsEncoding:
		return encoding7Bit, asciiSafe
	case qpLen < base64Len:
		return encodingQuotedPrintable, asciiSafe
	default:
		return encodingBase64, asciiSafe
	}
}

// whitespaceIsTrailing reports whether the byte at pos is the last byte of
// the input or immediately precedes a line terminator. Trailing whitespace
// is unsafe for mail transport when left unencoded.
func whitespaceIsTrailing(input []byte, pos int) bool {
	if pos == len(input)-1 {
		return true
	}
	if input[pos+1] == '\n' {
		return true
	}
	return input[pos+1] == '\r' && pos+2 < len(input) && input[pos+2] == '\n'
}
