// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

import (
	"encoding/base64"
	"io"
)

// base64Inline encodes input as standard base64 without any line folding,
// as used inside encoded-words.
func base64Inline(input []byte) string {
	return base64.StdEncoding.EncodeToString(input)
}

// writeBase64 streams input through a base64 encoder and the
// Base64LineBreaker, producing CRLF-terminated lines of at most
// MaxBodyLength characters. Even a final partial line is terminated, so
// encoding "Test" yields exactly "VGVzdA==\r\n".
func writeBase64(w io.Writer, input []byte) error {
	breaker := &Base64LineBreaker{out: w}
	encoder := base64.NewEncoder(base64.StdEncoding, breaker)
	if _, err := encoder.Write(input); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return breaker.Close()
}
