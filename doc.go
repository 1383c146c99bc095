// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

// Package mail provides a simple and easy way to build RFC 5322 Internet
// messages with MIME bodies and serialize them to a byte stream suitable
// for transmission or for storage as an .eml file.
package mail

// VERSION indicates the current version of the package.
const VERSION = "0.1.0"
