// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

import (
	"io"
)

// EmailAddress is a single RFC 5322 mailbox with an optional display name.
type EmailAddress struct {
	Name    string
	Address string
}

// AddressGroup is an RFC 5322 named group of mailboxes.
type AddressGroup struct {
	Name      string
	Addresses []*EmailAddress
}

// AddressList is a flat list of mailboxes and groups as used for To, Cc and
// similar headers. A list never directly contains another list; nested lists
// are flattened one level on construction.
type AddressList struct {
	Items []Value
}

// NewEmailAddress returns a new single mailbox address value. The name may
// be empty.
func NewEmailAddress(name, address string) *EmailAddress {
	return &EmailAddress{Name: name, Address: address}
}

// NewAddressGroup returns a new named group of mailbox addresses.
func NewAddressGroup(name string, addresses ...*EmailAddress) *AddressGroup {
	return &AddressGroup{Name: name, Addresses: addresses}
}

// NewAddressList returns a new address list from the given mailboxes and
// groups. Nested AddressList items are flattened one level; values of any
// other kind are ignored.
func NewAddressList(items ...Value) *AddressList {
	list := &AddressList{}
	for _, item := range items {
		switch v := item.(type) {
		case *EmailAddress, *AddressGroup:
			list.Items = append(list.Items, v)
		case *AddressList:
			list.Items = append(list.Items, v.Items...)
		}
	}
	return list
}

// Add appends a mailbox or group to the AddressList, flattening nested
// lists one level.
func (l *AddressList) Add(item Value) {
	switch v := item.(type) {
	case *EmailAddress, *AddressGroup:
		l.Items = append(l.Items, v)
	case *AddressList:
		l.Items = append(l.Items, v.Items...)
	}
}

// write emits the mailbox without a terminating CRLF and returns the column
// after the last byte written. The display name is RFC 2047 encoded when
// needed and the line is folded before the angle-addr if it would overflow.
func (a *EmailAddress) write(ew *errWriter, col int) int {
	if a.Name != "" {
		col += writeRFC2047(ew, a.Name)
		if col+len(a.Address)+2 >= MaxHeaderLength {
			ew.writeString("\r\n\t")
			col = 1
		} else {
			ew.writeString(" ")
			col++
		}
	}
	ew.writeString("<")
	ew.writeString(a.Address)
	ew.writeString(">")
	return col + len(a.Address) + 2
}

// width estimates the visible width of the mailbox for fold decisions.
func (a *EmailAddress) width() int {
	n := len(a.Address) + 2
	if a.Name != "" {
		n += len(a.Name) + 3
	}
	return n
}

// write emits the group without a terminating CRLF and returns the column
// after the last byte written.
func (g *AddressGroup) write(ew *errWriter, col int) int {
	if g.Name != "" {
		col += writeRFC2047(ew, g.Name) + 2
		ew.writeString(": ")
	}
	for pos, address := range g.Addresses {
		if col+address.width()+2 >= MaxHeaderLength {
			ew.writeString("\r\n\t")
			col = 1
		}
		col = address.write(ew, col)
		if pos < len(g.Addresses)-1 {
			ew.writeString(", ")
			col += 2
		}
	}
	return col
}

func (a *EmailAddress) writeTo(w io.Writer, col int) error {
	ew := &errWriter{w: w}
	a.write(ew, col)
	ew.writeString("\r\n")
	return ew.err
}

func (g *AddressGroup) writeTo(w io.Writer, col int) error {
	ew := &errWriter{w: w}
	g.write(ew, col)
	ew.writeString(";\r\n")
	return ew.err
}

func (l *AddressList) writeTo(w io.Writer, col int) error {
	ew := &errWriter{w: w}
	for pos, item := range l.Items {
		width := 0
		switch v := item.(type) {
		case *EmailAddress:
			width = v.width()
		case *AddressGroup:
			if v.Name != "" {
				width = len(v.Name) + 2
			}
		}
		if col+width >= MaxHeaderLength {
			ew.writeString("\r\n\t")
			col = 1
		}
		switch v := item.(type) {
		case *EmailAddress:
			col = v.write(ew, col)
			if pos < len(l.Items)-1 {
				ew.writeString(", ")
				col += 2
			}
		case *AddressGroup:
			col = v.write(ew, col)
			ew.writeString(";")
			col++
			if pos < len(l.Items)-1 {
				ew.writeString(", ")
				col += 2
			}
		}
	}
	ew.writeString("\r\n")
	return ew.err
}
