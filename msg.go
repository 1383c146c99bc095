// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

import (
	"errors"
	"fmt"
	"io"
	stdmime "mime"
	netmail "net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"jaytaylor.com/html2text"
)

var (
	// ErrNoFromAddress should be used when a FROM address is requested but not set.
	ErrNoFromAddress = errors.New("no FROM address set")

	// ErrNoRcptAddresses should be used when the list of RCPTs is empty.
	ErrNoRcptAddresses = errors.New("no recipient addresses set")
)

const (
	// MaxBodyLength is the maximum line length of encoded body content.
	MaxBodyLength = 76

	// SingleNewLine represents a CRLF line terminator.
	SingleNewLine = "\r\n"

	// DoubleNewLine represents a double CRLF, terminating a header block.
	DoubleNewLine = "\r\n\r\n"
)

// Msg is the mail message struct. Headers keep their insertion order and
// may repeat; the body is assembled from text/HTML alternatives, inline
// embeds and attachments, or from an explicitly supplied MimePart tree.
type Msg struct {
	// headers is the ordered list of message header fields
	headers []headerField

	// body is an explicitly set MIME body tree, overriding parts/embeds/attachments
	body *MimePart

	// parts represent the different body parts of the Msg
	parts []*MimePart

	// embeds represent the different inline embedded parts of the Msg
	embeds []*MimePart

	// attachments represent the different attachment parts of the Msg
	attachments []*MimePart

	// boundary is the MIME content boundary of the top-level multipart
	boundary string

	// charset represents the charset of the mail (defaults to UTF-8)
	charset Charset

	// mimever represents the MIME version
	mimever MIMEVersion
}

// MsgOption returns a function that can be used for grouping Msg options.
type MsgOption func(*Msg)

// NewMsg returns a new Msg pointer.
func NewMsg(opts ...MsgOption) *Msg {
	m := &Msg{
		charset: CharsetUTF8,
		mimever: Mime10,
	}

	// Override defaults with optionally provided MsgOption functions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(m)
	}

	return m
}

// WithCharset overrides the default message charset.
func WithCharset(c Charset) MsgOption {
	return func(m *Msg) {
		m.charset = c
	}
}

// WithBoundary overrides the generated boundary of the top-level multipart.
func WithBoundary(b string) MsgOption {
	return func(m *Msg) {
		m.boundary = b
	}
}

// WithMIMEVersion overrides the default MIME version.
func WithMIMEVersion(mv MIMEVersion) MsgOption {
	return func(m *Msg) {
		m.mimever = mv
	}
}

// SetCharset sets the encoding charset of the Msg.
func (m *Msg) SetCharset(c Charset) {
	m.charset = c
}

// SetBoundary sets the boundary of the Msg.
func (m *Msg) SetBoundary(b string) {
	m.boundary = b
}

// Charset returns the currently set charset of the Msg.
func (m *Msg) Charset() string {
	return m.charset.String()
}

// SetGenHeader sets a generic header field of the Msg to the given value,
// replacing any previously set occurrence of the same field.
func (m *Msg) SetGenHeader(h Header, v Value) {
	m.setHeaderValue(h.String(), v)
}

// AddGenHeader appends an additional occurrence of a generic header field,
// preserving already set occurrences. Repeating fields such as Received or
// List-Archive use this.
func (m *Msg) AddGenHeader(h Header, v Value) {
	m.headers = append(m.headers, headerField{name: h.String(), value: v})
}

// setHeaderValue replaces the first occurrence of the named header in place
// and drops any further duplicates, or appends the field if it was not set.
func (m *Msg) setHeaderValue(name string, v Value) {
	replaced := false
	kept := m.headers[:0]
	for _, f := range m.headers {
		if strings.EqualFold(f.name, name) {
			if replaced {
				continue
			}
			f.value = v
			replaced = true
		}
		kept = append(kept, f)
	}
	m.headers = kept
	if !replaced {
		m.headers = append(m.headers, headerField{name: name, value: v})
	}
}

// headerValue returns the value of the first occurrence of the named
// header, or nil.
func (m *Msg) headerValue(name string) Value {
	for _, f := range m.headers {
		if strings.EqualFold(f.name, name) {
			return f.value
		}
	}
	return nil
}

// hasHeaderField reports whether at least one occurrence of the named
// header is set.
func (m *Msg) hasHeaderField(name string) bool {
	return m.headerValue(name) != nil
}

// parseAddress parses a single RFC 5322 address string into an EmailAddress.
func parseAddress(a string) (*EmailAddress, error) {
	addr, err := netmail.ParseAddress(a)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail address %q: %w", a, err)
	}
	return &EmailAddress{Name: addr.Name, Address: addr.Address}, nil
}

// SetAddrHeader sets an address related header field of the Msg.
func (m *Msg) SetAddrHeader(h AddrHeader, addrs ...string) error {
	list := &AddressList{}
	for _, a := range addrs {
		addr, err := parseAddress(a)
		if err != nil {
			return err
		}
		list.Add(addr)
	}
	switch {
	case len(list.Items) == 0:
		return nil
	case h == HeaderFrom || h == HeaderSender:
		m.setHeaderValue(h.String(), list.Items[0])
	case len(list.Items) == 1:
		m.setHeaderValue(h.String(), list.Items[0])
	default:
		m.setHeaderValue(h.String(), list)
	}
	return nil
}

// addAddr adds an additional address to the given address header of the Msg.
func (m *Msg) addAddr(h AddrHeader, a string) error {
	addr, err := parseAddress(a)
	if err != nil {
		return err
	}
	switch v := m.headerValue(h.String()).(type) {
	case *AddressList:
		v.Add(addr)
	case *EmailAddress, *AddressGroup:
		m.setHeaderValue(h.String(), NewAddressList(v, addr))
	default:
		m.setHeaderValue(h.String(), addr)
	}
	return nil
}

// From takes and validates a given mail address and sets it as "From" header
// of the Msg.
func (m *Msg) From(f string) error {
	return m.SetAddrHeader(HeaderFrom, f)
}

// FromFormat takes a name and address and stores them RFC 5322 compliant as
// the From address header field.
func (m *Msg) FromFormat(name, addr string) {
	m.setHeaderValue(HeaderFrom.String(), NewEmailAddress(name, addr))
}

// To takes and validates a given mail address list and sets the To:
// addresses of the Msg.
func (m *Msg) To(rcpts ...string) error {
	return m.SetAddrHeader(HeaderTo, rcpts...)
}

// AddTo adds an additional address to the To address header field.
func (m *Msg) AddTo(rcpt string) error {
	return m.addAddr(HeaderTo, rcpt)
}

// AddToFormat takes a name and address and stores them as an additional To
// address header field.
func (m *Msg) AddToFormat(name, addr string) {
	switch v := m.headerValue(HeaderTo.String()).(type) {
	case *AddressList:
		v.Add(NewEmailAddress(name, addr))
	case *EmailAddress:
		m.setHeaderValue(HeaderTo.String(), NewAddressList(v, NewEmailAddress(name, addr)))
	default:
		m.setHeaderValue(HeaderTo.String(), NewEmailAddress(name, addr))
	}
}

// ToGroup sets a named group of recipients as the To header of the Msg.
func (m *Msg) ToGroup(name string, rcpts ...string) error {
	group := &AddressGroup{Name: name}
	for _, r := range rcpts {
		addr, err := parseAddress(r)
		if err != nil {
			return err
		}
		group.Addresses = append(group.Addresses, addr)
	}
	m.setHeaderValue(HeaderTo.String(), group)
	return nil
}

// Cc takes and validates a given mail address list and sets the Cc:
// addresses of the Msg.
func (m *Msg) Cc(rcpts ...string) error {
	return m.SetAddrHeader(HeaderCc, rcpts...)
}

// AddCc adds an additional address to the Cc address header field.
func (m *Msg) AddCc(rcpt string) error {
	return m.addAddr(HeaderCc, rcpt)
}

// Bcc takes and validates a given mail address list and sets the Bcc:
// addresses of the Msg.
func (m *Msg) Bcc(rcpts ...string) error {
	return m.SetAddrHeader(HeaderBcc, rcpts...)
}

// AddBcc adds an additional address to the Bcc address header field.
func (m *Msg) AddBcc(rcpt string) error {
	return m.addAddr(HeaderBcc, rcpt)
}

// Sender takes and validates a given mail address and sets it as "Sender"
// header of the Msg.
func (m *Msg) Sender(s string) error {
	return m.SetAddrHeader(HeaderSender, s)
}

// ReplyTo takes and validates a given mail address and sets it as "Reply-To"
// header of the Msg.
func (m *Msg) ReplyTo(r string) error {
	addr, err := parseAddress(r)
	if err != nil {
		return fmt.Errorf("failed to parse reply-to address: %w", err)
	}
	m.setHeaderValue(HeaderReplyTo.String(), addr)
	return nil
}

// ReplyToFormat takes a name and address and stores them as the Reply-To
// header field.
func (m *Msg) ReplyToFormat(name, addr string) {
	m.setHeaderValue(HeaderReplyTo.String(), NewEmailAddress(name, addr))
}

// Subject sets the "Subject" header field of the Msg.
func (m *Msg) Subject(s string) {
	m.SetGenHeader(HeaderSubject, NewText(s))
}

// SetMessageID generates a random message id for the mail.
func (m *Msg) SetMessageID() {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost.localdomain"
	}
	random, err := randomStringSecure(22)
	if err != nil {
		random = "mailbuilder"
	}
	mid := fmt.Sprintf("%d.%d.%s@%s", os.Getpid(), time.Now().UnixNano(), random, hostname)
	m.SetMessageIDWithValue(mid)
}

// SetMessageIDWithValue sets the message id for the mail. The identifier is
// emitted wrapped in angle brackets.
func (m *Msg) SetMessageIDWithValue(v string) {
	m.SetGenHeader(HeaderMessageID, NewMessageID(v))
}

// SetInReplyTo sets the "In-Reply-To" header field of the Msg.
func (m *Msg) SetInReplyTo(ids ...string) {
	m.SetGenHeader(HeaderInReplyTo, NewMessageIDList(ids...))
}

// SetReferences sets the "References" header field of the Msg.
func (m *Msg) SetReferences(ids ...string) {
	m.SetGenHeader(HeaderReferences, NewMessageIDList(ids...))
}

// SetDate sets the Date header field to the current time in a valid format.
func (m *Msg) SetDate() {
	m.SetDateWithValue(time.Now())
}

// SetDateWithValue sets the Date header field to the provided time in a
// valid format.
func (m *Msg) SetDateWithValue(t time.Time) {
	m.SetGenHeader(HeaderDate, NewDate(t))
}

// SetDateWithString parses a loosely formatted date string and sets it as
// the Date header field of the Msg.
func (m *Msg) SetDateWithString(v string) error {
	t, err := dateparse.ParseAny(v)
	if err != nil {
		return fmt.Errorf("failed to parse date string %q: %w", v, err)
	}
	m.SetDateWithValue(t)
	return nil
}

// SetImportance sets the Msg Importance/Priority header to the given
// Importance.
func (m *Msg) SetImportance(i Importance) {
	if i == ImportanceNormal {
		return
	}
	m.SetGenHeader(HeaderImportance, NewRaw(i.String()))
	m.SetGenHeader(HeaderPriority, NewRaw(i.NumString()))
	m.SetGenHeader(HeaderXPriority, NewRaw(i.XPrioString()))
	m.SetGenHeader(HeaderXMSMailPriority, NewRaw(i.NumString()))
}

// SetOrganization sets the provided string as Organization header for the Msg.
func (m *Msg) SetOrganization(o string) {
	m.SetGenHeader(HeaderOrganization, NewText(o))
}

// SetUserAgent sets the User-Agent/X-Mailer header for the Msg.
func (m *Msg) SetUserAgent(a string) {
	m.SetGenHeader(HeaderUserAgent, NewText(a))
	m.SetGenHeader(HeaderXMailer, NewText(a))
}

// SetListUnsubscribe sets the List-Unsubscribe header to the given URLs.
func (m *Msg) SetListUnsubscribe(urls ...string) {
	m.SetGenHeader(HeaderListUnsubscribe, NewURLList(urls...))
}

// GetSender returns the currently set FROM address. If full is true, it
// will return the full address string including the display name, if set.
func (m *Msg) GetSender(full bool) (string, error) {
	from, ok := m.headerValue(HeaderFrom.String()).(*EmailAddress)
	if !ok {
		return "", ErrNoFromAddress
	}
	if full && from.Name != "" {
		return fmt.Sprintf("%q <%s>", from.Name, from.Address), nil
	}
	return from.Address, nil
}

// GetRecipients returns a list of the currently set TO/CC/BCC addresses.
func (m *Msg) GetRecipients() ([]string, error) {
	var rcpts []string
	for _, h := range []AddrHeader{HeaderTo, HeaderCc, HeaderBcc} {
		for _, addr := range mailboxesOf(m.headerValue(h.String())) {
			rcpts = append(rcpts, addr.Address)
		}
	}
	if len(rcpts) == 0 {
		return rcpts, ErrNoRcptAddresses
	}
	return rcpts, nil
}

// mailboxesOf flattens an address header value into its single mailboxes.
func mailboxesOf(v Value) []*EmailAddress {
	switch a := v.(type) {
	case *EmailAddress:
		return []*EmailAddress{a}
	case *AddressGroup:
		return a.Addresses
	case *AddressList:
		var all []*EmailAddress
		for _, item := range a.Items {
			all = append(all, mailboxesOf(item)...)
		}
		return all
	default:
		return nil
	}
}

// SetBodyString sets the body of the message to the given textual content.
func (m *Msg) SetBodyString(ctype ContentType, content string, opts ...PartOption) {
	m.parts = []*MimePart{m.newTextPart(ctype, content, opts...)}
}

// AddAlternativeString adds an alternative body representation to the
// message, e.g. a text/html version of a text/plain body.
func (m *Msg) AddAlternativeString(ctype ContentType, content string, opts ...PartOption) {
	m.parts = append(m.parts, m.newTextPart(ctype, content, opts...))
}

// SetBodyHTMLString sets the body of the message to the given HTML content
// and derives a plain text alternative from it, so that clients without
// HTML rendering still get a readable body.
func (m *Msg) SetBodyHTMLString(content string, opts ...PartOption) error {
	text, err := html2text.FromString(content, html2text.Options{TextOnly: true})
	if err != nil {
		return fmt.Errorf("failed to derive text alternative from HTML body: %w", err)
	}
	m.parts = []*MimePart{
		m.newTextPart(TypeTextPlain, text, opts...),
		m.newTextPart(TypeTextHTML, content, opts...),
	}
	return nil
}

// SetBodyPart sets an explicitly assembled MimePart tree as the message
// body, overriding any body parts, embeds and attachments set through the
// convenience methods.
func (m *Msg) SetBodyPart(p *MimePart) {
	m.body = p
}

// newTextPart returns a new textual body part honoring the Msg charset.
func (m *Msg) newTextPart(ctype ContentType, content string, opts ...PartOption) *MimePart {
	p := &MimePart{
		kind: bodyText,
		text: content,
		headers: []headerField{{
			name:  HeaderContentType.String(),
			value: NewContentTypeValue(ctype.String()).Param("charset", m.charset.String()),
		}},
	}
	return applyPartOptions(p, opts)
}

// AttachBytes adds the given content as an attachment to the Msg.
func (m *Msg) AttachBytes(name string, ctype ContentType, content []byte, opts ...PartOption) {
	m.attachments = append(m.attachments, newFilePart(name, ctype, content, true, opts))
}

// AttachReader adds an attachment to the Msg by reading the content from an
// io.Reader. The content type is guessed from the file name extension.
func (m *Msg) AttachReader(name string, r io.Reader, opts ...PartOption) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read attachment content: %w", err)
	}
	m.AttachBytes(name, typeByFilename(name), content, opts...)
	return nil
}

// AttachFile adds an attachment to the Msg by reading the given file from
// the local file system.
func (m *Msg) AttachFile(name string, opts ...PartOption) error {
	content, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read attachment file: %w", err)
	}
	m.AttachBytes(filepath.Base(name), typeByFilename(name), content, opts...)
	return nil
}

// EmbedBytes adds the given content as an inline embedded part to the Msg.
// The part receives a Content-ID matching its name, so it can be referenced
// from an HTML body.
func (m *Msg) EmbedBytes(name string, ctype ContentType, content []byte, opts ...PartOption) {
	m.embeds = append(m.embeds, newFilePart(name, ctype, content, false, opts))
}

// EmbedReader adds an inline embedded part to the Msg by reading the
// content from an io.Reader.
func (m *Msg) EmbedReader(name string, r io.Reader, opts ...PartOption) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read embed content: %w", err)
	}
	m.EmbedBytes(name, typeByFilename(name), content, opts...)
	return nil
}

// EmbedFile adds an inline embedded part to the Msg by reading the given
// file from the local file system.
func (m *Msg) EmbedFile(name string, opts ...PartOption) error {
	content, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read embed file: %w", err)
	}
	m.EmbedBytes(filepath.Base(name), typeByFilename(name), content, opts...)
	return nil
}

// newFilePart assembles a binary part for an attachment or embed, applying
// part options before filling in the default disposition and Content-ID.
func newFilePart(name string, ctype ContentType, content []byte, attachment bool, opts []PartOption) *MimePart {
	p := applyPartOptions(NewBinaryPart(ctype, content), opts)
	if !p.hasHeader(HeaderContentDisposition.String()) {
		if attachment {
			p.Attachment(name)
		} else {
			p.Inline()
		}
	}
	if !attachment && !p.hasHeader(HeaderContentID.String()) {
		p.CID(name)
	}
	return p
}

// typeByFilename guesses the content type from a file name extension,
// falling back to application/octet-stream.
func typeByFilename(name string) ContentType {
	if mt := stdmime.TypeByExtension(filepath.Ext(name)); mt != "" {
		if sep := strings.IndexByte(mt, ';'); sep != -1 {
			mt = mt[:sep]
		}
		return ContentType(mt)
	}
	return TypeAppOctetStream
}

// hasHeader reports whether the part carries at least one occurrence of the
// named header.
func (p *MimePart) hasHeader(name string) bool {
	for _, f := range p.headers {
		if strings.EqualFold(f.name, name) {
			return true
		}
	}
	return false
}

// contentTypeValue returns the structured Content-Type value of the part,
// if one is set.
func (p *MimePart) contentTypeValue() (*ContentTypeValue, bool) {
	for _, f := range p.headers {
		if strings.EqualFold(f.name, HeaderContentType.String()) {
			ct, ok := f.value.(*ContentTypeValue)
			return ct, ok
		}
	}
	return nil, false
}

// hasAlt returns true if the Msg has more than one body part.
func (m *Msg) hasAlt() bool {
	return len(m.parts) > 1
}

// hasMixed returns true if the Msg has mixed parts.
func (m *Msg) hasMixed() bool {
	return (len(m.parts) > 0 && len(m.attachments) > 0) || len(m.attachments) > 1
}

// hasRelated returns true if the Msg has related parts.
func (m *Msg) hasRelated() bool {
	return (len(m.parts) > 0 && len(m.embeds) > 0) || len(m.embeds) > 1
}

// assembleBody builds the MIME body tree of the Msg: body alternatives nest
// under multipart/alternative, inline embeds wrap the result in
// multipart/related and attachments wrap everything in multipart/mixed.
func (m *Msg) assembleBody() *MimePart {
	if m.body != nil {
		return m.applyBoundary(m.body)
	}

	var core *MimePart
	switch {
	case m.hasAlt():
		core = NewMultipart(TypeMultipartAlternative, m.parts...)
	case len(m.parts) == 1:
		core = m.parts[0]
	}

	if len(m.embeds) > 0 {
		if core == nil && !m.hasRelated() {
			core = m.embeds[0]
		} else {
			children := make([]*MimePart, 0, len(m.embeds)+1)
			if core != nil {
				children = append(children, core)
			}
			children = append(children, m.embeds...)
			core = NewMultipart(TypeMultipartRelated, children...)
		}
	}

	if len(m.attachments) > 0 {
		if core == nil && !m.hasMixed() {
			core = m.attachments[0]
		} else {
			children := make([]*MimePart, 0, len(m.attachments)+1)
			if core != nil {
				children = append(children, core)
			}
			children = append(children, m.attachments...)
			core = NewMultipart(TypeMultipartMixed, children...)
		}
	}

	if core == nil {
		core = m.newTextPart(TypeTextPlain, "")
	}
	return m.applyBoundary(core)
}

// applyBoundary pins the configured boundary to the outermost multipart of
// the body tree, when one was requested and none is pinned yet.
func (m *Msg) applyBoundary(root *MimePart) *MimePart {
	if m.boundary == "" || root.kind != bodyMultipart {
		return root
	}
	if ct, ok := root.contentTypeValue(); ok && ct.ParamValue("boundary") == "" {
		ct.Param("boundary", m.boundary)
	}
	return root
}

// addDefaultHeader guarantees the presence of the Date, Message-ID and
// MIME-Version headers before the message is written.
func (m *Msg) addDefaultHeader() {
	if !m.hasHeaderField(HeaderDate.String()) {
		m.SetDate()
	}
	if !m.hasHeaderField(HeaderMessageID.String()) {
		m.SetMessageID()
	}
	if !m.hasHeaderField(HeaderMIMEVersion.String()) {
		m.SetGenHeader(HeaderMIMEVersion, NewRaw(string(m.mimever)))
	}
}

// Reset resets all headers, body parts and attachments/embeds of the Msg.
// It leaves already set charsets, boundaries, etc. as is.
func (m *Msg) Reset() {
	m.headers = nil
	m.body = nil
	m.parts = nil
	m.embeds = nil
	m.attachments = nil
}

// WriteTo writes the formatted Msg into the given io.Writer and satisfies
// the io.WriterTo interface. Serialization is non-destructive: the Msg can
// be written multiple times, with boundary tokens freshly resolved on every
// pass for multiparts that do not pin one.
func (m *Msg) WriteTo(w io.Writer) (int64, error) {
	mw := &msgWriter{writer: w}
	mw.writeMsg(m)
	return mw.n, mw.err
}
