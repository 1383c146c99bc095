// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewMsg(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := NewMsg()
		if m.charset != CharsetUTF8 {
			t.Errorf("default charset = %q, want %q", m.charset, CharsetUTF8)
		}
		if m.mimever != Mime10 {
			t.Errorf("default MIME version = %q, want %q", m.mimever, Mime10)
		}
	})
	t.Run("with options", func(t *testing.T) {
		m := NewMsg(WithCharset(CharsetASCII), WithBoundary("b1"), nil)
		if m.charset != CharsetASCII {
			t.Errorf("charset = %q, want %q", m.charset, CharsetASCII)
		}
		if m.boundary != "b1" {
			t.Errorf("boundary = %q, want %q", m.boundary, "b1")
		}
	})
}

func TestMsg_SetGenHeader(t *testing.T) {
	m := NewMsg()
	m.SetGenHeader(HeaderOrganization, NewText("ACME Inc."))
	m.SetGenHeader(HeaderOrganization, NewText("ACME Corp."))
	count := 0
	for _, f := range m.headers {
		if f.name == HeaderOrganization.String() {
			count++
		}
	}
	if count != 1 {
		t.Errorf("SetGenHeader() left %d occurrences, want 1", count)
	}
	if text, ok := m.headerValue(HeaderOrganization.String()).(Text); !ok || text.Text != "ACME Corp." {
		t.Error("SetGenHeader() did not replace the previous value")
	}
}

func TestMsg_AddGenHeader(t *testing.T) {
	m := NewMsg()
	m.AddGenHeader(HeaderListArchive, NewURL("https://one.example/archive"))
	m.AddGenHeader(HeaderListArchive, NewURL("https://two.example/archive"))
	count := 0
	for _, f := range m.headers {
		if f.name == HeaderListArchive.String() {
			count++
		}
	}
	if count != 2 {
		t.Errorf("AddGenHeader() left %d occurrences, want 2", count)
	}
}

func TestMsg_AddressHeaders(t *testing.T) {
	t.Run("From with invalid address", func(t *testing.T) {
		m := NewMsg()
		if err := m.From("invalid"); err == nil {
			t.Error("From() with an invalid address must fail")
		}
	})
	t.Run("From keeps only the first address", func(t *testing.T) {
		m := NewMsg()
		if err := m.SetAddrHeader(HeaderFrom, "a@example.com", "b@example.com"); err != nil {
			t.Fatalf("SetAddrHeader() failed: %s", err)
		}
		from, ok := m.headerValue(HeaderFrom.String()).(*EmailAddress)
		if !ok || from.Address != "a@example.com" {
			t.Errorf("From header = %+v, want the first mailbox", m.headerValue("From"))
		}
	})
	t.Run("To with display name in the input", func(t *testing.T) {
		m := NewMsg()
		if err := m.To("Jane Doe <jane@doe.com>"); err != nil {
			t.Fatalf("To() failed: %s", err)
		}
		to, ok := m.headerValue(HeaderTo.String()).(*EmailAddress)
		if !ok || to.Name != "Jane Doe" || to.Address != "jane@doe.com" {
			t.Errorf("To header = %+v", m.headerValue("To"))
		}
	})
	t.Run("AddTo grows a single mailbox into a list", func(t *testing.T) {
		m := NewMsg()
		if err := m.To("a@example.com"); err != nil {
			t.Fatalf("To() failed: %s", err)
		}
		if err := m.AddTo("b@example.com"); err != nil {
			t.Fatalf("AddTo() failed: %s", err)
		}
		if err := m.AddTo("c@example.com"); err != nil {
			t.Fatalf("AddTo() failed: %s", err)
		}
		list, ok := m.headerValue(HeaderTo.String()).(*AddressList)
		if !ok || len(list.Items) != 3 {
			t.Errorf("To header = %+v, want a list of 3", m.headerValue("To"))
		}
	})
	t.Run("ToGroup", func(t *testing.T) {
		m := NewMsg()
		if err := m.ToGroup("Team", "a@example.com", "b@example.com"); err != nil {
			t.Fatalf("ToGroup() failed: %s", err)
		}
		group, ok := m.headerValue(HeaderTo.String()).(*AddressGroup)
		if !ok || group.Name != "Team" || len(group.Addresses) != 2 {
			t.Errorf("To header = %+v, want a group of 2", m.headerValue("To"))
		}
	})
}

func TestMsg_GetSender(t *testing.T) {
	m := NewMsg()
	if _, err := m.GetSender(false); !errors.Is(err, ErrNoFromAddress) {
		t.Errorf("GetSender() error = %s, want %s", err, ErrNoFromAddress)
	}
	m.FromFormat("John Doe", "john@doe.com")
	addr, err := m.GetSender(false)
	if err != nil || addr != "john@doe.com" {
		t.Errorf("GetSender(false) = %q, %v", addr, err)
	}
	full, err := m.GetSender(true)
	if err != nil || full != `"John Doe" <john@doe.com>` {
		t.Errorf("GetSender(true) = %q, %v", full, err)
	}
}

func TestMsg_GetRecipients(t *testing.T) {
	m := NewMsg()
	if _, err := m.GetRecipients(); !errors.Is(err, ErrNoRcptAddresses) {
		t.Errorf("GetRecipients() error = %s, want %s", err, ErrNoRcptAddresses)
	}
	if err := m.To("a@example.com", "b@example.com"); err != nil {
		t.Fatalf("To() failed: %s", err)
	}
	if err := m.Cc("c@example.com"); err != nil {
		t.Fatalf("Cc() failed: %s", err)
	}
	if err := m.Bcc("d@example.com"); err != nil {
		t.Fatalf("Bcc() failed: %s", err)
	}
	rcpts, err := m.GetRecipients()
	if err != nil {
		t.Fatalf("GetRecipients() failed: %s", err)
	}
	want := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"}
	if len(rcpts) != len(want) {
		t.Fatalf("GetRecipients() returned %d addresses, want %d", len(rcpts), len(want))
	}
	for i := range want {
		if rcpts[i] != want[i] {
			t.Errorf("recipient %d = %q, want %q", i, rcpts[i], want[i])
		}
	}
}

func TestMsg_SetDateWithString(t *testing.T) {
	m := NewMsg()
	if err := m.SetDateWithString("2023-07-14T12:30:00Z"); err != nil {
		t.Fatalf("SetDateWithString() failed: %s", err)
	}
	date, ok := m.headerValue(HeaderDate.String()).(Date)
	if !ok {
		t.Fatal("Date header is not a Date value")
	}
	want := time.Date(2023, 7, 14, 12, 30, 0, 0, time.UTC)
	if !date.Time.Equal(want) {
		t.Errorf("Date = %s, want %s", date.Time, want)
	}
	if err := m.SetDateWithString("not a date"); err == nil {
		t.Error("SetDateWithString() with garbage input must fail")
	}
}

func TestMsg_SetMessageID(t *testing.T) {
	m := NewMsg()
	m.SetMessageID()
	mid, ok := m.headerValue(HeaderMessageID.String()).(MessageIDList)
	if !ok || len(mid.IDs) != 1 {
		t.Fatal("Message-ID header not set")
	}
	if !strings.Contains(mid.IDs[0], "@") {
		t.Errorf("generated Message-ID %q has no domain part", mid.IDs[0])
	}
}

func TestMsg_SetImportance(t *testing.T) {
	m := NewMsg()
	m.SetImportance(ImportanceNormal)
	if m.hasHeaderField(HeaderImportance.String()) {
		t.Error("normal importance must not set any headers")
	}
	m.SetImportance(ImportanceHigh)
	for _, h := range []Header{HeaderImportance, HeaderPriority, HeaderXPriority, HeaderXMSMailPriority} {
		if !m.hasHeaderField(h.String()) {
			t.Errorf("missing %s header", h)
		}
	}
}

func TestMsg_AssembleBody(t *testing.T) {
	t.Run("empty message gets an empty text part", func(t *testing.T) {
		body := NewMsg().assembleBody()
		if body.kind != bodyText || body.text != "" {
			t.Errorf("assembleBody() = %+v, want an empty text part", body)
		}
	})
	t.Run("single body part stands alone", func(t *testing.T) {
		m := NewMsg()
		m.SetBodyString(TypeTextPlain, "hello")
		body := m.assembleBody()
		if body.kind != bodyText || body.text != "hello" {
			t.Errorf("assembleBody() = %+v, want the bare text part", body)
		}
	})
	t.Run("two body parts nest under alternative", func(t *testing.T) {
		m := NewMsg()
		m.SetBodyString(TypeTextPlain, "hello")
		m.AddAlternativeString(TypeTextHTML, "<p>hello</p>")
		body := m.assembleBody()
		ct, _ := body.contentTypeValue()
		if body.kind != bodyMultipart || ct.Type != TypeMultipartAlternative.String() {
			t.Fatalf("assembleBody() type = %+v, want multipart/alternative", body)
		}
		if len(body.children) != 2 {
			t.Errorf("alternative has %d children, want 2", len(body.children))
		}
	})
	t.Run("embeds wrap the body in related", func(t *testing.T) {
		m := NewMsg()
		m.SetBodyString(TypeTextHTML, `<img src="cid:logo.png">`)
		m.EmbedBytes("logo.png", "image/png", []byte{1})
		body := m.assembleBody()
		ct, _ := body.contentTypeValue()
		if ct.Type != TypeMultipartRelated.String() || len(body.children) != 2 {
			t.Fatalf("assembleBody() = %+v, want multipart/related with 2 children", body)
		}
	})
	t.Run("attachments wrap everything in mixed", func(t *testing.T) {
		m := NewMsg()
		m.SetBodyString(TypeTextPlain, "hello")
		m.AddAlternativeString(TypeTextHTML, "<p>hello</p>")
		m.EmbedBytes("logo.png", "image/png", []byte{1})
		m.AttachBytes("data.bin", TypeAppOctetStream, []byte{2})
		body := m.assembleBody()
		ct, _ := body.contentTypeValue()
		if ct.Type != TypeMultipartMixed.String() || len(body.children) != 2 {
			t.Fatalf("assembleBody() = %+v, want multipart/mixed with 2 children", body)
		}
		related, _ := body.children[0].contentTypeValue()
		if related.Type != TypeMultipartRelated.String() {
			t.Errorf("first mixed child is %q, want multipart/related", related.Type)
		}
		alternative, _ := body.children[0].children[0].contentTypeValue()
		if alternative.Type != TypeMultipartAlternative.String() {
			t.Errorf("first related child is %q, want multipart/alternative", alternative.Type)
		}
	})
	t.Run("single attachment without body stands alone", func(t *testing.T) {
		m := NewMsg()
		m.AttachBytes("data.bin", TypeAppOctetStream, []byte{2})
		body := m.assembleBody()
		if body.kind != bodyBinary {
			t.Errorf("assembleBody() = %+v, want the bare attachment", body)
		}
	})
	t.Run("configured boundary is pinned on the outermost multipart", func(t *testing.T) {
		m := NewMsg(WithBoundary("fixed"))
		m.SetBodyString(TypeTextPlain, "hello")
		m.AttachBytes("data.bin", TypeAppOctetStream, []byte{2})
		body := m.assembleBody()
		ct, _ := body.contentTypeValue()
		if ct.ParamValue("boundary") != "fixed" {
			t.Error("boundary option not applied to the outermost multipart")
		}
	})
	t.Run("explicit body part overrides everything", func(t *testing.T) {
		m := NewMsg()
		m.SetBodyString(TypeTextPlain, "ignored")
		custom := NewTextPart("custom")
		m.SetBodyPart(custom)
		if m.assembleBody() != custom {
			t.Error("explicit body part was not used")
		}
	})
}

func TestMsg_SetBodyString_UsesMsgCharset(t *testing.T) {
	m := NewMsg(WithCharset(CharsetASCII))
	m.SetBodyString(TypeTextPlain, "hello")
	ct, ok := m.parts[0].contentTypeValue()
	if !ok || ct.ParamValue("charset") != CharsetASCII.String() {
		t.Errorf("body part charset = %q, want %q", ct.ParamValue("charset"), CharsetASCII)
	}
}

func TestMsg_SetBodyHTMLString(t *testing.T) {
	m := NewMsg()
	if err := m.SetBodyHTMLString("<p>Hello <b>world</b></p>"); err != nil {
		t.Fatalf("SetBodyHTMLString() failed: %s", err)
	}
	if len(m.parts) != 2 {
		t.Fatalf("expected a text and an HTML part, got %d parts", len(m.parts))
	}
	plain, _ := m.parts[0].contentTypeValue()
	html, _ := m.parts[1].contentTypeValue()
	if plain.Type != TypeTextPlain.String() || html.Type != TypeTextHTML.String() {
		t.Error("part order must be text/plain first, text/html second")
	}
	if !strings.Contains(m.parts[0].text, "Hello") || strings.Contains(m.parts[0].text, "<p>") {
		t.Errorf("derived text alternative = %q", m.parts[0].text)
	}
	if m.parts[1].text != "<p>Hello <b>world</b></p>" {
		t.Error("HTML part must carry the original markup")
	}
}

func TestMsg_Attachments(t *testing.T) {
	t.Run("AttachBytes sets a disposition with the filename", func(t *testing.T) {
		m := NewMsg()
		m.AttachBytes("data.bin", TypeAppOctetStream, []byte{1, 2, 3})
		if len(m.attachments) != 1 {
			t.Fatalf("expected 1 attachment, got %d", len(m.attachments))
		}
		part := m.attachments[0]
		if !part.hasHeader(HeaderContentDisposition.String()) {
			t.Error("attachment has no Content-Disposition header")
		}
	})
	t.Run("AttachReader guesses the content type", func(t *testing.T) {
		m := NewMsg()
		if err := m.AttachReader("notes.txt", strings.NewReader("hi")); err != nil {
			t.Fatalf("AttachReader() failed: %s", err)
		}
		ct, _ := m.attachments[0].contentTypeValue()
		if ct.Type != "text/plain" {
			t.Errorf("guessed content type = %q, want text/plain", ct.Type)
		}
	})
	t.Run("AttachFile reads from disk", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "körner.txt")
		if err := os.WriteFile(name, []byte("content"), 0o644); err != nil {
			t.Fatalf("failed to write test file: %s", err)
		}
		m := NewMsg()
		if err := m.AttachFile(name); err != nil {
			t.Fatalf("AttachFile() failed: %s", err)
		}
		if !bytes.Equal(m.attachments[0].binary, []byte("content")) {
			t.Error("attachment content does not match the file")
		}
	})
	t.Run("AttachFile with a missing file", func(t *testing.T) {
		m := NewMsg()
		if err := m.AttachFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
			t.Error("AttachFile() with a missing file must fail")
		}
	})
	t.Run("unknown extension falls back to octet-stream", func(t *testing.T) {
		if got := typeByFilename("data.zzyzx"); got != TypeAppOctetStream {
			t.Errorf("typeByFilename() = %q, want %q", got, TypeAppOctetStream)
		}
	})
}

func TestMsg_Embeds(t *testing.T) {
	t.Run("EmbedBytes defaults to inline with a Content-ID", func(t *testing.T) {
		m := NewMsg()
		m.EmbedBytes("logo.png", "image/png", []byte{1})
		part := m.embeds[0]
		if !part.hasHeader(HeaderContentID.String()) {
			t.Error("embed has no Content-ID header")
		}
		if !part.hasHeader(HeaderContentDisposition.String()) {
			t.Error("embed has no Content-Disposition header")
		}
	})
	t.Run("an explicit Content-ID option wins", func(t *testing.T) {
		m := NewMsg()
		m.EmbedBytes("logo.png", "image/png", []byte{1}, WithPartContentID("custom-id"))
		part := m.embeds[0]
		count := 0
		for _, f := range part.headers {
			if f.name == HeaderContentID.String() {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("embed carries %d Content-ID headers, want 1", count)
		}
		var cid Value
		for _, f := range part.headers {
			if f.name == HeaderContentID.String() {
				cid = f.value
			}
		}
		if got := writeValueString(t, cid, 12); got != "<custom-id>\r\n" {
			t.Errorf("Content-ID = %q, want %q", got, "<custom-id>\r\n")
		}
	})
}

func TestMsg_Reset(t *testing.T) {
	m := NewMsg()
	m.FromFormat("John", "john@doe.com")
	m.SetBodyString(TypeTextPlain, "hello")
	m.AttachBytes("a.bin", TypeAppOctetStream, []byte{1})
	m.Reset()
	if len(m.headers) != 0 || len(m.parts) != 0 || len(m.attachments) != 0 {
		t.Error("Reset() left message content behind")
	}
	if m.charset != CharsetUTF8 {
		t.Error("Reset() must not touch the configured charset")
	}
}
