package main

import (
	"fmt"
	"os"

	mail "github.com/stalwartlabs/mail-builder"
)

func main() {
	m := mail.NewMsg()
	m.FromFormat("Art Vandelay", "art@vandelay.com")
	if err := m.To("jane@example.com"); err != nil {
		fmt.Printf("failed to set recipient: %s\n", err)
		os.Exit(1)
	}
	m.Subject("Why, hello there!")
	m.SetBodyString(mail.TypeTextPlain, "Hello, world!")
	m.AddAlternativeString(mail.TypeTextHTML,
		`<p>Hello, <img src="cid:logo.png"> world!</p>`)
	m.EmbedBytes("logo.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
	m.AttachBytes("report.txt", mail.TypeTextPlain, []byte("quarterly numbers"))

	if _, err := m.WriteTo(os.Stdout); err != nil {
		fmt.Printf("failed to write message: %s\n", err)
		os.Exit(1)
	}
}
