// SPDX-FileCopyrightText: The mail-builder Authors
//
// SPDX-License-Identifier: MIT

package mail

// PartOption returns a function that can be used for grouping MimePart
// options.
type PartOption func(*MimePart)

// applyPartOptions applies the given options to the part and returns it.
func applyPartOptions(p *MimePart, opts []PartOption) *MimePart {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// WithPartContentType overrides the Content-Type of the MimePart with a
// fully structured value, replacing any previously set occurrence.
func WithPartContentType(ct *ContentTypeValue) PartOption {
	return func(p *MimePart) {
		for i, f := range p.headers {
			if f.name == HeaderContentType.String() {
				p.headers[i].value = ct
				return
			}
		}
		p.headers = append(p.headers, headerField{name: HeaderContentType.String(), value: ct})
	}
}

// WithPartContentID sets the Content-ID of the MimePart, so inline parts
// can be referenced from an HTML body via a cid: URL.
func WithPartContentID(id string) PartOption {
	return func(p *MimePart) {
		p.CID(id)
	}
}

// WithPartDescription sets the Content-Description of the MimePart.
func WithPartDescription(d string) PartOption {
	return func(p *MimePart) {
		p.Description(d)
	}
}

// WithPartLanguage sets the Content-Language of the MimePart.
func WithPartLanguage(langs ...string) PartOption {
	return func(p *MimePart) {
		p.Language(langs...)
	}
}

// WithPartLocation sets the Content-Location of the MimePart.
func WithPartLocation(l string) PartOption {
	return func(p *MimePart) {
		p.Location(l)
	}
}

// WithPartHeader sets an additional arbitrary header field on the MimePart.
func WithPartHeader(h Header, v Value) PartOption {
	return func(p *MimePart) {
		p.AddHeader(h, v)
	}
}
