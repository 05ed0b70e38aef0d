// file: internals/services/mail/mail.go
package mail

import (
	"bytes"
	htmltemplate "html/template"
	"net/mail"
	"strings"
	texttemplate "text/template"

	"github.com/pkg/errors"
)

// Address: alamat penerima (nama + email).
type Address = mail.Address

// EmailMessage: satu email keluar. Konten bisa langsung (TextContent) atau
// dirender dari template terdaftar (TemplateName + TemplateData).
type EmailMessage struct {
	To      []Address
	Subject string

	TemplateName string
	TemplateData any
	TextContent  string
	HTMLContent  string
}

// EmailService is any service that can send emails.
type EmailService interface {
	// SendMessages sends messages concurrently; errors are logged, not returned.
	SendMessages(messages ...*EmailMessage)
}

type templatePair struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

var templates = map[string]templatePair{}

// RegisterTemplate parses a text + html pair under name. Panics on a bad
// template, so call it from init.
func RegisterTemplate(name, text, html string) {
	templates[name] = templatePair{
		text: texttemplate.Must(texttemplate.New(name + ".txt").Parse(text)),
		html: htmltemplate.Must(htmltemplate.New(name + ".html").Parse(html)),
	}
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }

func (m *EmailMessage) HasContent() bool {
	return strings.TrimSpace(m.TextContent) != "" || strings.TrimSpace(m.HTMLContent) != ""
}

// Render fills TextContent/HTMLContent from the registered template.
func (m *EmailMessage) Render() error {
	if m.TemplateName == "" {
		return nil
	}
	tmpl, ok := templates[m.TemplateName]
	if !ok {
		return errors.Errorf("mail template %q not registered", m.TemplateName)
	}
	var text, html bytes.Buffer
	if err := tmpl.text.Execute(&text, m.TemplateData); err != nil {
		return errors.Wrapf(err, "rendering %s.txt", m.TemplateName)
	}
	if err := tmpl.html.Execute(&html, m.TemplateData); err != nil {
		return errors.Wrapf(err, "rendering %s.html", m.TemplateName)
	}
	m.TextContent = text.String()
	m.HTMLContent = html.String()
	return nil
}

// Recipients parses a list of plain email strings, skipping invalid ones.
func Recipients(emails ...string) []Address {
	out := make([]Address, 0, len(emails))
	seen := map[string]struct{}{}
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		addr, err := mail.ParseAddress(e)
		if err != nil {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, *addr)
	}
	return out
}
