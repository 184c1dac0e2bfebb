package core

import (
	"bytes"
	"net/mail"
	"sync"
	texttmpl "text/template"

	"github.com/pkg/errors"
)

var (
	templates map[string]*texttmpl.Template
	tmplInit  sync.Once
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string
		TemplateData interface{}
		TextContent  string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

func (m *EmailMessage) Render() error {
	tmplInit.Do(parseTemplates)

	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	}
	if m.TemplateName == "" {
		return nil
	}

	tmpl, ok := templates[m.TemplateName]
	if !ok {
		return errors.Errorf("core.EmailMessage: unknown template %q", m.TemplateName)
	}
	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, m.TemplateData); err != nil {
		return errors.Wrap(err, "rendering email template")
	}
	m.TextContent = buff.String()
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return m.TextContent != "" }

func parseTemplates() {
	templates = make(map[string]*texttmpl.Template, len(templateSources))
	for name, src := range templateSources {
		templates[name] = texttmpl.Must(texttmpl.New(name).Option("missingkey=error").Parse(src))
	}
}

var templateSources = map[string]string{
	"welcome": `Hello {{.Name}},

Your {{.AppName}} account has been created.
{{if .StudentNumber}}
Your student number is {{.StudentNumber}}. Keep it safe; you will need it for exams and payments.
{{end}}
Sign in at {{.BaseURL}} with this email address.

The {{.AppName}} Team
`,
	"password-reset": `Hello {{.Name}},

You requested a password reset. Follow the link below to choose a new password:

{{.BaseURL}}/password-reset-confirm?uid={{.UID}}&token={{.Token}}

If you did not request this, you can safely ignore this email.

The {{.AppName}} Team
`,
	"payment-receipt": `Hello {{.Name}},

We received your payment of {{printf "%.2f" .Amount}} ({{.Method}}) for {{.Purpose}}.
Reference: {{.Reference}}

The {{.AppName}} Team
`,
}
