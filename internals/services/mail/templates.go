// file: internals/services/mail/templates.go
package mail

const TemplateFormPublished = "form_published"

// FormPublishedData dipakai template form_published.
type FormPublishedData struct {
	AppName   string
	FormTitle string
	Division  string
	Link      string
	EndDate   string
}

func init() {
	RegisterTemplate(TemplateFormPublished,
		`Hello,

A new feedback form is open for {{.Division}}: {{.FormTitle}}.
Fill it in here: {{.Link}}
{{if .EndDate}}The form closes on {{.EndDate}}.{{end}}

{{.AppName}}`,
		`<p>Hello,</p>
<p>A new feedback form is open for <b>{{.Division}}</b>: {{.FormTitle}}.</p>
<p><a href="{{.Link}}">Open the form</a></p>
{{if .EndDate}}<p>The form closes on {{.EndDate}}.</p>{{end}}
<p>{{.AppName}}</p>`)
}
