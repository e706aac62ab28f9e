package mailer

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

var textTemplates = texttemplate.Must(texttemplate.New("").Parse(`
{{define "welcome.txt"}}Welcome to WattWise!

Your account ({{.Email}}) is ready. Start your first home energy audit to
see where your money is going and how much you could save.

- The WattWise Team
{{end}}

{{define "report_ready.txt"}}Your energy audit report is ready.

Audit {{.AuditID}} has been processed. Implementing its recommendations
could save you an estimated ${{.EstimatedSavings}} per year.

Download the PDF from your dashboard.

- The WattWise Team
{{end}}
`))

var htmlTemplates = htmltemplate.Must(htmltemplate.New("").Parse(`
{{define "welcome.html"}}<html><body>
<h2>Welcome to WattWise!</h2>
<p>Your account (<b>{{.Email}}</b>) is ready. Start your first home energy
audit to see where your money is going and how much you could save.</p>
<p>&mdash; The WattWise Team</p>
</body></html>{{end}}

{{define "report_ready.html"}}<html><body>
<h2>Your energy audit report is ready</h2>
<p>Audit <b>{{.AuditID}}</b> has been processed. Implementing its
recommendations could save you an estimated <b>${{.EstimatedSavings}}</b>
per year.</p>
<p>Download the PDF from your dashboard.</p>
<p>&mdash; The WattWise Team</p>
</body></html>{{end}}
`))
