package service

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/greanworld/grean-contact-api/internal/config"
	"github.com/greanworld/grean-contact-api/internal/dto"
	"github.com/greanworld/grean-contact-api/pkg/mailer"
)

const submittedAtLayout = "Monday, January 2, 2006 at 3:04 PM MST"

type notificationView struct {
	Submission  dto.ContactRequest
	SubmittedAt string
	Company     config.CompanyProfile
}

func newNotificationView(settings config.ContactSettings, clean dto.ContactRequest, submittedAt time.Time) notificationView {
	company := settings.Company
	company.Name = companyName(company)
	return notificationView{Submission: clean, SubmittedAt: submittedAt.Format(submittedAtLayout), Company: company}
}

var strictPolicy = bluemonday.StrictPolicy()

var htmlFuncs = htmltemplate.FuncMap{
	// clean strips markup from submitted text and keeps its line breaks.
	"clean": func(value string) htmltemplate.HTML {
		sanitized := strictPolicy.Sanitize(value)
		sanitized = strings.ReplaceAll(sanitized, "\r\n", "\n")
		return htmltemplate.HTML(strings.ReplaceAll(sanitized, "\n", "<br>"))
	},
	"join": strings.Join,
}

var textFuncs = texttemplate.FuncMap{
	"join": strings.Join,
}

var (
	operatorHTMLTemplate  = htmltemplate.Must(htmltemplate.New("operator_html").Funcs(htmlFuncs).Parse(operatorHTML))
	operatorTextTemplate  = texttemplate.Must(texttemplate.New("operator_text").Funcs(textFuncs).Parse(operatorText))
	autoReplyHTMLTemplate = htmltemplate.Must(htmltemplate.New("auto_reply_html").Funcs(htmlFuncs).Parse(autoReplyHTML))
	autoReplyTextTemplate = texttemplate.Must(texttemplate.New("auto_reply_text").Funcs(textFuncs).Parse(autoReplyText))
)

// renderOperatorNotification builds the alert sent to the company inbox.
func renderOperatorNotification(settings config.ContactSettings, clean dto.ContactRequest, submittedAt time.Time) (mailer.Message, error) {
	view := newNotificationView(settings, clean, submittedAt)

	var html bytes.Buffer
	if err := operatorHTMLTemplate.Execute(&html, view); err != nil {
		return mailer.Message{}, fmt.Errorf("render operator html: %w", err)
	}

	var text bytes.Buffer
	if err := operatorTextTemplate.Execute(&text, view); err != nil {
		return mailer.Message{}, fmt.Errorf("render operator text: %w", err)
	}

	inbox := strings.TrimSpace(settings.OperatorInbox)
	if inbox == "" {
		inbox = defaultOperatorInbox
	}

	subject := strings.TrimSpace(fmt.Sprintf("%s %s - %s", settings.SubjectPrefix, clean.Subject, clean.Interest))

	return mailer.Message{
		To:       []string{inbox},
		ReplyTo:  clean.Email,
		Subject:  subject,
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}

// renderAutoReply builds the acknowledgement sent back to the submitter.
func renderAutoReply(settings config.ContactSettings, clean dto.ContactRequest, submittedAt time.Time) (mailer.Message, error) {
	view := newNotificationView(settings, clean, submittedAt)

	var html bytes.Buffer
	if err := autoReplyHTMLTemplate.Execute(&html, view); err != nil {
		return mailer.Message{}, fmt.Errorf("render auto-reply html: %w", err)
	}

	var text bytes.Buffer
	if err := autoReplyTextTemplate.Execute(&text, view); err != nil {
		return mailer.Message{}, fmt.Errorf("render auto-reply text: %w", err)
	}

	return mailer.Message{
		To:       []string{clean.Email},
		Subject:  fmt.Sprintf("Thank you for contacting %s", companyName(settings.Company)),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}

func companyName(company config.CompanyProfile) string {
	if name := strings.TrimSpace(company.Name); name != "" {
		return name
	}
	return defaultCompanyName
}

const operatorHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>New Contact Form Submission</title>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: linear-gradient(135deg, #3DD56D, #2bb757); color: white; padding: 20px; border-radius: 8px 8px 0 0; }
      .content { background: #f9f9f9; padding: 20px; border-radius: 0 0 8px 8px; }
      .field { margin-bottom: 15px; }
      .label { font-weight: bold; color: #2bb757; }
      .value { margin-top: 5px; padding: 10px; background: white; border-radius: 4px; border-left: 4px solid #3DD56D; }
      .footer { margin-top: 20px; padding: 15px; background: #e8f5e8; border-radius: 4px; font-size: 12px; color: #666; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>New Contact Form Submission</h1>
        <p>{{.Company.Name}}</p>
      </div>
      <div class="content">
        <div class="field">
          <div class="label">Full Name:</div>
          <div class="value">{{clean .Submission.Name}}</div>
        </div>
        <div class="field">
          <div class="label">Email Address:</div>
          <div class="value">{{clean .Submission.Email}}</div>
        </div>
        {{- if .Submission.Phone}}
        <div class="field">
          <div class="label">Phone Number:</div>
          <div class="value">{{clean .Submission.Phone}}</div>
        </div>
        {{- end}}
        <div class="field">
          <div class="label">Subject:</div>
          <div class="value">{{clean .Submission.Subject}}</div>
        </div>
        <div class="field">
          <div class="label">Interest Area:</div>
          <div class="value">{{clean .Submission.Interest}}</div>
        </div>
        <div class="field">
          <div class="label">Message:</div>
          <div class="value">{{clean .Submission.Message}}</div>
        </div>
        <div class="footer">
          <p><strong>Submitted:</strong> {{.SubmittedAt}}</p>
          <p><strong>Source:</strong> {{.Company.Name}} Website Contact Form</p>
          <p><strong>Action Required:</strong> Please respond within 24 hours as promised to the customer.</p>
        </div>
      </div>
    </div>
  </body>
</html>
`

const operatorText = `New Contact Form Submission - {{.Company.Name}}

Full Name: {{.Submission.Name}}
Email: {{.Submission.Email}}
{{- if .Submission.Phone}}
Phone: {{.Submission.Phone}}
{{- end}}
Subject: {{.Submission.Subject}}
Interest Area: {{.Submission.Interest}}

Message:
{{.Submission.Message}}

Submitted: {{.SubmittedAt}}
Source: {{.Company.Name}} Website Contact Form
Action Required: Please respond within 24 hours as promised to the customer.
`

const autoReplyHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Thank You - {{.Company.Name}}</title>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: linear-gradient(135deg, #3DD56D, #2bb757); color: white; padding: 20px; border-radius: 8px 8px 0 0; text-align: center; }
      .content { background: #f9f9f9; padding: 20px; border-radius: 0 0 8px 8px; }
      .highlight { background: #e8f5e8; padding: 15px; border-radius: 4px; border-left: 4px solid #3DD56D; margin: 15px 0; }
      .contact-info { background: white; padding: 15px; border-radius: 4px; margin: 15px 0; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>Thank You for Contacting Us!</h1>
        <p>{{.Company.Name}}</p>
      </div>
      <div class="content">
        <p>Dear {{clean .Submission.Name}},</p>
        <p>Thank you for your interest in <strong>{{clean .Submission.Interest}}</strong>. We have received your message and our team will get back to you within 24 hours.</p>
        <div class="highlight">
          <h3>Your Submission Summary:</h3>
          <p><strong>Subject:</strong> {{clean .Submission.Subject}}</p>
          <p><strong>Interest:</strong> {{clean .Submission.Interest}}</p>
          <p><strong>Submitted:</strong> {{.SubmittedAt}}</p>
        </div>
        <p>In the meantime, feel free to explore our website to learn more about our sustainable energy solutions.</p>
        <div class="contact-info">
          <h3>Contact Information:</h3>
          {{- with .Company.Phones}}
          <p><strong>Phone:</strong> {{join . " | "}}</p>
          {{- end}}
          {{- with .Company.Emails}}
          <p><strong>Email:</strong> {{join . " | "}}</p>
          {{- end}}
          {{- with .Company.OfficeHours}}
          <p><strong>Office Hours:</strong> {{.}}</p>
          {{- end}}
        </div>
        <p>Best regards,<br>
        <strong>{{.Company.Name}} Team</strong>
        {{- with .Company.Tagline}}<br>
        {{.}}{{end}}</p>
      </div>
    </div>
  </body>
</html>
`

const autoReplyText = `Dear {{.Submission.Name}},

Thank you for your interest in {{.Submission.Interest}}. We have received your message and our team will get back to you within 24 hours.

Your Submission Summary:
Subject: {{.Submission.Subject}}
Interest: {{.Submission.Interest}}
Submitted: {{.SubmittedAt}}

Contact Information:
{{- with .Company.Phones}}
Phone: {{join . " | "}}
{{- end}}
{{- with .Company.Emails}}
Email: {{join . " | "}}
{{- end}}
{{- with .Company.OfficeHours}}
Office Hours: {{.}}
{{- end}}

Best regards,
{{.Company.Name}} Team
{{- with .Company.Tagline}}
{{.}}
{{- end}}
`
