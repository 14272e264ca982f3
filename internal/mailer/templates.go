package mailer

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

const contactNotificationTemplate = `New contact form submission

Name:    {{.Name}}
Email:   {{.Email}}
{{- if .Phone}}
Phone:   {{.Phone}}
{{- end}}
Subject: {{.Subject}}

{{.Message}}
`

const newsletterWelcomeTemplate = `Thanks for subscribing to our newsletter!

You will hear from us when we publish something new.

To stop receiving these emails, visit:
{{.UnsubscribeURL}}
`

const resetCodeTemplate = `Your password reset code is: {{.Code}}

It expires in {{.TTL}}. If you did not request a reset, ignore this email.
`

var templates = template.Must(template.New("mail").Parse(""))

func init() {
	template.Must(templates.New("contact").Parse(contactNotificationTemplate))
	template.Must(templates.New("welcome").Parse(newsletterWelcomeTemplate))
	template.Must(templates.New("reset").Parse(resetCodeTemplate))
}

func render(name string, data any) (string, error) {
	var b bytes.Buffer
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return b.String(), nil
}

// ContactData is the payload of the contact notification.
type ContactData struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// ContactNotification builds the message sent to the site owner for a new submission.
func ContactNotification(to string, d ContactData) (Message, error) {
	body, err := render("contact", d)
	if err != nil {
		return Message{}, err
	}
	subject := "New contact message"
	if d.Subject != "" {
		subject += ": " + d.Subject
	}
	return Message{To: []string{to}, Subject: subject, Body: body}, nil
}

// NewsletterWelcome builds the subscription confirmation.
func NewsletterWelcome(to, unsubscribeURL string) (Message, error) {
	body, err := render("welcome", struct{ UnsubscribeURL string }{unsubscribeURL})
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{to}, Subject: "Welcome to our newsletter", Body: body}, nil
}

// ResetCode builds the password reset email.
func ResetCode(to, code string, ttl time.Duration) (Message, error) {
	body, err := render("reset", struct {
		Code string
		TTL  string
	}{code, fmt.Sprintf("%d minutes", int(ttl.Minutes()))})
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{to}, Subject: "Your password reset code", Body: body}, nil
}
