package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var (
	feedbackTmpl = template.Must(template.New("feedback").Parse(`<h1>New Application Feedback</h1>
<p><strong>From:</strong> {{.From}}</p>
<p><strong>Rating:</strong> {{.Rating}} out of 5 stars</p>
<p><strong>Comment:</strong></p>
<p>{{if .Comment}}{{.Comment}}{{else}}No comment provided.{{end}}</p>
`))

	reminderTmpl = template.Must(template.New("reminder").Parse(`<h1>Upcoming appointment</h1>
<p>Hi{{if .Owner}} {{.Owner}}{{end}},</p>
<p>You have an appointment with <strong>{{.Client}}</strong> on {{.When}} ({{.Timezone}}).</p>
{{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>
{{end}}<p><strong>Email:</strong> {{.Email}}</p>
`))

	contactTmpl = template.Must(template.New("contact").Parse(`{{range .}}<p>{{.}}</p>
{{end}}`))
)

// Stars renders a 1-5 rating as filled and empty stars.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// FeedbackMail builds the admin notification for a feedback entry.
func FeedbackMail(from string, rating int, comment string) (string, string, error) {
	var b bytes.Buffer
	err := feedbackTmpl.Execute(&b, struct {
		From    string
		Rating  int
		Comment string
	}{from, rating, strings.TrimSpace(comment)})
	if err != nil {
		return "", "", err
	}
	return "New App Feedback: " + Stars(rating), b.String(), nil
}

// ReminderDetails describes one appointment reminder.
type ReminderDetails struct {
	Owner    string
	Client   string
	Email    string
	Phone    string
	When     string
	Timezone string
}

// ReminderMail builds the reminder e-mail sent to the client's owner.
func ReminderMail(d ReminderDetails) (string, string, error) {
	var b bytes.Buffer
	if err := reminderTmpl.Execute(&b, d); err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Reminder: appointment with %s on %s", d.Client, d.When), b.String(), nil
}

// ReminderSMS is the text sent to the client's phone.
func ReminderSMS(company, when string) string {
	if company == "" {
		return fmt.Sprintf("Reminder: you have an appointment on %s.", when)
	}
	return fmt.Sprintf("Reminder: you have an appointment with %s on %s.", company, when)
}

// ContactHTML escapes a plain-text message and keeps its line breaks as
// paragraphs.
func ContactHTML(message string) (string, error) {
	lines := strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n")
	var b bytes.Buffer
	if err := contactTmpl.Execute(&b, lines); err != nil {
		return "", err
	}
	return b.String(), nil
}
