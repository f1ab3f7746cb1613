package model

// MailMessage is an outbound e-mail waiting in the mail queue. The layout is
// the one read by the external delivery worker.
type MailMessage struct {
	To      string      `bson:"to" json:"to" firestore:"to"`
	Message MailContent `bson:"message" json:"message" firestore:"message"`
}

// MailContent is the subject and HTML body of a queued e-mail.
type MailContent struct {
	Subject string `bson:"subject" json:"subject" firestore:"subject"`
	HTML    string `bson:"html" json:"html" firestore:"html"`
}
