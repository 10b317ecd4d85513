package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Text is the fallback body; Template selects one of the notification
// templates in templates.go with Data as its input.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "manager_assigned", "manager_revoked", "resume_status"
	Data     map[string]any `json:"data,omitempty"`
}
