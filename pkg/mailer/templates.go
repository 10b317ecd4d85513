package mailer

import (
	"bytes"
	"fmt"
	"text/template"
)

const (
	TemplateWelcome         = "welcome"
	TemplateManagerAssigned = "manager_assigned"
	TemplateManagerRevoked  = "manager_revoked"
	TemplateResumeStatus    = "resume_status"
)

var templates = map[string]*template.Template{
	TemplateWelcome: template.Must(template.New(TemplateWelcome).Parse(
		"Hi {{.Firstname}},\n\nYour account has been created. You can now sign in with your mobile number.\n",
	)),
	TemplateManagerAssigned: template.Must(template.New(TemplateManagerAssigned).Parse(
		"Hi {{.Firstname}},\n\nYou have been granted manager access to {{.EntityKind}} \"{{.EntityName}}\".\n",
	)),
	TemplateManagerRevoked: template.Must(template.New(TemplateManagerRevoked).Parse(
		"Hi {{.Firstname}},\n\nYour manager access to {{.EntityKind}} \"{{.EntityName}}\" has been revoked.\n",
	)),
	TemplateResumeStatus: template.Must(template.New(TemplateResumeStatus).Parse(
		"Resume for {{.CandidateName}} moved to status \"{{.Status}}\".\n",
	)),
}

// SubjectFor returns the subject line for a notification template.
func SubjectFor(name string) string {
	switch name {
	case TemplateWelcome:
		return "Welcome aboard"
	case TemplateManagerAssigned:
		return "You were granted manager access"
	case TemplateManagerRevoked:
		return "Your manager access was revoked"
	case TemplateResumeStatus:
		return "Resume status changed"
	default:
		return "Notification"
	}
}

// Render renders a template into a plain-text body.
func Render(name string, data map[string]any) (string, error) {
	tpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("mailer: unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
