package mail

import (
	"fmt"

	"hrms-backend/internal/domain"
)

// Notification events. Each maps to one template below.
const (
	EventApplicationReceived = "application_received"
	EventShortlisted         = "shortlisted"
	EventInterviewScheduled  = "interview_scheduled"
	EventSelected            = "selected"
	EventRejected            = "rejected"
	EventPostingBroadcast    = "posting_broadcast"
)

// TemplateData carries the fields a template may render. Event-specific
// values (interview date, next steps, rejection reason) travel in Data.
type TemplateData struct {
	CandidateName string
	JobTitle      string
	CompanyName   string
	Data          map[string]string
}

// ValidEvent reports whether the event has a template.
func ValidEvent(event string) bool {
	switch event {
	case EventApplicationReceived, EventShortlisted, EventInterviewScheduled,
		EventSelected, EventRejected, EventPostingBroadcast:
		return true
	}
	return false
}

// Render produces the subject line and HTML body for the event.
func Render(event string, d TemplateData) (subject, html string, err error) {
	switch event {
	case EventApplicationReceived:
		subject = fmt.Sprintf("Application received - %s", d.JobTitle)
		html = fmt.Sprintf(
			"<p>Dear %s,</p><p>Thank you for applying for the <strong>%s</strong> position at %s. Our team will review your application and get back to you.</p><p>Regards,<br>%s Recruitment Team</p>",
			d.CandidateName, d.JobTitle, d.CompanyName, d.CompanyName)
	case EventShortlisted:
		subject = fmt.Sprintf("You have been shortlisted - %s", d.JobTitle)
		html = fmt.Sprintf(
			"<p>Dear %s,</p><p>Congratulations! You have been shortlisted for the <strong>%s</strong> position at %s.</p><p>%s</p><p>Regards,<br>%s Recruitment Team</p>",
			d.CandidateName, d.JobTitle, d.CompanyName,
			d.value("nextSteps", "We will contact you shortly with the next steps."), d.CompanyName)
	case EventInterviewScheduled:
		subject = fmt.Sprintf("Interview scheduled - %s", d.JobTitle)
		html = fmt.Sprintf(
			"<p>Dear %s,</p><p>Your interview for the <strong>%s</strong> position at %s has been scheduled.</p><ul><li>Date: %s</li><li>Interviewer: %s</li><li>Location: %s</li></ul><p>Regards,<br>%s Recruitment Team</p>",
			d.CandidateName, d.JobTitle, d.CompanyName,
			d.value("interviewDate", "to be confirmed"),
			d.value("interviewer", "to be confirmed"),
			d.value("location", "to be confirmed"), d.CompanyName)
	case EventSelected:
		subject = fmt.Sprintf("Congratulations - %s", d.JobTitle)
		html = fmt.Sprintf(
			"<p>Dear %s,</p><p>We are delighted to inform you that you have been selected for the <strong>%s</strong> position at %s.</p><p>%s</p><p>Regards,<br>%s Recruitment Team</p>",
			d.CandidateName, d.JobTitle, d.CompanyName,
			d.value("nextSteps", "Our HR team will reach out with your offer details."), d.CompanyName)
	case EventRejected:
		subject = fmt.Sprintf("Update on your application - %s", d.JobTitle)
		html = fmt.Sprintf(
			"<p>Dear %s,</p><p>Thank you for your interest in the <strong>%s</strong> position at %s. After careful consideration we will not be moving forward with your application.</p><p>%s</p><p>We encourage you to apply for future openings.</p><p>Regards,<br>%s Recruitment Team</p>",
			d.CandidateName, d.JobTitle, d.CompanyName,
			d.value("rejectionReason", ""), d.CompanyName)
	case EventPostingBroadcast:
		subject = fmt.Sprintf("New opening at %s - %s", d.CompanyName, d.JobTitle)
		html = fmt.Sprintf(
			"<p>Dear %s,</p><p>%s has a new opening: <strong>%s</strong>%s.</p><p>%s</p><p>Regards,<br>%s Recruitment Team</p>",
			d.CandidateName, d.CompanyName, d.JobTitle,
			locationSuffix(d.value("location", "")),
			d.value("description", ""), d.CompanyName)
	default:
		return "", "", domain.Validationf("render template: unknown event %q", event)
	}
	return subject, html, nil
}

func (d TemplateData) value(key, fallback string) string {
	if d.Data != nil {
		if v := d.Data[key]; v != "" {
			return v
		}
	}
	return fallback
}

func locationSuffix(location string) string {
	if location == "" {
		return ""
	}
	return " in " + location
}
