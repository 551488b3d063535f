package mail

import (
	"strings"
	"testing"
)

func TestRenderCoversAllEvents(t *testing.T) {
	events := []string{
		EventApplicationReceived,
		EventShortlisted,
		EventInterviewScheduled,
		EventSelected,
		EventRejected,
		EventPostingBroadcast,
	}

	d := TemplateData{
		CandidateName: "Ada Lovelace",
		JobTitle:      "Backend Engineer",
		CompanyName:   "Acme",
	}

	for _, event := range events {
		subject, html, err := Render(event, d)
		if err != nil {
			t.Fatalf("render %s: %v", event, err)
		}
		if subject == "" {
			t.Fatalf("render %s: empty subject", event)
		}
		if !strings.Contains(html, "Ada Lovelace") {
			t.Fatalf("render %s: body missing candidate name", event)
		}
		if !strings.Contains(html, "Backend Engineer") {
			t.Fatalf("render %s: body missing job title", event)
		}
	}
}

func TestRenderInterviewDetails(t *testing.T) {
	_, html, err := Render(EventInterviewScheduled, TemplateData{
		CandidateName: "Ada",
		JobTitle:      "Backend Engineer",
		CompanyName:   "Acme",
		Data: map[string]string{
			"interviewDate": "2026-09-01",
			"interviewer":   "Grace",
			"location":      "Remote",
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"2026-09-01", "Grace", "Remote"} {
		if !strings.Contains(html, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestRenderUnknownEvent(t *testing.T) {
	if _, _, err := Render("unknown", TemplateData{}); err == nil {
		t.Fatalf("expected error for unknown event")
	}
	if ValidEvent("unknown") {
		t.Fatalf("unknown event must not validate")
	}
}
