package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_RendersBuiltins(t *testing.T) {
	tm := NewTemplateManager()

	body, err := tm.Render(TemplateApplicationStatus, TemplateData{
		"WorkerName": "Olena",
		"ShiftTitle": "Barista <night>",
		"StartAt":    "2025-06-10 09:00",
		"Status":     "accepted",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Olena")
	assert.Contains(t, body, "<b>accepted</b>")
	assert.Contains(t, body, "Barista &lt;night&gt;")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestLogProvider_RecordsMessages(t *testing.T) {
	p := NewLogProvider(NewTemplateManager())

	err := p.SendTemplate([]string{"e@example.com"}, "New application", TemplateApplicationCreated, TemplateData{
		"EmployerName": "Cafe",
		"WorkerName":   "Ivan",
		"ShiftTitle":   "Barista",
		"StartAt":      "2025-06-10 09:00",
	})
	require.NoError(t, err)

	sent := p.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"e@example.com"}, sent[0].To)
	assert.Contains(t, sent[0].HTMLBody, "Ivan applied")

	assert.Error(t, p.Send(&Email{Subject: "no recipients"}))
}

func TestSMTPProvider_Validate(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Port: 587, FromEmail: "noreply@example.com"}, nil)
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "noreply@example.com"}, nil)
	assert.NoError(t, p.Validate())

	assert.Error(t, p.SendTemplate([]string{"a@example.com"}, "s", TemplateApplicationStatus, nil))
}
