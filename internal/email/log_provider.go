package email

import (
	"fmt"
	"sync"

	"quickgig/internal/logger"
)

// LogProvider не отправляет письма, а пишет их в лог.
// Используется при email.enabled=false и в тестах: отправленное доступно через Sent().
type LogProvider struct {
	renderer TemplateRenderer

	mu   sync.Mutex
	sent []Email
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	p.mu.Lock()
	p.sent = append(p.sent, *email)
	p.mu.Unlock()

	logger.Info("email suppressed", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	body := ""
	if p.renderer != nil {
		rendered, err := p.renderer.Render(templateName, data)
		if err != nil {
			return fmt.Errorf("failed to render template: %w", err)
		}
		body = rendered
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: body})
}

func (p *LogProvider) Validate() error { return nil }
func (p *LogProvider) Close() error    { return nil }

// Sent возвращает копию перехваченных писем
func (p *LogProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}
