package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	fallbackNotAvailable = "N/A"
	fallbackMessage      = "No message provided."
	fallbackGreeting     = "there"
	fallbackPainPoint    = "Operational inefficiencies"
	fallbackQuizResult   = "Manual validation processes"
	defaultBrand         = "DataLabSync"
	timestampLayout      = "2006-01-02T15:04:05.000Z"
)

// Dispatcher renders the lead emails and hands them to a Transport.
type Dispatcher struct {
	transport Transport
	settings  Settings
}

func NewDispatcher(transport Transport, settings Settings) *Dispatcher {
	if settings.Brand == "" {
		settings.Brand = defaultBrand
	}
	if settings.SenderName == "" {
		settings.SenderName = settings.Brand
	}
	return &Dispatcher{transport: transport, settings: settings}
}

func (d *Dispatcher) Send(ctx context.Context, name, recipient string, lead *entity.Lead) error {
	msg, err := d.Render(name, recipient, lead)
	if err != nil {
		return &entity.DeliveryError{Template: name, Recipient: recipient, Err: err}
	}

	if err := d.transport.Deliver(ctx, msg); err != nil {
		return &entity.DeliveryError{Template: name, Recipient: recipient, Err: err}
	}
	return nil
}

// Render builds the message for template name without sending it.
func (d *Dispatcher) Render(name, recipient string, lead *entity.Lead) (Message, error) {
	var (
		subject string
		data    any
	)

	switch name {
	case entity.TemplateInternalNotification:
		subject = fmt.Sprintf("New Lead Captured – %s", d.settings.Brand)
		data = internalNotificationData{
			Name:        orFallback(lead.Name, fallbackNotAvailable),
			Company:     orFallback(lead.Company, fallbackNotAvailable),
			Email:       lead.Email,
			PainPoint:   orFallback(lead.PainPoint, fallbackNotAvailable),
			QuizResult:  orFallback(lead.QuizResult, fallbackNotAvailable),
			Message:     orFallback(lead.Message, fallbackMessage),
			Source:      orFallback(lead.Source, entity.DefaultSource),
			CapturedAt:  capturedAt(lead.UpdatedAt),
			Score:       lead.Score,
			Temperature: string(lead.Temperature),
		}
	case entity.TemplateLeadAcknowledgment:
		subject = "Thanks for taking the quiz"
		data = leadAcknowledgmentData{
			Name:       orFallback(lead.Name, fallbackGreeting),
			PainPoint:  orFallback(lead.PainPoint, fallbackPainPoint),
			QuizResult: orFallback(lead.QuizResult, fallbackQuizResult),
			BookingURL: d.settings.BookingURL,
			SenderName: d.settings.SenderName,
			Brand:      d.settings.Brand,
		}
	default:
		return Message{}, fmt.Errorf("unknown template %q", name)
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name+".html", data); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", name, err)
	}

	return Message{
		From:    d.settings.From,
		To:      recipient,
		Subject: subject,
		HTML:    body.String(),
	}, nil
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func capturedAt(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timestampLayout)
}
