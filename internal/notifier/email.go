package notifier

import (
	"context"
	"fmt"

	"github.com/nuestraboda/wedding-rsvp-api/internal/config"
	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// EmailNotifier mails a confirmed guest their check-in code. The QR image
// arrives as a data URI embedded in the HTML body, with the raw guest
// identifier as a text fallback for manual entry at the door.
type EmailNotifier struct {
	client    *mail.Client
	from      string
	eventName string
	log       zerolog.Logger
}

func NewEmailNotifier(cfg *config.Config, log zerolog.Logger) (*EmailNotifier, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is not configured")
	}

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build SMTP client: %w", err)
	}

	return &EmailNotifier{
		client:    client,
		from:      cfg.EmailFrom,
		eventName: cfg.EventName,
		log:       log.With().Str("component", "email").Logger(),
	}, nil
}

func (n *EmailNotifier) NotifyConfirmation(ctx context.Context, guest models.Guest, qrDataURI string) error {
	if guest.Email == "" {
		return fmt.Errorf("guest %s has no email address", guest.Name)
	}

	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(guest.Email); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(fmt.Sprintf("%s — tu código de ingreso", n.eventName))
	msg.SetBodyString(mail.TypeTextHTML, confirmationBody(n.eventName, guest, qrDataURI))

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send confirmation to %s: %w", guest.Email, err)
	}

	n.log.Info().Str("guest", guest.Name).Str("to", guest.Email).Msg("confirmation email sent")
	return nil
}

func confirmationBody(eventName string, guest models.Guest, qrDataURI string) string {
	return fmt.Sprintf(`<html><body style="font-family: Georgia, serif; text-align: center;">
<h2>%s</h2>
<p>¡Gracias por confirmar, %s!</p>
<p>Presenta este código el día del evento:</p>
<img src="%s" alt="código de ingreso" width="256" height="256"/>
<p style="color:#888">Si el código no escanea, indica tu identificador en la entrada:<br/><code>%s</code></p>
</body></html>`, eventName, guest.Name, qrDataURI, guest.ID)
}
