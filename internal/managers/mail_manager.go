// Package managers handles the sending of the welcome email using the
// Mailgun service and the Hermes package for email formatting.
package managers

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/matcornic/hermes/v2"
	log "github.com/sirupsen/logrus"

	"red-social-api/internal/config"
)

// MailMgr is an interface that outlines the contract for email management.
type MailMgr interface {
	SendWelcomeMail(email, name string) error
}

// MailManager is a concrete implementation of the MailMgr interface.
// It uses the Mailgun service for sending emails and the Hermes package
// for formatting them. When no Mailgun credentials are configured the
// manager is a no-op so registration never depends on mail delivery.
type MailManager struct {
	Hermes  *hermes.Hermes
	Mailgun *mailgun.MailgunImpl
	from    string
}

// SendWelcomeMail sends a welcome email to a freshly registered user.
func (mm *MailManager) SendWelcomeMail(email, name string) error {
	if mm.Mailgun == nil {
		log.Debug("Mail disabled, skipping welcome mail for ", email)
		return nil
	}

	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: name,
			Intros: []string{
				"Welcome to Red Social! We're very excited to have you on board.",
			},
			Outros: []string{
				"If you have any questions, feel free to reach out to us at any time.",
			},
		},
	}

	emailBody, err := mm.Hermes.GenerateHTML(mailBody)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(2*time.Second))
	defer cancel()

	message := mm.Mailgun.NewMessage(mm.from, "Welcome to Red Social", "", email)
	message.SetHtml(emailBody)
	_, _, err = mm.Mailgun.Send(ctx, message)
	if err != nil {
		log.Warning("Error sending welcome mail: " + err.Error())
		return err
	}
	log.Debug("Welcome mail sent to ", email)

	return nil
}

// NewMailManager initializes a MailManager from the configured Mailgun
// credentials. Without credentials mail sending is disabled.
func NewMailManager(cfg *config.Config) MailMgr {
	log.Info("Initializing mail manager")

	mm := &MailManager{
		Hermes: &hermes.Hermes{
			Theme:         new(hermes.Default),
			TextDirection: hermes.TDLeftToRight,
			Product: hermes.Product{
				Name: "Red Social",
				Link: "https://red-social.dev/",
			},
		},
	}

	if !cfg.MailEnabled() {
		log.Info("No Mailgun credentials configured, welcome mails will not be sent")
		return mm
	}

	mm.Mailgun = mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
	mm.from = fmt.Sprintf("Red Social <no-reply@%s>", cfg.MailgunDomain)
	log.Info("Initialized mail manager")
	return mm
}
