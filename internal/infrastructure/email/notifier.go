package email

import (
	"context"

	"github.com/sirupsen/logrus"

	"jobportal-api/internal/application"
	"jobportal-api/pkg/helpers"
	"jobportal-api/pkg/mailer"
	tpl "jobportal-api/pkg/mailer/templates"
)

// Notifier implements application.Notifier. OTP codes go out synchronously
// through Mailgun so a delivery failure is observable to the recovery machine;
// the reset confirmation is queued on RabbitMQ and sent by the email worker.
type Notifier struct {
	MG     *mailer.Mailgun
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger

	CompanyName    string
	SupportURL     string
	ExpiresMinutes int
	SendEnabled    bool
}

func NewNotifier(mg *mailer.Mailgun, pub *helpers.RabbitPublisher, logger *logrus.Logger, companyName, supportURL string, expiresMinutes int, sendEnabled bool) *Notifier {
	if expiresMinutes <= 0 {
		expiresMinutes = 10
	}
	return &Notifier{
		MG:             mg,
		Pub:            pub,
		Logger:         logger,
		CompanyName:    companyName,
		SupportURL:     supportURL,
		ExpiresMinutes: expiresMinutes,
		SendEnabled:    sendEnabled,
	}
}

func (n *Notifier) data(name, code string) tpl.EmailData {
	return tpl.EmailData{
		Name:           name,
		Code:           code,
		ExpiresMinutes: n.ExpiresMinutes,
		CompanyName:    n.CompanyName,
		SupportURL:     n.SupportURL,
	}
}

func (n *Notifier) sendNow(ctx context.Context, template, to, name, code string) error {
	if !n.SendEnabled {
		// Console mode for local development: log the code instead of sending.
		if n.Logger != nil {
			n.Logger.WithFields(logrus.Fields{"to": to, "template": template, "code": code}).Info("mail sending disabled; otp logged")
		}
		return nil
	}
	subject, html, err := tpl.Render(template, n.data(name, code))
	if err != nil {
		return err
	}
	return n.MG.Send(ctx, to, subject, "", html)
}

func (n *Notifier) SendVerificationOTP(ctx context.Context, to, name, code string) error {
	return n.sendNow(ctx, tpl.VerifyEmailOTP, to, name, code)
}

func (n *Notifier) SendPasswordResetOTP(ctx context.Context, to, name, code string) error {
	return n.sendNow(ctx, tpl.ResetPasswordOTP, to, name, code)
}

// SendPasswordResetConfirmation enqueues the courtesy email; the caller treats
// failures as best-effort.
func (n *Notifier) SendPasswordResetConfirmation(ctx context.Context, to, name string) error {
	if !n.SendEnabled {
		return nil
	}
	job := mailer.EmailJob{
		To:       to,
		Template: tpl.ResetPasswordSuccess,
		Data:     tpl.ToMap(n.data(name, "")),
	}
	if n.Pub != nil {
		return n.Pub.PublishJSON(ctx, job)
	}
	// No queue configured: send directly.
	subject, html, err := tpl.Render(tpl.ResetPasswordSuccess, n.data(name, ""))
	if err != nil {
		return err
	}
	return n.MG.Send(ctx, to, subject, "", html)
}

var _ application.Notifier = (*Notifier)(nil)
