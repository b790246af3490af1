package gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"
	"time"

	"github.com/pradiptha/lokapasar/internal/pkg/models"
	domainerrors "github.com/pradiptha/lokapasar/services/auth/domain/errors"
)

// Mail templates per OTP purpose. The quoted wait times must match the OTP
// policy defaults; both are part of the product copy.
var otpTemplates = map[models.OTPPurpose]struct {
	subject string
	body    string
}{
	models.PurposeRegistration: {
		subject: "Verify Your Email",
		body: "Hi {{.Name}},\r\n\r\n" +
			"Your Lokapasar verification code is {{.Code}}.\r\n" +
			"It expires in 5 minutes. If you did not request this, ignore this mail.\r\n",
	},
	models.PurposePasswordReset: {
		subject: "Reset Your Password",
		body: "Hi {{.Name}},\r\n\r\n" +
			"Your Lokapasar password reset code is {{.Code}}.\r\n" +
			"It expires in 5 minutes. If you did not request this, ignore this mail.\r\n",
	},
}

type otpMailData struct {
	Name string
	Code string
}

// SendOTPEmail delivers a code over SMTP with a bounded timeout. Callers
// persist OTP state only after this returns nil, so a failed or timed-out
// delivery never leaves a code nobody received.
func (g *AuthGateway) SendOTPEmail(ctx context.Context, email, name, code string, purpose models.OTPPurpose) error {
	tmpl, ok := otpTemplates[purpose]
	if !ok {
		return fmt.Errorf("%w: unknown purpose %q", domainerrors.ErrDeliveryFailed, purpose)
	}

	bodyTmpl, err := template.New(string(purpose)).Parse(tmpl.body)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrDeliveryFailed, err)
	}

	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, otpMailData{Name: name, Code: code}); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrDeliveryFailed, err)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		g.cfg.SMTP.From, email, tmpl.subject, body.String())
	addr := fmt.Sprintf("%s:%d", g.cfg.SMTP.Host, g.cfg.SMTP.Port)

	var auth smtp.Auth
	if g.cfg.SMTP.Username != "" {
		auth = smtp.PlainAuth("", g.cfg.SMTP.Username, g.cfg.SMTP.Password, g.cfg.SMTP.Host)
	}

	timeout := time.Duration(g.cfg.SMTP.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, g.cfg.SMTP.From, []string{email}, []byte(msg))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %v", domainerrors.ErrDeliveryFailed, err)
		}
		return nil
	case <-sendCtx.Done():
		return fmt.Errorf("%w: %v", domainerrors.ErrDeliveryFailed, sendCtx.Err())
	}
}
