package mailer

import (
	"fmt"
	"strings"

	"jalanmon/internal/config"
	"jalanmon/internal/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer sends the workflow notification emails. Every send returns an error;
// the caller decides whether a failure aborts the triggering operation or is
// only logged.
type Mailer interface {
	SendRegistrationConfirmation(to, displayName string) error
	SendAdminNewRegistration(user *entity.DbUser) error
	SendSetPassword(to, displayName, rawToken string) error
	SendResetPassword(to, rawToken string) error
	SendPasswordChanged(to, displayName string) error
	SendRegistrationRejected(to, displayName, notes string) error
	SendAccountCreated(to, displayName, username, tempPassword string) error
}

// SMTPMailer delivers mail over SMTP.
type SMTPMailer struct {
	cfg    config.Config
	dialer *gomail.Dialer
}

// NewSMTPMailer builds the SMTP transport from config. Port 465 uses implicit
// TLS, as the Resend relay expects.
func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword)
	dialer.SSL = cfg.MailPort == 465
	return &SMTPMailer{cfg: cfg, dialer: dialer}
}

func (m *SMTPMailer) send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.MailFromAddress, m.cfg.MailFromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail sent")
	return nil
}

func (m *SMTPMailer) frontendLink(path, rawToken string) string {
	base := strings.TrimRight(m.cfg.FrontendURL, "/")
	return fmt.Sprintf("%s/%s?token=%s", base, strings.TrimLeft(path, "/"), rawToken)
}

func (m *SMTPMailer) SendRegistrationConfirmation(to, displayName string) error {
	html, err := renderTemplate("registration_confirmation", registrationConfirmationTmpl, templateData{
		AppName:     m.cfg.MailFromName,
		DisplayName: displayName,
	})
	if err != nil {
		return err
	}
	return m.send(to, m.cfg.MailFromName+" - Konfirmasi Registrasi", html)
}

func (m *SMTPMailer) SendAdminNewRegistration(user *entity.DbUser) error {
	if strings.TrimSpace(m.cfg.AdminNotificationEmail) == "" {
		return fmt.Errorf("admin notification email is not configured")
	}
	registeredAt := "-"
	if !user.CreatedAt.IsZero() {
		registeredAt = user.CreatedAt.Format("02 January 2006, 15:04 MST")
	}
	html, err := renderTemplate("admin_new_registration", adminNewRegistrationTmpl, templateData{
		AppName:      m.cfg.MailFromName,
		DisplayName:  user.FullName,
		NIP:          user.NIP,
		Username:     user.Username,
		Email:        user.Email,
		Jabatan:      user.Jabatan,
		Organization: user.Organization,
		NoTelepon:    user.NoTelepon,
		RegisteredAt: registeredAt,
	})
	if err != nil {
		return err
	}
	return m.send(m.cfg.AdminNotificationEmail, m.cfg.MailFromName+" - Registrasi User", html)
}

func (m *SMTPMailer) SendSetPassword(to, displayName, rawToken string) error {
	html, err := renderTemplate("set_password", setPasswordTmpl, templateData{
		AppName:     m.cfg.MailFromName,
		DisplayName: displayName,
		ActionURL:   m.frontendLink("set-password", rawToken),
		ExpiresIn:   formatHours(m.cfg.SetPasswordExpireHours),
	})
	if err != nil {
		return err
	}
	return m.send(to, "Status Verifikasi Akun Dashboard Infrastruktur Jalan", html)
}

func (m *SMTPMailer) SendResetPassword(to, rawToken string) error {
	html, err := renderTemplate("reset_password", resetPasswordTmpl, templateData{
		AppName:   m.cfg.MailFromName,
		ActionURL: m.frontendLink("reset-password", rawToken),
		ExpiresIn: formatHours(m.cfg.ResetTokenExpireHours),
	})
	if err != nil {
		return err
	}
	return m.send(to, m.cfg.MailFromName+" - Reset Password", html)
}

func (m *SMTPMailer) SendPasswordChanged(to, displayName string) error {
	html, err := renderTemplate("password_changed", passwordChangedTmpl, templateData{
		AppName:     m.cfg.MailFromName,
		DisplayName: displayName,
	})
	if err != nil {
		return err
	}
	return m.send(to, m.cfg.MailFromName+" - Password Berhasil Diubah", html)
}

func (m *SMTPMailer) SendRegistrationRejected(to, displayName, notes string) error {
	html, err := renderTemplate("registration_rejected", rejectionTmpl, templateData{
		AppName:     m.cfg.MailFromName,
		DisplayName: displayName,
		Notes:       notes,
	})
	if err != nil {
		return err
	}
	return m.send(to, "Status Verifikasi Akun Dashboard Monitoring Infrastruktur Jalan", html)
}

func (m *SMTPMailer) SendAccountCreated(to, displayName, username, tempPassword string) error {
	html, err := renderTemplate("account_created", accountCreatedTmpl, templateData{
		AppName:      m.cfg.MailFromName,
		DisplayName:  displayName,
		Username:     username,
		TempPassword: tempPassword,
		ActionURL:    strings.TrimRight(m.cfg.FrontendURL, "/") + "/login",
	})
	if err != nil {
		return err
	}
	return m.send(to, "Akun Anda Telah Dibuat - Dashboard Infrastruktur Jalan", html)
}

func formatHours(hours int) string {
	if hours <= 0 {
		hours = 1
	}
	if hours%24 == 0 {
		days := hours / 24
		if days == 1 {
			return "24 jam"
		}
		return fmt.Sprintf("%d hari", days)
	}
	return fmt.Sprintf("%d jam", hours)
}
