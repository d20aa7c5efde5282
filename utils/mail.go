package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
)

var otpTemplate = template.Must(template.New("reset_otp").Parse(`
<div>
  <h2>Password Reset Request</h2>
  <p>Hi {{.Name}},</p>
  <p>Your one-time code for resetting your password is: <strong>{{.OTP}}</strong></p>
  <p>This code is valid for {{.ValidFor}}.</p>
  <p>If you did not request a reset, you can ignore this email.</p>
</div>`))

type OTPEmailData struct {
	Name     string
	OTP      string
	ValidFor string
}

func SendEmail(emailTo, emailSubject, htmlBody string) error {
	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		emailSubject,
		htmlBody,
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func SendPasswordResetOTP(emailTo string, data OTPEmailData) error {
	var body bytes.Buffer
	if err := otpTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}
	return SendEmail(emailTo, "Password Reset OTP", body.String())
}
