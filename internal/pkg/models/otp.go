package models

import "time"

// OTPPurpose selects the mail template an OTP is delivered with
type OTPPurpose string

const (
	PurposeRegistration  OTPPurpose = "registration"
	PurposePasswordReset OTPPurpose = "password_reset"
)

// Valid reports whether the purpose is one of the known flows
func (p OTPPurpose) Valid() bool {
	return p == PurposeRegistration || p == PurposePasswordReset
}

// OTPIssuedEvent is published after a code has been delivered and stored
type OTPIssuedEvent struct {
	Email     string     `json:"email"`
	Purpose   OTPPurpose `json:"purpose"`
	Timestamp time.Time  `json:"timestamp"`
}
