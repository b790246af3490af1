package constants

// NATS Subjects
const (
	// Auth Service events
	SubjectUserRegistered = "user.registered"
	SubjectOTPIssued      = "user.otp.issued"
)
