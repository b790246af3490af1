package errors

import (
	"errors"
	"fmt"
)

// Restriction errors: issuance denied before any state changes
var (
	ErrAccountLocked = errors.New("account locked due to multiple failed attempts, try again after 30 minutes")
	ErrSpamLocked    = errors.New("too many OTP requests, please wait 1 hour before requesting again")
	ErrCooldown      = errors.New("please wait 1 minute before requesting a new OTP")
)

// Verification errors: outcome of a verify attempt
var (
	ErrOTPMissing   = errors.New("invalid or expired OTP")
	ErrOTPLockedOut = errors.New("too many failed attempts, your account is locked for 30 minutes")
)

// Delivery and infrastructure errors
var (
	ErrDeliveryFailed = errors.New("failed to deliver OTP")
	// ErrStoreUnavailable marks a store outage. It must never be folded
	// into a verification failure: an outage does not consume attempts.
	ErrStoreUnavailable = errors.New("otp store unavailable")
)

// Account errors
var (
	ErrUserExists         = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSamePassword       = errors.New("new password cannot be the same as the old password")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// OTPMismatchError reports a wrong guess and how many attempts remain
// before the account lock engages.
type OTPMismatchError struct {
	Remaining int
}

func (e *OTPMismatchError) Error() string {
	return fmt.Sprintf("incorrect OTP, %d attempts left", e.Remaining)
}

// IsOTPMismatch unwraps err into an OTPMismatchError if it is one
func IsOTPMismatch(err error) (*OTPMismatchError, bool) {
	var mismatch *OTPMismatchError
	if errors.As(err, &mismatch) {
		return mismatch, true
	}
	return nil, false
}
