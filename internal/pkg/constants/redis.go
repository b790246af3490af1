package constants

// Redis key formats. Every OTP key is scoped to a normalized email, and
// every key carries a TTL; expiry is the only recovery path for locks.
const (
	KeyOTPCode           = "otp:code:%s"         // Format: otp:code:{email}
	KeyOTPCooldown       = "otp:cooldown:%s"     // Format: otp:cooldown:{email}
	KeyOTPRequestCount   = "otp:requests:%s"     // Format: otp:requests:{email}
	KeyOTPSpamLock       = "otp:spam_lock:%s"    // Format: otp:spam_lock:{email}
	KeyOTPFailedAttempts = "otp:attempts:%s"     // Format: otp:attempts:{email}
	KeyOTPAccountLock    = "otp:account_lock:%s" // Format: otp:account_lock:{email}

	// Rate Limiting
	KeyRateLimit = "rate:limit:%s:%s" // Format: rate:limit:{resource}:{ip}
)

// LockMarker is the value stored under lock keys; presence is what matters
const LockMarker = "locked"
