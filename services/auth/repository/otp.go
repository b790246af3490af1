package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pradiptha/lokapasar/internal/pkg/constants"
	domainerrors "github.com/pradiptha/lokapasar/services/auth/domain/errors"
)

// The OTP lifecycle state lives entirely in Redis. Each record's lifecycle
// is its TTL: locks and counters expire on their own and are never unlocked
// explicitly. All keys are scoped to the normalized email.

func (r *AuthRepo) otpTTL() time.Duration {
	return time.Duration(r.cfg.OTP.CodeTTL) * time.Second
}

// keyExists reports key presence, mapping store outages to a typed error so
// callers never mistake an outage for an absent lock.
func (r *AuthRepo) keyExists(ctx context.Context, key string) (bool, error) {
	_, err := r.redisClient.Get(ctx, key)
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return true, nil
}

// IsAccountLocked reports whether the identity is locked from failed verifies
func (r *AuthRepo) IsAccountLocked(ctx context.Context, email string) (bool, error) {
	return r.keyExists(ctx, fmt.Sprintf(constants.KeyOTPAccountLock, email))
}

// IsSpamLocked reports whether the identity exceeded the request window
func (r *AuthRepo) IsSpamLocked(ctx context.Context, email string) (bool, error) {
	return r.keyExists(ctx, fmt.Sprintf(constants.KeyOTPSpamLock, email))
}

// IsInCooldown reports whether the identity was issued a code too recently
func (r *AuthRepo) IsInCooldown(ctx context.Context, email string) (bool, error) {
	return r.keyExists(ctx, fmt.Sprintf(constants.KeyOTPCooldown, email))
}

// IncrementRequestCount atomically bumps the per-identity request counter and
// returns the post-increment value. The window TTL is attached only when the
// counter is created, anchoring the window to the first request of a burst.
func (r *AuthRepo) IncrementRequestCount(ctx context.Context, email string) (int64, error) {
	key := fmt.Sprintf(constants.KeyOTPRequestCount, email)
	ttl := time.Duration(r.cfg.OTP.RequestWindowTTL) * time.Second

	count, err := r.redisClient.IncrWithTTL(ctx, key, ttl)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return count, nil
}

// SetSpamLock blocks further OTP requests for the configured window
func (r *AuthRepo) SetSpamLock(ctx context.Context, email string) error {
	key := fmt.Sprintf(constants.KeyOTPSpamLock, email)
	ttl := time.Duration(r.cfg.OTP.SpamLockTTL) * time.Second

	if err := r.redisClient.Set(ctx, key, constants.LockMarker, ttl); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return nil
}

// StoreOTP stores the issued code, superseding any previous one
func (r *AuthRepo) StoreOTP(ctx context.Context, email, code string) error {
	key := fmt.Sprintf(constants.KeyOTPCode, email)

	if err := r.redisClient.Set(ctx, key, code, r.otpTTL()); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return nil
}

// SetCooldown enforces the minimum wait between issuances
func (r *AuthRepo) SetCooldown(ctx context.Context, email string) error {
	key := fmt.Sprintf(constants.KeyOTPCooldown, email)
	ttl := time.Duration(r.cfg.OTP.CooldownTTL) * time.Second

	if err := r.redisClient.Set(ctx, key, constants.LockMarker, ttl); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return nil
}

// GetOTP returns the stored code for the identity, if any
func (r *AuthRepo) GetOTP(ctx context.Context, email string) (string, bool, error) {
	code, err := r.redisClient.Get(ctx, fmt.Sprintf(constants.KeyOTPCode, email))
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return code, true, nil
}

// IncrementFailedAttempts atomically bumps the wrong-guess counter and
// returns the post-increment value. The counter lives as long as the code it
// guards would.
func (r *AuthRepo) IncrementFailedAttempts(ctx context.Context, email string) (int64, error) {
	key := fmt.Sprintf(constants.KeyOTPFailedAttempts, email)

	count, err := r.redisClient.IncrWithTTL(ctx, key, r.otpTTL())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return count, nil
}

// SetAccountLock blocks both issuance and verification for the lock window
func (r *AuthRepo) SetAccountLock(ctx context.Context, email string) error {
	key := fmt.Sprintf(constants.KeyOTPAccountLock, email)
	ttl := time.Duration(r.cfg.OTP.AccountLockTTL) * time.Second

	if err := r.redisClient.Set(ctx, key, constants.LockMarker, ttl); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return nil
}

// ClearOTP removes the code and its failed-attempt counter. Deleting keys
// that already expired is fine; DEL is idempotent.
func (r *AuthRepo) ClearOTP(ctx context.Context, email string) error {
	err := r.redisClient.Delete(ctx,
		fmt.Sprintf(constants.KeyOTPCode, email),
		fmt.Sprintf(constants.KeyOTPFailedAttempts, email),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return nil
}
