package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/pradiptha/lokapasar/internal/pkg/logger"
	"github.com/pradiptha/lokapasar/internal/pkg/models"
	"github.com/pradiptha/lokapasar/internal/utils"
	domainerrors "github.com/pradiptha/lokapasar/services/auth/domain/errors"
)

// generateOTPCode draws a 4-digit code in [1000, 9999] from crypto/rand.
// The attempt budget, not the code space, is what bounds guessing.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}

// checkOTPRestriction classifies whether a new OTP request is permitted.
// Locks are checked strongest first; the first match denies. No side effects.
func (u *AuthUC) checkOTPRestriction(ctx context.Context, email string) error {
	locked, err := u.otpRepo.IsAccountLocked(ctx, email)
	if err != nil {
		return err
	}
	if locked {
		return domainerrors.ErrAccountLocked
	}

	spamLocked, err := u.otpRepo.IsSpamLocked(ctx, email)
	if err != nil {
		return err
	}
	if spamLocked {
		return domainerrors.ErrSpamLocked
	}

	coolingDown, err := u.otpRepo.IsInCooldown(ctx, email)
	if err != nil {
		return err
	}
	if coolingDown {
		return domainerrors.ErrCooldown
	}

	return nil
}

// trackOTPRequest records one request against the rolling window. The
// increment is atomic, so concurrent requests for the same identity cannot
// both slip under the threshold. Requests past the limit set the spam lock
// and are denied.
func (u *AuthUC) trackOTPRequest(ctx context.Context, email string) error {
	count, err := u.otpRepo.IncrementRequestCount(ctx, email)
	if err != nil {
		return err
	}

	if count > int64(u.cfg.OTP.MaxRequestsPerWindow) {
		if err := u.otpRepo.SetSpamLock(ctx, email); err != nil {
			return err
		}

		logger.WarnCtx(ctx, "OTP request spam lock engaged",
			logger.String("email", utils.MaskEmail(email)),
			logger.Int64("requests", count))

		return domainerrors.ErrSpamLocked
	}

	return nil
}

// sendOTP generates, delivers, and stores a code, then arms the cooldown.
// The code is persisted only after delivery succeeds; a failed send must not
// leave the user locked out of a code they never received. A new code
// overwrites any previous one for the identity.
func (u *AuthUC) sendOTP(ctx context.Context, name, email string, purpose models.OTPPurpose) error {
	code, err := generateOTPCode()
	if err != nil {
		return err
	}

	if err := u.authGW.SendOTPEmail(ctx, email, name, code, purpose); err != nil {
		return err
	}

	if err := u.otpRepo.StoreOTP(ctx, email, code); err != nil {
		return err
	}
	if err := u.otpRepo.SetCooldown(ctx, email); err != nil {
		return err
	}

	// Best effort; the event stream is observability, not delivery.
	_ = u.authGW.PublishOTPIssued(ctx, &models.OTPIssuedEvent{
		Email:     email,
		Purpose:   purpose,
		Timestamp: time.Now(),
	})

	logger.InfoCtx(ctx, "OTP issued",
		logger.String("email", utils.MaskEmail(email)),
		logger.String("purpose", string(purpose)))

	return nil
}

// requestOTP runs the full issuance pipeline: restriction check, request
// throttling, then generation and delivery.
func (u *AuthUC) requestOTP(ctx context.Context, name, email string, purpose models.OTPPurpose) error {
	if err := u.checkOTPRestriction(ctx, email); err != nil {
		return err
	}
	if err := u.trackOTPRequest(ctx, email); err != nil {
		return err
	}
	return u.sendOTP(ctx, name, email, purpose)
}

// verifyOTP compares a submitted code against the stored one and walks the
// attempt state machine. Codes are single use: a match clears all state, so
// replaying the same code fails as missing. Wrong guesses are counted
// atomically; the guess that exhausts the budget engages the account lock
// and clears the code.
func (u *AuthUC) verifyOTP(ctx context.Context, email, submitted string) error {
	// The account lock governs verification independent of whether a code
	// happens to exist.
	locked, err := u.otpRepo.IsAccountLocked(ctx, email)
	if err != nil {
		return err
	}
	if locked {
		return domainerrors.ErrOTPLockedOut
	}

	stored, found, err := u.otpRepo.GetOTP(ctx, email)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrOTPMissing
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) != 1 {
		attempts, err := u.otpRepo.IncrementFailedAttempts(ctx, email)
		if err != nil {
			return err
		}

		if attempts >= int64(u.cfg.OTP.MaxFailedAttempts) {
			if err := u.otpRepo.SetAccountLock(ctx, email); err != nil {
				return err
			}
			if err := u.otpRepo.ClearOTP(ctx, email); err != nil {
				return err
			}

			logger.WarnCtx(ctx, "OTP account lock engaged",
				logger.String("email", utils.MaskEmail(email)),
				logger.Int64("failed_attempts", attempts))

			return domainerrors.ErrOTPLockedOut
		}

		return &domainerrors.OTPMismatchError{
			Remaining: u.cfg.OTP.MaxFailedAttempts - 1 - int(attempts),
		}
	}

	return u.otpRepo.ClearOTP(ctx, email)
}
