package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
	"github.com/meet-community/meet-backend/internal/modules/reset/repository"
	userRepo "github.com/meet-community/meet-backend/internal/modules/user/repository"
	"github.com/meet-community/meet-backend/pkg/apperror"
	"github.com/meet-community/meet-backend/pkg/mailer"
)

const codeTTL = 15 * time.Minute

type Service interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, code string) error
	ResetPassword(ctx context.Context, email, password string) error
}

type service struct {
	verifications repository.VerificationRepository
	users         userRepo.UserRepository
	mail          mailer.Mailer
	now           func() time.Time
}

func NewService(verifications repository.VerificationRepository, users userRepo.UserRepository, mail mailer.Mailer) Service {
	return &service{
		verifications: verifications,
		users:         users,
		mail:          mail,
		now:           time.Now,
	}
}

// SendCode emails a reset code to the account holder. An outstanding pending
// code is re-sent instead of minting a second one.
func (s *service) SendCode(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.ErrNotFound, "User not found")
		}
		return err
	}

	now := s.now()
	pending, err := s.verifications.FindPendingValid(ctx, user.ID, now)
	if err != nil {
		return err
	}
	if pending != nil {
		return s.mail.SendResetCode(email, pending.Code)
	}

	verification := &entity.Verification{
		Code:           generateCode(),
		UserID:         user.ID,
		ExpirationTime: now.Add(codeTTL),
		Status:         entity.VerificationPending,
	}
	if err := s.verifications.Create(ctx, verification); err != nil {
		return err
	}
	return s.mail.SendResetCode(email, verification.Code)
}

func (s *service) VerifyCode(ctx context.Context, code string) error {
	verification, err := s.verifications.FindByCodePendingValid(ctx, code, s.now())
	if err != nil {
		return err
	}
	if verification == nil {
		return apperror.Wrap(apperror.ErrNotFound, "Code expired or not found")
	}

	verification.Status = entity.VerificationUsed
	return s.verifications.Save(ctx, verification)
}

// ResetPassword requires a used, still-unexpired verification: the code must
// have gone through VerifyCode within its validity window.
func (s *service) ResetPassword(ctx context.Context, email, password string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.ErrNotFound, "Password not found")
		}
		return err
	}

	verified, err := s.verifications.ExistsUsedValid(ctx, user.ID, s.now())
	if err != nil {
		return err
	}
	if !verified {
		return apperror.Wrap(apperror.ErrNotFound, "Password not found")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.users.Save(ctx, user)
}

// generateCode returns a six digit numeric code.
func generateCode() string {
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}
