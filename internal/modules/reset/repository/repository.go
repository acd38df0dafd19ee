package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
)

type VerificationRepository interface {
	Create(ctx context.Context, verification *entity.Verification) error
	Save(ctx context.Context, verification *entity.Verification) error
	// FindPendingValid returns the user's pending, unexpired verification,
	// or nil when there is none.
	FindPendingValid(ctx context.Context, userID uint, now time.Time) (*entity.Verification, error)
	FindByCodePendingValid(ctx context.Context, code string, now time.Time) (*entity.Verification, error)
	ExistsUsedValid(ctx context.Context, userID uint, now time.Time) (bool, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, verification *entity.Verification) error {
	return r.db.WithContext(ctx).Create(verification).Error
}

func (r *verificationRepository) Save(ctx context.Context, verification *entity.Verification) error {
	return r.db.WithContext(ctx).Save(verification).Error
}

func (r *verificationRepository) FindPendingValid(ctx context.Context, userID uint, now time.Time) (*entity.Verification, error) {
	var verifications []*entity.Verification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND expiration_time > ?", userID, entity.VerificationPending, now).
		Limit(1).
		Find(&verifications).Error
	if err != nil {
		return nil, err
	}
	if len(verifications) == 0 {
		return nil, nil
	}
	return verifications[0], nil
}

func (r *verificationRepository) FindByCodePendingValid(ctx context.Context, code string, now time.Time) (*entity.Verification, error) {
	var verifications []*entity.Verification
	err := r.db.WithContext(ctx).
		Where("code = ? AND status = ? AND expiration_time > ?", code, entity.VerificationPending, now).
		Limit(1).
		Find(&verifications).Error
	if err != nil {
		return nil, err
	}
	if len(verifications) == 0 {
		return nil, nil
	}
	return verifications[0], nil
}

func (r *verificationRepository) ExistsUsedValid(ctx context.Context, userID uint, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Verification{}).
		Where("user_id = ? AND status = ? AND expiration_time > ?", userID, entity.VerificationUsed, now).
		Count(&count).Error
	return count > 0, err
}
