package entity

import "time"

const (
	VerificationPending = "PENDING"
	VerificationUsed    = "USED"
	VerificationExpired = "EXPIRED"
)

type Verification struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:10;not null;index" json:"code"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpirationTime time.Time `gorm:"not null" json:"expiration_time"`

	Status string `gorm:"size:10;not null;default:PENDING" json:"status"`
}
