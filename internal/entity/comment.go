package entity

import "time"

type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`

	BlogID uint `gorm:"not null;index" json:"blog_id"`
	Blog   Blog `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`

	// Self-reference for reply threads.
	ParentCommentID *uint    `gorm:"index" json:"parent_comment_id,omitempty"`
	ParentComment   *Comment `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
