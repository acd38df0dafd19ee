package entity

import "time"

// Vote targets are tagged with a type plus id instead of separate nullable
// foreign keys, so a row always points at exactly one blog or comment.
const (
	VoteTargetBlog    = "blog"
	VoteTargetComment = "comment"
)

type Vote struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;uniqueIndex:idx_votes_user_target,priority:1" json:"user_id"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	TargetType string `gorm:"size:20;not null;uniqueIndex:idx_votes_user_target,priority:2;index:idx_votes_lookup,priority:1" json:"target_type"`
	TargetID   uint   `gorm:"not null;uniqueIndex:idx_votes_user_target,priority:3;index:idx_votes_lookup,priority:2" json:"target_id"`

	UpVote bool `gorm:"not null" json:"up_vote"`
	// Status false means the vote was retracted; the row is kept so a later
	// toggle reactivates it instead of inserting a second one.
	Status bool `gorm:"not null" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
