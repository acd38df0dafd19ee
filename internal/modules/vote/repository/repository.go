package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
)

type VoteRepository interface {
	// Toggle flips the vote state for (user, target) and reports whether a
	// new row was created.
	Toggle(ctx context.Context, userID uint, targetType string, targetID uint) (*entity.Vote, bool, error)
	CountActive(ctx context.Context, targetType string, targetID uint) (up, down int64, err error)
	ActiveByUser(ctx context.Context, userID uint) ([]*entity.Vote, error)
	CountActiveUpByUser(ctx context.Context, userID uint) (int64, error)
	CountActiveUpReceivedOnBlogs(ctx context.Context, authorID uint) (int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Toggle runs the check-then-act sequence inside one transaction. Concurrent
// first votes for the same (user, target) race to insert; the composite
// unique index rejects the loser with a duplicate-key error and one retry
// lands on the update branch instead.
func (r *voteRepository) Toggle(ctx context.Context, userID uint, targetType string, targetID uint) (*entity.Vote, bool, error) {
	for attempt := 0; attempt < 2; attempt++ {
		vote, created, err := r.toggleOnce(ctx, userID, targetType, targetID)
		if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return vote, created, err
	}
	return nil, false, gorm.ErrDuplicatedKey
}

func (r *voteRepository) toggleOnce(ctx context.Context, userID uint, targetType string, targetID uint) (*entity.Vote, bool, error) {
	var vote *entity.Vote
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Find with a slice avoids record-not-found log noise from First.
		var existing []entity.Vote
		if err := tx.
			Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) == 0 {
			vote = &entity.Vote{
				UserID:     userID,
				TargetType: targetType,
				TargetID:   targetID,
				UpVote:     true,
				Status:     true,
			}
			created = true
			return tx.Create(vote).Error
		}

		record := existing[0]
		// Active becomes retracted, retracted becomes active again; the same
		// row is reused so a second one never appears.
		record.Status = !record.Status
		vote = &record
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, false, err
	}
	return vote, created, nil
}

func (r *voteRepository) CountActive(ctx context.Context, targetType string, targetID uint) (int64, int64, error) {
	type result struct {
		UpVote bool
		Count  int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&entity.Vote{}).
		Select("up_vote, count(*) as count").
		Where("target_type = ? AND target_id = ? AND status = ?", targetType, targetID, true).
		Group("up_vote").
		Scan(&results).Error
	if err != nil {
		return 0, 0, err
	}

	var up, down int64
	for _, res := range results {
		if res.UpVote {
			up = res.Count
		} else {
			down = res.Count
		}
	}
	return up, down, nil
}

func (r *voteRepository) ActiveByUser(ctx context.Context, userID uint) ([]*entity.Vote, error) {
	var votes []*entity.Vote
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, true).
		Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *voteRepository) CountActiveUpByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Vote{}).
		Where("user_id = ? AND up_vote = ? AND status = ?", userID, true, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *voteRepository) CountActiveUpReceivedOnBlogs(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Vote{}).
		Joins("JOIN blogs ON blogs.id = votes.target_id").
		Where("votes.target_type = ? AND votes.up_vote = ? AND votes.status = ? AND blogs.user_id = ?",
			entity.VoteTargetBlog, true, true, authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
