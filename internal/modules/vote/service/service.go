package vote

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meet-community/meet-backend/internal/entity"
	blogRepo "github.com/meet-community/meet-backend/internal/modules/blog/repository"
	userRepo "github.com/meet-community/meet-backend/internal/modules/user/repository"
	"github.com/meet-community/meet-backend/internal/modules/vote/repository"
	"github.com/meet-community/meet-backend/pkg/apperror"
)

const countsTTL = 7 * 24 * time.Hour

type Service interface {
	ToggleBlogVote(ctx context.Context, blogID, userID uint) error
	// Counts returns the active up/down vote counts for a blog or comment.
	Counts(ctx context.Context, targetType string, targetID uint) (up, down int64, err error)
}

type service struct {
	repo        repository.VoteRepository
	blogs       blogRepo.BlogRepository
	users       userRepo.UserRepository
	redisClient *redis.Client
}

func NewService(repo repository.VoteRepository, blogs blogRepo.BlogRepository, users userRepo.UserRepository, redisClient *redis.Client) Service {
	return &service{
		repo:        repo,
		blogs:       blogs,
		users:       users,
		redisClient: redisClient,
	}
}

func (s *service) ToggleBlogVote(ctx context.Context, blogID, userID uint) error {
	blogExists, err := s.blogs.Exists(ctx, blogID)
	if err != nil {
		return err
	}
	if !blogExists {
		return apperror.Wrap(apperror.ErrNotFound, "Blog not found")
	}

	userExists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !userExists {
		return apperror.Wrap(apperror.ErrNotFound, "User not found")
	}

	vote, created, err := s.repo.Toggle(ctx, userID, entity.VoteTargetBlog, blogID)
	if err != nil {
		return err
	}

	// Keep the cached counts in step with the toggle outcome. The DB stays
	// authoritative; a failed cache write is logged and the entry rebuilt on
	// the next miss.
	delta := int64(-1)
	if created || vote.Status {
		delta = 1
	}
	s.adjustCachedCount(ctx, entity.VoteTargetBlog, blogID, delta)

	return nil
}

func (s *service) Counts(ctx context.Context, targetType string, targetID uint) (int64, int64, error) {
	if s.redisClient != nil {
		key := countsKey(targetType, targetID)
		val, err := s.redisClient.HGetAll(ctx, key).Result()
		if err == nil && len(val) > 0 {
			up, _ := strconv.ParseInt(val["up"], 10, 64)
			down, _ := strconv.ParseInt(val["down"], 10, 64)
			return up, down, nil
		}
	}

	up, down, err := s.repo.CountActive(ctx, targetType, targetID)
	if err != nil {
		return 0, 0, err
	}

	if s.redisClient != nil {
		key := countsKey(targetType, targetID)
		pipe := s.redisClient.Pipeline()
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "up", up, "down", down)
		pipe.Expire(ctx, key, countsTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("vote counts cache rebuild failed: %v", err)
		}
	}

	return up, down, nil
}

func (s *service) adjustCachedCount(ctx context.Context, targetType string, targetID uint, delta int64) {
	if s.redisClient == nil {
		return
	}

	key := countsKey(targetType, targetID)
	exists, err := s.redisClient.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return
	}
	if err := s.redisClient.HIncrBy(ctx, key, "up", delta).Err(); err != nil {
		log.Printf("vote counts cache update failed: %v", err)
	}
}

func countsKey(targetType string, targetID uint) string {
	return fmt.Sprintf("votes:%s:%d", targetType, targetID)
}
