package dto

import (
	"time"

	blogDto "github.com/meet-community/meet-backend/internal/modules/blog/dto"
	taxonomyDto "github.com/meet-community/meet-backend/internal/modules/taxonomy/dto"
)

type UpdateInfoRequest struct {
	ID       uint   `json:"id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Bio      string `json:"bio"`
}

// ImageUpload carries a decoded multipart file into the service layer.
type ImageUpload struct {
	Name string
	Type string
	Blob []byte
}

type FollowEntry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// VoteEntry tags each active vote with the blog or comment it targets;
// exactly one of BlogID and CommentID is set.
type VoteEntry struct {
	ID        uint  `json:"id"`
	UpVote    bool  `json:"upVote"`
	BlogID    *uint `json:"blogId"`
	CommentID *uint `json:"commentId"`
}

type ProfileResponse struct {
	ID                   uint                           `json:"id"`
	Name                 string                         `json:"name"`
	Bio                  string                         `json:"bio"`
	Avatar               *string                        `json:"avatar"`
	Banner               *string                        `json:"banner"`
	Blogs                []blogDto.BlogDetailResponse   `json:"blogs"`
	Categories           []taxonomyDto.CategoryResponse `json:"categories"`
	Tags                 []taxonomyDto.TagResponse      `json:"tags"`
	Votes                []VoteEntry                    `json:"votes"`
	Following            []FollowEntry                  `json:"following"`
	Follower             []FollowEntry                  `json:"follower"`
	TotalUpVotes         int64                          `json:"totalUpVotes"`
	TotalReceivedUpVotes int64                          `json:"totalReceivedUpVotes"`
	TotalComments        int64                          `json:"totalComments"`
	CreatedTime          time.Time                      `json:"createdTime"`
}
