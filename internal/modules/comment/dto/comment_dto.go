package dto

// CreateCommentRequest posts a top-level comment when only BlogID is set, or
// a reply when CommentID names the parent.
type CreateCommentRequest struct {
	BlogID    uint   `json:"blogId"`
	CommentID *uint  `json:"commentId"`
	UserID    uint   `json:"userId"`
	Content   string `json:"content"`
}
