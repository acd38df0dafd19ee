package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/meet-community/meet-backend/pkg/apperror"
)

type fakeVoteService struct {
	toggled [][2]uint
	err     error
}

func (s *fakeVoteService) ToggleBlogVote(_ context.Context, blogID, userID uint) error {
	if s.err != nil {
		return s.err
	}
	s.toggled = append(s.toggled, [2]uint{blogID, userID})
	return nil
}

func (s *fakeVoteService) Counts(_ context.Context, _ string, _ uint) (int64, int64, error) {
	return 0, 0, nil
}

func newTestRouter(svc *fakeVoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/vote", NewVoteHandler(svc).ToggleVote)
	return router
}

func TestToggleVoteMissingBlogID(t *testing.T) {
	router := newTestRouter(&fakeVoteService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vote?userId=1", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please provide a valid blogId")
}

func TestToggleVoteMissingUserID(t *testing.T) {
	router := newTestRouter(&fakeVoteService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vote?blogId=1", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please provide a valid userId")
}

func TestToggleVoteUnknownBlog(t *testing.T) {
	svc := &fakeVoteService{err: apperror.Wrap(apperror.ErrNotFound, "Blog not found")}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vote?blogId=9&userId=1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleVote(t *testing.T) {
	svc := &fakeVoteService{}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vote?blogId=1&userId=2", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Blog updated")
	assert.Equal(t, [][2]uint{{1, 2}}, svc.toggled)
}
