package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkopp/mysite-backend/domain"
)

func newLikeRouter(svc *fakeReactionUsecase, uid uuid.UUID) *gin.Engine {
	h := NewLikeHandler(svc)
	r := gin.New()
	r.GET("/posts/:id/like", h.GetPostLike)
	r.GET("/comments/:id/like", h.GetCommentLike)

	authed := r.Group("/", asUser(uid))
	authed.POST("/posts/:id/like", h.TogglePostLike)
	authed.POST("/comments/:id/like", h.ToggleCommentLike)
	return r
}

func TestTogglePostLike(t *testing.T) {
	svc := &fakeReactionUsecase{status: domain.LikeStatus{Count: 3, Liked: true}}
	r := newLikeRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/posts/"+uuid.NewString()+"/like", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.toggled)

	var got domain.LikeStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.Count)
	assert.True(t, got.Liked)
}

func TestTogglePostLike_Unauthenticated(t *testing.T) {
	svc := &fakeReactionUsecase{}
	h := NewLikeHandler(svc)
	r := gin.New()
	r.POST("/posts/:id/like", h.TogglePostLike)

	req := httptest.NewRequest(http.MethodPost, "/posts/"+uuid.NewString()+"/like", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, svc.toggled)
}

func TestToggleLike_BadTargetID(t *testing.T) {
	svc := &fakeReactionUsecase{}
	r := newLikeRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/comments/not-a-uuid/like", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, svc.toggled)
}

func TestGetPostLike_Anonymous(t *testing.T) {
	svc := &fakeReactionUsecase{status: domain.LikeStatus{Count: 9, Liked: false}}
	r := newLikeRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/posts/"+uuid.NewString()+"/like", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count": 9, "liked": false}`, w.Body.String())
}

func TestGetCommentLike(t *testing.T) {
	svc := &fakeReactionUsecase{status: domain.LikeStatus{Count: 1, Liked: true}}
	r := newLikeRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/comments/"+uuid.NewString()+"/like", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got domain.LikeStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.Count)
}
