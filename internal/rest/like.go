package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkopp/mysite-backend/domain"
	"github.com/mkopp/mysite-backend/internal/rest/middleware"
)

// LikeHandler exposes the like toggle and like status uniformly for
// posts and comments.
type LikeHandler struct {
	Service domain.ReactionUsecase
}

func NewLikeHandler(svc domain.ReactionUsecase) *LikeHandler {
	return &LikeHandler{
		Service: svc,
	}
}

// TogglePostLike flips the caller's like on a post
func (h *LikeHandler) TogglePostLike(c *gin.Context) {
	h.toggle(c, domain.TargetPost)
}

// GetPostLike reports the like count and, for authenticated callers,
// whether they liked the post
func (h *LikeHandler) GetPostLike(c *gin.Context) {
	h.status(c, domain.TargetPost)
}

// ToggleCommentLike flips the caller's like on a comment
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, domain.TargetComment)
}

// GetCommentLike reports the like state of a comment
func (h *LikeHandler) GetCommentLike(c *gin.Context) {
	h.status(c, domain.TargetComment)
}

func (h *LikeHandler) toggle(c *gin.Context, kind domain.TargetKind) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	status, err := h.Service.Toggle(ctx, kind, targetID, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *LikeHandler) status(c *gin.Context, kind domain.TargetKind) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	// Anonymous callers get liked=false with the count.
	uid, _ := middleware.UserID(c)

	ctx := c.Request.Context()
	status, err := h.Service.Status(ctx, kind, targetID, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}
