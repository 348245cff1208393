package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkopp/mysite-backend/domain"
	"github.com/mkopp/mysite-backend/internal/rest/middleware"
	"github.com/mkopp/mysite-backend/internal/rest/request"
	"github.com/mkopp/mysite-backend/internal/rest/response"
)

type CommentHandler struct {
	Service   domain.CommentUsecase
	Reactions domain.ReactionUsecase
}

func NewCommentHandler(svc domain.CommentUsecase, reactions domain.ReactionUsecase) *CommentHandler {
	return &CommentHandler{
		Service:   svc,
		Reactions: reactions,
	}
}

// CreateComment creates a comment (or a reply when parent_id is set)
// on the post in the path.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := req.ToDomain(postID, uid)
	ctx := c.Request.Context()
	if err := h.Service.Create(ctx, &comment); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	item, err := h.withStats(c, comment)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListTopLevel lists the top-level comments of a post, newest first
func (h *CommentHandler) ListTopLevel(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	page, size := pageParams(c)
	ctx := c.Request.Context()
	res, err := h.Service.ListTopLevel(ctx, postID, page, size)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCommentPageFromDomain(&res))
}

// CountComments reports how many comments a post carries, replies included
func (h *CommentHandler) CountComments(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	ctx := c.Request.Context()
	count, err := h.Service.CountForPost(ctx, postID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// ListReplies lists the direct replies of a comment, oldest first
func (h *CommentHandler) ListReplies(c *gin.Context) {
	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	page, size := pageParams(c)
	ctx := c.Request.Context()
	res, err := h.Service.ListReplies(ctx, parentID, page, size)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCommentPageFromDomain(&res))
}

// CountReplies reports the number of direct replies of a comment
func (h *CommentHandler) CountReplies(c *gin.Context) {
	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	ctx := c.Request.Context()
	count, err := h.Service.CountReplies(ctx, parentID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// UpdateComment replaces the content of the caller's own comment
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req request.CommentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.Service.Update(ctx, commentID, uid, req.Content)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	item, err := h.withStats(c, comment)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteComment removes the caller's own comment
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
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
	if err := h.Service.Delete(ctx, commentID, uid); err != nil {
		if err == domain.ErrForbidden {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this comment"})
			return
		}
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// withStats decorates a single comment the same way listings are
// decorated, so create/update responses match the list item shape.
func (h *CommentHandler) withStats(c *gin.Context, comment domain.Comment) (response.Comment, error) {
	ctx := c.Request.Context()

	replyCount, err := h.Service.CountReplies(ctx, comment.ID)
	if err != nil {
		return response.Comment{}, err
	}
	status, err := h.Reactions.Status(ctx, domain.TargetComment, comment.ID, uuid.Nil)
	if err != nil {
		return response.Comment{}, err
	}

	return response.NewCommentFromDomain(&domain.CommentWithStats{
		Comment:    comment,
		ReplyCount: replyCount,
		LikeCount:  status.Count,
	}), nil
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil {
		size = 0 // service falls back to its default
	}
	return page, size
}
