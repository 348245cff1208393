package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mkopp/mysite-backend/domain"
	"github.com/mkopp/mysite-backend/internal/rest/middleware"
	"github.com/mkopp/mysite-backend/internal/rest/request"
	"github.com/mkopp/mysite-backend/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const (
	DefaultPageNum = 10
	PageMinNum     = 5
	PageMaxNum     = 30
)

// PostHandler represent the http handler for blog posts
type PostHandler struct {
	Service domain.PostUsecase
}

func NewPostHandler(svc domain.PostUsecase) *PostHandler {
	return &PostHandler{
		Service: svc,
	}
}

// FetchPosts will fetch the posts based on given params.
// A `tag` query narrows the listing to one tag.
func (h *PostHandler) FetchPosts(c *gin.Context) {
	numS := c.Query("num")
	num, err := strconv.Atoi(numS)
	if err != nil || num < PageMinNum || num > PageMaxNum {
		num = DefaultPageNum
	}
	cursor := c.Query("cursor")
	tag := c.Query("tag")
	ctx := c.Request.Context()

	var (
		listPs     []domain.Post
		nextCursor string
	)
	if tag != "" {
		listPs, nextCursor, err = h.Service.FetchByTag(ctx, tag, cursor, int64(num))
	} else {
		listPs, nextCursor, err = h.Service.Fetch(ctx, cursor, int64(num))
	}
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Post, len(listPs))
	for i := range listPs {
		res[i] = response.NewPostFromDomain(&listPs[i])
	}
	c.Header("X-cursor", nextCursor)
	c.JSON(http.StatusOK, res)
}

// GetPost will get a post by the given id, falling back to a slug
// lookup when the param is not a UUID.
func (h *PostHandler) GetPost(c *gin.Context) {
	param := c.Param("id")
	ctx := c.Request.Context()

	var (
		post domain.Post
		err  error
	)
	if id, parseErr := uuid.Parse(param); parseErr == nil {
		post, err = h.Service.GetByID(ctx, id)
	} else {
		post, err = h.Service.GetBySlug(ctx, param)
	}
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPostFromDomain(&post))
}

// StorePost will create a new post from the given request body
func (h *PostHandler) StorePost(c *gin.Context) {
	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	post := req.ToDomain(uid)
	ctx := c.Request.Context()
	if err := h.Service.Store(ctx, &post); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewPostFromDomain(&post))
}

// UpdatePost will replace the content of an existing post
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	var req request.PostUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	post := domain.Post{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Content:      req.Content,
		Tags:         req.Tags,
		ThumbnailURL: req.ThumbnailURL,
		Author:       domain.UserInfo{ID: uid},
	}
	ctx := c.Request.Context()
	if err := h.Service.Update(ctx, &post); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPostFromDomain(&post))
}

// DeletePost will remove the post with the given id
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.Service.Delete(ctx, id); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// getStatusCode will get the http status code of a domain error
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
