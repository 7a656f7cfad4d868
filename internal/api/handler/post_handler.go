package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postboard/api/internal/api/metrics"
	"github.com/postboard/api/internal/core/domain"
	"github.com/postboard/api/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /v1/posts.
//
// @Summary      List posts, newest first
// @Tags         posts
// @Produce      json
// @Success      200  {array}   postView
// @Failure      500  {object}  errorResponse
// @Router       /v1/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /v1/posts/:id. A missing post renders as null.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postView
// @Failure      500  {object}  errorResponse
// @Router       /v1/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create handles POST /v1/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post content"
// @Success      201   {object}  postView
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}

	post, err := h.service.Create(c.Request().Context(), callerIdentity(c), ports.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	metrics.PostMutationsTotal.WithLabelValues("create", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, post)
}

// Update handles PATCH /v1/posts/:id. Only fields present in the body change;
// a field sent as null is rejected.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  postView
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}
	switch {
	case req.Title.null():
		return domain.BadInput("title must not be null")
	case req.Content.null():
		return domain.BadInput("content must not be null")
	}

	post, err := h.service.Update(c.Request().Context(), callerIdentity(c), ports.UpdatePostInput{
		ID:      c.Param("id"),
		Title:   req.Title.Value,
		Content: req.Content.Value,
	})
	metrics.PostMutationsTotal.WithLabelValues("update", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /v1/posts/:id. A missing post is {"deleted": false}.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  deletePostResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	deleted, err := h.service.Delete(c.Request().Context(), callerIdentity(c), c.Param("id"))
	metrics.PostMutationsTotal.WithLabelValues("delete", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deletePostResponse{Deleted: deleted})
}
