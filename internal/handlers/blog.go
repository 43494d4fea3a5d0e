package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/middleware"
	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func pagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		if v > maxPageSize {
			v = maxPageSize
		}
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func (h HandlerSet) ListPublishedPosts(c *gin.Context) {
	limit, offset := pagination(c)

	posts, err := h.blog.ListPosts(c.Request.Context(), limit, offset, true)
	if err != nil {
		h.internalError(c, err, "list posts failed")
		return
	}

	respondData(c, http.StatusOK, newPostResponses(posts))
}

func (h HandlerSet) GetPostBySlug(c *gin.Context) {
	var requester *models.User
	if user, ok := middleware.CurrentUser(c); ok {
		requester = &user
	}

	post, categories, err := h.blog.GetPostBySlug(c.Request.Context(), c.Param("slug"), requester)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "Blog post not found")
			return
		}
		h.internalError(c, err, "get post failed")
		return
	}

	resp := newPostResponse(post)
	resp.Categories = newCategoryResponses(categories)

	respondData(c, http.StatusOK, resp)
}

func (h HandlerSet) ListCategories(c *gin.Context) {
	categories, err := h.blog.Categories(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "list categories failed")
		return
	}

	respondData(c, http.StatusOK, newCategoryResponses(categories))
}

func (h HandlerSet) ListPostsByCategory(c *gin.Context) {
	category, err := h.blog.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		h.internalError(c, err, "get category failed")
		return
	}

	limit, offset := pagination(c)

	posts, err := h.blog.ListPostsByCategory(c.Request.Context(), category.ID, limit, offset)
	if err != nil {
		h.internalError(c, err, "list posts by category failed")
		return
	}

	respondData(c, http.StatusOK, newPostResponses(posts))
}
