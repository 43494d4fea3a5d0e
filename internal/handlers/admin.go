package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/middleware"
	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
	"portfolio/api/internal/service"
)

func (h HandlerSet) AdminListPosts(c *gin.Context) {
	limit, offset := pagination(c)

	posts, err := h.blog.ListPosts(c.Request.Context(), limit, offset, false)
	if err != nil {
		h.internalError(c, err, "admin list posts failed")
		return
	}

	respondData(c, http.StatusOK, newPostResponses(posts))
}

type createPostRequest struct {
	Title         string  `json:"title" binding:"required"`
	Slug          string  `json:"slug" binding:"required"`
	Summary       string  `json:"summary" binding:"required"`
	Content       string  `json:"content" binding:"required"`
	FeaturedImage *string `json:"featuredImage"`
	Published     bool    `json:"published"`
}

func (h HandlerSet) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	author, _ := middleware.CurrentUser(c)

	post, err := h.blog.CreatePost(c.Request.Context(), service.CreatePostInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Summary:       req.Summary,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Published:     req.Published,
	}, author.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSlugTaken):
			respondError(c, http.StatusConflict, "A post with this slug already exists")
		case errors.Is(err, repository.ErrAuthorNotFound):
			respondError(c, http.StatusBadRequest, "Author does not exist")
		default:
			h.internalError(c, err, "create post failed")
		}
		return
	}

	respondDataMessage(c, http.StatusCreated, newPostResponse(post), "Blog post created successfully")
}

type updatePostRequest struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Summary       *string `json:"summary"`
	Content       *string `json:"content"`
	FeaturedImage *string `json:"featuredImage"`
	Published     *bool   `json:"published"`
}

func (h HandlerSet) UpdatePost(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	post, err := h.blog.UpdatePost(c.Request.Context(), c.Param("id"), models.PostUpdate{
		Title:         req.Title,
		Slug:          req.Slug,
		Summary:       req.Summary,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Published:     req.Published,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "Blog post not found")
		case errors.Is(err, repository.ErrSlugTaken):
			respondError(c, http.StatusConflict, "A post with this slug already exists")
		default:
			h.internalError(c, err, "update post failed")
		}
		return
	}

	respondDataMessage(c, http.StatusOK, newPostResponse(post), "Blog post updated successfully")
}

func (h HandlerSet) DeletePost(c *gin.Context) {
	deleted, err := h.blog.DeletePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, err, "delete post failed")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "Blog post not found")
		return
	}

	respondMessage(c, http.StatusOK, "Blog post deleted successfully")
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

func (h HandlerSet) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.blog.CreateCategory(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			respondError(c, http.StatusConflict, "A category with this slug already exists")
			return
		}
		h.internalError(c, err, "create category failed")
		return
	}

	respondDataMessage(c, http.StatusCreated, newCategoryResponse(category), "Category created successfully")
}

type updateCategoryRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func (h HandlerSet) UpdateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.blog.UpdateCategory(c.Request.Context(), c.Param("id"), models.CategoryUpdate{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "Category not found")
		case errors.Is(err, repository.ErrSlugTaken):
			respondError(c, http.StatusConflict, "A category with this slug already exists")
		default:
			h.internalError(c, err, "update category failed")
		}
		return
	}

	respondDataMessage(c, http.StatusOK, newCategoryResponse(category), "Category updated successfully")
}

func (h HandlerSet) DeleteCategory(c *gin.Context) {
	deleted, err := h.blog.DeleteCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, err, "delete category failed")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}

	respondMessage(c, http.StatusOK, "Category deleted successfully")
}

func (h HandlerSet) AddCategoryToPost(c *gin.Context) {
	err := h.blog.AddCategoryToPost(c.Request.Context(), c.Param("id"), c.Param("categoryId"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "Blog post not found")
		case errors.Is(err, repository.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "Category not found")
		default:
			h.internalError(c, err, "add category to post failed")
		}
		return
	}

	respondMessage(c, http.StatusOK, "Category added to blog post successfully")
}

func (h HandlerSet) RemoveCategoryFromPost(c *gin.Context) {
	if err := h.blog.RemoveCategoryFromPost(c.Request.Context(), c.Param("id"), c.Param("categoryId")); err != nil {
		h.internalError(c, err, "remove category from post failed")
		return
	}

	respondMessage(c, http.StatusOK, "Category removed from blog post successfully")
}
