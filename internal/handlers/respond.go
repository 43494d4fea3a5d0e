package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"portfolio/api/internal/models"
)

// All responses share the {success, data?, message?, errors?} envelope.

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondDataMessage(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondBindError turns gin binding failures into field-level 400 payloads.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[strings.ToLower(fieldErr.Field())] = fieldErr.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation error",
			"errors":  fields,
		})
		return
	}

	respondError(c, http.StatusBadRequest, "Malformed request body")
}

type userResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	FullName *string `json:"fullName"`
	IsAdmin  bool    `json:"isAdmin"`
}

func newUserResponse(user models.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		IsAdmin:  user.IsAdmin,
	}
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func newCategoryResponse(category models.BlogCategory) categoryResponse {
	return categoryResponse{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
	}
}

func newCategoryResponses(categories []models.BlogCategory) []categoryResponse {
	resp := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, newCategoryResponse(category))
	}
	return resp
}

type postResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Summary       string             `json:"summary"`
	Content       string             `json:"content"`
	FeaturedImage *string            `json:"featuredImage"`
	AuthorID      *string            `json:"authorId"`
	Published     bool               `json:"published"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Categories    []categoryResponse `json:"categories,omitempty"`
}

func newPostResponse(post models.BlogPost) postResponse {
	return postResponse{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Summary:       post.Summary,
		Content:       post.Content,
		FeaturedImage: post.FeaturedImage,
		AuthorID:      post.AuthorID,
		Published:     post.Published,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

func newPostResponses(posts []models.BlogPost) []postResponse {
	resp := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		resp = append(resp, newPostResponse(post))
	}
	return resp
}

type contactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func newContactResponse(submission models.ContactSubmission) contactResponse {
	return contactResponse{
		ID:        submission.ID,
		Name:      submission.Name,
		Email:     submission.Email,
		Service:   submission.Service,
		Message:   submission.Message,
		CreatedAt: submission.CreatedAt,
	}
}
