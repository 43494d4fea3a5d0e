package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/ids"
	"portfolio/api/internal/models"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Service string `json:"service" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h HandlerSet) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	submission := models.ContactSubmission{
		ID:        ids.New(),
		Name:      req.Name,
		Email:     req.Email,
		Service:   req.Service,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.contacts.Create(c.Request.Context(), submission); err != nil {
		h.internalError(c, err, "store contact submission failed")
		return
	}

	respondDataMessage(c, http.StatusCreated, newContactResponse(submission), "Contact form submitted successfully")
}

func (h HandlerSet) ListContactSubmissions(c *gin.Context) {
	submissions, err := h.contacts.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "list contact submissions failed")
		return
	}

	resp := make([]contactResponse, 0, len(submissions))
	for _, submission := range submissions {
		resp = append(resp, newContactResponse(submission))
	}

	respondData(c, http.StatusOK, resp)
}
