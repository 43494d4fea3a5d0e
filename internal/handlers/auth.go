package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/middleware"
	"portfolio/api/internal/service"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.internalError(c, err, "authenticate failed")
		return
	}

	session, err := h.auth.EstablishSession(c.Request.Context(), user)
	if err != nil {
		h.internalError(c, err, "establish session failed")
		return
	}

	h.setSessionCookie(c, session.ID, int(h.cfg.Session.TTL.Seconds()))

	respondDataMessage(c, http.StatusOK, newUserResponse(user), "Login successful")
}

func (h HandlerSet) Logout(c *gin.Context) {
	token, err := c.Cookie(h.cfg.Session.CookieName)
	if err == nil && token != "" {
		if err := h.auth.TerminateSession(c.Request.Context(), token); err != nil {
			h.internalError(c, err, "terminate session failed")
			return
		}
	}

	h.setSessionCookie(c, "", -1)

	respondMessage(c, http.StatusOK, "Logged out successfully")
}

func (h HandlerSet) CurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	respondData(c, http.StatusOK, newUserResponse(user))
}

func (h HandlerSet) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cfg.Session.CookieName,
		value,
		maxAge,
		"/",
		h.cfg.Session.CookieDomain,
		h.cfg.Environment == "production",
		true,
	)
}

func (h HandlerSet) internalError(c *gin.Context, err error, msg string) {
	h.log.Error().Err(err).
		Str("request_id", c.Writer.Header().Get("X-Request-Id")).
		Msg(msg)
	respondError(c, http.StatusInternalServerError, "An unexpected error occurred")
}
