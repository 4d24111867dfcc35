package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/http/response"
	"github.com/rhcore/rhcore-backend/internal/services"
)

const sessionCookieName = "rh_session"

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// POST /api/auth/login
// Sets the session cookie for the web tier and returns the tokens for API
// clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, result.AccessToken)
	response.OK(c, result)
}

// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err))
		return
	}
	result, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, result.AccessToken)
	response.OK(c, result)
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&req)
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.Error(c, err)
		return
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	response.NoContent(c)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, accessToken string) {
	c.SetCookie(sessionCookieName, accessToken, int(h.auth.AccessTTL().Seconds()), "/", "", false, true)
}
