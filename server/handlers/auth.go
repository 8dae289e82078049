package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/model"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	user, err := h.Users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token handles POST /api/auth/token: credentials in, access+refresh pair
// out. A failed login is 401, not 403, the caller simply isn't
// authenticated yet.
func (h *Handler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	pair, err := h.Users.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Refresh handles POST /api/auth/refresh.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	pair, err := h.Users.Refresh(req.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Users.Me(currentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type passwordResetRequestRequest struct {
	Identifier string `json:"identifier"`
}

// PasswordResetRequest handles POST /api/auth/password-reset/request.
// Always answers 200 with a generic message; the token rides along in the
// response because this deployment has no mail delivery, the client is
// expected to hand it to the confirmation form.
func (h *Handler) PasswordResetRequest(c *gin.Context) {
	var req passwordResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Identifier == "" {
		abortWithError(c, errors.Wrap(model.ErrValidation, "identifier is required"))
		return
	}
	token, err := h.Users.RequestPasswordReset(req.Identifier)
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp := gin.H{"message": "if an account exists for this identifier, a reset token has been created"}
	if token != "" {
		resp["token"] = token
	}
	c.JSON(http.StatusOK, resp)
}

type passwordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PasswordResetConfirm handles POST /api/auth/password-reset/confirm.
func (h *Handler) PasswordResetConfirm(c *gin.Context) {
	var req passwordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	if err := h.Users.ConfirmPasswordReset(req.Token, req.NewPassword); err != nil {
		// An unknown token is reported as 400 rather than 404: the resource
		// here is the reset attempt, not the token.
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid or expired token"})
			return
		}
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
