package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skybook/internal/models"
	"skybook/internal/session"
)

// Account handlers

// Register - POST /users/register
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.services.Users.Register(c.Request.Context(), &req); err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// Login - POST /users/login
// On success a session is created and its token set as an HTTP-only cookie.
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	token, err := h.sessionStore.Create(c.Request.Context(), session.Session{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		Role:      user.Role,
	})
	if err != nil {
		respondError(c, err, "Failed to create session")
		return
	}

	h.setSessionCookie(c, token, int(h.sessionCfg.TTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful"})
}

// Logout - POST /users/logout
func (h *Handlers) Logout(c *gin.Context) {
	if v, exists := c.Get("session_token"); exists {
		if token, ok := v.(string); ok {
			if err := h.sessionStore.Delete(c.Request.Context(), token); err != nil {
				respondError(c, err, "Failed to log out")
				return
			}
		}
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handlers) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(h.sessionCfg.CookieName, token, maxAge, "/", "", h.sessionCfg.CookieSecure, true)
}

// Profile - GET /users/profile
func (h *Handlers) Profile(c *gin.Context) {
	userID, _ := caller(c)

	user, err := h.services.Users.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// EditProfile - POST /users/edit/:id
// Users edit only their own account; the path id must match the session.
func (h *Handlers) EditProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, role := caller(c)
	if id != userID && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var req models.EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.Users.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}

	// Keep the cached session in step with the edited account
	if v, exists := c.Get("session_token"); exists {
		if token, ok := v.(string); ok && id == userID {
			_ = h.sessionStore.Refresh(c.Request.Context(), token, session.Session{
				UserID:    user.ID,
				Email:     user.Email,
				FirstName: user.FirstName,
				Role:      user.Role,
			})
		}
	}

	c.JSON(http.StatusOK, user)
}

// ChangePassword - POST /users/change-password/:id
func (h *Handlers) ChangePassword(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, _ := caller(c)
	if id != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Users.ChangePassword(c.Request.Context(), id, &req); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAccount - POST /users/delete/:id
// The session is torn down with the account. Reservations survive,
// detached from their owner.
func (h *Handlers) DeleteAccount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, role := caller(c)
	if id != userID && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if err := h.services.Users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}

	if id == userID {
		if v, exists := c.Get("session_token"); exists {
			if token, ok := v.(string); ok {
				_ = h.sessionStore.Delete(c.Request.Context(), token)
			}
		}
		h.setSessionCookie(c, "", -1)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ForgotPassword - POST /users/forgot-password
// Always acknowledges; whether the address exists is not revealed.
func (h *Handlers) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.services.Users.ForgotPassword(c.Request.Context(), req.Email)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "If the address is registered, a reset link has been sent"})
}
