package handlers

import (
	"errors"
	"net/http"

	"pointify-pos/internal/auth"
	"pointify-pos/internal/database"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates by exact username plus password and hands the
// UI a token it keeps for the life of the tab.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.Store.GetUserByUsername(input.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			fail(c, auth.ErrAuthFailure)
			return
		}
		fail(c, err)
		return
	}

	if !auth.VerifyPassword(user.PasswordHash, input.Password) {
		fail(c, auth.ErrAuthFailure)
		return
	}

	token, err := h.Tokens.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"role":     user.Role,
		"username": user.Username,
		"name":     user.Name,
	})
}

// Logout destroys the server-side cart for the session. The UI also
// discards its token; the two together end the session.
func (h *Handlers) Logout(c *gin.Context) {
	h.Carts.Drop(c.GetString("username"))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// CheckAccess exposes the RBAC predicate to the rendering layer so
// navigation gating uses the exact same rules as the API.
func (h *Handlers) CheckAccess(c *gin.Context) {
	view := c.Param("view")
	c.JSON(http.StatusOK, gin.H{
		"view":    view,
		"allowed": auth.CanAccess(c.GetString("role"), view),
	})
}
