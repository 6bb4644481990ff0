package handlers

import (
	"net/http"
	"strconv"

	"pointify-pos/internal/auth"
	"pointify-pos/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: Team list ---
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.Store.GetAllUsers()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// --- POST: Create a team member ---
func (h *Handlers) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	switch req.Role {
	case auth.RoleAdmin, auth.RoleManager, auth.RoleCashier:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	user := models.User{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := h.Store.AddUser(&user); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// --- PUT: Admin edit of a team member ---
func (h *Handlers) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid User ID"})
		return
	}

	user, err := h.Store.GetUser(uint(id))
	if err != nil {
		fail(c, err)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Role != "" {
		switch req.Role {
		case auth.RoleAdmin, auth.RoleManager, auth.RoleCashier:
			user.Role = req.Role
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
			return
		}
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		user.PasswordHash = hash
	}

	if err := h.Store.PutUser(user); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// --- DELETE: Remove a team member ---
// Two guards: a user may not delete themselves, and the last admin
// account cannot be removed (role-based, so renaming the account
// does not defeat it).
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid User ID"})
		return
	}

	if uint(id) == c.GetUint("userID") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	user, err := h.Store.GetUser(uint(id))
	if err != nil {
		fail(c, err)
		return
	}

	if user.Role == auth.RoleAdmin {
		admins, err := h.Store.CountAdmins()
		if err != nil {
			fail(c, err)
			return
		}
		if admins <= 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete the last admin account"})
			return
		}
	}

	if err := h.Store.DeleteUser(uint(id)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User removed"})
}

type profileRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --- PUT: Self-service profile update ---
// Any authenticated user may change their own username or password.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if req.Username == "" && req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	user, err := h.Store.GetUser(c.GetUint("userID"))
	if err != nil {
		fail(c, err)
		return
	}

	oldUsername := user.Username
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		user.PasswordHash = hash
	}

	if err := h.Store.PutUser(user); err != nil {
		fail(c, err)
		return
	}

	// The cart key is the username; a rename moves the session, so
	// drop the old cart and hand back a fresh token
	if user.Username != oldUsername {
		h.Carts.Drop(oldUsername)
	}
	token, err := h.Tokens.GenerateToken(user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "token": token, "user": user})
}
