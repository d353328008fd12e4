package admin

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"orchestra-site/database"
	"orchestra-site/internal/api/auth"
	"orchestra-site/internal/domain/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ContentStatus struct {
	Type    string   `json:"type"`
	Version int64    `json:"version"`
	Editors []string `json:"editors"`
}

// ContentCatalog is the part of contentsync.Engine the overview needs.
type ContentCatalog interface {
	Types() []string
	Editors(name string) []string
	Fetch(ctx context.Context, name string) (any, error)
}

// versionOf mirrors contentsync.VersionOf without importing the engine.
func versionOf(doc any) int64 {
	if v, ok := doc.(interface{ CurrentVersion() int64 }); ok {
		return v.CurrentVersion()
	}
	return 0
}

func toAdminUser(u users.User) AdminUser {
	return AdminUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ------------------------------
// GET /api/admin/content
func ContentOverview(catalog ContentCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := make([]ContentStatus, 0, len(catalog.Types()))
		for _, name := range catalog.Types() {
			doc, err := catalog.Fetch(c.Request.Context(), name)
			if err != nil {
				zap.S().Errorw("content overview failed", "type", name, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
				return
			}
			out = append(out, ContentStatus{
				Type:    name,
				Version: versionOf(doc),
				Editors: catalog.Editors(name),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// ------------------------------
// GET /api/admin/users
func ListUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("id ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		out = append(out, toAdminUser(u))
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /api/admin/users/:id
func GetUserDetails(c *gin.Context) {
	var user users.User
	err := database.DB.First(&user, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	c.JSON(http.StatusOK, toAdminUser(user))
}

// ------------------------------
// POST /api/admin/users
func CreateUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, password and role are required"})
		return
	}

	if !slices.Contains(users.Roles, input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}
	if !auth.IsPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long and contain both letters and numbers"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := users.User{
		Name:     input.Name,
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(hashed),
		Role:     input.Role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
		zap.S().Errorw("create user failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, toAdminUser(user))
}
