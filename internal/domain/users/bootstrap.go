package users

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdmin creates the admin account when no user with that email exists.
// An existing account is promoted to admin but its password is left alone.
//
// IMPORTANT: pass db in, do NOT import orchestra-site/database here (avoids import cycle).
func EnsureAdmin(db *gorm.DB, email, password string) (*User, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("admin email and password are required")
	}

	var user User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.Role != RoleAdmin {
			if err := db.Model(&user).Update("role", RoleAdmin).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	user = User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
