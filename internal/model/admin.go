package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Admin roles. Each maps to a fixed capability set, see internal/auth.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
	RoleViewer     = "viewer"
)

// AdminUser is a back-office account. Role is immutable for the lifetime of
// a session; changing it takes effect on the next sign-in.
type AdminUser struct {
	ID          string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email       string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password    string     `json:"-" gorm:"type:varchar(255);not null"`
	Name        string     `json:"name" gorm:"type:varchar(100);not null"`
	Role        string     `json:"role" gorm:"type:varchar(50);not null"`
	Active      bool       `json:"active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AdminSession backs an issued admin token so sign-out can revoke it before
// the JWT itself expires.
type AdminSession struct {
	ID          string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	AdminUserID string     `json:"admin_user_id" gorm:"type:varchar(36);not null;index"`
	TokenHash   string     `json:"-" gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt   time.Time  `json:"expires_at" gorm:"not null"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AdminActivityLog records one back-office mutation for the audit trail.
type AdminActivityLog struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	AdminUserID string    `json:"admin_user_id" gorm:"type:varchar(36);not null;index"`
	Action      string    `json:"action" gorm:"type:varchar(50);not null"`
	EntityType  string    `json:"entity_type" gorm:"type:varchar(50);not null"`
	EntityID    string    `json:"entity_id" gorm:"type:varchar(36)"`
	Detail      string    `json:"detail" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdminClaims are the JWT claims carried by an admin session cookie.
type AdminClaims struct {
	AdminUserID string `json:"admin_user_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	SessionID   string `json:"session_id"`
	jwt.RegisteredClaims
}

// AdminSigninRequest is the back-office sign-in payload.
type AdminSigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateAdminUserRequest creates a new back-office account.
type CreateAdminUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// UpdateAdminUserRequest updates a back-office account. Nil fields are left
// untouched.
type UpdateAdminUserRequest struct {
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}
