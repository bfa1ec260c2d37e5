package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/auth"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminUserService manages back-office accounts and their sessions.
type AdminUserService interface {
	Signin(ctx context.Context, req *model.AdminSigninRequest) (string, *model.AdminUser, error)
	Signout(ctx context.Context, sessionID string) error
	ValidateSession(ctx context.Context, claims *model.AdminClaims, token string) (*model.AdminUser, error)
	List(ctx context.Context) ([]model.AdminUser, error)
	Create(ctx context.Context, req *model.CreateAdminUserRequest) (*model.AdminUser, error)
	Update(ctx context.Context, id string, req *model.UpdateAdminUserRequest) (*model.AdminUser, error)
}

type adminUserServiceImpl struct {
	db     *gorm.DB
	tokens *auth.TokenService
}

// NewAdminUserService creates a new admin user service.
func NewAdminUserService(db *gorm.DB, tokens *auth.TokenService) AdminUserService {
	return &adminUserServiceImpl{db: db, tokens: tokens}
}

// Signin validates credentials, records a session row and returns the signed
// token. The session row is what sign-out revokes.
func (s *adminUserServiceImpl) Signin(ctx context.Context, req *model.AdminSigninRequest) (string, *model.AdminUser, error) {
	var admin model.AdminUser
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.New(apperr.Unauthenticated, "invalid email or password")
		}
		return "", nil, apperr.Wrap(apperr.OperationFailed, "failed to get admin user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return "", nil, apperr.New(apperr.Unauthenticated, "invalid email or password")
	}
	if !admin.Active {
		return "", nil, apperr.New(apperr.Forbidden, "account is deactivated")
	}

	sessionID := uuid.NewString()
	token, err := s.tokens.IssueAdminToken(&admin, sessionID)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.OperationFailed, "failed to issue token", err)
	}

	session := &model.AdminSession{
		ID:          sessionID,
		AdminUserID: admin.ID,
		TokenHash:   hashToken(token),
		ExpiresAt:   time.Now().Add(auth.AdminTokenTTL),
	}
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return "", nil, apperr.Wrap(apperr.OperationFailed, "failed to create session", err)
	}

	now := time.Now()
	s.db.WithContext(ctx).Model(&admin).Update("last_login_at", now)
	admin.LastLoginAt = &now

	return token, &admin, nil
}

// Signout revokes the session row. The JWT keeps its expiry but stops
// passing ValidateSession immediately.
func (s *adminUserServiceImpl) Signout(ctx context.Context, sessionID string) error {
	result := s.db.WithContext(ctx).Model(&model.AdminSession{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", time.Now())
	if result.Error != nil {
		return apperr.Wrap(apperr.OperationFailed, "failed to revoke session", result.Error)
	}
	return nil
}

// ValidateSession checks the session row behind a parsed token and returns
// the acting admin. The presented token must hash to the value recorded at
// sign-in, so claims cannot be replayed against another session row. The
// role comes from the claims: it is fixed at sign-in for the lifetime of
// the session.
func (s *adminUserServiceImpl) ValidateSession(ctx context.Context, claims *model.AdminClaims, token string) (*model.AdminUser, error) {
	var session model.AdminSession
	if err := s.db.WithContext(ctx).Where("id = ?", claims.SessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.Unauthenticated, "session not found")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to get session", err)
	}

	if session.TokenHash != hashToken(token) {
		return nil, apperr.New(apperr.Unauthenticated, "session mismatch")
	}
	if session.RevokedAt != nil {
		return nil, apperr.New(apperr.Unauthenticated, "session revoked")
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, apperr.New(apperr.Unauthenticated, "session expired")
	}

	var admin model.AdminUser
	if err := s.db.WithContext(ctx).Where("id = ?", session.AdminUserID).First(&admin).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to get admin user", err)
	}
	if !admin.Active {
		return nil, apperr.New(apperr.Forbidden, "account is deactivated")
	}

	admin.Role = claims.Role
	return &admin, nil
}

func (s *adminUserServiceImpl) List(ctx context.Context) ([]model.AdminUser, error) {
	var admins []model.AdminUser
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to list admin users", err)
	}
	return admins, nil
}

func (s *adminUserServiceImpl) Create(ctx context.Context, req *model.CreateAdminUserRequest) (*model.AdminUser, error) {
	if !auth.ValidRole(req.Role) {
		return nil, apperr.Newf(apperr.Invalid, "unknown role %q", req.Role)
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.AdminUser{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.Name,
		Role:     req.Role,
		Active:   true,
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "email already in use")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to create admin user", err)
	}

	return admin, nil
}

func (s *adminUserServiceImpl) Update(ctx context.Context, id string, req *model.UpdateAdminUserRequest) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "admin user not found")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to get admin user", err)
	}

	if req.Password != nil {
		hashedPassword, err := HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		admin.Password = hashedPassword
	}
	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Role != nil {
		if !auth.ValidRole(*req.Role) {
			return nil, apperr.Newf(apperr.Invalid, "unknown role %q", *req.Role)
		}
		admin.Role = *req.Role
	}
	if req.Active != nil {
		admin.Active = *req.Active
	}

	if err := s.db.WithContext(ctx).Save(&admin).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to update admin user", err)
	}

	return &admin, nil
}

// hashToken stores only a digest of the issued token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
