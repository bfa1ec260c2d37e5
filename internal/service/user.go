package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages storefront customer accounts.
type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	ValidatePassword(ctx context.Context, email, password string) (*model.User, error)
	ListCustomers(ctx context.Context, filters CustomerFilters) ([]model.User, int64, error)
	GetCustomer(ctx context.Context, id string) (*model.User, []model.Order, error)
	UpdateCustomer(ctx context.Context, id string, req *UpdateCustomerRequest) (*model.User, error)
}

// CustomerFilters narrows the admin customer listing.
type CustomerFilters struct {
	Search string // matches email or name
	Page   int
	Limit  int
}

// UpdateCustomerRequest is the admin customer-update payload. Nil fields are
// left untouched.
type UpdateCustomerRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

type userServiceImpl struct {
	db *gorm.DB
}

// NewUserService creates a new user service.
func NewUserService(db *gorm.DB) UserService {
	return &userServiceImpl{db: db}
}

// Register creates a customer account with a bcrypt-hashed password.
func (s *userServiceImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "email already registered")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to create account", err)
	}

	return user, nil
}

func (s *userServiceImpl) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to get user", err)
	}
	return &user, nil
}

// ValidatePassword checks email/password and returns the account on success.
// The same error is returned for an unknown email and a wrong password.
func (s *userServiceImpl) ValidatePassword(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.Unauthenticated, "invalid email or password")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "invalid email or password")
	}

	return &user, nil
}

// ListCustomers returns a page of customer accounts for the back-office.
func (s *userServiceImpl) ListCustomers(ctx context.Context, filters CustomerFilters) ([]model.User, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.User{})

	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.OperationFailed, "failed to count customers", err)
	}

	page, limit := normalizePage(filters.Page, filters.Limit)
	var users []model.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.OperationFailed, "failed to list customers", err)
	}

	return users, total, nil
}

// GetCustomer returns a customer with their order history.
func (s *userServiceImpl) GetCustomer(ctx context.Context, id string) (*model.User, []model.Order, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var orders []model.Order
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", id).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, nil, apperr.Wrap(apperr.OperationFailed, "failed to list customer orders", err)
	}

	return user, orders, nil
}

func (s *userServiceImpl) UpdateCustomer(ctx context.Context, id string, req *UpdateCustomerRequest) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "email already registered")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to update customer", err)
	}

	return user, nil
}

// HashPassword hashes a password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// normalizePage clamps paging parameters to sane defaults.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
