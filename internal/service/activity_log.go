package service

import (
	"context"
	"log/slog"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLogger records back-office mutations for the audit trail.
type ActivityLogger interface {
	// Log appends an activity row. Failures are logged, never propagated:
	// an audit write must not fail the mutation it describes.
	Log(ctx context.Context, adminUserID, action, entityType, entityID, detail string)
	List(ctx context.Context, adminUserID string, page, limit int) ([]model.AdminActivityLog, int64, error)
}

type activityLoggerImpl struct {
	db *gorm.DB
}

// NewActivityLogger creates a new activity logger.
func NewActivityLogger(db *gorm.DB) ActivityLogger {
	return &activityLoggerImpl{db: db}
}

func (s *activityLoggerImpl) Log(ctx context.Context, adminUserID, action, entityType, entityID, detail string) {
	entry := &model.AdminActivityLog{
		ID:          uuid.NewString(),
		AdminUserID: adminUserID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Detail:      detail,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		slog.Error("failed to write activity log",
			"admin_user_id", adminUserID, "action", action, "entity_type", entityType, "error", err)
	}
}

func (s *activityLoggerImpl) List(ctx context.Context, adminUserID string, page, limit int) ([]model.AdminActivityLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.AdminActivityLog{})
	if adminUserID != "" {
		query = query.Where("admin_user_id = ?", adminUserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.OperationFailed, "failed to count activity log", err)
	}

	page, limit = normalizePage(page, limit)
	var entries []model.AdminActivityLog
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.OperationFailed, "failed to list activity log", err)
	}

	return entries, total, nil
}
