package repository

import (
	"context"

	"gorm.io/gorm"

	"assignhub/backend/internal/model"
)

// ActivityLogRepository 审计日志数据访问接口
// 仅追加：不提供更新或删除
type ActivityLogRepository interface {
	Create(ctx context.Context, log *model.ActivityLog) error
	// List 全量分页，最新在前
	List(ctx context.Context, offset, limit int) ([]model.ActivityLog, int64, error)
}

// activityLogRepo ActivityLogRepository 的 GORM 实现
type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo 创建 ActivityLogRepository 实例
func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, log *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *activityLogRepo) List(ctx context.Context, offset, limit int) ([]model.ActivityLog, int64, error) {
	var logs []model.ActivityLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ActivityLog{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Actor").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
