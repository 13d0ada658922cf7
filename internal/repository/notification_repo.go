package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"assignhub/backend/internal/model"
)

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	// CreateIfAbsent 按 dedupe_key 幂等插入；已存在时返回 false 且不视为错误
	CreateIfAbsent(ctx context.Context, notification *model.Notification) (bool, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]model.Notification, error)
	// GetByIDAndRecipient 按 (id, recipient) 查询；归属不符时与不存在同样返回 not found
	GetByIDAndRecipient(ctx context.Context, id, recipientID string) (*model.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// notificationRepo NotificationRepository 的 GORM 实现
type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepo) CreateIfAbsent(ctx context.Context, notification *model.Notification) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dedupe_key"}},
			DoNothing: true,
		}).
		Create(notification)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) GetByIDAndRecipient(ctx context.Context, id, recipientID string) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.WithContext(ctx).
		Where("notification_id = ? AND recipient_id = ?", id, recipientID).
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id = ?", id).
		Update("is_read", true).Error
}
