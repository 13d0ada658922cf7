package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/repository"
)

// ── 通知模块业务错误 ──

var ErrNotificationNotFound = errors.New("通知不存在")

// NotificationService 通知业务接口
// 通知只由评分、截止提醒等业务副作用产生，这里只提供查询与已读
type NotificationService interface {
	// ListMine 本人全部通知，按时间倒序
	ListMine(ctx context.Context, recipientID string) ([]dto.NotificationResponse, error)
	// MarkRead 标记本人的某条通知为已读；归属他人时与不存在同样返回 not found
	MarkRead(ctx context.Context, id, recipientID string) (*dto.NotificationResponse, error)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) ListMine(ctx context.Context, recipientID string) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.Notification.ListByRecipient(ctx, recipientID)
	if err != nil {
		s.logger.Error("列出通知失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		result = append(result, dto.NotificationResponse{
			ID:        n.NotificationID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, recipientID string) (*dto.NotificationResponse, error) {
	notification, err := s.repo.Notification.GetByIDAndRecipient(ctx, id, recipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		s.logger.Error("查询通知失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !notification.IsRead {
		if err := s.repo.Notification.MarkRead(ctx, notification.NotificationID); err != nil {
			s.logger.Error("标记通知已读失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
		notification.IsRead = true
	}

	return &dto.NotificationResponse{
		ID:        notification.NotificationID,
		Message:   notification.Message,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt.Format(time.RFC3339),
	}, nil
}
