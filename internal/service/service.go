package service

import (
	"go.uber.org/zap"

	"assignhub/backend/config"
	"assignhub/backend/internal/repository"
	"assignhub/backend/internal/storage"
	"assignhub/backend/pkg/jwt"
	"assignhub/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Course       CourseService
	Assignment   AssignmentService
	Submission   SubmissionService
	Notice       NoticeService
	Notification NotificationService
	Admin        AdminService
	Reminder     ReminderService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	store storage.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Course:       NewCourseService(repo, logger),
		Assignment:   NewAssignmentService(repo, logger),
		Submission:   NewSubmissionService(repo, store, logger),
		Notice:       NewNoticeService(repo, logger),
		Notification: NewNotificationService(repo, logger),
		Admin:        NewAdminService(repo, logger),
		Reminder:     NewReminderService(cfg, repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
