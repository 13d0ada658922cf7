package handler

import "assignhub/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Course       *CourseHandler
	Assignment   *AssignmentHandler
	Submission   *SubmissionHandler
	Notice       *NoticeHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Course:       NewCourseHandler(svc.Course),
		Assignment:   NewAssignmentHandler(svc.Assignment),
		Submission:   NewSubmissionHandler(svc.Submission),
		Notice:       NewNoticeHandler(svc.Notice),
		Notification: NewNotificationHandler(svc.Notification),
		Admin:        NewAdminHandler(svc.Admin),
		Export:       NewExportHandler(svc.Export),
	}
}
