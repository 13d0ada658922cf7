package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Course       CourseRepository
	Assignment   AssignmentRepository
	Submission   SubmissionRepository
	Notice       NoticeRepository
	Notification NotificationRepository
	ActivityLog  ActivityLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Course:       NewCourseRepo(db),
		Assignment:   NewAssignmentRepo(db),
		Submission:   NewSubmissionRepo(db),
		Notice:       NewNoticeRepo(db),
		Notification: NewNotificationRepo(db),
		ActivityLog:  NewActivityLogRepo(db),
	}
}

// Transact 在单个数据库事务内执行 fn
// 生命周期操作的多步写入（提交+审计、评分+通知+审计）经由它保证原子性；
// 聚合未绑定 db 句柄时退化为直接执行
func (r *Repository) Transact(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
