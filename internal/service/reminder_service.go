package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"assignhub/backend/config"
	"assignhub/backend/internal/model"
	"assignhub/backend/internal/repository"
)

// 截止提醒通知学生的固定文案（韩语），与前端约定
const reminderNotificationFormat = "마감 임박: '%s' 과제 마감이 24시간 남았습니다."

// ReminderService 截止提醒扫描
// 由外部调度器按固定间隔触发，幂等键保证每 (作业, 学生) 至多提醒一次
type ReminderService interface {
	// Sweep 扫描提醒窗口内截止的作业，为未提交的选课学生写入通知，返回新插入条数
	Sweep(ctx context.Context) (int, error)
}

type reminderService struct {
	window time.Duration
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewReminderService 创建 ReminderService 实例
func NewReminderService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ReminderService {
	return &reminderService{
		window: cfg.Reminder.Window,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *reminderService) Sweep(ctx context.Context) (int, error) {
	now := s.now()
	assignments, err := s.repo.Assignment.ListDueBetween(ctx, now, now.Add(s.window))
	if err != nil {
		s.logger.Error("查询窗口内作业失败", zap.Error(err))
		return 0, err
	}

	inserted := 0
	for i := range assignments {
		n, err := s.remindAssignment(ctx, &assignments[i])
		if err != nil {
			return inserted, err
		}
		inserted += n
	}

	s.logger.Info("截止提醒扫描完成",
		zap.Int("assignments", len(assignments)),
		zap.Int("inserted", inserted))
	return inserted, nil
}

// remindAssignment 为单个作业的未提交学生写入提醒
func (s *reminderService) remindAssignment(ctx context.Context, assignment *model.Assignment) (int, error) {
	submittedIDs, err := s.repo.Submission.ListStudentIDsByAssignment(ctx, assignment.AssignmentID)
	if err != nil {
		s.logger.Error("查询已提交学生失败",
			zap.String("assignment_id", assignment.AssignmentID), zap.Error(err))
		return 0, err
	}
	submitted := make(map[string]struct{}, len(submittedIDs))
	for _, id := range submittedIDs {
		submitted[id] = struct{}{}
	}

	if assignment.Course == nil {
		return 0, nil
	}

	inserted := 0
	for i := range assignment.Course.Students {
		student := &assignment.Course.Students[i]
		if _, ok := submitted[student.UserID]; ok {
			continue
		}

		dedupeKey := fmt.Sprintf("deadline-reminder:%s:%s", assignment.AssignmentID, student.UserID)
		notification := &model.Notification{
			RecipientID: student.UserID,
			Message:     fmt.Sprintf(reminderNotificationFormat, assignment.Title),
			DedupeKey:   &dedupeKey,
		}

		created, err := s.repo.Notification.CreateIfAbsent(ctx, notification)
		if err != nil {
			s.logger.Error("写入截止提醒失败", zap.String("dedupe_key", dedupeKey), zap.Error(err))
			return inserted, err
		}
		if created {
			inserted++
		}
	}
	return inserted, nil
}
