package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"assignhub/backend/internal/authz"
	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/model"
	"assignhub/backend/internal/repository"
	"assignhub/backend/internal/storage"
)

// ── 提交模块业务错误 ──

var (
	ErrSubmissionNotFound  = errors.New("提交记录不存在")
	ErrDuplicateSubmission = errors.New("该作业已提交过，请使用更新接口")
	ErrDeadlinePassed      = errors.New("作业已截止，不接受逾期提交")
	ErrUpdateAfterDeadline = errors.New("作业已截止，提交内容不可再修改")
	ErrNotSubmissionOwner  = errors.New("只能操作本人的提交")
)

// 评分后通知学生的固定文案（韩语），与前端约定
const gradedNotificationFormat = "'%s' 과목의 '%s' 과제에 새로운 피드백이 등록되었습니다."

// SubmissionService 提交业务接口
type SubmissionService interface {
	// Submit 学生提交作业：每人每作业一条；截止后仅在 allow_late 时接受并标记逾期
	Submit(ctx context.Context, assignmentID, studentID string, file io.Reader, filename string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error)
	// Update 提交人在截止前更新自己的提交；is_late 保持首次提交时的值
	Update(ctx context.Context, id, callerID string, file io.Reader, filename string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error)
	Get(ctx context.Context, id, callerID, callerRole string) (*dto.SubmissionResponse, error)
	// Grade 授课教授评分：写入分数与反馈，并通知学生、记录审计；可重复评分
	Grade(ctx context.Context, id, callerID string, req *dto.GradeRequest) (*dto.SubmissionResponse, error)
	// ListByAssignment 授课教授查看某作业的全部提交
	ListByAssignment(ctx context.Context, assignmentID, callerID string) ([]dto.SubmissionResponse, error)
	// ListMine 学生查看本人全部提交，按提交时间倒序
	ListMine(ctx context.Context, studentID string) ([]dto.SubmissionResponse, error)
}

type submissionService struct {
	repo   *repository.Repository
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(repo *repository.Repository, store storage.Store, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, store: store, logger: logger, now: time.Now}
}

// ────────────────────── Submit ──────────────────────

func (s *submissionService) Submit(ctx context.Context, assignmentID, studentID string, file io.Reader, filename string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.String("id", assignmentID), zap.Error(err))
		return nil, err
	}

	now := s.now()
	isLate := now.After(assignment.DueDate)
	if isLate && !assignment.AllowLate {
		return nil, ErrDeadlinePassed
	}

	exists, err := s.repo.Submission.ExistsByPair(ctx, assignmentID, studentID)
	if err != nil {
		s.logger.Error("查询重复提交失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSubmission
	}

	filePath, fileURL, err := s.store.Save(file, filename, now)
	if err != nil {
		s.logger.Error("保存提交文件失败", zap.Error(err))
		return nil, err
	}

	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FilePath:     filePath,
		FileURL:      fileURL,
		Description:  req.Description,
		SubmittedAt:  now,
		IsLate:       isLate,
		Assignment:   assignment,
	}

	// 提交与审计同事务落库
	err = s.repo.Transact(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Submission.Create(ctx, submission); err != nil {
			s.logger.Error("创建提交失败", zap.Error(err))
			return err
		}
		auditLog := &model.ActivityLog{
			ActorID:    studentID,
			ActionType: model.ActionSubmittedAssignment,
			Details:    fmt.Sprintf("assignment=%s submission=%s late=%t", assignmentID, submission.SubmissionID, isLate),
		}
		if err := txRepo.ActivityLog.Create(ctx, auditLog); err != nil {
			s.logger.Error("写入提交审计失败", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("作业提交成功",
		zap.String("submission_id", submission.SubmissionID),
		zap.String("student_id", studentID),
		zap.Bool("is_late", isLate))

	return s.toSubmissionResponse(submission), nil
}

// ────────────────────── Update ──────────────────────

func (s *submissionService) Update(ctx context.Context, id, callerID string, file io.Reader, filename string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error) {
	submission, err := s.getSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.IsOwnerOfSubmission(callerID, submission) {
		return nil, ErrNotSubmissionOwner
	}

	// 截止后一律拒绝修改，与首次提交是否逾期无关
	if submission.Assignment != nil && s.now().After(submission.Assignment.DueDate) {
		return nil, ErrUpdateAfterDeadline
	}

	if file != nil {
		filePath, fileURL, err := s.store.Save(file, filename, s.now())
		if err != nil {
			s.logger.Error("保存提交文件失败", zap.Error(err))
			return nil, err
		}
		submission.FilePath = filePath
		submission.FileURL = fileURL
	}
	submission.Description = req.Description

	if err := s.repo.Submission.Update(ctx, submission); err != nil {
		s.logger.Error("更新提交失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toSubmissionResponse(submission), nil
}

// ────────────────────── Get ──────────────────────

func (s *submissionService) Get(ctx context.Context, id, callerID, callerRole string) (*dto.SubmissionResponse, error) {
	submission, err := s.getSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	// 可见范围：提交人本人、授课教授、管理员
	if !authz.IsOwnerOfSubmission(callerID, submission) && !authz.IsAdmin(callerRole) {
		if submission.Assignment == nil || submission.Assignment.Course == nil ||
			!authz.IsCourseProfessor(callerID, submission.Assignment.Course) {
			return nil, ErrSubmissionNotFound
		}
	}

	return s.toSubmissionResponse(submission), nil
}

// ────────────────────── Grade ──────────────────────

func (s *submissionService) Grade(ctx context.Context, id, callerID string, req *dto.GradeRequest) (*dto.SubmissionResponse, error) {
	submission, err := s.getSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	if submission.Assignment == nil || submission.Assignment.Course == nil ||
		!authz.IsCourseProfessor(callerID, submission.Assignment.Course) {
		return nil, ErrNotCourseProfessor
	}

	submission.Grade = req.Grade
	submission.Feedback = req.Feedback

	// 评分、学生通知、审计同事务落库；重复评分会重复产生通知与审计
	err = s.repo.Transact(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Submission.Update(ctx, submission); err != nil {
			s.logger.Error("写入评分失败", zap.String("id", id), zap.Error(err))
			return err
		}
		notification := &model.Notification{
			RecipientID: submission.StudentID,
			Message: fmt.Sprintf(gradedNotificationFormat,
				submission.Assignment.Course.Name, submission.Assignment.Title),
		}
		if err := txRepo.Notification.Create(ctx, notification); err != nil {
			s.logger.Error("写入评分通知失败", zap.Error(err))
			return err
		}
		auditLog := &model.ActivityLog{
			ActorID:    callerID,
			ActionType: model.ActionGradedSubmission,
			Details:    fmt.Sprintf("submission=%s grade=%d", submission.SubmissionID, *req.Grade),
		}
		if err := txRepo.ActivityLog.Create(ctx, auditLog); err != nil {
			s.logger.Error("写入评分审计失败", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("评分完成",
		zap.String("submission_id", submission.SubmissionID),
		zap.Int("grade", *req.Grade))

	return s.toSubmissionResponse(submission), nil
}

// ────────────────────── ListByAssignment ──────────────────────

func (s *submissionService) ListByAssignment(ctx context.Context, assignmentID, callerID string) ([]dto.SubmissionResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.Course == nil || !authz.IsCourseProfessor(callerID, assignment.Course) {
		return nil, ErrNotCourseProfessor
	}

	submissions, err := s.repo.Submission.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("列出作业提交失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		result = append(result, *s.toSubmissionResponse(&submissions[i]))
	}
	return result, nil
}

// ────────────────────── ListMine ──────────────────────

func (s *submissionService) ListMine(ctx context.Context, studentID string) ([]dto.SubmissionResponse, error) {
	submissions, err := s.repo.Submission.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("列出本人提交失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		result = append(result, *s.toSubmissionResponse(&submissions[i]))
	}
	return result, nil
}

// ── 辅助 ──

func (s *submissionService) getSubmission(ctx context.Context, id string) (*model.Submission, error) {
	submission, err := s.repo.Submission.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询提交失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return submission, nil
}

func (s *submissionService) toSubmissionResponse(submission *model.Submission) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:           submission.SubmissionID,
		AssignmentID: submission.AssignmentID,
		StudentID:    submission.StudentID,
		FileURL:      submission.FileURL,
		Description:  submission.Description,
		SubmittedAt:  submission.SubmittedAt.Format(time.RFC3339),
		IsLate:       submission.IsLate,
		Grade:        submission.Grade,
		Feedback:     submission.Feedback,
		Status:       submission.Status(),
	}
	if submission.Assignment != nil {
		resp.AssignmentTitle = submission.Assignment.Title
	}
	if submission.Student != nil {
		resp.StudentUsername = submission.Student.Username
	}
	return resp
}
