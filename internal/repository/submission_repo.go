package repository

import (
	"context"

	"gorm.io/gorm"

	"assignhub/backend/internal/model"
)

// SubmissionRepository 提交数据访问接口
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	// ExistsByPair (student, assignment) 是否已有提交
	ExistsByPair(ctx context.Context, assignmentID, studentID string) (bool, error)
	Update(ctx context.Context, submission *model.Submission) error
	ListByAssignment(ctx context.Context, assignmentID string) ([]model.Submission, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error)
	// ListStudentIDsByAssignment 已提交该作业的学生 id 集合
	ListStudentIDsByAssignment(ctx context.Context, assignmentID string) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

// submissionRepo SubmissionRepository 的 GORM 实现
type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo 创建 SubmissionRepository 实例
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Assignment.Course").
		Preload("Student").
		Where("submission_id = ?", id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepo) ExistsByPair(ctx context.Context, assignmentID, studentID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *submissionRepo) Update(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Assignment").
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Assignment.Course").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepo) ListStudentIDsByAssignment(ctx context.Context, assignmentID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("assignment_id = ?", assignmentID).
		Pluck("student_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *submissionRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Submission{}).Count(&total).Error
	return total, err
}
