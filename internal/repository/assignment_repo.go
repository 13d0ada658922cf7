package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"assignhub/backend/internal/model"
)

// AssignmentRepository 作业数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id string) error
	// ListByProfessor 教授视角：其名下课程的作业；courseID 非空时进一步过滤
	ListByProfessor(ctx context.Context, professorID, courseID string) ([]model.Assignment, error)
	// ListByStudent 学生视角：其加入课程的作业；courseID 非空时进一步过滤
	ListByStudent(ctx context.Context, studentID, courseID string) ([]model.Assignment, error)
	// ListDueBetween 截止时间落在 (from, to] 区间的作业，预载课程与学生集合
	ListDueBetween(ctx context.Context, from, to time.Time) ([]model.Assignment, error)
	Count(ctx context.Context) (int64, error)
}

// assignmentRepo AssignmentRepository 的 GORM 实现
type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	// due_date 创建后不可变，不出现在更新列中
	return r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("assignment_id = ?", assignment.AssignmentID).
		Updates(map[string]interface{}{
			"title":       assignment.Title,
			"description": assignment.Description,
			"allow_late":  assignment.AllowLate,
		}).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.Assignment{}).Error
}

func (r *assignmentRepo) ListByProfessor(ctx context.Context, professorID, courseID string) ([]model.Assignment, error) {
	db := r.db.WithContext(ctx).
		Preload("Course").
		Joins("JOIN courses ON courses.course_id = assignments.course_id").
		Where("courses.professor_id = ?", professorID)
	if courseID != "" {
		db = db.Where("assignments.course_id = ?", courseID)
	}

	var assignments []model.Assignment
	if err := db.Order("assignments.due_date ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepo) ListByStudent(ctx context.Context, studentID, courseID string) ([]model.Assignment, error) {
	db := r.db.WithContext(ctx).
		Preload("Course").
		Joins("JOIN course_students cs ON cs.course_id = assignments.course_id").
		Where("cs.student_id = ?", studentID)
	if courseID != "" {
		db = db.Where("assignments.course_id = ?", courseID)
	}

	var assignments []model.Assignment
	if err := db.Order("assignments.due_date ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Students").
		Where("due_date > ? AND due_date <= ?", from, to).
		Order("due_date ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Assignment{}).Count(&total).Error
	return total, err
}
