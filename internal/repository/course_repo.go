package repository

import (
	"context"

	"gorm.io/gorm"

	"assignhub/backend/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	GetByJoinCode(ctx context.Context, code string) (*model.Course, error)
	// JoinCodeExists 参与码查重，供生成-查重循环使用
	JoinCodeExists(ctx context.Context, code string) (bool, error)
	ListByProfessor(ctx context.Context, professorID string) ([]model.Course, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id string) error
	// AddStudent 幂等加入学生集合：重复加入是 no-op
	AddStudent(ctx context.Context, courseID, studentID string) error
	// ReplaceStudents 整体替换学生集合
	ReplaceStudents(ctx context.Context, course *model.Course, students []model.User) error
	IsStudentEnrolled(ctx context.Context, courseID, studentID string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Professor").
		Preload("Students").
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByJoinCode(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("join_code = ?", code).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) JoinCodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("join_code = ?", code).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *courseRepo) ListByProfessor(ctx context.Context, professorID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("Students").
		Where("professor_id = ?", professorID).
		Order("created_at ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("Professor").
		Joins("JOIN course_students cs ON cs.course_id = courses.course_id").
		Where("cs.student_id = ?", studentID).
		Order("courses.created_at ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("course_id = ?", course.CourseID).
		Updates(map[string]interface{}{
			"name": course.Name,
		}).Error
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	// 级联删除由外键约束负责（assignments → submissions）
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{}).Error
}

func (r *courseRepo) AddStudent(ctx context.Context, courseID, studentID string) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO course_students (course_id, student_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		courseID, studentID,
	).Error
}

func (r *courseRepo) ReplaceStudents(ctx context.Context, course *model.Course, students []model.User) error {
	return r.db.WithContext(ctx).
		Model(course).
		Association("Students").
		Replace(students)
}

func (r *courseRepo) IsStudentEnrolled(ctx context.Context, courseID, studentID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("course_students").
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *courseRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&total).Error
	return total, err
}
