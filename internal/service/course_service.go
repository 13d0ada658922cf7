package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"assignhub/backend/internal/authz"
	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/model"
	"assignhub/backend/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound     = errors.New("课程不存在")
	ErrNotCourseProfessor = errors.New("只有授课教授可以执行此操作")
	ErrJoinCodeExhausted  = errors.New("生成课程参与码失败")
)

// 参与码生成：8 字节随机数 → base64url → 大写
// 生成-查重循环上限，用尽后返回内部错误
const (
	joinCodeRandomBytes = 8
	joinCodeMaxAttempts = 5
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error)
	// JoinByCode 凭参与码加入：重复加入是 no-op 而非错误
	JoinByCode(ctx context.Context, req *dto.JoinCourseRequest, callerID string) (*dto.CourseResponse, error)
	// List 教授见自己开设的课程，学生见自己加入的课程，其他角色见空
	List(ctx context.Context, callerID, callerRole string) ([]dto.CourseResponse, error)
	// Get 仅授课教授或已加入学生可见，其余一律按不存在处理
	Get(ctx context.Context, id, callerID string) (*dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id, callerID string) error
	// SetStudents 整体替换学生名单；非 student 角色的 id 被静默排除
	SetStudents(ctx context.Context, id string, req *dto.SetStudentsRequest, callerID string) (*dto.CourseResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	code, err := s.generateJoinCode(ctx)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Name:        req.Name,
		ProfessorID: callerID,
		JoinCode:    code,
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	return s.toCourseResponse(course), nil
}

// generateJoinCode 生成-查重循环，窗口期内的并发冲突由 join_code 唯一约束兜底
func (s *courseService) generateJoinCode(ctx context.Context) (string, error) {
	for i := 0; i < joinCodeMaxAttempts; i++ {
		buf := make([]byte, joinCodeRandomBytes)
		if _, err := rand.Read(buf); err != nil {
			s.logger.Error("生成随机参与码失败", zap.Error(err))
			return "", err
		}
		code := strings.ToUpper(base64.RawURLEncoding.EncodeToString(buf))

		exists, err := s.repo.Course.JoinCodeExists(ctx, code)
		if err != nil {
			s.logger.Error("参与码查重失败", zap.Error(err))
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	s.logger.Error("参与码生成重试次数用尽", zap.Int("attempts", joinCodeMaxAttempts))
	return "", ErrJoinCodeExhausted
}

// ────────────────────── JoinByCode ──────────────────────

func (s *courseService) JoinByCode(ctx context.Context, req *dto.JoinCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByJoinCode(ctx, req.JoinCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("按参与码查询课程失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Course.AddStudent(ctx, course.CourseID, callerID); err != nil {
		s.logger.Error("加入课程失败", zap.String("course_id", course.CourseID), zap.Error(err))
		return nil, err
	}

	// 重新加载，学生集合含刚加入的请求方
	course, err = s.repo.Course.GetByID(ctx, course.CourseID)
	if err != nil {
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	return s.toCourseResponse(course), nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, callerID, callerRole string) ([]dto.CourseResponse, error) {
	var courses []model.Course
	var err error

	switch callerRole {
	case model.RoleProfessor:
		courses, err = s.repo.Course.ListByProfessor(ctx, callerID)
	case model.RoleStudent:
		courses, err = s.repo.Course.ListByStudent(ctx, callerID)
	default:
		// 其他角色（含 admin）见空列表
		return []dto.CourseResponse{}, nil
	}
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *s.toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── Get ──────────────────────

func (s *courseService) Get(ctx context.Context, id, callerID string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.IsCourseProfessor(callerID, course) {
		enrolled, err := s.repo.Course.IsStudentEnrolled(ctx, id, callerID)
		if err != nil {
			s.logger.Error("查询选课关系失败", zap.Error(err))
			return nil, err
		}
		if !enrolled {
			return nil, ErrCourseNotFound
		}
	}

	return s.toCourseResponse(course), nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.IsCourseProfessor(callerID, course) {
		return nil, ErrNotCourseProfessor
	}

	if req.Name != nil {
		course.Name = *req.Name
	}

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toCourseResponse(course), nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id, callerID string) error {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return err
	}
	if !authz.IsCourseProfessor(callerID, course) {
		return ErrNotCourseProfessor
	}

	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── SetStudents ──────────────────────

func (s *courseService) SetStudents(ctx context.Context, id string, req *dto.SetStudentsRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.IsCourseProfessor(callerID, course) {
		return nil, ErrNotCourseProfessor
	}

	students, err := s.repo.User.ListStudentsByIDs(ctx, req.StudentIDs)
	if err != nil {
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Course.ReplaceStudents(ctx, course, students); err != nil {
		s.logger.Error("替换学生名单失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	course.Students = students
	return s.toCourseResponse(course), nil
}

// ── 辅助 ──

func (s *courseService) getCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

func (s *courseService) toCourseResponse(course *model.Course) *dto.CourseResponse {
	students := make([]dto.UserResponse, 0, len(course.Students))
	for i := range course.Students {
		students = append(students, *toUserResponse(&course.Students[i]))
	}

	var professor *dto.UserResponse
	if course.Professor != nil {
		professor = toUserResponse(course.Professor)
	}

	return &dto.CourseResponse{
		ID:        course.CourseID,
		Name:      course.Name,
		Professor: professor,
		JoinCode:  course.JoinCode,
		Students:  students,
		CreatedAt: course.CreatedAt.Format(time.RFC3339),
	}
}
