package service

import (
	"context"
	"errors"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"assignhub/backend/internal/authz"
	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/model"
	"assignhub/backend/internal/repository"
)

// ── 作业模块业务错误 ──

var (
	ErrAssignmentNotFound = errors.New("作业不存在")
	ErrDueDateInvalid     = errors.New("截止时间格式无效")
)

// AssignmentService 作业业务接口
type AssignmentService interface {
	// Create 仅授课教授可在自己的课程下布置作业；due_date 创建后不可变
	Create(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	Get(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	// List 按角色过滤：学生见所加入课程的作业，教授见自己课程的作业，其他角色见空
	List(ctx context.Context, callerID, callerRole, courseID string) ([]dto.AssignmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, id string) error
	// CalendarFeed 将请求方可见的未截止作业生成 iCalendar 日历
	CalendarFeed(ctx context.Context, callerID, callerRole string) (string, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		return nil, ErrDueDateInvalid
	}

	course, err := s.repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", req.CourseID), zap.Error(err))
		return nil, err
	}

	// 对象级检查：只能在自己的课程下布置作业
	if !authz.IsCourseProfessor(callerID, course) {
		return nil, ErrNotCourseProfessor
	}

	assignment := &model.Assignment{
		CourseID:    course.CourseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		AllowLate:   req.AllowLate,
		Course:      course,
	}

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		s.logger.Error("创建作业失败", zap.Error(err))
		return nil, err
	}

	return s.toAssignmentResponse(assignment), nil
}

// ────────────────────── Get ──────────────────────

func (s *assignmentService) Get(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toAssignmentResponse(assignment), nil
}

// ────────────────────── List ──────────────────────

func (s *assignmentService) List(ctx context.Context, callerID, callerRole, courseID string) ([]dto.AssignmentResponse, error) {
	assignments, err := s.listVisible(ctx, callerID, callerRole, courseID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *s.toAssignmentResponse(&assignments[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *assignmentService) Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = *req.Description
	}
	if req.AllowLate != nil {
		assignment.AllowLate = *req.AllowLate
	}

	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		s.logger.Error("更新作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toAssignmentResponse(assignment), nil
}

// ────────────────────── Delete ──────────────────────

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.getAssignment(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		s.logger.Error("删除作业失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── CalendarFeed ──────────────────────

func (s *assignmentService) CalendarFeed(ctx context.Context, callerID, callerRole string) (string, error) {
	assignments, err := s.listVisible(ctx, callerID, callerRole, "")
	if err != nil {
		return "", err
	}

	now := s.now()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//assignhub//deadline feed//KO")

	for i := range assignments {
		a := &assignments[i]
		if !a.DueDate.After(now) {
			continue
		}
		event := cal.AddEvent("assignment-" + a.AssignmentID + "@assignhub")
		event.SetDtStampTime(now)
		event.SetStartAt(a.DueDate)
		event.SetEndAt(a.DueDate)
		event.SetSummary(a.Title)
		if a.Description != "" {
			event.SetDescription(a.Description)
		}
		if a.Course != nil {
			event.SetLocation(a.Course.Name)
		}
	}

	return cal.Serialize(), nil
}

// ── 辅助 ──

func (s *assignmentService) listVisible(ctx context.Context, callerID, callerRole, courseID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	var err error

	switch callerRole {
	case model.RoleStudent:
		assignments, err = s.repo.Assignment.ListByStudent(ctx, callerID, courseID)
	case model.RoleProfessor:
		assignments, err = s.repo.Assignment.ListByProfessor(ctx, callerID, courseID)
	default:
		return nil, nil
	}
	if err != nil {
		s.logger.Error("列出作业失败", zap.Error(err))
		return nil, err
	}
	return assignments, nil
}

func (s *assignmentService) getAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) toAssignmentResponse(assignment *model.Assignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		ID:          assignment.AssignmentID,
		CourseID:    assignment.CourseID,
		Title:       assignment.Title,
		Description: assignment.Description,
		DueDate:     assignment.DueDate.Format(time.RFC3339),
		AllowLate:   assignment.AllowLate,
	}
	if assignment.Course != nil {
		resp.CourseName = assignment.Course.Name
	}
	return resp
}
