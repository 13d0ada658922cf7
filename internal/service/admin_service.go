package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/repository"
)

// ── 管理模块业务错误 ──

var ErrSelfRoleChange = errors.New("不能修改自己的角色")

// AdminService 管理端业务接口，路由层限定为管理员
type AdminService interface {
	// Stats 仪表盘四项全局计数
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	ListUsers(ctx context.Context, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error)
	// UpdateUserRole 修改用户角色；管理员不能改自己的角色
	UpdateUserRole(ctx context.Context, userID, callerID string, req *dto.UpdateUserRoleRequest) (*dto.UserResponse, error)
	ListLogs(ctx context.Context, page *dto.PaginationRequest) ([]dto.ActivityLogResponse, int64, error)
}

type adminService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(repo *repository.Repository, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, logger: logger}
}

// ────────────────────── Stats ──────────────────────

func (s *adminService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	stats := &dto.StatsResponse{}
	var err error

	if stats.TotalCourses, err = s.repo.Course.Count(ctx); err != nil {
		s.logger.Error("统计课程数失败", zap.Error(err))
		return nil, err
	}
	if stats.TotalAssignments, err = s.repo.Assignment.Count(ctx); err != nil {
		s.logger.Error("统计作业数失败", zap.Error(err))
		return nil, err
	}
	if stats.TotalSubmissions, err = s.repo.Submission.Count(ctx); err != nil {
		s.logger.Error("统计提交数失败", zap.Error(err))
		return nil, err
	}
	if stats.TotalUsers, err = s.repo.User.Count(ctx); err != nil {
		s.logger.Error("统计用户数失败", zap.Error(err))
		return nil, err
	}

	return stats, nil
}

// ────────────────────── ListUsers ──────────────────────

func (s *adminService) ListUsers(ctx context.Context, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

// ────────────────────── UpdateUserRole ──────────────────────

func (s *adminService) UpdateUserRole(ctx context.Context, userID, callerID string, req *dto.UpdateUserRoleRequest) (*dto.UserResponse, error) {
	if userID == callerID {
		return nil, ErrSelfRoleChange
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	user.Role = req.Role
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户角色失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户角色已变更",
		zap.String("user_id", userID),
		zap.String("role", req.Role),
		zap.String("operator", callerID))

	return toUserResponse(user), nil
}

// ────────────────────── ListLogs ──────────────────────

func (s *adminService) ListLogs(ctx context.Context, page *dto.PaginationRequest) ([]dto.ActivityLogResponse, int64, error) {
	logs, total, err := s.repo.ActivityLog.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出审计日志失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ActivityLogResponse, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		item := dto.ActivityLogResponse{
			ID:         l.LogID,
			ActionType: l.ActionType,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		}
		if l.Actor != nil {
			item.ActorUsername = l.Actor.Username
		}
		result = append(result, item)
	}
	return result, total, nil
}
