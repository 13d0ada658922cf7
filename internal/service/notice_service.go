package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/model"
	"assignhub/backend/internal/repository"
)

// ── 公告模块业务错误 ──

var ErrNoticeNotFound = errors.New("公告不存在")

// NoticeService 公告业务接口
// 读取对所有登录用户开放，写入由路由层限定为教授/管理员
type NoticeService interface {
	Create(ctx context.Context, req *dto.CreateNoticeRequest, authorID string) (*dto.NoticeResponse, error)
	Get(ctx context.Context, id string) (*dto.NoticeResponse, error)
	List(ctx context.Context) ([]dto.NoticeResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateNoticeRequest) (*dto.NoticeResponse, error)
	Delete(ctx context.Context, id string) error
}

type noticeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNoticeService 创建 NoticeService 实例
func NewNoticeService(repo *repository.Repository, logger *zap.Logger) NoticeService {
	return &noticeService{repo: repo, logger: logger}
}

func (s *noticeService) Create(ctx context.Context, req *dto.CreateNoticeRequest, authorID string) (*dto.NoticeResponse, error) {
	notice := &model.Notice{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}

	if err := s.repo.Notice.Create(ctx, notice); err != nil {
		s.logger.Error("创建公告失败", zap.Error(err))
		return nil, err
	}

	return s.toNoticeResponse(notice), nil
}

func (s *noticeService) Get(ctx context.Context, id string) (*dto.NoticeResponse, error) {
	notice, err := s.getNotice(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toNoticeResponse(notice), nil
}

func (s *noticeService) List(ctx context.Context) ([]dto.NoticeResponse, error) {
	notices, err := s.repo.Notice.List(ctx)
	if err != nil {
		s.logger.Error("列出公告失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.NoticeResponse, 0, len(notices))
	for i := range notices {
		result = append(result, *s.toNoticeResponse(&notices[i]))
	}
	return result, nil
}

func (s *noticeService) Update(ctx context.Context, id string, req *dto.UpdateNoticeRequest) (*dto.NoticeResponse, error) {
	notice, err := s.getNotice(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Content != nil {
		notice.Content = *req.Content
	}

	if err := s.repo.Notice.Update(ctx, notice); err != nil {
		s.logger.Error("更新公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toNoticeResponse(notice), nil
}

func (s *noticeService) Delete(ctx context.Context, id string) error {
	if _, err := s.getNotice(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Notice.Delete(ctx, id); err != nil {
		s.logger.Error("删除公告失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *noticeService) getNotice(ctx context.Context, id string) (*model.Notice, error) {
	notice, err := s.repo.Notice.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		s.logger.Error("查询公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return notice, nil
}

func (s *noticeService) toNoticeResponse(notice *model.Notice) *dto.NoticeResponse {
	resp := &dto.NoticeResponse{
		ID:        notice.NoticeID,
		Title:     notice.Title,
		Content:   notice.Content,
		AuthorID:  notice.AuthorID,
		CreatedAt: notice.CreatedAt.Format(time.RFC3339),
	}
	if notice.Author != nil {
		resp.AuthorUsername = notice.Author.Username
	}
	return resp
}
