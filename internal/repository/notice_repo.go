package repository

import (
	"context"

	"gorm.io/gorm"

	"assignhub/backend/internal/model"
)

// NoticeRepository 公告数据访问接口
type NoticeRepository interface {
	Create(ctx context.Context, notice *model.Notice) error
	GetByID(ctx context.Context, id string) (*model.Notice, error)
	List(ctx context.Context) ([]model.Notice, error)
	Update(ctx context.Context, notice *model.Notice) error
	Delete(ctx context.Context, id string) error
}

// noticeRepo NoticeRepository 的 GORM 实现
type noticeRepo struct {
	db *gorm.DB
}

// NewNoticeRepo 创建 NoticeRepository 实例
func NewNoticeRepo(db *gorm.DB) NoticeRepository {
	return &noticeRepo{db: db}
}

func (r *noticeRepo) Create(ctx context.Context, notice *model.Notice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

func (r *noticeRepo) GetByID(ctx context.Context, id string) (*model.Notice, error) {
	var notice model.Notice
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("notice_id = ?", id).
		First(&notice).Error
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

func (r *noticeRepo) List(ctx context.Context) ([]model.Notice, error) {
	var notices []model.Notice
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&notices).Error
	if err != nil {
		return nil, err
	}
	return notices, nil
}

func (r *noticeRepo) Update(ctx context.Context, notice *model.Notice) error {
	return r.db.WithContext(ctx).
		Model(&model.Notice{}).
		Where("notice_id = ?", notice.NoticeID).
		Updates(map[string]interface{}{
			"title":   notice.Title,
			"content": notice.Content,
		}).Error
}

func (r *noticeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("notice_id = ?", id).
		Delete(&model.Notice{}).Error
}
