package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/service"
	"assignhub/backend/pkg/response"
)

// NoticeHandler 公告模块 HTTP 处理器
type NoticeHandler struct {
	noticeSvc service.NoticeService
}

// NewNoticeHandler 创建 NoticeHandler
func NewNoticeHandler(noticeSvc service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeSvc: noticeSvc}
}

// CreateNotice 发布公告（教授/管理员）
// POST /api/notices
func (h *NoticeHandler) CreateNotice(c *gin.Context) {
	var req dto.CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	notice, err := h.noticeSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleNoticeError(c, err)
		return
	}

	response.Created(c, notice)
}

// ListNotices 获取公告列表
// GET /api/notices
func (h *NoticeHandler) ListNotices(c *gin.Context) {
	notices, err := h.noticeSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": notices})
}

// GetNotice 获取公告详情
// GET /api/notices/:id
func (h *NoticeHandler) GetNotice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	notice, err := h.noticeSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleNoticeError(c, err)
		return
	}

	response.OK(c, notice)
}

// UpdateNotice 更新公告（教授/管理员）
// PUT|PATCH /api/notices/:id
func (h *NoticeHandler) UpdateNotice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	var req dto.UpdateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	notice, err := h.noticeSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleNoticeError(c, err)
		return
	}

	response.OK(c, notice)
}

// DeleteNotice 删除公告（教授/管理员）
// DELETE /api/notices/:id
func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	if err := h.noticeSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleNoticeError(c, err)
		return
	}

	response.NoContent(c)
}

// handleNoticeError 统一处理公告模块业务错误
func (h *NoticeHandler) handleNoticeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoticeNotFound):
		response.NotFound(c, 15001, "公告不存在")
	default:
		response.InternalError(c)
	}
}
