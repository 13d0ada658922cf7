package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"assignhub/backend/internal/service"
	"assignhub/backend/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListNotifications 获取本人通知列表
// GET /api/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	notifications, err := h.notificationSvc.ListMine(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": notifications})
}

// MarkRead 标记本人通知为已读
// POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "通知ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationSvc.MarkRead(c.Request.Context(), id, callerID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, 16001, "通知不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
