package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/service"
	"assignhub/backend/pkg/response"
)

// AdminHandler 管理模块 HTTP 处理器，路由层限定为管理员
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// Stats 仪表盘全局统计
// GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// ListUsers 用户列表（分页）
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, total, err := h.adminSvc.ListUsers(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, page.GetPage(), page.GetPageSize())
}

// UpdateUserRole 修改用户角色
// PATCH /api/admin/users/:id
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "用户ID不能为空")
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.adminSvc.UpdateUserRole(c.Request.Context(), id, callerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfRoleChange):
			response.Forbidden(c, 17001, "不能修改自己的角色")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11005, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// ListLogs 审计日志列表（分页，最新在前）
// GET /api/admin/logs
func (h *AdminHandler) ListLogs(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	logs, total, err := h.adminSvc.ListLogs(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, logs, total, page.GetPage(), page.GetPageSize())
}
