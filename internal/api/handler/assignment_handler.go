package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/service"
	"assignhub/backend/pkg/response"
)

// AssignmentHandler 作业模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// CreateAssignment 布置作业（授课教授）
// POST /api/assignments
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, assignment)
}

// ListAssignments 获取作业列表（按角色过滤，支持 course_id 筛选）
// GET /api/assignments
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	assignments, err := h.assignmentSvc.List(c.Request.Context(), callerID, callerRole, req.CourseID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// GetAssignment 获取作业详情
// GET /api/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "作业ID不能为空")
		return
	}

	assignment, err := h.assignmentSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, assignment)
}

// UpdateAssignment 更新作业（截止时间不可变）
// PUT|PATCH /api/assignments/:id
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "作业ID不能为空")
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignment, err := h.assignmentSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, assignment)
}

// DeleteAssignment 删除作业
// DELETE /api/assignments/:id
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "作业ID不能为空")
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.NoContent(c)
}

// CalendarFeed 订阅可见作业的截止日历（iCalendar）
// GET /api/my-assignments/calendar
func (h *AssignmentHandler) CalendarFeed(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	feed, err := h.assignmentSvc.CalendarFeed(c.Request.Context(), callerID, callerRole)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="assignments.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// handleAssignmentError 统一处理作业模块业务错误
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 13001, "作业不存在")
	case errors.Is(err, service.ErrDueDateInvalid):
		response.BadRequest(c, 13002, "截止时间格式无效")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrNotCourseProfessor):
		response.Forbidden(c, 12002, "只有授课教授可以执行此操作")
	default:
		response.InternalError(c)
	}
}
