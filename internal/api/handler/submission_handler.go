package handler

import (
	"errors"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/service"
	"assignhub/backend/pkg/response"
)

// SubmissionHandler 提交模块 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Submit 提交作业（学生，multipart：file + description）
// POST /api/assignments/:id/submit
func (h *SubmissionHandler) Submit(c *gin.Context) {
	assignmentID := c.Param("id")
	if assignmentID == "" {
		response.BadRequest(c, 10001, "作业ID不能为空")
		return
	}

	var req dto.SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少提交文件")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer file.Close()

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.submissionSvc.Submit(c.Request.Context(), assignmentID, callerID, file, fileHeader.Filename, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateSubmission 更新本人提交（截止前）
// PATCH /api/submissions/:id
func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "提交ID不能为空")
		return
	}

	var req dto.SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	// 文件可选：不提供时只更新说明
	var file multipart.File
	filename := ""
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			response.InternalError(c)
			return
		}
		defer f.Close()
		file = f
		filename = fileHeader.Filename
	}

	result, err := h.submissionSvc.Update(c.Request.Context(), id, callerID, file, filename, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, result)
}

// GetSubmission 获取提交详情（本人、授课教授或管理员）
// GET /api/submissions/:id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "提交ID不能为空")
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

	result, err := h.submissionSvc.Get(c.Request.Context(), id, callerID, callerRole)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, result)
}

// GradeSubmission 评分（授课教授）
// PATCH /api/submissions/:id/grade
func (h *SubmissionHandler) GradeSubmission(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "提交ID不能为空")
		return
	}

	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.submissionSvc.Grade(c.Request.Context(), id, callerID, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, result)
}

// ListByAssignment 获取某作业的全部提交（授课教授）
// GET /api/assignments/:id/submissions
func (h *SubmissionHandler) ListByAssignment(c *gin.Context) {
	assignmentID := c.Param("id")
	if assignmentID == "" {
		response.BadRequest(c, 10001, "作业ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.submissionSvc.ListByAssignment(c.Request.Context(), assignmentID, callerID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// ListMine 获取本人全部提交（学生）
// GET /api/my-submissions
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.submissionSvc.ListMine(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// handleSubmissionError 统一处理提交模块业务错误
func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 14001, "提交记录不存在")
	case errors.Is(err, service.ErrDuplicateSubmission):
		response.BadRequest(c, 14002, "该作业已提交过，请使用更新接口")
	case errors.Is(err, service.ErrDeadlinePassed):
		response.Forbidden(c, 14003, "作业已截止，不接受逾期提交")
	case errors.Is(err, service.ErrUpdateAfterDeadline):
		response.Forbidden(c, 14004, "作业已截止，提交内容不可再修改")
	case errors.Is(err, service.ErrNotSubmissionOwner):
		response.Forbidden(c, 14005, "只能操作本人的提交")
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 13001, "作业不存在")
	case errors.Is(err, service.ErrNotCourseProfessor):
		response.Forbidden(c, 12002, "只有授课教授可以执行此操作")
	default:
		response.InternalError(c)
	}
}
