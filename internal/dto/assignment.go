package dto

// ── 作业模块 DTO ──

// CreateAssignmentRequest 创建作业请求
// due_date 采用 RFC 3339 时间格式，创建后不可变
type CreateAssignmentRequest struct {
	CourseID    string `json:"course"      binding:"required,uuid"`
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty"`
	DueDate     string `json:"due_date"    binding:"required"`
	AllowLate   bool   `json:"allow_late"`
}

// UpdateAssignmentRequest 更新作业请求（不含 due_date）
type UpdateAssignmentRequest struct {
	Title       *string `json:"title"       binding:"omitempty,max=200"`
	Description *string `json:"description"`
	AllowLate   *bool   `json:"allow_late"`
}

// AssignmentListRequest 作业列表查询参数
type AssignmentListRequest struct {
	CourseID string `form:"course_id" binding:"omitempty,uuid"`
}

// AssignmentResponse 作业响应
type AssignmentResponse struct {
	ID          string `json:"id"`
	CourseID    string `json:"course"`
	CourseName  string `json:"course_name,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	AllowLate   bool   `json:"allow_late"`
}
