package dto

// ── 提交模块 DTO ──

// SubmitRequest 提交/更新作业的表单字段（文件经 multipart 单独传输）
type SubmitRequest struct {
	Description string `form:"description"`
}

// GradeRequest 评分请求
type GradeRequest struct {
	Grade    *int   `json:"grade"    binding:"required,min=0,max=100"`
	Feedback string `json:"feedback" binding:"omitempty"`
}

// SubmissionResponse 提交响应
// Status 为派生只读状态，对应前端固定文案
type SubmissionResponse struct {
	ID              string `json:"id"`
	AssignmentID    string `json:"assignment"`
	AssignmentTitle string `json:"assignment_title,omitempty"`
	StudentID       string `json:"student"`
	StudentUsername string `json:"studentUsername,omitempty"`
	FileURL         string `json:"file_url"`
	Description     string `json:"description"`
	SubmittedAt     string `json:"submitted_at"`
	IsLate          bool   `json:"is_late"`
	Grade           *int   `json:"grade"`
	Feedback        string `json:"feedback"`
	Status          string `json:"status"`
}
