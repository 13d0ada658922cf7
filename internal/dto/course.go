package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
}

// JoinCourseRequest 凭参与码加入课程请求
type JoinCourseRequest struct {
	JoinCode string `json:"join_code" binding:"required"`
}

// SetStudentsRequest 整体替换学生名单请求
type SetStudentsRequest struct {
	StudentIDs []string `json:"student_ids" binding:"required"`
}

// CourseResponse 课程响应
type CourseResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Professor *UserResponse  `json:"professor,omitempty"`
	JoinCode  string         `json:"join_code"`
	Students  []UserResponse `json:"students"`
	CreatedAt string         `json:"created_at"`
}
