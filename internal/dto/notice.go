package dto

// ── 公告模块 DTO ──

// CreateNoticeRequest 创建公告请求
type CreateNoticeRequest struct {
	Title   string `json:"title"   binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

// UpdateNoticeRequest 更新公告请求
type UpdateNoticeRequest struct {
	Title   *string `json:"title"   binding:"omitempty,max=200"`
	Content *string `json:"content"`
}

// NoticeResponse 公告响应
type NoticeResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	AuthorID       string `json:"author"`
	AuthorUsername string `json:"author_username"`
	CreatedAt      string `json:"created_at"`
}
