package dto

// ── 通知模块 DTO ──

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
