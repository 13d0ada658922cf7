package dto

// ── 管理模块 DTO ──

// StatsResponse 仪表盘统计响应（字段名与前端约定保持 camelCase）
type StatsResponse struct {
	TotalCourses     int64 `json:"totalCourses"`
	TotalAssignments int64 `json:"totalAssignments"`
	TotalSubmissions int64 `json:"totalSubmissions"`
	TotalUsers       int64 `json:"totalUsers"`
}

// UpdateUserRoleRequest 管理员修改用户角色请求
// 角色只能由管理员修改，用户不能改自己的
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student professor admin"`
}

// ActivityLogResponse 审计日志响应
type ActivityLogResponse struct {
	ID            string `json:"id"`
	ActorUsername string `json:"actor_username"`
	ActionType    string `json:"action_type"`
	Details       string `json:"details"`
	CreatedAt     string `json:"created_at"`
}
