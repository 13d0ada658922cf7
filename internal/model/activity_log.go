package model

import "time"

// ── 审计动作类型 ──

const (
	ActionSubmittedAssignment = "SUBMITTED_ASSIGNMENT"
	ActionGradedSubmission    = "GRADED_SUBMISSION"
)

// ActivityLog 操作审计表 — 对应 activity_logs
// 仅追加，应用层不提供更新或删除
type ActivityLog struct {
	LogID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	ActorID    string    `gorm:"type:uuid;not null"                             json:"actor_id"`
	ActionType string    `gorm:"type:varchar(100);not null"                     json:"action_type"`
	Details    string    `gorm:"type:text;not null;default:''"                  json:"details"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index"       json:"created_at"`

	// 关联
	Actor *User `gorm:"foreignKey:ActorID;references:UserID" json:"actor,omitempty"`
}

// TableName 指定表名
func (ActivityLog) TableName() string { return "activity_logs" }
