package model

import "time"

// Notification 通知表 — 对应 notifications
// 只由业务操作（评分、截止提醒）作为副作用写入；除 is_read 外不可变
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	RecipientID    string  `gorm:"type:uuid;not null;index"                       json:"recipient_id"`
	Message        string  `gorm:"type:varchar(255);not null"                     json:"message"`
	IsRead         bool    `gorm:"not null;default:false"                         json:"is_read"`
	// DedupeKey 截止提醒的幂等键；其他来源的通知为 NULL，不受唯一约束限制
	DedupeKey *string   `gorm:"type:text;uniqueIndex"              json:"-"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
