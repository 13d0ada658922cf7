package model

import "time"

// Assignment 作业表 — 对应 assignments
// due_date 创建后不可变；allow_late 控制逾期提交是否被接受
type Assignment struct {
	AssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	CourseID     string    `gorm:"type:uuid;not null;index"                       json:"course_id"`
	Title        string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description  string    `gorm:"type:text;not null;default:''"                  json:"description"`
	DueDate      time.Time `gorm:"not null;index"                                 json:"due_date"`
	AllowLate    bool      `gorm:"not null;default:false"                         json:"allow_late"`
	BaseModel

	// 关联
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }
