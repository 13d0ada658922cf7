package model

import "time"

// ── 提交状态显示文案 ──
// 与前端约定的固定文案（韩语），不参与国际化
const (
	StatusGraded       = "평가 완료" // 已评分
	StatusLate         = "지연 제출" // 逾期提交
	StatusSubmitted    = "제출 완료" // 按时提交
	StatusNotSubmitted = "제출 전"  // 未提交
)

// Submission 作业提交表 — 对应 submissions
// (assignment_id, student_id) 唯一：每个学生每份作业至多一条提交
type Submission struct {
	SubmissionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"           json:"submission_id"`
	AssignmentID string    `gorm:"type:uuid;not null;uniqueIndex:uniq_submission_pair"      json:"assignment_id"`
	StudentID    string    `gorm:"type:uuid;not null;uniqueIndex:uniq_submission_pair"      json:"student_id"`
	FilePath     string    `gorm:"type:varchar(500);not null"                               json:"-"`
	FileURL      string    `gorm:"type:varchar(500);not null"                               json:"file_url"`
	Description  string    `gorm:"type:text;not null;default:''"                            json:"description"`
	SubmittedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"submitted_at"`
	IsLate       bool      `gorm:"not null;default:false"                                   json:"is_late"`
	Grade        *int      `json:"grade"`
	Feedback     string    `gorm:"type:text;not null;default:''"                            json:"feedback"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"updated_at"`

	// 关联
	Assignment *Assignment `gorm:"foreignKey:AssignmentID;references:AssignmentID" json:"assignment,omitempty"`
	Student    *User       `gorm:"foreignKey:StudentID;references:UserID"          json:"student,omitempty"`
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }

// Status 派生只读状态：已评分 > 逾期 > 按时
// 最后一个分支仅在空记录上出现，正常流程不可达
func (s *Submission) Status() string {
	if s.Grade != nil {
		return StatusGraded
	}
	if s.IsLate {
		return StatusLate
	}
	if s.SubmissionID != "" {
		return StatusSubmitted
	}
	return StatusNotSubmitted
}
