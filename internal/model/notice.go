package model

// Notice 公告表 — 对应 notices
type Notice struct {
	NoticeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notice_id"`
	Title    string `gorm:"type:varchar(200);not null"                     json:"title"`
	Content  string `gorm:"type:text;not null"                             json:"content"`
	AuthorID string `gorm:"type:uuid;not null"                             json:"author_id"`
	BaseModel

	// 关联
	Author *User `gorm:"foreignKey:AuthorID;references:UserID" json:"author,omitempty"`
}

// TableName 指定表名
func (Notice) TableName() string { return "notices" }
