package model

// Course 课程表 — 对应 courses
// 参与码在创建时生成一次，全局唯一，之后不再变更
type Course struct {
	CourseID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	ProfessorID string `gorm:"type:uuid;not null"                             json:"professor_id"`
	JoinCode    string `gorm:"type:varchar(16);not null;uniqueIndex"          json:"join_code"`
	BaseModel

	// 关联
	Professor *User  `gorm:"foreignKey:ProfessorID;references:UserID"                             json:"professor,omitempty"`
	Students  []User `gorm:"many2many:course_students;joinForeignKey:CourseID;joinReferences:StudentID" json:"students,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
