package model

// ── 角色常量 ──

const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
	RoleAdmin     = "admin"
)

// ValidRole 检查角色是否合法
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleProfessor, RoleAdmin:
		return true
	}
	return false
}

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"         json:"username"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
