// Package authz 提供角色与对象归属判定。
// 所有判定失败即拒绝：未认证或角色不匹配的请求方一律得到 false。
package authz

import "assignhub/backend/internal/model"

// HasRole 统一的角色集合判定：userRole 非空且属于 allowed 之一。
// 角色相关的所有判定都收敛到这一个参数化检查上。
func HasRole(userRole string, allowed ...string) bool {
	if userRole == "" {
		return false
	}
	for _, r := range allowed {
		if userRole == r {
			return true
		}
	}
	return false
}

// IsProfessor 角色恰好为 professor
func IsProfessor(userRole string) bool {
	return HasRole(userRole, model.RoleProfessor)
}

// IsAdmin 角色恰好为 admin
func IsAdmin(userRole string) bool {
	return HasRole(userRole, model.RoleAdmin)
}

// IsProfessorOrAdmin 角色属于 {professor, admin}
func IsProfessorOrAdmin(userRole string) bool {
	return HasRole(userRole, model.RoleProfessor, model.RoleAdmin)
}

// IsOwnerOfSubmission 提交归属判定：submission.student == user
func IsOwnerOfSubmission(userID string, sub *model.Submission) bool {
	return userID != "" && sub != nil && sub.StudentID == userID
}

// IsCourseProfessor 课程归属判定：course.professor == user
func IsCourseProfessor(userID string, course *model.Course) bool {
	return userID != "" && course != nil && course.ProfessorID == userID
}
