package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/model"
	"assignhub/backend/internal/repository"
)

// ── 测试辅助 ──

type testAdminRepos struct {
	users       *mockUserRepo
	courses     *mockCourseRepo
	assignments *mockAssignmentRepo
	submissions *mockSubmissionRepo
	logs        *mockActivityLogRepo
}

func setupTestAdminService() (AdminService, *testAdminRepos) {
	users := newMockUserRepo()
	courses := newMockCourseRepo(users)
	assignments := newMockAssignmentRepo(courses)
	submissions := newMockSubmissionRepo(assignments, users)
	logs := newMockActivityLogRepo()

	repo := &repository.Repository{
		User:        users,
		Course:      courses,
		Assignment:  assignments,
		Submission:  submissions,
		ActivityLog: logs,
	}
	svc := NewAdminService(repo, zap.NewNop())
	return svc, &testAdminRepos{
		users:       users,
		courses:     courses,
		assignments: assignments,
		submissions: submissions,
		logs:        logs,
	}
}

// ── Stats 测试 ──

func TestAdminService_Stats(t *testing.T) {
	svc, repos := setupTestAdminService()
	repos.users.users["u1"] = &model.User{UserID: "u1", Username: "alice", Role: model.RoleStudent}
	repos.users.users["u2"] = &model.User{UserID: "u2", Username: "prof", Role: model.RoleProfessor}
	repos.courses.courses["c1"] = &model.Course{CourseID: "c1", Name: "A", ProfessorID: "u2", JoinCode: "C1"}
	repos.assignments.assignments["a1"] = &model.Assignment{AssignmentID: "a1", CourseID: "c1", Title: "과제"}
	repos.submissions.submissions["s1"] = &model.Submission{SubmissionID: "s1", AssignmentID: "a1", StudentID: "u1"}

	result, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats 应成功: %v", err)
	}
	if result.TotalUsers != 2 {
		t.Errorf("期望TotalUsers=2，实际=%d", result.TotalUsers)
	}
	if result.TotalCourses != 1 || result.TotalAssignments != 1 || result.TotalSubmissions != 1 {
		t.Errorf("计数不符: %+v", result)
	}
}

// ── UpdateUserRole 测试 ──

func TestAdminService_UpdateUserRole_Success(t *testing.T) {
	svc, repos := setupTestAdminService()
	repos.users.users["u1"] = &model.User{UserID: "u1", Username: "alice", Role: model.RoleStudent}

	result, err := svc.UpdateUserRole(context.Background(), "u1", "admin-001", &dto.UpdateUserRoleRequest{Role: model.RoleProfessor})
	if err != nil {
		t.Fatalf("UpdateUserRole 应成功: %v", err)
	}
	if result.Role != model.RoleProfessor {
		t.Errorf("期望Role=professor，实际=%s", result.Role)
	}
	if repos.users.users["u1"].Role != model.RoleProfessor {
		t.Error("角色变更应落库")
	}
}

func TestAdminService_UpdateUserRole_SelfForbidden(t *testing.T) {
	svc, repos := setupTestAdminService()
	repos.users.users["admin-001"] = &model.User{UserID: "admin-001", Username: "root", Role: model.RoleAdmin}

	_, err := svc.UpdateUserRole(context.Background(), "admin-001", "admin-001", &dto.UpdateUserRoleRequest{Role: model.RoleStudent})
	if !errors.Is(err, ErrSelfRoleChange) {
		t.Errorf("期望 ErrSelfRoleChange，实际: %v", err)
	}
	if repos.users.users["admin-001"].Role != model.RoleAdmin {
		t.Error("自身角色不应被改动")
	}
}

func TestAdminService_UpdateUserRole_NotFound(t *testing.T) {
	svc, _ := setupTestAdminService()

	_, err := svc.UpdateUserRole(context.Background(), "ghost", "admin-001", &dto.UpdateUserRoleRequest{Role: model.RoleStudent})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── ListLogs 测试 ──

func TestAdminService_ListLogs_NewestFirst(t *testing.T) {
	svc, repos := setupTestAdminService()
	repos.users.users["u1"] = &model.User{UserID: "u1", Username: "alice", Role: model.RoleStudent}

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		repos.logs.Create(context.Background(), &model.ActivityLog{
			ActorID:    "u1",
			ActionType: model.ActionSubmittedAssignment,
			Details:    "n",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			Actor:      repos.users.users["u1"],
		})
	}

	result, total, err := svc.ListLogs(context.Background(), &dto.PaginationRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("ListLogs 应成功: %v", err)
	}
	if total != 3 {
		t.Errorf("期望total=3，实际=%d", total)
	}
	if len(result) != 2 {
		t.Fatalf("期望本页=2条，实际=%d", len(result))
	}
	if result[0].CreatedAt <= result[1].CreatedAt {
		t.Error("日志应最新在前")
	}
	if result[0].ActorUsername != "alice" {
		t.Errorf("期望ActorUsername=alice，实际=%s", result[0].ActorUsername)
	}
}

// ── ListUsers 测试 ──

func TestAdminService_ListUsers(t *testing.T) {
	svc, repos := setupTestAdminService()
	repos.users.users["u1"] = &model.User{UserID: "u1", Username: "alice", Role: model.RoleStudent}
	repos.users.users["u2"] = &model.User{UserID: "u2", Username: "bob", Role: model.RoleProfessor}

	result, total, err := svc.ListUsers(context.Background(), &dto.PaginationRequest{})
	if err != nil {
		t.Fatalf("ListUsers 应成功: %v", err)
	}
	if total != 2 || len(result) != 2 {
		t.Errorf("期望2名用户，实际 total=%d len=%d", total, len(result))
	}
}
