package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"assignhub/backend/config"
	"assignhub/backend/internal/dto"
	"assignhub/backend/internal/model"
	"assignhub/backend/internal/repository"
	"assignhub/backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *mockUserRepo) {
	users := newMockUserRepo()
	repo := &repository.Repository{User: users}
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-for-unit-tests",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, users
}

func registerReq(username, role string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
		Password2: "password123",
		Role:      role,
	}
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, users := setupTestAuthService()

	result, err := svc.Register(context.Background(), registerReq("alice", model.RoleStudent))
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if result.Username != "alice" {
		t.Errorf("期望Username=alice，实际=%s", result.Username)
	}
	if result.Role != model.RoleStudent {
		t.Errorf("期望Role=student，实际=%s", result.Role)
	}

	// 落库的是 bcrypt 哈希，不是明文
	stored := users.users[result.ID]
	if stored.PasswordHash == "password123" {
		t.Error("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")); err != nil {
		t.Errorf("密码哈希应可校验: %v", err)
	}
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	svc, _ := setupTestAuthService()

	req := registerReq("alice", model.RoleStudent)
	req.Password2 = "different"
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("期望 ErrPasswordMismatch，实际: %v", err)
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq("alice", model.RoleStudent)); err != nil {
		t.Fatalf("首次注册应成功: %v", err)
	}
	_, err := svc.Register(context.Background(), registerReq("alice", model.RoleProfessor))
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq("alice", model.RoleStudent)); err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}

	result, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("Token 对不应为空")
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("期望ExpiresIn=3600，实际=%d", result.ExpiresIn)
	}
	if result.User.Username != "alice" {
		t.Errorf("期望User.Username=alice，实际=%s", result.User.Username)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq("alice", model.RoleStudent)); err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── Refresh 测试 ──

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq("alice", model.RoleStudent)); err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	result, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("刷新后的 AccessToken 不应为空")
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq("alice", model.RoleStudent)); err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// Access Token 不能用于刷新
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("期望 ErrRefreshInvalid，实际: %v", err)
	}
}

func TestAuthService_Refresh_PicksUpRoleChange(t *testing.T) {
	svc, users := setupTestAuthService()

	reg, err := svc.Register(context.Background(), registerReq("alice", model.RoleStudent))
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// 管理员变更角色后，刷新出的 Token 对应新角色
	users.users[reg.ID].Role = model.RoleProfessor

	result, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	if result.User.Role != model.RoleProfessor {
		t.Errorf("期望Role=professor，实际=%s", result.User.Role)
	}
}

// ── Logout / Me 测试 ──

func TestAuthService_Logout_NoRedis(t *testing.T) {
	svc, _ := setupTestAuthService()

	// Redis 不可用时登出降级为 no-op
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("无 Redis 时 Logout 不应报错: %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, _ := setupTestAuthService()

	reg, err := svc.Register(context.Background(), registerReq("alice", model.RoleStudent))
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}

	result, err := svc.Me(context.Background(), reg.ID)
	if err != nil {
		t.Fatalf("Me 应成功: %v", err)
	}
	if result.Email != "alice@example.com" {
		t.Errorf("期望Email=alice@example.com，实际=%s", result.Email)
	}

	if _, err := svc.Me(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
