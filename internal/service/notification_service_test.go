package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"assignhub/backend/internal/model"
	"assignhub/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestNotificationService() (NotificationService, *mockNotificationRepo) {
	notifications := newMockNotificationRepo()
	repo := &repository.Repository{Notification: notifications}
	svc := NewNotificationService(repo, zap.NewNop())
	return svc, notifications
}

// ── ListMine 测试 ──

func TestNotificationService_ListMine_OwnOnly(t *testing.T) {
	svc, notifications := setupTestNotificationService()
	notifications.notifications["ntf-001"] = &model.Notification{
		NotificationID: "ntf-001", RecipientID: "stu-001", Message: "알림 1", CreatedAt: time.Now(),
	}
	notifications.notifications["ntf-002"] = &model.Notification{
		NotificationID: "ntf-002", RecipientID: "stu-002", Message: "알림 2", CreatedAt: time.Now(),
	}

	result, err := svc.ListMine(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("ListMine 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("期望通知数=1，实际=%d", len(result))
	}
	if result[0].Message != "알림 1" {
		t.Errorf("期望Message=알림 1，实际=%s", result[0].Message)
	}
}

// ── MarkRead 测试 ──

func TestNotificationService_MarkRead_Success(t *testing.T) {
	svc, notifications := setupTestNotificationService()
	notifications.notifications["ntf-001"] = &model.Notification{
		NotificationID: "ntf-001", RecipientID: "stu-001", Message: "알림", CreatedAt: time.Now(),
	}

	result, err := svc.MarkRead(context.Background(), "ntf-001", "stu-001")
	if err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}
	if !result.IsRead {
		t.Error("期望IsRead=true")
	}
	if !notifications.notifications["ntf-001"].IsRead {
		t.Error("已读状态应落库")
	}
}

func TestNotificationService_MarkRead_OtherRecipient(t *testing.T) {
	svc, notifications := setupTestNotificationService()
	notifications.notifications["ntf-001"] = &model.Notification{
		NotificationID: "ntf-001", RecipientID: "stu-001", Message: "알림", CreatedAt: time.Now(),
	}

	// 他人的通知按不存在处理
	_, err := svc.MarkRead(context.Background(), "ntf-001", "stu-002")
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("期望 ErrNotificationNotFound，实际: %v", err)
	}
	if notifications.notifications["ntf-001"].IsRead {
		t.Error("他人操作不应改动已读状态")
	}
}

func TestNotificationService_MarkRead_Idempotent(t *testing.T) {
	svc, notifications := setupTestNotificationService()
	notifications.notifications["ntf-001"] = &model.Notification{
		NotificationID: "ntf-001", RecipientID: "stu-001", Message: "알림", IsRead: true, CreatedAt: time.Now(),
	}

	result, err := svc.MarkRead(context.Background(), "ntf-001", "stu-001")
	if err != nil {
		t.Fatalf("重复标记不应报错: %v", err)
	}
	if !result.IsRead {
		t.Error("期望IsRead=true")
	}
}
