package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Vaibhav992/backend/internal/model"
	"github.com/Vaibhav992/backend/internal/repository"
)

func setupTestExportService() (ExportService, *mockAssignmentRepo, *mockSubmissionRepo, *mockUserRepo) {
	userRepo := newMockUserRepo()
	assignmentRepo := newMockAssignmentRepo()
	submissionRepo := newMockSubmissionRepo()
	submissionRepo.users = userRepo
	submissionRepo.assignments = assignmentRepo

	repo := &repository.Repository{
		User:       userRepo,
		Assignment: assignmentRepo,
		Submission: submissionRepo,
		Stats:      newMockStatsRepo(),
	}

	svc := NewExportService(repo, zap.NewNop())
	return svc, assignmentRepo, submissionRepo, userRepo
}

// ── ExportSubmissions 测试 ──

func TestExportSubmissions_Success(t *testing.T) {
	svc, assignmentRepo, submissionRepo, userRepo := setupTestExportService()
	createTestAssignment(assignmentRepo, "a-1", time.Now().Add(24*time.Hour))
	createTestUser(userRepo, "stu@test.com", "password123", "student")

	grade := 88
	feedback := "不错"
	submissionRepo.submissions["sub-1"] = &model.Submission{
		SubmissionID: "sub-1", AssignmentID: "a-1", StudentID: "user-stu@test.com",
		FileURL: "https://files.test/s.pdf", SubmittedAt: time.Now(),
		Grade: &grade, Feedback: &feedback,
	}

	buf, filename, err := svc.ExportSubmissions(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("ExportSubmissions 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾，实际=%s", filename)
	}
	if !strings.Contains(filename, "作业 a-1") {
		t.Errorf("文件名应包含作业标题，实际=%s", filename)
	}
}

func TestExportSubmissions_NoSubmissions(t *testing.T) {
	svc, assignmentRepo, _, _ := setupTestExportService()
	createTestAssignment(assignmentRepo, "a-empty", time.Now().Add(24*time.Hour))

	_, _, err := svc.ExportSubmissions(context.Background(), "a-empty")
	if !errors.Is(err, ErrExportNoSubmissions) {
		t.Errorf("期望 ErrExportNoSubmissions，实际: %v", err)
	}
}

func TestExportSubmissions_AssignmentNotFound(t *testing.T) {
	svc, _, _, _ := setupTestExportService()

	_, _, err := svc.ExportSubmissions(context.Background(), "nonexistent")
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际: %v", err)
	}
}

// ── DeadlineCalendar 测试 ──

func TestDeadlineCalendar_ContainsEvents(t *testing.T) {
	svc, assignmentRepo, _, _ := setupTestExportService()
	createTestAssignment(assignmentRepo, "a-1", time.Now().Add(24*time.Hour))
	createTestAssignment(assignmentRepo, "a-2", time.Now().Add(48*time.Hour))

	content, err := svc.DeadlineCalendar(context.Background())
	if err != nil {
		t.Fatalf("DeadlineCalendar 应成功: %v", err)
	}

	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("输出应是 iCalendar 格式")
	}
	if got := strings.Count(content, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("每份作业一个 VEVENT，期望 2，实际=%d", got)
	}
	if !strings.Contains(content, "作业 a-1") {
		t.Error("事件摘要应包含作业标题")
	}
}

func TestDeadlineCalendar_EmptyStillValid(t *testing.T) {
	svc, _, _, _ := setupTestExportService()

	content, err := svc.DeadlineCalendar(context.Background())
	if err != nil {
		t.Fatalf("无作业时 DeadlineCalendar 应成功: %v", err)
	}
	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "END:VCALENDAR") {
		t.Error("空日历也应是合法的 iCalendar 文档")
	}
}
