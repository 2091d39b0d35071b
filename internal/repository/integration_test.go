//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Vaibhav992/backend/internal/model"
	"github.com/Vaibhav992/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=coursework password=coursework_password dbname=coursework_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// uuid 默认值依赖 pgcrypto
	if err := testDB.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		fmt.Fprintf(os.Stderr, "启用 pgcrypto 失败: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.Assignment{},
		&model.Submission{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (student *model.User, assignment *model.Assignment, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	student = &model.User{
		Name:         "测试学生",
		Email:        fmt.Sprintf("stu%d@test.com", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleStudent,
	}
	if err := testDB.WithContext(ctx).Create(student).Error; err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	assignment = &model.Assignment{
		Title:       fmt.Sprintf("测试作业-%d", time.Now().UnixNano()),
		Description: "集成测试用",
		Deadline:    time.Now().Add(24 * time.Hour),
	}
	if err := testDB.WithContext(ctx).Create(assignment).Error; err != nil {
		t.Fatalf("创建作业失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("assignment_id = ?", assignment.AssignmentID).Delete(&model.Submission{})
		testDB.Where("id = ?", assignment.AssignmentID).Delete(&model.Assignment{})
		testDB.Where("id = ?", student.UserID).Delete(&model.User{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Upsert 唯一性
// ═══════════════════════════════════════════════════════════

func TestSubmissionUpsert_SingleRowPerPair(t *testing.T) {
	student, assignment, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 首次提交
	first := &model.Submission{
		AssignmentID: assignment.AssignmentID,
		StudentID:    student.UserID,
		FileURL:      "https://files.test/v1.pdf",
		SubmittedAt:  time.Now(),
	}
	if err := repo.Submission.Upsert(ctx, first); err != nil {
		t.Fatalf("首次 Upsert 失败: %v", err)
	}

	stored, err := repo.Submission.GetByAssignmentAndStudent(ctx, assignment.AssignmentID, student.UserID)
	if err != nil {
		t.Fatalf("回读失败: %v", err)
	}

	// 管理员评分
	grade := 77
	feedback := "先给个分"
	stored.Grade = &grade
	stored.Feedback = &feedback
	if err := repo.Submission.Update(ctx, stored); err != nil {
		t.Fatalf("评分失败: %v", err)
	}

	// 重新提交：只替换 file_url / submitted_at
	second := &model.Submission{
		AssignmentID: assignment.AssignmentID,
		StudentID:    student.UserID,
		FileURL:      "https://files.test/v2.pdf",
		SubmittedAt:  time.Now(),
	}
	if err := repo.Submission.Upsert(ctx, second); err != nil {
		t.Fatalf("重新 Upsert 失败: %v", err)
	}

	// 整对键下只有一行
	var count int64
	testDB.Model(&model.Submission{}).
		Where("assignment_id = ? AND student_id = ?", assignment.AssignmentID, student.UserID).
		Count(&count)
	if count != 1 {
		t.Fatalf("期望 1 行，实际 %d 行", count)
	}

	after, err := repo.Submission.GetByAssignmentAndStudent(ctx, assignment.AssignmentID, student.UserID)
	if err != nil {
		t.Fatalf("回读失败: %v", err)
	}
	if after.SubmissionID != stored.SubmissionID {
		t.Errorf("冲突路径应保留原 id，期望 %s，实际 %s", stored.SubmissionID, after.SubmissionID)
	}
	if after.FileURL != "https://files.test/v2.pdf" {
		t.Errorf("file_url 应被替换，实际 %s", after.FileURL)
	}
	if after.Grade == nil || *after.Grade != 77 {
		t.Errorf("评分应保留，实际 %v", after.Grade)
	}
	if after.Feedback == nil || *after.Feedback != "先给个分" {
		t.Errorf("评语应保留，实际 %v", after.Feedback)
	}
}

func TestSubmissionUpsert_ConcurrentFirstSubmit(t *testing.T) {
	student, assignment, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 同一 (作业, 学生) 并发首次提交：单条 upsert 语句骑在唯一索引上，
	// 两边都应成功且最终只落一行
	urls := []string{
		"https://files.test/goroutine-a.pdf",
		"https://files.test/goroutine-b.pdf",
	}
	errs := make([]error, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, fileURL string) {
			defer wg.Done()
			errs[i] = repo.Submission.Upsert(ctx, &model.Submission{
				AssignmentID: assignment.AssignmentID,
				StudentID:    student.UserID,
				FileURL:      fileURL,
				SubmittedAt:  time.Now(),
			})
		}(i, u)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("并发 Upsert #%d 失败: %v", i, err)
		}
	}

	var count int64
	testDB.Model(&model.Submission{}).
		Where("assignment_id = ? AND student_id = ?", assignment.AssignmentID, student.UserID).
		Count(&count)
	if count != 1 {
		t.Fatalf("并发提交后期望 1 行，实际 %d 行", count)
	}

	stored, err := repo.Submission.GetByAssignmentAndStudent(ctx, assignment.AssignmentID, student.UserID)
	if err != nil {
		t.Fatalf("回读失败: %v", err)
	}
	if stored.FileURL != urls[0] && stored.FileURL != urls[1] {
		t.Errorf("file_url 应为两次提交之一，实际 %s", stored.FileURL)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 级联删除
// ═══════════════════════════════════════════════════════════

func TestAssignmentDelete_CascadesSubmissions(t *testing.T) {
	student, assignment, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	sub := &model.Submission{
		AssignmentID: assignment.AssignmentID,
		StudentID:    student.UserID,
		FileURL:      "https://files.test/v1.pdf",
		SubmittedAt:  time.Now(),
	}
	if err := repo.Submission.Upsert(ctx, sub); err != nil {
		t.Fatalf("Upsert 失败: %v", err)
	}

	if err := repo.Assignment.Delete(ctx, assignment.AssignmentID); err != nil {
		t.Fatalf("删除作业失败: %v", err)
	}

	var count int64
	testDB.Model(&model.Submission{}).
		Where("assignment_id = ?", assignment.AssignmentID).
		Count(&count)
	if count != 0 {
		t.Errorf("作业删除后其提交应被级联清除，剩余 %d 行。确保外键带 ON DELETE CASCADE（见 000001_init.up.sql）", count)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 读取时计算的 submission_count
// ═══════════════════════════════════════════════════════════

func TestAssignmentGetByID_SubmissionCount(t *testing.T) {
	student, assignment, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	before, err := repo.Assignment.GetByID(ctx, assignment.AssignmentID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if before.SubmissionCount != 0 {
		t.Errorf("无提交时 submission_count 应为 0，实际 %d", before.SubmissionCount)
	}

	sub := &model.Submission{
		AssignmentID: assignment.AssignmentID,
		StudentID:    student.UserID,
		FileURL:      "https://files.test/v1.pdf",
		SubmittedAt:  time.Now(),
	}
	if err := repo.Submission.Upsert(ctx, sub); err != nil {
		t.Fatalf("Upsert 失败: %v", err)
	}

	after, err := repo.Assignment.GetByID(ctx, assignment.AssignmentID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if after.SubmissionCount != 1 {
		t.Errorf("期望 submission_count=1，实际 %d", after.SubmissionCount)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 邮箱唯一约束
// ═══════════════════════════════════════════════════════════

func TestUserEmail_Unique(t *testing.T) {
	student, _, cleanup := setupTestData(t)
	defer cleanup()

	dup := &model.User{
		Name:         "重复邮箱",
		Email:        student.Email,
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleStudent,
	}
	err := testDB.Create(dup).Error
	if err == nil {
		testDB.Where("id = ?", dup.UserID).Delete(&model.User{})
		t.Fatal("期望邮箱唯一约束违反，但创建成功了")
	}
}
