package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vaibhav992/backend/internal/dto"
	"github.com/Vaibhav992/backend/internal/model"
	"github.com/Vaibhav992/backend/internal/repository"
)

// ── 提交模块业务错误 ──

var (
	ErrDeadlinePassed     = errors.New("作业已过截止时间")
	ErrSubmissionNotFound = errors.New("提交不存在")
)

// SubmissionService 提交生命周期业务接口
//
// 设计说明：
//   - Submit 是唯一的写入口：截止时间闸门 + 原子 upsert，
//     同一 (assignment, student) 至多一条记录
//   - 重新提交只替换 file_url / submitted_at，已有评分不被清除
//   - Grade 不检查截止时间：评分在任何时刻合法，且任意 admin
//     可评任意提交（扁平管理权限）
type SubmissionService interface {
	Submit(ctx context.Context, studentID, assignmentID string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error)
	Grade(ctx context.Context, submissionID string, req *dto.GradeRequest) (*dto.SubmissionResponse, error)
	ListMine(ctx context.Context, studentID string) ([]dto.SubmissionResponse, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]dto.SubmissionResponse, error)
}

type submissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(repo *repository.Repository, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *submissionService) Submit(ctx context.Context, studentID, assignmentID string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error) {
	// 1. 作业必须存在
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.String("id", assignmentID), zap.Error(err))
		return nil, err
	}

	// 2. 截止时间闸门：入口处判定一次，此后不再复查。
	//    now >= deadline 即拒绝；截止前一刻发起的提交即使处理
	//    过程跨过截止点也应成功
	now := time.Now()
	if assignment.IsPastDue(now) {
		return nil, ErrDeadlinePassed
	}

	// 3. 原子 upsert：存在则替换 file_url / submitted_at，
	//    不存在则创建（grade / feedback 为空）。并发首次提交
	//    由唯一索引收敛为一行，后写者胜出
	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FileURL:      req.FileURL,
		SubmittedAt:  now,
	}
	if err := s.repo.Submission.Upsert(ctx, submission); err != nil {
		s.logger.Error("提交作业失败",
			zap.String("assignment_id", assignmentID),
			zap.String("student_id", studentID),
			zap.Error(err),
		)
		return nil, err
	}

	// 4. 回读落库行：冲突更新路径下保留的是已有 id 与评分字段
	stored, err := s.repo.Submission.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err != nil {
		s.logger.Error("回读提交失败", zap.Error(err))
		return nil, err
	}

	return s.toSubmissionResponse(stored), nil
}

// ────────────────────── Grade ──────────────────────

func (s *submissionService) Grade(ctx context.Context, submissionID string, req *dto.GradeRequest) (*dto.SubmissionResponse, error) {
	submission, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询提交失败", zap.String("id", submissionID), zap.Error(err))
		return nil, err
	}

	// 部分更新：仅覆盖请求中出现的字段；file_url / submitted_at 不动
	if req.Grade != nil {
		submission.Grade = req.Grade
	}
	if req.Feedback != nil {
		submission.Feedback = req.Feedback
	}

	if err := s.repo.Submission.Update(ctx, submission); err != nil {
		s.logger.Error("评分失败", zap.String("id", submissionID), zap.Error(err))
		return nil, err
	}

	return s.toSubmissionResponse(submission), nil
}

// ────────────────────── ListMine ──────────────────────

func (s *submissionService) ListMine(ctx context.Context, studentID string) ([]dto.SubmissionResponse, error) {
	submissions, err := s.repo.Submission.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("列出我的提交失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		resp := s.toSubmissionResponse(&submissions[i])
		if a := submissions[i].Assignment; a != nil {
			resp.AssignmentTitle = a.Title
			resp.AssignmentDeadline = a.Deadline.UTC().Format(time.RFC3339)
		}
		result = append(result, *resp)
	}

	return result, nil
}

// ────────────────────── ListByAssignment ──────────────────────

func (s *submissionService) ListByAssignment(ctx context.Context, assignmentID string) ([]dto.SubmissionResponse, error) {
	// 作业必须存在：作业被级联删除后此处返回 404 而非空列表
	if _, err := s.repo.Assignment.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.String("id", assignmentID), zap.Error(err))
		return nil, err
	}

	submissions, err := s.repo.Submission.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("列出作业提交失败", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		resp := s.toSubmissionResponse(&submissions[i])
		if u := submissions[i].Student; u != nil {
			resp.StudentName = u.Name
			resp.StudentEmail = u.Email
		}
		result = append(result, *resp)
	}

	return result, nil
}

// ── 内部辅助方法 ──

func (s *submissionService) toSubmissionResponse(submission *model.Submission) *dto.SubmissionResponse {
	return &dto.SubmissionResponse{
		ID:           submission.SubmissionID,
		AssignmentID: submission.AssignmentID,
		StudentID:    submission.StudentID,
		FileURL:      submission.FileURL,
		SubmittedAt:  submission.SubmittedAt.UTC().Format(time.RFC3339),
		Grade:        submission.Grade,
		Feedback:     submission.Feedback,
	}
}
