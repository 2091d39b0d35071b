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

// ── 作业模块业务错误 ──

var (
	ErrAssignmentNotFound = errors.New("作业不存在")
	ErrDeadlineFormat     = errors.New("截止时间格式无效")
)

// AssignmentService 作业业务接口
// 变更操作仅对 admin 开放（路由层按角色拦截）
type AssignmentService interface {
	Create(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	List(ctx context.Context) ([]dto.AssignmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return nil, ErrDeadlineFormat
	}

	assignment := &model.Assignment{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		CreatedBy:   &callerID,
	}

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		s.logger.Error("创建作业失败", zap.Error(err))
		return nil, err
	}

	return s.toAssignmentResponse(assignment), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *assignmentService) GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toAssignmentResponse(assignment), nil
}

// ────────────────────── List ──────────────────────

func (s *assignmentService) List(ctx context.Context) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.Assignment.List(ctx)
	if err != nil {
		s.logger.Error("列出作业失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *s.toAssignmentResponse(&assignments[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *assignmentService) Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return nil, ErrDeadlineFormat
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.Deadline = deadline
	assignment.UpdatedAt = time.Now()

	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		s.logger.Error("更新作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toAssignmentResponse(assignment), nil
}

// ────────────────────── Delete ──────────────────────

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	// 级联删除提交由外键约束完成，应用层不做两段式删除
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("删除作业失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *assignmentService) toAssignmentResponse(assignment *model.Assignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		ID:              assignment.AssignmentID,
		Title:           assignment.Title,
		Description:     assignment.Description,
		Deadline:        assignment.Deadline.UTC().Format(time.RFC3339),
		SubmissionCount: assignment.SubmissionCount,
		CreatedAt:       assignment.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       assignment.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if assignment.CreatedBy != nil {
		resp.CreatedBy = *assignment.CreatedBy
	}
	if assignment.Creator != nil {
		resp.CreatedByName = assignment.Creator.Name
	}
	return resp
}
