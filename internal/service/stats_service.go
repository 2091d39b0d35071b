package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Vaibhav992/backend/internal/dto"
	"github.com/Vaibhav992/backend/internal/repository"
)

// recentSubmissionsLimit 最近提交条数上限，接口契约固定为 10，不可配置
const recentSubmissionsLimit = 10

// StatsService 统计业务接口（纯只读投影）
type StatsService interface {
	Overview(ctx context.Context) (*dto.StatsOverviewResponse, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) Overview(ctx context.Context) (*dto.StatsOverviewResponse, error) {
	totalAssignments, err := s.repo.Stats.CountAssignments(ctx)
	if err != nil {
		s.logger.Error("统计作业总数失败", zap.Error(err))
		return nil, err
	}

	totalStudents, err := s.repo.Stats.CountStudents(ctx)
	if err != nil {
		s.logger.Error("统计学生总数失败", zap.Error(err))
		return nil, err
	}

	totalSubmissions, err := s.repo.Stats.CountSubmissions(ctx)
	if err != nil {
		s.logger.Error("统计提交总数失败", zap.Error(err))
		return nil, err
	}

	perAssignment, err := s.repo.Stats.SubmissionsPerAssignment(ctx)
	if err != nil {
		s.logger.Error("统计作业维度提交数失败", zap.Error(err))
		return nil, err
	}

	recent, err := s.repo.Stats.RecentSubmissions(ctx, recentSubmissionsLimit)
	if err != nil {
		s.logger.Error("查询最近提交失败", zap.Error(err))
		return nil, err
	}

	perAssignmentResp := make([]dto.AssignmentSubmissionCount, 0, len(perAssignment))
	for _, row := range perAssignment {
		perAssignmentResp = append(perAssignmentResp, dto.AssignmentSubmissionCount{
			ID:              row.ID,
			Title:           row.Title,
			SubmissionCount: row.SubmissionCount,
		})
	}

	recentResp := make([]dto.RecentSubmissionItem, 0, len(recent))
	for i := range recent {
		item := dto.RecentSubmissionItem{
			ID:          recent[i].SubmissionID,
			FileURL:     recent[i].FileURL,
			SubmittedAt: recent[i].SubmittedAt.UTC().Format(time.RFC3339),
		}
		if u := recent[i].Student; u != nil {
			item.StudentName = u.Name
		}
		if a := recent[i].Assignment; a != nil {
			item.AssignmentTitle = a.Title
		}
		recentResp = append(recentResp, item)
	}

	return &dto.StatsOverviewResponse{
		TotalAssignments:         totalAssignments,
		TotalStudents:            totalStudents,
		TotalSubmissions:         totalSubmissions,
		SubmissionsPerAssignment: perAssignmentResp,
		RecentSubmissions:        recentResp,
	}, nil
}
