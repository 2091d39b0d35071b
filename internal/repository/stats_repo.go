package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vaibhav992/backend/internal/model"
)

// AssignmentCount 作业维度的提交数聚合行
type AssignmentCount struct {
	ID              string
	Title           string
	SubmissionCount int64
}

// StatsRepository 统计数据访问接口（只读投影，无自身不变量）
type StatsRepository interface {
	CountAssignments(ctx context.Context) (int64, error)
	CountStudents(ctx context.Context) (int64, error)
	CountSubmissions(ctx context.Context) (int64, error)
	// SubmissionsPerAssignment 每个作业的提交数（含零提交作业），按创建时间倒序
	SubmissionsPerAssignment(ctx context.Context) ([]AssignmentCount, error)
	// RecentSubmissions 最近提交，按提交时间倒序，limit 截断
	RecentSubmissions(ctx context.Context, limit int) ([]model.Submission, error)
}

// statsRepo StatsRepository 的 GORM 实现
type statsRepo struct {
	db *gorm.DB
}

// NewStatsRepo 创建 StatsRepository 实例
func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) CountAssignments(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Assignment{}).Count(&total).Error
	return total, err
}

func (r *statsRepo) CountStudents(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", model.RoleStudent).
		Count(&total).Error
	return total, err
}

func (r *statsRepo) CountSubmissions(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Submission{}).Count(&total).Error
	return total, err
}

func (r *statsRepo) SubmissionsPerAssignment(ctx context.Context) ([]AssignmentCount, error) {
	var rows []AssignmentCount
	err := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Select("assignments.id, assignments.title, COUNT(s.id) AS submission_count").
		Joins("LEFT JOIN submissions s ON s.assignment_id = assignments.id").
		Group("assignments.id, assignments.title, assignments.created_at").
		Order("assignments.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepo) RecentSubmissions(ctx context.Context, limit int) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Assignment").
		Order("submitted_at DESC").
		Limit(limit).
		Find(&submissions).Error
	return submissions, err
}
