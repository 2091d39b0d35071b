package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/Vaibhav992/backend/internal/model"
	"github.com/Vaibhav992/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[string]*model.User
	idCounter int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.idCounter++
		user.UserID = fmt.Sprintf("user-%d", m.idCounter)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	idCounter   int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		m.idCounter++
		assignment.AssignmentID = fmt.Sprintf("assign-%d", m.idCounter)
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) List(_ context.Context) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.Assignment) error {
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}

// ── Mock SubmissionRepository ──

// mockSubmissionRepo 模拟数据库侧的 upsert 语义：
// (assignment_id, student_id) 冲突时仅覆盖 file_url / submitted_at，
// 保留已有的 id / grade / feedback。
type mockSubmissionRepo struct {
	submissions map[string]*model.Submission
	idCounter   int

	// 可选关联源，模拟 Preload
	users       *mockUserRepo
	assignments *mockAssignmentRepo
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{submissions: make(map[string]*model.Submission)}
}

func (m *mockSubmissionRepo) Upsert(_ context.Context, submission *model.Submission) error {
	for _, existing := range m.submissions {
		if existing.AssignmentID == submission.AssignmentID && existing.StudentID == submission.StudentID {
			existing.FileURL = submission.FileURL
			existing.SubmittedAt = submission.SubmittedAt
			return nil
		}
	}
	m.idCounter++
	if submission.SubmissionID == "" {
		submission.SubmissionID = fmt.Sprintf("sub-%d", m.idCounter)
	}
	cp := *submission
	m.submissions[cp.SubmissionID] = &cp
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	if s, ok := m.submissions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) GetByAssignmentAndStudent(_ context.Context, assignmentID, studentID string) (*model.Submission, error) {
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) ListByStudent(_ context.Context, studentID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.StudentID != studentID {
			continue
		}
		cp := *s
		if m.assignments != nil {
			if a, ok := m.assignments.assignments[cp.AssignmentID]; ok {
				cp.Assignment = a
			}
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

func (m *mockSubmissionRepo) ListByAssignment(_ context.Context, assignmentID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.AssignmentID != assignmentID {
			continue
		}
		cp := *s
		if m.users != nil {
			if u, ok := m.users.users[cp.StudentID]; ok {
				cp.Student = u
			}
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

func (m *mockSubmissionRepo) Update(_ context.Context, submission *model.Submission) error {
	if _, ok := m.submissions[submission.SubmissionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.submissions[submission.SubmissionID] = submission
	return nil
}

// ── Mock StatsRepository ──

type mockStatsRepo struct {
	totalAssignments int64
	totalStudents    int64
	totalSubmissions int64
	perAssignment    []repository.AssignmentCount
	recent           []model.Submission
}

func newMockStatsRepo() *mockStatsRepo {
	return &mockStatsRepo{}
}

func (m *mockStatsRepo) CountAssignments(_ context.Context) (int64, error) {
	return m.totalAssignments, nil
}

func (m *mockStatsRepo) CountStudents(_ context.Context) (int64, error) {
	return m.totalStudents, nil
}

func (m *mockStatsRepo) CountSubmissions(_ context.Context) (int64, error) {
	return m.totalSubmissions, nil
}

func (m *mockStatsRepo) SubmissionsPerAssignment(_ context.Context) ([]repository.AssignmentCount, error) {
	return m.perAssignment, nil
}

func (m *mockStatsRepo) RecentSubmissions(_ context.Context, limit int) ([]model.Submission, error) {
	result := make([]model.Submission, len(m.recent))
	copy(result, m.recent)
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
