package dto

// ── 统计模块 DTO ──

// AssignmentSubmissionCount 单个作业的提交数
type AssignmentSubmissionCount struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	SubmissionCount int64  `json:"submission_count"`
}

// RecentSubmissionItem 最近提交条目
type RecentSubmissionItem struct {
	ID              string `json:"id"`
	StudentName     string `json:"student_name"`
	AssignmentTitle string `json:"assignment_title"`
	FileURL         string `json:"file_url"`
	SubmittedAt     string `json:"submitted_at"`
}

// StatsOverviewResponse 统计总览
// RecentSubmissions 固定上限 10 条，按提交时间倒序
type StatsOverviewResponse struct {
	TotalAssignments         int64                       `json:"total_assignments"`
	TotalStudents            int64                       `json:"total_students"`
	TotalSubmissions         int64                       `json:"total_submissions"`
	SubmissionsPerAssignment []AssignmentSubmissionCount `json:"submissions_per_assignment"`
	RecentSubmissions        []RecentSubmissionItem      `json:"recent_submissions"`
}
