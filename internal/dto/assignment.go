package dto

// ── 作业模块 DTO ──

// CreateAssignmentRequest 创建作业请求
// Deadline 为 RFC3339 / ISO-8601 时间字符串
type CreateAssignmentRequest struct {
	Title       string `json:"title"       binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Deadline    string `json:"deadline"    binding:"required"`
}

// UpdateAssignmentRequest 更新作业请求（PUT 全量更新，与创建字段一致）
type UpdateAssignmentRequest struct {
	Title       string `json:"title"       binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Deadline    string `json:"deadline"    binding:"required"`
}

// AssignmentResponse 作业响应
// SubmissionCount 为读取时计算的关联提交数
type AssignmentResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Deadline        string `json:"deadline"`
	CreatedBy       string `json:"created_by,omitempty"`
	CreatedByName   string `json:"created_by_name,omitempty"`
	SubmissionCount int64  `json:"submission_count"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}
