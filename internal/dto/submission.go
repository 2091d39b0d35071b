package dto

// ── 提交模块 DTO ──

// SubmitRequest 提交/重新提交作业请求
// 文件本体存放在外部存储，此处只记录定位串
type SubmitRequest struct {
	FileURL string `json:"file_url" binding:"required"`
}

// GradeRequest 评分请求
// 两个字段均可独立省略：省略的字段保持原值不变（部分更新）
type GradeRequest struct {
	Grade    *int    `json:"grade"    binding:"omitempty,min=0,max=100"`
	Feedback *string `json:"feedback" binding:"omitempty"`
}

// SubmissionResponse 提交响应
type SubmissionResponse struct {
	ID           string  `json:"id"`
	AssignmentID string  `json:"assignment_id"`
	StudentID    string  `json:"student_id"`
	FileURL      string  `json:"file_url"`
	SubmittedAt  string  `json:"submitted_at"`
	Grade        *int    `json:"grade"`
	Feedback     *string `json:"feedback"`

	// 列表场景下的关联信息（按需填充）
	AssignmentTitle    string `json:"assignment_title,omitempty"`
	AssignmentDeadline string `json:"assignment_deadline,omitempty"`
	StudentName        string `json:"student_name,omitempty"`
	StudentEmail       string `json:"student_email,omitempty"`
}
