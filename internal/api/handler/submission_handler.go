package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Vaibhav992/backend/internal/dto"
	"github.com/Vaibhav992/backend/internal/service"
	"github.com/Vaibhav992/backend/pkg/response"
)

// SubmissionHandler 提交模块 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Submit 提交/重新提交作业
// POST /api/v1/submit/:assignmentId
// 创建与替换统一返回 201，调用方无需区分两种路径
func (h *SubmissionHandler) Submit(c *gin.Context) {
	assignmentID := c.Param("assignmentId")
	if assignmentID == "" {
		response.BadRequest(c, 10001, "作业ID不能为空")
		return
	}

	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	submission, err := h.submissionSvc.Submit(c.Request.Context(), studentID, assignmentID, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.Created(c, submission)
}

// ListMine 获取当前学生自己的提交
// GET /api/v1/my-submissions
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	submissions, err := h.submissionSvc.ListMine(c.Request.Context(), studentID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": submissions})
}

// ListByAssignment 获取某作业下全部提交（含学生信息）
// GET /api/v1/submissions/:assignmentId
func (h *SubmissionHandler) ListByAssignment(c *gin.Context) {
	assignmentID := c.Param("assignmentId")
	if assignmentID == "" {
		response.BadRequest(c, 10001, "作业ID不能为空")
		return
	}

	submissions, err := h.submissionSvc.ListByAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": submissions})
}

// Grade 评分
// PATCH /api/v1/grade/:submissionId
// grade / feedback 均可独立省略，省略字段保持原值
func (h *SubmissionHandler) Grade(c *gin.Context) {
	submissionID := c.Param("submissionId")
	if submissionID == "" {
		response.BadRequest(c, 10001, "提交ID不能为空")
		return
	}

	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 仅校验失败（如分数越界）走 13004，JSON 本身无法解析走通用参数错误
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			response.BadRequest(c, 13004, "分数必须为 0-100 的整数")
			return
		}
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	submission, err := h.submissionSvc.Grade(c.Request.Context(), submissionID, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, submission)
}

// handleSubmissionError 统一处理提交模块业务错误
func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 13001, "作业不存在")
	case errors.Is(err, service.ErrDeadlinePassed):
		response.BadRequest(c, 13002, "作业已过截止时间")
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 13003, "提交不存在")
	default:
		response.InternalError(c)
	}
}
