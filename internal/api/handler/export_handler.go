package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Vaibhav992/backend/internal/service"
	"github.com/Vaibhav992/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSubmissions 导出某作业的提交明细为 Excel
// GET /api/v1/export/submissions?assignment_id=xxx
func (h *ExportHandler) ExportSubmissions(c *gin.Context) {
	assignmentID := c.Query("assignment_id")
	if assignmentID == "" {
		response.BadRequest(c, 10001, "assignment_id 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportSubmissions(c.Request.Context(), assignmentID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// DeadlineCalendar 作业截止时间 ICS 日历订阅
// GET /api/v1/export/deadlines.ics
func (h *ExportHandler) DeadlineCalendar(c *gin.Context) {
	content, err := h.exportSvc.DeadlineCalendar(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=deadlines.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 12001, "作业不存在")
	case errors.Is(err, service.ErrExportNoSubmissions):
		response.NotFound(c, 16101, "该作业暂无提交")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
