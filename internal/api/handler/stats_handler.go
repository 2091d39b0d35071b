package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Vaibhav992/backend/internal/service"
	"github.com/Vaibhav992/backend/pkg/response"
)

// StatsHandler 统计模块 HTTP 处理器
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// Overview 系统概览统计
// GET /api/v1/stats/overview
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.statsSvc.Overview(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, overview)
}
