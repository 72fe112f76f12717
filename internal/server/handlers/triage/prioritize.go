package triage

import (
	"github.com/gin-gonic/gin"

	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/ginx"
)

// Prioritize 单条求助评分
// POST /api/prioritize
func (h *TriageHandler) Prioritize(c *gin.Context) {
	var req model.TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	breakdown, err := h.service.Prioritize(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ginx.Success(c, breakdown)
}

// PrioritizeBatch 批量评分，结果按分数降序
// POST /api/prioritize-batch
func (h *TriageHandler) PrioritizeBatch(c *gin.Context) {
	var req model.BatchTriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	results, err := h.service.PrioritizeBatch(c.Request.Context(), req.Requests)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ginx.SuccessList(c, results, len(results), h.now())
}
