package triage

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/ginx"
)

type modelInfoResponse struct {
	Status string          `json:"status"`
	Model  model.ModelInfo `json:"model"`
}

// ModelInfo 模型自检信息
// GET /api/model-info
func (h *TriageHandler) ModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, modelInfoResponse{
		Status: ginx.StatusSuccess,
		Model:  h.service.ModelInfo(),
	})
}

// Health 健康检查
// GET /api/health
func (h *TriageHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Health())
}
