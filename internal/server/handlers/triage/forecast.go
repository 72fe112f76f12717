package triage

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/ginx"
)

// forecastResponse 预测结果字段与 status 平铺输出
type forecastResponse struct {
	Status string `json:"status"`
	*model.ResourceForecast
}

// PredictResources 灾害资源预测
// POST /api/predict-resources
func (h *TriageHandler) PredictResources(c *gin.Context) {
	var req model.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	forecast, err := h.service.ForecastResources(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, forecastResponse{
		Status:           ginx.StatusSuccess,
		ResourceForecast: forecast,
	})
}
