package domains

import (
	"context"

	"github.com/bcenhabil/barangaylink-system/internal/domains/common"
	"github.com/bcenhabil/barangaylink-system/internal/domains/handlers/triage"
	"github.com/bcenhabil/barangaylink-system/internal/framework"
	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// HandlerFactory Handler 构造函数类型
type HandlerFactory func(
	ctx context.Context,
	baseHandler *framework.BaseHandler,
	service common.TriageService,
) (framework.BusinessHandler, error)

// HandlerMap 路由表（ActionType → Handler 映射）
var HandlerMap = map[string]HandlerFactory{
	model.ActionTriagePrioritize:      triage.NewPrioritizeHandler,
	model.ActionTriagePrioritizeBatch: triage.NewBatchHandler,
	model.ActionResourceForecast:      triage.NewForecastHandler,
}
