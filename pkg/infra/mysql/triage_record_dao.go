package mysql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/bcenhabil/barangaylink-system/internal/entity"
	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// TriageRecordDAO 审计记录数据访问对象
type TriageRecordDAO struct {
	db *gorm.DB
}

// NewTriageRecordDAO 创建 TriageRecordDAO 实例
func NewTriageRecordDAO(dsn string) (*TriageRecordDAO, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &TriageRecordDAO{
		db: db,
	}, nil
}

// NewTriageRecordDAOWithDB 使用已有连接创建
func NewTriageRecordDAOWithDB(db *gorm.DB) *TriageRecordDAO {
	return &TriageRecordDAO{db: db}
}

// AutoMigrate 建表
func (dao *TriageRecordDAO) AutoMigrate(ctx context.Context) error {
	return dao.db.WithContext(ctx).AutoMigrate(&entity.TriageRecord{})
}

// SaveBreakdown 保存单条评分结果
func (dao *TriageRecordDAO) SaveBreakdown(
	ctx context.Context,
	req model.TriageRequest,
	breakdown *model.ScoreBreakdown,
) error {
	record, err := newRecord(breakdown.RequestID, model.ActionTriagePrioritize, req, breakdown)
	if err != nil {
		return err
	}
	record.Category = req.NormalizedCategory()
	record.Priority = string(breakdown.Priority)
	record.Score = breakdown.Score
	record.ModelVersion = breakdown.ModelVersion
	record.MLFallback = breakdown.MLFallback

	return dao.create(ctx, record)
}

// SaveForecast 保存资源预测结果
func (dao *TriageRecordDAO) SaveForecast(
	ctx context.Context,
	requestID string,
	req model.ForecastRequest,
	forecast *model.ResourceForecast,
) error {
	record, err := newRecord(requestID, model.ActionResourceForecast, req, forecast)
	if err != nil {
		return err
	}
	record.Category = forecast.DisasterType
	record.Score = forecast.EstimatedCosts.Total

	return dao.create(ctx, record)
}

// GetByRequestID 根据 request_id 查询
func (dao *TriageRecordDAO) GetByRequestID(ctx context.Context, requestID string) (*entity.TriageRecord, error) {
	var record entity.TriageRecord
	result := dao.db.WithContext(ctx).Where("request_id = ?", requestID).First(&record)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get triage record: %w", result.Error)
	}
	return &record, nil
}

// ListByPriority 按档位查询最近的评分记录
func (dao *TriageRecordDAO) ListByPriority(ctx context.Context, priority model.Tier, limit int) ([]entity.TriageRecord, error) {
	var records []entity.TriageRecord
	result := dao.db.WithContext(ctx).
		Where("action_type = ? AND priority = ?", model.ActionTriagePrioritize, string(priority)).
		Order("created_at DESC").
		Limit(limit).
		Find(&records)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list triage records: %w", result.Error)
	}
	return records, nil
}

// Close 关闭数据库连接
func (dao *TriageRecordDAO) Close() error {
	sqlDB, err := dao.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (dao *TriageRecordDAO) create(ctx context.Context, record *entity.TriageRecord) error {
	if err := dao.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save triage record: %w", err)
	}
	return nil
}

func newRecord(requestID, actionType string, req, result interface{}) (*entity.TriageRecord, error) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &entity.TriageRecord{
		RequestID:  requestID,
		ActionType: actionType,
		Request:    datatypes.JSON(reqJSON),
		Result:     datatypes.JSON(resultJSON),
		CreatedAt:  time.Now(),
	}, nil
}
