package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"elderguard-data/internal/domain"
)

// PostgresHealthMetricsRepository 健康指标Repository实现
type PostgresHealthMetricsRepository struct {
	db *sql.DB
}

// NewPostgresHealthMetricsRepository 创建健康指标Repository
func NewPostgresHealthMetricsRepository(db *sql.DB) *PostgresHealthMetricsRepository {
	return &PostgresHealthMetricsRepository{db: db}
}

// 确保实现了接口
var _ HealthMetricsRepository = (*PostgresHealthMetricsRepository)(nil)

const metricInsert = `
	INSERT INTO health_metrics (
		metric_id, user_id, timestamp, source,
		heart_rate, steps, sleep_minutes, spo2,
		fall_detected, inactivity_alert
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// CreateMetric 写入一条健康指标
func (r *PostgresHealthMetricsRepository) CreateMetric(ctx context.Context, metric *domain.HealthMetric) (string, error) {
	if metric == nil {
		return "", fmt.Errorf("metric is required")
	}
	if metric.UserID == "" {
		return "", fmt.Errorf("user_id is required")
	}
	if metric.MetricID == "" {
		metric.MetricID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, metricInsert,
		metric.MetricID,
		metric.UserID,
		metric.Timestamp,
		metric.Source,
		metric.HeartRate,
		metric.Steps,
		metric.SleepMinutes,
		metric.SpO2,
		metric.FallDetected,
		metric.InactivityAlert,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create health metric: %w", err)
	}
	return metric.MetricID, nil
}

// CreateMetricsBatch 批量写入健康指标（导入用）
// 单条失败跳过不中断，返回成功写入的条数；全部失败时返回最后一个错误
func (r *PostgresHealthMetricsRepository) CreateMetricsBatch(ctx context.Context, metrics []*domain.HealthMetric) (int, error) {
	imported := 0
	var lastErr error
	for _, metric := range metrics {
		if _, err := r.CreateMetric(ctx, metric); err != nil {
			lastErr = err
			continue
		}
		imported++
	}
	if imported == 0 && lastErr != nil {
		return 0, fmt.Errorf("failed to import metric batch: %w", lastErr)
	}
	return imported, nil
}

// ListRecentMetrics 查询最近的健康指标（按时间倒序）
func (r *PostgresHealthMetricsRepository) ListRecentMetrics(ctx context.Context, userID string, limit int) ([]*domain.HealthMetric, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT metric_id::text, user_id::text, timestamp, source,
		       heart_rate, steps, sleep_minutes, spo2,
		       fall_detected, inactivity_alert
		FROM health_metrics
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list health metrics: %w", err)
	}
	defer rows.Close()

	metrics := []*domain.HealthMetric{}
	for rows.Next() {
		var m domain.HealthMetric
		if err := rows.Scan(
			&m.MetricID,
			&m.UserID,
			&m.Timestamp,
			&m.Source,
			&m.HeartRate,
			&m.Steps,
			&m.SleepMinutes,
			&m.SpO2,
			&m.FallDetected,
			&m.InactivityAlert,
		); err != nil {
			return nil, fmt.Errorf("failed to scan health metric: %w", err)
		}
		metrics = append(metrics, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate health metrics: %w", err)
	}
	return metrics, nil
}

// GetLatestMetric 查询最新一条健康指标
func (r *PostgresHealthMetricsRepository) GetLatestMetric(ctx context.Context, userID string) (*domain.HealthMetric, error) {
	metrics, err := r.ListRecentMetrics(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		return nil, fmt.Errorf("health metrics not found for user: %s", userID)
	}
	return metrics[0], nil
}
