package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elderguard-data/internal/domain"
)

func setupMockMetricsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresHealthMetricsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostgresHealthMetricsRepository(db)
	return db, mock, repo
}

func TestCreateMetricsBatch_SkipsFailedRows(t *testing.T) {
	db, mock, repo := setupMockMetricsDB(t)
	defer db.Close()

	userID := uuid.New().String()
	now := time.Now()

	// 第一条写入失败，后续继续写入
	mock.ExpectExec(`INSERT INTO health_metrics`).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectExec(`INSERT INTO health_metrics`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	imported, err := repo.CreateMetricsBatch(context.Background(), []*domain.HealthMetric{
		{UserID: userID, Timestamp: now, Source: domain.MetricSourceSamsungWatch},
		{UserID: userID, Timestamp: now, Source: domain.MetricSourceSamsungWatch},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMetricsBatch_AllRowsFailed(t *testing.T) {
	db, mock, repo := setupMockMetricsDB(t)
	defer db.Close()

	userID := uuid.New().String()

	mock.ExpectExec(`INSERT INTO health_metrics`).
		WillReturnError(errors.New("connection refused"))

	imported, err := repo.CreateMetricsBatch(context.Background(), []*domain.HealthMetric{
		{UserID: userID, Timestamp: time.Now(), Source: domain.MetricSourceSamsungWatch},
	})

	assert.Error(t, err)
	assert.Equal(t, 0, imported)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestMetric_NotFound(t *testing.T) {
	db, mock, repo := setupMockMetricsDB(t)
	defer db.Close()

	userID := uuid.New().String()

	rows := sqlmock.NewRows([]string{
		"metric_id", "user_id", "timestamp", "source",
		"heart_rate", "steps", "sleep_minutes", "spo2",
		"fall_detected", "inactivity_alert",
	})
	mock.ExpectQuery(`SELECT`).
		WithArgs(userID, 1).
		WillReturnRows(rows)

	_, err := repo.GetLatestMetric(context.Background(), userID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	require.NoError(t, mock.ExpectationsWereMet())
}
