package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/repository"
	"elderguard-data/internal/store"
)

// 不活动判定阈值：最新指标超过该时长未更新视为不活动
const inactivityThreshold = 6 * time.Hour

// 最新生命体征缓存TTL
const latestVitalsTTL = 24 * time.Hour

// InactivityStatus 不活动检测结果
type InactivityStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// latestVitals 最新生命体征缓存条目
type latestVitals struct {
	HeartRate    *int      `json:"heart_rate"`
	Steps        *int      `json:"steps"`
	SleepMinutes *int      `json:"sleep_minutes"`
	SpO2         *int      `json:"spo2"`
	Timestamp    time.Time `json:"timestamp"`
}

// HealthService 健康数据服务（用药记录、数据导入、统计、不活动检测）
type HealthService struct {
	metricsRepo repository.HealthMetricsRepository
	medsRepo    repository.MedicationsRepository
	kv          store.KV
	logger      *zap.Logger
}

// NewHealthService 创建健康数据服务
func NewHealthService(
	metricsRepo repository.HealthMetricsRepository,
	medsRepo repository.MedicationsRepository,
	kv store.KV,
	logger *zap.Logger,
) *HealthService {
	return &HealthService{
		metricsRepo: metricsRepo,
		medsRepo:    medsRepo,
		kv:          kv,
		logger:      logger,
	}
}

// AddMedication 添加用药记录
func (s *HealthService) AddMedication(ctx context.Context, med *domain.Medication) (*domain.Medication, error) {
	if med.Name == "" {
		return nil, fmt.Errorf("medication name is required")
	}
	medID, err := s.medsRepo.CreateMedication(ctx, med)
	if err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}
	med.MedicationID = medID
	return med, nil
}

// ListMedications 查询用户的用药记录
func (s *HealthService) ListMedications(ctx context.Context, userID string) ([]*domain.Medication, error) {
	return s.medsRepo.ListMedications(ctx, userID)
}

// DeleteMedication 删除用药记录（非本人记录按不存在处理）
func (s *HealthService) DeleteMedication(ctx context.Context, userID, medicationID string) error {
	return s.medsRepo.DeleteMedication(ctx, userID, medicationID)
}

// ImportHealthData 导入健康数据文件（可穿戴设备导出格式）
// 支持 .csv 和 .xlsx，列名大小写不敏感，返回导入条数
func (s *HealthService) ImportHealthData(ctx context.Context, userID, filename string, content []byte) (int, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSVRows(content)
	case ".xlsx":
		rows, err = readXLSXRows(content)
	default:
		return 0, fmt.Errorf("unsupported file format: %s", filepath.Ext(filename))
	}
	if err != nil {
		return 0, fmt.Errorf("failed to parse health data file: %w", err)
	}
	if len(rows) < 2 {
		return 0, fmt.Errorf("health data file has no data rows")
	}

	metrics := parseMetricRows(userID, rows[0], rows[1:])
	if len(metrics) == 0 {
		return 0, fmt.Errorf("no recognizable metric columns in file")
	}

	imported, err := s.metricsRepo.CreateMetricsBatch(ctx, metrics)
	if err != nil {
		return 0, fmt.Errorf("failed to store imported metrics: %w", err)
	}

	s.logger.Info("Health data imported",
		zap.String("user_id", userID),
		zap.String("filename", filename),
		zap.Int("imported", imported),
	)
	return imported, nil
}

// GetStats 查询最近的健康指标（最多10条），并刷新最新生命体征缓存
func (s *HealthService) GetStats(ctx context.Context, userID string) ([]*domain.HealthMetric, error) {
	metrics, err := s.metricsRepo.ListRecentMetrics(ctx, userID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent metrics: %w", err)
	}

	// 缓存刷新失败不影响查询结果
	if len(metrics) > 0 {
		latest := metrics[0]
		raw, err := json.Marshal(latestVitals{
			HeartRate:    latest.HeartRate,
			Steps:        latest.Steps,
			SleepMinutes: latest.SleepMinutes,
			SpO2:         latest.SpO2,
			Timestamp:    latest.Timestamp,
		})
		if err == nil {
			if err := s.kv.Set(ctx, vitalsCacheKey(userID), string(raw), latestVitalsTTL); err != nil {
				s.logger.Warn("Failed to refresh latest vitals cache",
					zap.String("user_id", userID),
					zap.Error(err),
				)
			}
		}
	}

	return metrics, nil
}

// CheckInactivity 不活动检测
// 先读最新生命体征缓存，未命中回退数据库
// 最新指标超过6小时未更新时报告不活动；无任何指标时视为活动
func (s *HealthService) CheckInactivity(ctx context.Context, userID string) (*InactivityStatus, error) {
	lastSeen, ok := s.cachedVitalsTimestamp(ctx, userID)
	if !ok {
		latest, err := s.metricsRepo.GetLatestMetric(ctx, userID)
		if err != nil {
			if strings.Contains(err.Error(), "not found") {
				return &InactivityStatus{Status: "active", Message: "User is active"}, nil
			}
			return nil, fmt.Errorf("failed to get latest metric: %w", err)
		}
		lastSeen = latest.Timestamp
	}

	if time.Since(lastSeen) > inactivityThreshold {
		return &InactivityStatus{
			Status:  "inactive",
			Message: "No activity recorded in the last 6 hours",
		}, nil
	}
	return &InactivityStatus{Status: "active", Message: "User is active"}, nil
}

// cachedVitalsTimestamp 读取最新生命体征缓存中的时间戳
// 未命中或条目损坏时返回false，由调用方回退数据库
func (s *HealthService) cachedVitalsTimestamp(ctx context.Context, userID string) (time.Time, bool) {
	raw, err := s.kv.Get(ctx, vitalsCacheKey(userID))
	if err != nil {
		if !errors.Is(err, store.ErrMiss) {
			s.logger.Warn("Failed to read latest vitals cache",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		return time.Time{}, false
	}

	var vitals latestVitals
	if err := json.Unmarshal([]byte(raw), &vitals); err != nil || vitals.Timestamp.IsZero() {
		s.logger.Warn("Discarding corrupted latest vitals cache entry",
			zap.String("user_id", userID),
		)
		return time.Time{}, false
	}
	return vitals.Timestamp, true
}

func vitalsCacheKey(userID string) string {
	return fmt.Sprintf("vital:user:%s:latest", userID)
}

// readCSVRows 读取CSV内容为行列表
func readCSVRows(content []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// readXLSXRows 读取XLSX首个工作表为行列表
func readXLSXRows(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetRows(f.GetSheetName(0))
}

// parseMetricRows 按表头定位指标列并逐行解析
// 可识别列缺失或值非数字时置空，不中断导入
func parseMetricRows(userID string, header []string, rows [][]string) []*domain.HealthMetric {
	heartRateCol := -1
	stepsCol := -1
	sleepCol := -1
	spo2Col := -1

	for i, name := range header {
		switch normalizeColumnName(name) {
		case "heartrate":
			heartRateCol = i
		case "steps", "stepcount":
			stepsCol = i
		case "sleep", "sleepminutes":
			sleepCol = i
		case "spo2":
			spo2Col = i
		}
	}
	if heartRateCol < 0 && stepsCol < 0 && sleepCol < 0 && spo2Col < 0 {
		return nil
	}

	now := time.Now()
	metrics := make([]*domain.HealthMetric, 0, len(rows))
	for _, row := range rows {
		metrics = append(metrics, &domain.HealthMetric{
			UserID:       userID,
			Timestamp:    now,
			Source:       domain.MetricSourceSamsungWatch,
			HeartRate:    cellInt(row, heartRateCol),
			Steps:        cellInt(row, stepsCol),
			SleepMinutes: cellInt(row, sleepCol),
			SpO2:         cellInt(row, spo2Col),
		})
	}
	return metrics
}

func normalizeColumnName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "")
}

func cellInt(row []string, col int) *int {
	if col < 0 || col >= len(row) {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(row[col]))
	if err != nil {
		return nil
	}
	return &value
}
