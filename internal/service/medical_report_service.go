package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/repository"
)

// Summarizer 文本摘要接口（InferenceClient 实现）
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// MedicalReportService 医疗报告服务
// 上传时保存原始文件、抽取文本并生成AI摘要
type MedicalReportService struct {
	reportsRepo repository.MedicalReportsRepository
	summarizer  Summarizer
	uploadDir   string
	logger      *zap.Logger
}

// NewMedicalReportService 创建医疗报告服务
func NewMedicalReportService(reportsRepo repository.MedicalReportsRepository, summarizer Summarizer, uploadDir string, logger *zap.Logger) *MedicalReportService {
	return &MedicalReportService{
		reportsRepo: reportsRepo,
		summarizer:  summarizer,
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

// UploadReport 上传并处理一份医疗报告
// 文本抽取失败或过短时使用标题/医生名构造兜底文本，摘要保证非空
func (s *MedicalReportService) UploadReport(ctx context.Context, userID, title, doctorName, reportType, filename string, content []byte) (*domain.MedicalReport, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if filename == "" {
		return nil, fmt.Errorf("file is required")
	}
	if reportType == "" {
		reportType = domain.ReportTypeReport
	}

	// 1. 保存原始文件（仅作为存档，不信任文件名路径部分）
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	filePath := filepath.Join(s.uploadDir, filepath.Base(filename))
	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to save uploaded file: %w", err)
	}

	// 2. 抽取文本：纯文本直接读取，其他格式走兜底路径
	extractedText := ""
	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		extractedText = string(content)
	}
	if len(strings.TrimSpace(extractedText)) < 10 {
		extractedText = fmt.Sprintf("Medical Report: %s. Doctor: %s. (Content could not be extracted)", title, doctorName)
	}

	// 3. 生成摘要（推理客户端内部兜底，始终返回非空文本）
	summary := s.summarizer.Summarize(ctx, extractedText)

	// 4. 落库
	report := &domain.MedicalReport{
		UserID:     userID,
		Title:      title,
		DoctorName: doctorName,
		ReportType: reportType,
		Summary:    summary,
		FilePath:   filePath,
		UploadDate: time.Now(),
	}
	reportID, err := s.reportsRepo.CreateReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to create medical report: %w", err)
	}
	report.ReportID = reportID

	s.logger.Info("Medical report uploaded",
		zap.String("user_id", userID),
		zap.String("report_id", reportID),
		zap.String("title", title),
	)

	return report, nil
}

// ListReports 查询用户的报告（按上传时间倒序）
func (s *MedicalReportService) ListReports(ctx context.Context, userID string) ([]*domain.MedicalReport, error) {
	return s.reportsRepo.ListReports(ctx, userID)
}

// DeleteReport 删除报告（非本人报告按不存在处理）
func (s *MedicalReportService) DeleteReport(ctx context.Context, userID, reportID string) error {
	return s.reportsRepo.DeleteReport(ctx, userID, reportID)
}
