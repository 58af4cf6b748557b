package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"elderguard-data/internal/domain"
)

// PostgresMedicalReportsRepository 医疗报告Repository实现
type PostgresMedicalReportsRepository struct {
	db *sql.DB
}

// NewPostgresMedicalReportsRepository 创建医疗报告Repository
func NewPostgresMedicalReportsRepository(db *sql.DB) *PostgresMedicalReportsRepository {
	return &PostgresMedicalReportsRepository{db: db}
}

// 确保实现了接口
var _ MedicalReportsRepository = (*PostgresMedicalReportsRepository)(nil)

// CreateReport 创建医疗报告，返回新报告 ID
func (r *PostgresMedicalReportsRepository) CreateReport(ctx context.Context, report *domain.MedicalReport) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report is required")
	}
	if report.UserID == "" {
		return "", fmt.Errorf("user_id is required")
	}
	if report.ReportID == "" {
		report.ReportID = uuid.New().String()
	}

	query := `
		INSERT INTO medical_reports (
			report_id, user_id, title, doctor_name, report_type,
			summary, file_path, upload_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		report.ReportID,
		report.UserID,
		report.Title,
		report.DoctorName,
		report.ReportType,
		report.Summary,
		report.FilePath,
		report.UploadDate,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create medical report: %w", err)
	}
	return report.ReportID, nil
}

// ListReports 查询用户的医疗报告（按上传时间倒序）
func (r *PostgresMedicalReportsRepository) ListReports(ctx context.Context, userID string) ([]*domain.MedicalReport, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := `
		SELECT report_id::text, user_id::text, title,
		       COALESCE(doctor_name, ''), report_type,
		       COALESCE(summary, ''), COALESCE(file_path, ''), upload_date
		FROM medical_reports
		WHERE user_id = $1
		ORDER BY upload_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical reports: %w", err)
	}
	defer rows.Close()

	reports := []*domain.MedicalReport{}
	for rows.Next() {
		var rep domain.MedicalReport
		if err := rows.Scan(
			&rep.ReportID,
			&rep.UserID,
			&rep.Title,
			&rep.DoctorName,
			&rep.ReportType,
			&rep.Summary,
			&rep.FilePath,
			&rep.UploadDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan medical report: %w", err)
		}
		reports = append(reports, &rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate medical reports: %w", err)
	}
	return reports, nil
}

// DeleteReport 删除医疗报告（归属校验，非本人报告按不存在处理）
func (r *PostgresMedicalReportsRepository) DeleteReport(ctx context.Context, userID, reportID string) error {
	if userID == "" || reportID == "" {
		return fmt.Errorf("user_id and report_id are required")
	}

	query := `DELETE FROM medical_reports WHERE report_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, reportID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete medical report: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("report not found: %s", reportID)
	}
	return nil
}
