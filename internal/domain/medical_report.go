package domain

import "time"

// 医疗报告类型
const (
	ReportTypeReport       = "report"
	ReportTypePrescription = "prescription"
	ReportTypeLabResult    = "lab_result"
)

// MedicalReport 医疗报告领域模型（对应 medical_reports 表）
type MedicalReport struct {
	// 主键
	ReportID string `db:"report_id"` // UUID, PRIMARY KEY

	// 所属用户
	UserID string `db:"user_id"` // UUID, NOT NULL, REFERENCES users(user_id)

	// 报告信息
	Title      string `db:"title"`       // VARCHAR(200), NOT NULL
	DoctorName string `db:"doctor_name"` // VARCHAR(100), nullable
	ReportType string `db:"report_type"` // VARCHAR(30), NOT NULL, DEFAULT 'report'

	// AI 生成的摘要（上传完成后不为空）
	Summary string `db:"summary"` // TEXT, nullable

	// 文件存储路径
	FilePath string `db:"file_path"` // TEXT, nullable

	// 上传时间
	UploadDate time.Time `db:"upload_date"` // TIMESTAMPTZ, NOT NULL
}
