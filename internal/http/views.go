package httpapi

import (
	"encoding/json"
	"time"

	"elderguard-data/internal/domain"
)

// UserView 用户对外视图（不含密码哈希）
type UserView struct {
	ID                   string  `json:"id"`
	Email                string  `json:"email"`
	FullName             string  `json:"full_name"`
	Role                 string  `json:"role"`
	Phone                *string `json:"phone"`
	Address              *string `json:"address"`
	Age                  *int64  `json:"age"`
	BloodType            *string `json:"blood_type"`
	MedicalConditions    *string `json:"medical_conditions"`
	HandlingInstructions *string `json:"handling_instructions"`
	MedicalHistory       *string `json:"medical_history"`
	EmergencyContacts    *string `json:"emergency_contacts"`
}

func newUserView(u *domain.User) UserView {
	return UserView{
		ID:                   u.UserID,
		Email:                u.Email,
		FullName:             u.FullName,
		Role:                 u.Role,
		Phone:                nullStr(u.Phone.Valid, u.Phone.String),
		Address:              nullStr(u.Address.Valid, u.Address.String),
		Age:                  nullInt(u.Age.Valid, u.Age.Int64),
		BloodType:            nullStr(u.BloodType.Valid, u.BloodType.String),
		MedicalConditions:    nullStr(u.MedicalConditions.Valid, u.MedicalConditions.String),
		HandlingInstructions: nullStr(u.HandlingInstructions.Valid, u.HandlingInstructions.String),
		MedicalHistory:       nullStr(u.MedicalHistory.Valid, u.MedicalHistory.String),
		EmergencyContacts:    nullStr(u.EmergencyContacts.Valid, u.EmergencyContacts.String),
	}
}

// MedicationView 用药记录视图
type MedicationView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Dosage       string     `json:"dosage"`
	Timing       string     `json:"timing"`
	Instructions string     `json:"instructions"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

func newMedicationView(m *domain.Medication) MedicationView {
	return MedicationView{
		ID:           m.MedicationID,
		Name:         m.Name,
		Dosage:       m.Dosage,
		Timing:       m.Timing,
		Instructions: m.Instructions,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
	}
}

// MetricView 健康指标视图
type MetricView struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Source          string    `json:"source"`
	HeartRate       *int      `json:"heart_rate"`
	Steps           *int      `json:"steps"`
	SleepMinutes    *int      `json:"sleep_minutes"`
	SpO2            *int      `json:"spo2"`
	FallDetected    bool      `json:"fall_detected"`
	InactivityAlert bool      `json:"inactivity_alert"`
}

func newMetricView(m *domain.HealthMetric) MetricView {
	return MetricView{
		ID:              m.MetricID,
		Timestamp:       m.Timestamp,
		Source:          m.Source,
		HeartRate:       m.HeartRate,
		Steps:           m.Steps,
		SleepMinutes:    m.SleepMinutes,
		SpO2:            m.SpO2,
		FallDetected:    m.FallDetected,
		InactivityAlert: m.InactivityAlert,
	}
}

// ReportView 医疗报告视图
type ReportView struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	DoctorName string    `json:"doctor_name"`
	ReportType string    `json:"report_type"`
	Summary    string    `json:"summary"`
	FilePath   string    `json:"file_path"`
	UploadDate time.Time `json:"upload_date"`
}

func newReportView(r *domain.MedicalReport) ReportView {
	return ReportView{
		ID:         r.ReportID,
		Title:      r.Title,
		DoctorName: r.DoctorName,
		ReportType: r.ReportType,
		Summary:    r.Summary,
		FilePath:   r.FilePath,
		UploadDate: r.UploadDate,
	}
}

// BehaviorLogView 行为日志视图
type BehaviorLogView struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Timestamp   time.Time `json:"timestamp"`
}

func newBehaviorLogView(l *domain.BehaviorLog) BehaviorLogView {
	return BehaviorLogView{
		ID:          l.LogID,
		Description: l.Description,
		Severity:    l.Severity,
		Timestamp:   l.Timestamp,
	}
}

// AlertEventView 报警事件视图
type AlertEventView struct {
	ID               string          `json:"id"`
	Location         string          `json:"location"`
	TriggeredAt      time.Time       `json:"triggered_at"`
	NotifiedContacts json.RawMessage `json:"notified_contacts"`
}

func newAlertEventView(e *domain.AlertEvent) AlertEventView {
	contacts := e.NotifiedContacts
	if len(contacts) == 0 {
		contacts = json.RawMessage(`[]`)
	}
	return AlertEventView{
		ID:               e.EventID,
		Location:         e.Location,
		TriggeredAt:      e.TriggeredAt,
		NotifiedContacts: contacts,
	}
}

func nullStr(valid bool, v string) *string {
	if !valid {
		return nil
	}
	return &v
}

func nullInt(valid bool, v int64) *int64 {
	if !valid {
		return nil
	}
	return &v
}
