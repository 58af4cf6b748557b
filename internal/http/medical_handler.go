package httpapi

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/service"
)

// MedicalHandler 医疗报告接口
type MedicalHandler struct {
	reportService *service.MedicalReportService
	logger        *zap.Logger
}

func NewMedicalHandler(reportService *service.MedicalReportService, logger *zap.Logger) *MedicalHandler {
	return &MedicalHandler{reportService: reportService, logger: logger}
}

// ListReports GET /medical/reports
func (h *MedicalHandler) ListReports(w http.ResponseWriter, r *http.Request, user *domain.User) {
	reports, err := h.reportService.ListReports(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("List reports failed", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	views := make([]ReportView, 0, len(reports))
	for _, rep := range reports {
		views = append(views, newReportView(rep))
	}
	writeJSON(w, http.StatusOK, views)
}

// UploadReport POST /medical/reports/upload
// multipart字段：title（必填）、doctor_name、report_type、file（必填）
func (h *MedicalHandler) UploadReport(w http.ResponseWriter, r *http.Request, user *domain.User) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		Fail(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	title := r.FormValue("title")
	doctorName := r.FormValue("doctor_name")
	reportType := r.FormValue("report_type")

	file, header, err := r.FormFile("file")
	if err != nil {
		Fail(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		Fail(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	report, err := h.reportService.UploadReport(r.Context(), user.UserID, title, doctorName, reportType, header.Filename, content)
	if err != nil {
		if strings.Contains(err.Error(), "required") {
			Fail(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Report upload failed",
			zap.String("user_id", user.UserID),
			zap.Error(err),
		)
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, newReportView(report))
}

// DeleteReport DELETE /medical/reports/{id}
func (h *MedicalHandler) DeleteReport(w http.ResponseWriter, r *http.Request, user *domain.User, reportID string) {
	if err := h.reportService.DeleteReport(r.Context(), user.UserID, reportID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			Fail(w, http.StatusNotFound, "Report not found")
			return
		}
		h.logger.Error("Delete report failed", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
