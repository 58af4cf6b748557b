package httpapi

import (
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/service"
)

// 健康数据导入文件大小上限
const maxUploadBytes = 10 << 20

// HealthHandler 用药记录与健康数据接口
type HealthHandler struct {
	healthService *service.HealthService
	logger        *zap.Logger
}

func NewHealthHandler(healthService *service.HealthService, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{healthService: healthService, logger: logger}
}

// medicationRequest 用药记录创建请求
type medicationRequest struct {
	Name         string     `json:"name"`
	Dosage       string     `json:"dosage"`
	Timing       string     `json:"timing"`
	Instructions string     `json:"instructions"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

// CreateMedication POST /health/medications
func (h *HealthHandler) CreateMedication(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req medicationRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	med, err := h.healthService.AddMedication(r.Context(), &domain.Medication{
		UserID:       user.UserID,
		Name:         req.Name,
		Dosage:       req.Dosage,
		Timing:       req.Timing,
		Instructions: req.Instructions,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		if strings.Contains(err.Error(), "required") {
			Fail(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Create medication failed", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, newMedicationView(med))
}

// ListMedications GET /health/medications
func (h *HealthHandler) ListMedications(w http.ResponseWriter, r *http.Request, user *domain.User) {
	meds, err := h.healthService.ListMedications(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("List medications failed", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	views := make([]MedicationView, 0, len(meds))
	for _, m := range meds {
		views = append(views, newMedicationView(m))
	}
	writeJSON(w, http.StatusOK, views)
}

// DeleteMedication DELETE /health/medications/{id}
func (h *HealthHandler) DeleteMedication(w http.ResponseWriter, r *http.Request, user *domain.User, medicationID string) {
	if err := h.healthService.DeleteMedication(r.Context(), user.UserID, medicationID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			Fail(w, http.StatusNotFound, "Medication not found")
			return
		}
		h.logger.Error("Delete medication failed", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Upload POST /health/upload（multipart，字段名 file）
func (h *HealthHandler) Upload(w http.ResponseWriter, r *http.Request, user *domain.User) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		Fail(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
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

	imported, err := h.healthService.ImportHealthData(r.Context(), user.UserID, header.Filename, content)
	if err != nil {
		Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"imported": imported,
		"message":  "Health data imported successfully",
	})
}

// Stats GET /health/stats
func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request, user *domain.User) {
	metrics, err := h.healthService.GetStats(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("Get health stats failed", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	views := make([]MetricView, 0, len(metrics))
	for _, m := range metrics {
		views = append(views, newMetricView(m))
	}
	writeJSON(w, http.StatusOK, views)
}

// InactivityCheck GET /health/inactivity-check
func (h *HealthHandler) InactivityCheck(w http.ResponseWriter, r *http.Request, user *domain.User) {
	status, err := h.healthService.CheckInactivity(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("Inactivity check failed", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, status)
}
