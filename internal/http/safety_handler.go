package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/service"
)

// SafetyHandler 跌倒报警接口
type SafetyHandler struct {
	alertService *service.AlertService
	logger       *zap.Logger
}

func NewSafetyHandler(alertService *service.AlertService, logger *zap.Logger) *SafetyHandler {
	return &SafetyHandler{alertService: alertService, logger: logger}
}

// fallAlertRequest 跌倒报警请求（body可为空，location缺省取配置值）
type fallAlertRequest struct {
	Location string `json:"location"`
}

// TriggerFall POST /safety/alert/fall
// 同步完成持久化后立即返回，消息分发异步执行
func (h *SafetyHandler) TriggerFall(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req fallAlertRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.alertService.TriggerFallAlert(r.Context(), user.UserID, req.Location)
	if err != nil {
		h.logger.Error("Fall alert failed",
			zap.String("user_id", user.UserID),
			zap.Error(err),
		)
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListAlerts GET /safety/alerts
func (h *SafetyHandler) ListAlerts(w http.ResponseWriter, r *http.Request, user *domain.User) {
	limit := parseInt(r.URL.Query().Get("limit"), 0)

	events, err := h.alertService.ListAlerts(r.Context(), user.UserID, limit)
	if err != nil {
		h.logger.Error("List alerts failed", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	views := make([]AlertEventView, 0, len(events))
	for _, e := range events {
		views = append(views, newAlertEventView(e))
	}
	writeJSON(w, http.StatusOK, views)
}
