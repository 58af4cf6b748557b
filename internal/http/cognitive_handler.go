package httpapi

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/service"
)

// CognitiveHandler 行为日志与认知分析接口
type CognitiveHandler struct {
	cognitiveService *service.CognitiveService
	logger           *zap.Logger
}

func NewCognitiveHandler(cognitiveService *service.CognitiveService, logger *zap.Logger) *CognitiveHandler {
	return &CognitiveHandler{cognitiveService: cognitiveService, logger: logger}
}

// behaviorLogRequest 行为日志创建请求
type behaviorLogRequest struct {
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	Timestamp   *time.Time `json:"timestamp"`
}

// Log POST /cognitive/log
func (h *CognitiveHandler) Log(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req behaviorLogRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	timestamp := time.Time{}
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	created, err := h.cognitiveService.LogBehavior(r.Context(), user.UserID, req.Description, req.Severity, timestamp)
	if err != nil {
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "invalid severity") {
			Fail(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Log behavior failed", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, newBehaviorLogView(created))
}

// Logs GET /cognitive/logs
func (h *CognitiveHandler) Logs(w http.ResponseWriter, r *http.Request, user *domain.User) {
	logs, err := h.cognitiveService.ListLogs(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("List behavior logs failed", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	views := make([]BehaviorLogView, 0, len(logs))
	for _, l := range logs {
		views = append(views, newBehaviorLogView(l))
	}
	writeJSON(w, http.StatusOK, views)
}

// Analyze POST /cognitive/analyze
func (h *CognitiveHandler) Analyze(w http.ResponseWriter, r *http.Request, user *domain.User) {
	analysis, err := h.cognitiveService.Analyze(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("Cognitive analysis failed",
			zap.String("user_id", user.UserID),
			zap.Error(err),
		)
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
